package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/syllabl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/syllabl-backend/internal/adapter/postgres/leaderboard"
	"github.com/heartmarshall/syllabl-backend/internal/adapter/postgres/wordcache"
	"github.com/heartmarshall/syllabl-backend/internal/adapter/provider/datamuse"
	"github.com/heartmarshall/syllabl-backend/internal/adapter/provider/merriam"
	"github.com/heartmarshall/syllabl-backend/internal/config"
	leaderboardsvc "github.com/heartmarshall/syllabl-backend/internal/service/leaderboard"
	"github.com/heartmarshall/syllabl-backend/internal/service/wordinfo"
	"github.com/heartmarshall/syllabl-backend/internal/syllable"
	"github.com/heartmarshall/syllabl-backend/internal/transport/middleware"
	"github.com/heartmarshall/syllabl-backend/internal/transport/rest"
)

const rateLimitCleanupInterval = time.Minute

// Run is the application entry point. It loads configuration, connects to
// the database, wires providers, services and handlers, and serves HTTP
// until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	pending, err := postgres.HasPendingMigrations(ctx, pool)
	switch {
	case err != nil:
		logger.Warn("could not check migrations", slog.String("error", err.Error()))
	case pending:
		logger.Warn("database schema is behind, run cmd/migrate up")
	}

	schema := rest.PingFunc(func(ctx context.Context) error {
		pending, err := postgres.HasPendingMigrations(ctx, pool)
		if err != nil {
			return err
		}
		if pending {
			return errors.New("pending migrations")
		}
		return nil
	})

	handler, stop := newHandler(cfg, logger, pool, map[string]rest.Pinger{"migrations": schema})
	defer stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// database is what the HTTP stack needs from the connection pool.
type database interface {
	postgres.DB
	Ping(ctx context.Context) error
}

// newHandler builds the full HTTP stack. checks join the database in the
// health probes. stop releases background workers.
func newHandler(cfg *config.Config, logger *slog.Logger, db database, checks map[string]rest.Pinger) (http.Handler, func()) {
	words := wordinfo.NewService(
		logger,
		merriam.NewProvider(cfg.Merriam, logger),
		datamuse.NewProvider(cfg.Datamuse, logger),
		syllable.NewEngine(logger),
		wordcache.New(db),
		cfg.WordCache,
	)
	board := leaderboardsvc.NewService(logger, leaderboard.New(db), postgres.NewTxManager(db))

	health := rest.NewHealthHandler(db, BuildVersion())
	for name, c := range checks {
		health.WithCheck(name, c)
	}

	mux := rest.NewMux(rest.Handlers{
		Word:        rest.NewWordHandler(words, logger),
		Leaderboard: rest.NewLeaderboardHandler(board, logger),
		Health:      health,
	}, cfg.Metrics)

	var (
		limit middleware.Middleware
		stop  = func() {}
	)
	if cfg.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(cfg.RateLimit, rateLimitCleanupInterval)
		limit, stop = rl.Middleware, rl.Stop
	}

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limit,
	)
	return chain(mux), stop
}

// serve runs srv until ctx is done or the listener fails.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
