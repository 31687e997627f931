// Command cleanup prunes word_cache rows resolved longer ago than the
// retention period (WORD_CACHE_RETENTION, or -retention). Run it from cron;
// the server never prunes in-process.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/syllabl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/syllabl-backend/internal/adapter/postgres/wordcache"
	"github.com/heartmarshall/syllabl-backend/internal/app"
	"github.com/heartmarshall/syllabl-backend/internal/config"
	"github.com/heartmarshall/syllabl-backend/internal/observability"
)

func main() {
	retention := flag.Duration("retention", 0, "override the configured retention, e.g. 240h")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log).With("component", "cleanup")

	keep := cfg.WordCache.Retention
	if *retention > 0 {
		keep = *retention
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := run(ctx, cfg.Database, keep, logger); err != nil {
		logger.Error("word cache prune failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, dbCfg config.DatabaseConfig, keep time.Duration, logger *slog.Logger) error {
	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	threshold := time.Now().Add(-keep)
	deleted, err := wordcache.New(pool).DeleteOlderThan(ctx, threshold)
	if err != nil {
		return err
	}
	observability.WordCachePrunedTotal.Add(float64(deleted))

	logger.Info("word cache pruned",
		slog.Int64("deleted", deleted),
		slog.Time("threshold", threshold),
		slog.Duration("retention", keep),
	)
	return nil
}
