package rest

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/syllabl-backend/internal/config"
)

// Handlers groups everything the router serves.
type Handlers struct {
	Word        *WordHandler
	Leaderboard *LeaderboardHandler
	Health      *HealthHandler
}

// NewMux registers the API, probe and metrics routes.
func NewMux(h Handlers, metrics config.MetricsConfig) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /word", h.Word.Get)

	mux.HandleFunc("POST /leaderboard", h.Leaderboard.Submit)
	mux.HandleFunc("GET /leaderboard", h.Leaderboard.List)
	mux.HandleFunc("/leaderboard", h.Leaderboard.MethodNotAllowed)

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	if metrics.Enabled {
		mux.Handle("GET "+metrics.Path, promhttp.Handler())
	}

	return mux
}
