// Package observability holds the process-wide Prometheus metrics.
package observability

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/heartmarshall/syllabl-backend/internal/domain"
)

// Metrics definitions
var (
	WordLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "syllabl_word_lookups_total",
		Help: "Word lookups by outcome: accepted, invalid, error, or the rejection reason.",
	}, []string{"outcome"})

	WordCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "syllabl_word_cache_total",
		Help: "Word cache reads by result (hit, miss, stale, error).",
	}, []string{"result"})

	ProviderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "syllabl_provider_request_seconds",
		Help:    "Latency of upstream provider calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider", "status"})

	ResolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "syllabl_word_resolve_seconds",
		Help:    "End-to-end time to answer a word lookup.",
		Buckets: prometheus.DefBuckets,
	})

	LeaderboardSubmissionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "syllabl_leaderboard_submissions_total",
		Help: "Puzzle results stored.",
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "syllabl_http_requests_total",
		Help: "HTTP requests served, by method and status class.",
	}, []string{"method", "class"})

	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "syllabl_http_rate_limited_total",
		Help: "Requests refused by the per-client rate limiter.",
	})

	PanicsRecoveredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "syllabl_http_panics_recovered_total",
		Help: "Handler panics turned into 500 responses.",
	})

	WordCachePrunedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "syllabl_word_cache_pruned_total",
		Help: "Word cache rows deleted by the cleanup job.",
	})
)

// ObserveProvider records the duration of a provider call started at start.
func ObserveProvider(provider string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	ProviderDuration.WithLabelValues(provider, status).Observe(time.Since(start).Seconds())
}

// Outcome maps the result of a word lookup to its metric label.
func Outcome(err error) string {
	if err == nil {
		return "accepted"
	}
	if reason, ok := domain.RejectionReason(err); ok {
		return string(reason)
	}
	if errors.Is(err, domain.ErrValidation) {
		return "invalid"
	}
	return "error"
}

// StatusClass returns "2xx", "4xx" and so on for an HTTP status code.
func StatusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
