package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Merriam.APIKey) == "" {
		return fmt.Errorf("merriam.api_key is required")
	}
	if c.Merriam.RequestsPerSecond < 0 {
		return fmt.Errorf("merriam.requests_per_second must be >= 0 (got %v)", c.Merriam.RequestsPerSecond)
	}
	if c.Merriam.Timeout <= 0 {
		return fmt.Errorf("merriam.timeout must be > 0 (got %v)", c.Merriam.Timeout)
	}
	if c.Datamuse.Timeout <= 0 {
		return fmt.Errorf("datamuse.timeout must be > 0 (got %v)", c.Datamuse.Timeout)
	}

	if err := c.RateLimit.validate(); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}
	if err := c.WordCache.validate(); err != nil {
		return fmt.Errorf("word_cache: %w", err)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level)
	}

	return nil
}

func (r *RateLimitConfig) validate() error {
	if !r.Enabled {
		return nil
	}
	if r.RequestsPerMinute <= 0 {
		return fmt.Errorf("requests_per_minute must be > 0 (got %d)", r.RequestsPerMinute)
	}
	if r.Burst <= 0 {
		return fmt.Errorf("burst must be > 0 (got %d)", r.Burst)
	}
	return nil
}

func (w *WordCacheConfig) validate() error {
	if !w.Enabled {
		return nil
	}
	if w.TTL <= 0 {
		return fmt.Errorf("ttl must be > 0 (got %v)", w.TTL)
	}
	if w.Retention < w.TTL {
		return fmt.Errorf("retention (%v) must not be shorter than ttl (%v)", w.Retention, w.TTL)
	}
	return nil
}
