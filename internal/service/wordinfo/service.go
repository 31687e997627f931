// Package wordinfo answers "is this a playable word, and how is it split
// into syllables" for the game client.
package wordinfo

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/syllabl-backend/internal/config"
	"github.com/heartmarshall/syllabl-backend/internal/domain"
)

type dictionaryProvider interface {
	Lookup(ctx context.Context, word string) (*domain.DictionaryLookup, error)
}

type frequencyProvider interface {
	Frequency(ctx context.Context, word string) (float64, error)
}

type syllableResolver interface {
	Resolve(ctx context.Context, word string, lookup domain.DictionaryLookup) (*domain.ResolvedWord, error)
}

type wordCache interface {
	Get(ctx context.Context, word string) (*domain.WordInfo, error)
	Upsert(ctx context.Context, info *domain.WordInfo) error
}

// Service resolves words through the dictionary and frequency providers,
// fronted by an optional persistent cache.
type Service struct {
	log       *slog.Logger
	dict      dictionaryProvider
	frequency frequencyProvider
	resolver  syllableResolver
	cache     wordCache
	cfg       config.WordCacheConfig
	now       func() time.Time
}

// NewService creates a new WordInfo service. cache may be nil, in which
// case every request goes to the providers.
func NewService(
	logger *slog.Logger,
	dict dictionaryProvider,
	frequency frequencyProvider,
	resolver syllableResolver,
	cache wordCache,
	cfg config.WordCacheConfig,
) *Service {
	return &Service{
		log:       logger.With("service", "wordinfo"),
		dict:      dict,
		frequency: frequency,
		resolver:  resolver,
		cache:     cache,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *Service) cacheEnabled() bool {
	return s.cache != nil && s.cfg.Enabled
}
