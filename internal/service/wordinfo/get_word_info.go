package wordinfo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/syllabl-backend/internal/domain"
	"github.com/heartmarshall/syllabl-backend/internal/observability"
)

// GetWordInfo validates raw, resolves its syllables and checks that it is
// common enough to score.
//
// Unplayable words come back as *domain.RejectionError, malformed input as
// *domain.ValidationError. Upstream failures wrap provider.ErrUnavailable.
func (s *Service) GetWordInfo(ctx context.Context, raw string) (info *domain.WordInfo, err error) {
	start := s.now()
	defer func() {
		observability.WordLookupsTotal.WithLabelValues(observability.Outcome(err)).Inc()
		observability.ResolveDuration.Observe(time.Since(start).Seconds())
	}()

	word := domain.NormalizeWord(raw)
	if word == "" {
		return nil, domain.NewValidationError("word", "please enter a word to begin.")
	}
	if !domain.IsPlayableWord(word) {
		return nil, domain.NewValidationError("word", "use letters only.")
	}

	if cached, ok := s.fromCache(ctx, word); ok {
		return cached, nil
	}

	var (
		lookup  *domain.DictionaryLookup
		freq    float64
		freqErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var lookupErr error
		lookup, lookupErr = s.dict.Lookup(gctx, word)
		return lookupErr
	})
	g.Go(func() error {
		// Kept out of the group error: a dictionary rejection outranks a frequency failure.
		freq, freqErr = s.frequency.Frequency(gctx, word)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.ErrorContext(ctx, "dictionary lookup failed",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("lookup %q: %w", word, err)
	}

	if lookup == nil {
		lookup = &domain.DictionaryLookup{}
	}

	resolved, err := s.resolver.Resolve(ctx, word, *lookup)
	if err != nil {
		return nil, err
	}

	if freqErr != nil {
		s.log.ErrorContext(ctx, "frequency lookup failed",
			slog.String("word", word),
			slog.String("error", freqErr.Error()),
		)
		return nil, fmt.Errorf("frequency %q: %w", word, freqErr)
	}
	if freq <= 0 {
		s.log.InfoContext(ctx, "word rejected",
			slog.String("word", word),
			slog.String("reason", string(domain.RejectRare)),
		)
		return nil, domain.NewRejection(word, domain.RejectRare)
	}

	info = &domain.WordInfo{
		ResolvedWord: *resolved,
		Frequency:    freq,
		ResolvedAt:   s.now().UTC(),
	}
	s.store(ctx, info)

	return info, nil
}

// fromCache returns a cached entry younger than the TTL. Cache failures are
// logged and treated as a miss.
func (s *Service) fromCache(ctx context.Context, word string) (*domain.WordInfo, bool) {
	if !s.cacheEnabled() {
		return nil, false
	}

	cached, err := s.cache.Get(ctx, word)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		observability.WordCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	case err != nil:
		observability.WordCacheTotal.WithLabelValues("error").Inc()
		s.log.WarnContext(ctx, "word cache read failed",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return nil, false
	case s.now().Sub(cached.ResolvedAt) > s.cfg.TTL:
		observability.WordCacheTotal.WithLabelValues("stale").Inc()
		return nil, false
	}

	observability.WordCacheTotal.WithLabelValues("hit").Inc()
	return cached, true
}

func (s *Service) store(ctx context.Context, info *domain.WordInfo) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.cache.Upsert(ctx, info); err != nil {
		s.log.WarnContext(ctx, "word cache write failed",
			slog.String("word", info.Word),
			slog.String("error", err.Error()),
		)
	}
}
