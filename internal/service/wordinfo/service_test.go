package wordinfo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/syllabl-backend/internal/config"
	"github.com/heartmarshall/syllabl-backend/internal/domain"
	"github.com/heartmarshall/syllabl-backend/internal/provider"
	"github.com/heartmarshall/syllabl-backend/internal/syllable"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockDictionary struct {
	LookupFunc func(ctx context.Context, word string) (*domain.DictionaryLookup, error)
}

func (m *mockDictionary) Lookup(ctx context.Context, word string) (*domain.DictionaryLookup, error) {
	return m.LookupFunc(ctx, word)
}

type mockFrequency struct {
	FrequencyFunc func(ctx context.Context, word string) (float64, error)
}

func (m *mockFrequency) Frequency(ctx context.Context, word string) (float64, error) {
	return m.FrequencyFunc(ctx, word)
}

type mockResolver struct {
	ResolveFunc func(ctx context.Context, word string, lookup domain.DictionaryLookup) (*domain.ResolvedWord, error)
}

func (m *mockResolver) Resolve(ctx context.Context, word string, lookup domain.DictionaryLookup) (*domain.ResolvedWord, error) {
	return m.ResolveFunc(ctx, word, lookup)
}

type mockCache struct {
	GetFunc    func(ctx context.Context, word string) (*domain.WordInfo, error)
	UpsertFunc func(ctx context.Context, info *domain.WordInfo) error
}

func (m *mockCache) Get(ctx context.Context, word string) (*domain.WordInfo, error) {
	return m.GetFunc(ctx, word)
}

func (m *mockCache) Upsert(ctx context.Context, info *domain.WordInfo) error {
	return m.UpsertFunc(ctx, info)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var (
	testNow  = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	cacheCfg = config.WordCacheConfig{Enabled: true, TTL: 24 * time.Hour, Retention: 48 * time.Hour}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rabbitLookup() *domain.DictionaryLookup {
	return &domain.DictionaryLookup{Records: []domain.DictionaryRecord{
		{Headword: "rab*bit", Pronunciations: []string{"ˈra-bət"}},
	}}
}

func okDictionary() *mockDictionary {
	return &mockDictionary{LookupFunc: func(context.Context, string) (*domain.DictionaryLookup, error) {
		return rabbitLookup(), nil
	}}
}

func okFrequency(f float64) *mockFrequency {
	return &mockFrequency{FrequencyFunc: func(context.Context, string) (float64, error) {
		return f, nil
	}}
}

func okResolver() *mockResolver {
	return &mockResolver{ResolveFunc: func(_ context.Context, word string, _ domain.DictionaryLookup) (*domain.ResolvedWord, error) {
		return &domain.ResolvedWord{
			Word:           word,
			SyllableCount:  2,
			SyllableList:   []string{"rab", "bit"},
			SyllableParses: []domain.SyllableParse{domain.NewSyllableParse([]string{"rab", "bit"})},
		}, nil
	}}
}

func missCache() *mockCache {
	return &mockCache{
		GetFunc: func(context.Context, string) (*domain.WordInfo, error) {
			return nil, domain.ErrNotFound
		},
		UpsertFunc: func(context.Context, *domain.WordInfo) error { return nil },
	}
}

func newTestService(dict *mockDictionary, freq *mockFrequency, res syllableResolver, cache wordCache) *Service {
	svc := NewService(discardLogger(), dict, freq, res, cache, cacheCfg)
	svc.now = func() time.Time { return testNow }
	return svc
}

// ---------------------------------------------------------------------------
// GetWordInfo tests
// ---------------------------------------------------------------------------

func TestService_GetWordInfo_Success(t *testing.T) {
	t.Parallel()

	var stored *domain.WordInfo
	cache := missCache()
	cache.UpsertFunc = func(_ context.Context, info *domain.WordInfo) error {
		stored = info
		return nil
	}

	var lookedUp string
	dict := &mockDictionary{LookupFunc: func(_ context.Context, word string) (*domain.DictionaryLookup, error) {
		lookedUp = word
		return rabbitLookup(), nil
	}}

	svc := newTestService(dict, okFrequency(42.5), okResolver(), cache)

	info, err := svc.GetWordInfo(context.Background(), "  Rabbit ")

	require.NoError(t, err)
	assert.Equal(t, "rabbit", lookedUp)
	assert.Equal(t, "rabbit", info.Word)
	assert.Equal(t, []string{"rab", "bit"}, info.SyllableList)
	assert.InDelta(t, 42.5, info.Frequency, 1e-9)
	assert.Equal(t, testNow, info.ResolvedAt)
	assert.Same(t, info, stored)
}

func TestService_GetWordInfo_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		message string
	}{
		{name: "empty", raw: "", message: "please enter a word to begin."},
		{name: "spaces", raw: "   ", message: "please enter a word to begin."},
		{name: "digits", raw: "r4bbit", message: "use letters only."},
		{name: "phrase", raw: "rabbit hole", message: "use letters only."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := newTestService(&mockDictionary{}, &mockFrequency{}, &mockResolver{}, nil)

			_, err := svc.GetWordInfo(context.Background(), tt.raw)

			require.ErrorIs(t, err, domain.ErrValidation)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, "word", ve.Errors[0].Field)
			assert.Equal(t, tt.message, ve.Errors[0].Message)
		})
	}
}

func TestService_GetWordInfo_FreshCacheHit(t *testing.T) {
	t.Parallel()

	cached := &domain.WordInfo{
		ResolvedWord: domain.ResolvedWord{Word: "rabbit", SyllableCount: 2},
		Frequency:    10,
		ResolvedAt:   testNow.Add(-time.Hour),
	}
	cache := &mockCache{
		GetFunc: func(context.Context, string) (*domain.WordInfo, error) { return cached, nil },
	}

	// Providers have nil funcs: any call panics.
	svc := newTestService(&mockDictionary{}, &mockFrequency{}, &mockResolver{}, cache)

	info, err := svc.GetWordInfo(context.Background(), "rabbit")

	require.NoError(t, err)
	assert.Same(t, cached, info)
}

func TestService_GetWordInfo_StaleCacheRefetches(t *testing.T) {
	t.Parallel()

	cache := &mockCache{
		GetFunc: func(context.Context, string) (*domain.WordInfo, error) {
			return &domain.WordInfo{
				ResolvedWord: domain.ResolvedWord{Word: "rabbit"},
				Frequency:    1,
				ResolvedAt:   testNow.Add(-25 * time.Hour),
			}, nil
		},
	}
	var upserts int32
	cache.UpsertFunc = func(context.Context, *domain.WordInfo) error {
		atomic.AddInt32(&upserts, 1)
		return nil
	}

	svc := newTestService(okDictionary(), okFrequency(42.5), okResolver(), cache)

	info, err := svc.GetWordInfo(context.Background(), "rabbit")

	require.NoError(t, err)
	assert.InDelta(t, 42.5, info.Frequency, 1e-9)
	assert.Equal(t, int32(1), atomic.LoadInt32(&upserts))
}

func TestService_GetWordInfo_CacheFailuresAreNotFatal(t *testing.T) {
	t.Parallel()

	cache := &mockCache{
		GetFunc: func(context.Context, string) (*domain.WordInfo, error) {
			return nil, errors.New("connection refused")
		},
		UpsertFunc: func(context.Context, *domain.WordInfo) error {
			return errors.New("connection refused")
		},
	}

	svc := newTestService(okDictionary(), okFrequency(42.5), okResolver(), cache)

	info, err := svc.GetWordInfo(context.Background(), "rabbit")

	require.NoError(t, err)
	assert.Equal(t, "rabbit", info.Word)
}

func TestService_GetWordInfo_CacheDisabled(t *testing.T) {
	t.Parallel()

	svc := NewService(discardLogger(), okDictionary(), okFrequency(1), okResolver(), &mockCache{},
		config.WordCacheConfig{Enabled: false})

	// mockCache has nil funcs: touching it would panic.
	_, err := svc.GetWordInfo(context.Background(), "rabbit")
	require.NoError(t, err)
}

func TestService_GetWordInfo_DictionaryFailure(t *testing.T) {
	t.Parallel()

	upstream := provider.NewError("merriam", 503, errors.New("service unavailable"))
	dict := &mockDictionary{LookupFunc: func(context.Context, string) (*domain.DictionaryLookup, error) {
		return nil, upstream
	}}
	freq := &mockFrequency{FrequencyFunc: func(ctx context.Context, _ string) (float64, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	}}

	svc := newTestService(dict, freq, &mockResolver{}, missCache())

	_, err := svc.GetWordInfo(context.Background(), "rabbit")

	assert.ErrorIs(t, err, provider.ErrUnavailable)
	assert.ErrorIs(t, err, upstream)
}

func TestService_GetWordInfo_RejectionOutranksFrequencyFailure(t *testing.T) {
	t.Parallel()

	freq := &mockFrequency{FrequencyFunc: func(context.Context, string) (float64, error) {
		return 0, provider.NewError("datamuse", 500, errors.New("boom"))
	}}
	res := &mockResolver{ResolveFunc: func(_ context.Context, word string, _ domain.DictionaryLookup) (*domain.ResolvedWord, error) {
		return nil, domain.NewRejection(word, domain.RejectOffensive)
	}}

	svc := newTestService(okDictionary(), freq, res, missCache())

	_, err := svc.GetWordInfo(context.Background(), "rabbit")

	reason, ok := domain.RejectionReason(err)
	require.True(t, ok)
	assert.Equal(t, domain.RejectOffensive, reason)
}

func TestService_GetWordInfo_FrequencyFailure(t *testing.T) {
	t.Parallel()

	freq := &mockFrequency{FrequencyFunc: func(context.Context, string) (float64, error) {
		return 0, provider.NewError("datamuse", 500, errors.New("boom"))
	}}
	cache := missCache()
	cache.UpsertFunc = func(context.Context, *domain.WordInfo) error {
		t.Error("failed lookups must not be cached")
		return nil
	}

	svc := newTestService(okDictionary(), freq, okResolver(), cache)

	_, err := svc.GetWordInfo(context.Background(), "rabbit")

	assert.ErrorIs(t, err, provider.ErrUnavailable)
	_, isRejection := domain.RejectionReason(err)
	assert.False(t, isRejection)
}

func TestService_GetWordInfo_ZeroFrequencyIsRare(t *testing.T) {
	t.Parallel()

	svc := newTestService(okDictionary(), okFrequency(0), okResolver(), missCache())

	_, err := svc.GetWordInfo(context.Background(), "rabbit")

	assert.ErrorIs(t, err, domain.ErrRejected)
	reason, _ := domain.RejectionReason(err)
	assert.Equal(t, domain.RejectRare, reason)
}

func TestService_GetWordInfo_WithEngine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		lookup     *domain.DictionaryLookup
		wantReason domain.RejectReason
		wantList   []string
	}{
		{
			name:     "accepted",
			lookup:   rabbitLookup(),
			wantList: []string{"rab", "bit"},
		},
		{
			name:       "suggestions only",
			lookup:     &domain.DictionaryLookup{Suggestions: []string{"rabbi"}},
			wantReason: domain.RejectSuggestionsOnly,
		},
		{
			name:       "nil lookup is not found",
			lookup:     nil,
			wantReason: domain.RejectNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dict := &mockDictionary{LookupFunc: func(context.Context, string) (*domain.DictionaryLookup, error) {
				return tt.lookup, nil
			}}
			svc := newTestService(dict, okFrequency(12), syllable.NewEngine(discardLogger()), missCache())

			info, err := svc.GetWordInfo(context.Background(), "rabbit")

			if tt.wantReason != "" {
				reason, ok := domain.RejectionReason(err)
				require.True(t, ok, "err = %v", err)
				assert.Equal(t, tt.wantReason, reason)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantList, info.SyllableList)
			assert.True(t, info.HasSyllableCount(2))
		})
	}
}
