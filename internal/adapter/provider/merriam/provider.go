package merriam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/syllabl-backend/internal/config"
	"github.com/heartmarshall/syllabl-backend/internal/domain"
	"github.com/heartmarshall/syllabl-backend/internal/observability"
	"github.com/heartmarshall/syllabl-backend/internal/provider"
)

const name = "merriam"

// retryDelay is the pause before the single retry. Tests shorten it.
var retryDelay = 500 * time.Millisecond

// Provider fetches headword records from the Merriam-Webster Collegiate API.
type Provider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger
}

// NewProvider creates a Provider from config. A RequestsPerSecond of 0
// leaves outbound calls unthrottled.
func NewProvider(cfg config.MerriamConfig, logger *slog.Logger) *Provider {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &Provider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
		log:        logger.With("adapter", name),
	}
}

// Lookup fetches every record the API returns for word. A word the API does
// not know comes back as a lookup holding only spelling suggestions; an empty
// response yields an empty lookup. Transport and status failures are
// returned as *provider.Error.
func (p *Provider) Lookup(ctx context.Context, word string) (*domain.DictionaryLookup, error) {
	start := time.Now()
	lookup, err := p.lookup(ctx, word)
	observability.ObserveProvider(name, start, err)
	return lookup, err
}

func (p *Provider) lookup(ctx context.Context, word string) (*domain.DictionaryLookup, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, provider.NewError(name, 0, fmt.Errorf("throttle: %w", err))
	}

	reqURL := p.baseURL + "/" + url.PathEscape(word) + "?key=" + url.QueryEscape(p.apiKey)

	p.log.DebugContext(ctx, "merriam request", slog.String("word", word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("merriam: create request: %w", err)
	}

	resp, err := p.doWithRetry(ctx, req, word)
	if err != nil {
		p.log.ErrorContext(ctx, "merriam request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, provider.NewError(name, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.log.ErrorContext(ctx, "merriam unexpected status", slog.String("word", word), slog.Int("status", resp.StatusCode))
		return nil, provider.NewError(name, resp.StatusCode, errors.New("unexpected status"))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, provider.NewError(name, resp.StatusCode, fmt.Errorf("read body: %w", err))
	}

	lookup, err := decodeLookup(body)
	if err != nil {
		return nil, provider.NewError(name, resp.StatusCode, err)
	}

	p.log.DebugContext(ctx, "merriam response",
		slog.String("word", word),
		slog.Int("records", len(lookup.Records)),
		slog.Int("suggestions", len(lookup.Suggestions)),
	)

	return lookup, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, word string) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "merriam retry", slog.String("word", word), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(retryDelay):
	}

	return p.httpClient.Do(req)
}

// DecodeLookup parses a saved Collegiate API response, as written by curl or
// a browser, into a lookup.
func DecodeLookup(body []byte) (*domain.DictionaryLookup, error) {
	return decodeLookup(body)
}

// decodeLookup parses a response body. The API answers with either an array
// of entry objects or, for unknown words, an array of suggestion strings.
func decodeLookup(body []byte) (*domain.DictionaryLookup, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	lookup := &domain.DictionaryLookup{}
	if len(raw) == 0 {
		return lookup, nil
	}

	if isJSONString(raw[0]) {
		for _, r := range raw {
			var s string
			if err := json.Unmarshal(r, &s); err != nil {
				return nil, fmt.Errorf("decode suggestion: %w", err)
			}
			lookup.Suggestions = append(lookup.Suggestions, s)
		}
		return lookup, nil
	}

	lookup.Records = make([]domain.DictionaryRecord, 0, len(raw))
	for _, r := range raw {
		var e apiEntry
		if err := json.Unmarshal(r, &e); err != nil {
			return nil, fmt.Errorf("decode entry: %w", err)
		}
		lookup.Records = append(lookup.Records, mapEntry(e))
	}
	return lookup, nil
}

func isJSONString(r json.RawMessage) bool {
	for _, b := range r {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b == '"'
	}
	return false
}

// mapEntry converts an API entry into a domain record.
func mapEntry(e apiEntry) domain.DictionaryRecord {
	rec := domain.DictionaryRecord{
		Headword:       e.HWI.HW,
		Pronunciations: transcriptions(e.HWI.Prs),
		Stems:          e.Meta.Stems,
		Offensive:      e.Meta.Offensive,
	}

	for _, in := range e.Ins {
		if in.If == "" {
			continue
		}
		rec.Inflections = append(rec.Inflections, domain.Inflection{
			Form:           in.If,
			Pronunciations: transcriptions(in.Prs),
		})
	}

	for _, u := range e.Uros {
		ro := domain.RunOn{Form: u.Ure, Pronunciations: transcriptions(u.Prs)}
		for _, v := range u.Vrs {
			if v.Va != "" {
				ro.Variants = append(ro.Variants, v.Va)
			}
		}
		rec.RunOns = append(rec.RunOns, ro)
	}

	return rec
}

// transcriptions keeps the mw transcription of every pronunciation, in
// order. Entries without one become "" so positions line up with the API.
func transcriptions(prs []apiPrs) []string {
	if len(prs) == 0 {
		return nil
	}
	out := make([]string, len(prs))
	for i, p := range prs {
		out[i] = p.MW
	}
	return out
}
