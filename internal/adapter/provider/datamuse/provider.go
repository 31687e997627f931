package datamuse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/syllabl-backend/internal/config"
	"github.com/heartmarshall/syllabl-backend/internal/observability"
	"github.com/heartmarshall/syllabl-backend/internal/provider"
)

const (
	name         = "datamuse"
	frequencyTag = "f:"
)

// apiWord is one result of the /words endpoint.
type apiWord struct {
	Word  string   `json:"word"`
	Score int      `json:"score"`
	Tags  []string `json:"tags"`
}

// Provider reads word frequencies from the Datamuse API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider from config.
func NewProvider(cfg config.DatamuseConfig, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", name),
	}
}

// Frequency returns the occurrences per million words of word, taken from
// the f: tag of the first result. It is 0 when there are no results or the
// tag is missing.
func (p *Provider) Frequency(ctx context.Context, word string) (float64, error) {
	start := time.Now()
	f, err := p.frequency(ctx, word)
	observability.ObserveProvider(name, start, err)
	return f, err
}

func (p *Provider) frequency(ctx context.Context, word string) (float64, error) {
	q := url.Values{}
	q.Set("sp", word)
	q.Set("md", "f")
	q.Set("max", "1")
	reqURL := p.baseURL + "/words?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("datamuse: create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.ErrorContext(ctx, "datamuse request failed", slog.String("word", word), slog.String("error", err.Error()))
		return 0, provider.NewError(name, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.log.ErrorContext(ctx, "datamuse unexpected status", slog.String("word", word), slog.Int("status", resp.StatusCode))
		return 0, provider.NewError(name, resp.StatusCode, errors.New("unexpected status"))
	}

	var words []apiWord
	if err := json.NewDecoder(resp.Body).Decode(&words); err != nil {
		return 0, provider.NewError(name, resp.StatusCode, fmt.Errorf("decode json: %w", err))
	}

	f := parseFrequency(words)
	p.log.DebugContext(ctx, "datamuse response", slog.String("word", word), slog.Float64("frequency", f))
	return f, nil
}

func parseFrequency(words []apiWord) float64 {
	if len(words) == 0 {
		return 0
	}
	for _, tag := range words[0].Tags {
		raw, ok := strings.CutPrefix(tag, frequencyTag)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 0 {
			return 0
		}
		return f
	}
	return 0
}
