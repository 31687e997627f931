// Command resolve runs the syllable engine on one word and prints how it got
// there. It is a debugging aid for segmentation disputes.
//
// Usage:
//
//	resolve -word=rabbits               # live Merriam-Webster lookup
//	resolve -word=rabbits -file=r.json  # saved API response
//
// A live lookup reads MERRIAM_API_KEY and the other MERRIAM_* variables.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/heartmarshall/syllabl-backend/internal/adapter/provider/merriam"
	"github.com/heartmarshall/syllabl-backend/internal/config"
	"github.com/heartmarshall/syllabl-backend/internal/domain"
	"github.com/heartmarshall/syllabl-backend/internal/syllable"
)

type output struct {
	Word           string                 `json:"word"`
	Syllables      []string               `json:"syllables"`
	BaseWordUsed   bool                   `json:"baseWordUsed"`
	SyllableParses []domain.SyllableParse `json:"syllableParses"`
	Source         syllable.MatchSource   `json:"source"`
	Form           string                 `json:"form"`
	Suffixes       []string               `json:"suffixes,omitempty"`
	Base           []string               `json:"base"`
	FinalOverride  bool                   `json:"finalOverride"`
	OverrideUsed   bool                   `json:"overrideUsed"`
}

func main() {
	word := flag.String("word", "", "word to resolve")
	file := flag.String("file", "", "saved Collegiate API response (JSON); omit for a live lookup")
	flag.Parse()

	w := domain.NormalizeWord(*word)
	if w == "" {
		fmt.Fprintln(os.Stderr, "Usage: resolve -word=<word> [-file=response.json]")
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	lookup, err := load(w, *file, logger)
	if err != nil {
		logger.Error("lookup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	resolved, trace, err := syllable.Resolve(w, *lookup)
	if reason, ok := domain.RejectionReason(err); ok {
		fmt.Printf("rejected (%s): %s\n", reason, reason.Message())
		os.Exit(2)
	}
	if err != nil {
		logger.Error("resolve failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(output{
		Word:           resolved.Word,
		Syllables:      resolved.SyllableList,
		BaseWordUsed:   resolved.BaseWordUsed,
		SyllableParses: resolved.SyllableParses,
		Source:         trace.Source,
		Form:           trace.Form,
		Suffixes:       trace.SuffixesApplied,
		Base:           trace.BaseSegmentation,
		FinalOverride:  trace.FinalOverride,
		OverrideUsed:   trace.State.OverrideUsed,
	})
}

func load(word, file string, logger *slog.Logger) (*domain.DictionaryLookup, error) {
	if file != "" {
		body, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		return merriam.DecodeLookup(body)
	}

	var cfg config.MerriamConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return merriam.NewProvider(cfg, logger).Lookup(ctx, word)
}
