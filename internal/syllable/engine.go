package syllable

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/syllabl-backend/internal/domain"
)

// Trace records how a word was resolved, for logging and debugging.
type Trace struct {
	Source          MatchSource
	Form            string
	SuffixesApplied []string
	// BaseSegmentation is the cascade's pick before suffixes and the final pass.
	BaseSegmentation Segmentation
	FinalOverride    bool
	State            State
}

// Resolve runs the whole pipeline for a lowercase word: record filter,
// matching cascade, suffix stitching, final phonetic pass and parse set.
// Expected refusals come back as *domain.RejectionError.
func Resolve(word string, lookup domain.DictionaryLookup) (*domain.ResolvedWord, Trace, error) {
	var trace Trace

	if !domain.IsPlayableWord(word) {
		return nil, trace, domain.NewValidationError("word", "must be a lowercase alphabetic word")
	}

	if v := FilterRecords(lookup); !v.Valid {
		return nil, trace, domain.NewRejection(word, v.Reason)
	}

	records := viewRecords(lookup.Records)

	res, err := resolveViews(word, records, State{})
	switch {
	case errors.Is(err, errNoCommonEntry):
		return nil, trace, domain.NewRejection(word, domain.RejectNoCommonEntry)
	case errors.Is(err, errUnresolvable):
		return nil, trace, domain.NewRejection(word, domain.RejectUnresolvable)
	case err != nil:
		return nil, trace, fmt.Errorf("resolve records: %w", err)
	}
	trace.Source, trace.Form = res.Source, res.Form
	trace.BaseSegmentation = res.Segmentation.clone()

	seg, applied := StitchSuffix(word, res.Segmentation, res.State)
	trace.SuffixesApplied = applied

	st := res.State
	before := st.OverrideUsed
	seg, st = finalPhoneticPass(word, records, seg, st)
	trace.FinalOverride = st.OverrideUsed && !before
	trace.State = st

	if seg.Count() == 0 {
		return nil, trace, domain.NewRejection(word, domain.RejectUnresolvable)
	}

	parses := withAuthoritative(BuildParseSet(word, parseSource(records)), seg)

	return &domain.ResolvedWord{
		Word:           word,
		SyllableCount:  seg.Count(),
		SyllableList:   seg.clone(),
		BaseWordUsed:   st.BaseWordUsed,
		SyllableParses: parses,
	}, trace, nil
}

// Engine wraps Resolve with structured logging of each decision.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	log *slog.Logger
}

// NewEngine creates an Engine.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{log: logger.With("component", "syllable")}
}

// Resolve resolves word against the fetched dictionary lookup.
func (e *Engine) Resolve(ctx context.Context, word string, lookup domain.DictionaryLookup) (*domain.ResolvedWord, error) {
	result, trace, err := Resolve(word, lookup)
	if err != nil {
		if reason, ok := domain.RejectionReason(err); ok {
			e.log.InfoContext(ctx, "word rejected",
				slog.String("word", word),
				slog.String("reason", string(reason)),
			)
		}
		return nil, err
	}

	e.log.DebugContext(ctx, "syllables resolved",
		slog.String("word", word),
		slog.String("source", string(trace.Source)),
		slog.String("form", trace.Form),
		slog.Any("base", []string(trace.BaseSegmentation)),
		slog.Any("suffixes", trace.SuffixesApplied),
		slog.Bool("override_used", trace.State.OverrideUsed),
		slog.Bool("final_override", trace.FinalOverride),
		slog.Any("syllables", result.SyllableList),
		slog.Int("parses", len(result.SyllableParses)),
	)
	return result, nil
}
