package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/syllabl-backend/internal/domain"
)

type wordInfoService interface {
	GetWordInfo(ctx context.Context, raw string) (*domain.WordInfo, error)
}

// WordHandler serves the word lookup used to validate each guess.
type WordHandler struct {
	svc wordInfoService
	log *slog.Logger
}

// NewWordHandler creates a WordHandler.
func NewWordHandler(svc wordInfoService, logger *slog.Logger) *WordHandler {
	return &WordHandler{svc: svc, log: logger.With("handler", "word")}
}

type wordResponse struct {
	IsValid          bool                   `json:"isValid"`
	Word             string                 `json:"word"`
	Frequency        float64                `json:"frequency"`
	Syllables        int                    `json:"syllables"`
	SyllableList     []string               `json:"syllableList"`
	BaseWordUsed     bool                   `json:"baseWordUsed"`
	SyllableParses   []domain.SyllableParse `json:"syllableParses"`
	MatchesSyllables *bool                  `json:"matchesSyllables,omitempty"`
	MatchedParse     *domain.SyllableParse  `json:"matchedParse,omitempty"`
	MatchesPlacement *bool                  `json:"matchesPlacement,omitempty"`
}

// Get handles GET /word?word=<w>[&syllables=<k>][&letters=<l>&placement=<1-4>].
//
// The optional parameters check a guess against the current stage: syllables
// asks whether any accepted parse has exactly k syllables, letters and
// placement whether the letters sit where the stage requires.
func (h *WordHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	wantSyllables, ok := optionalPositiveInt(q.Get("syllables"))
	if !ok {
		h.reject(w, "syllables must be a positive number.")
		return
	}
	placement, ok := optionalPlacement(q.Get("placement"))
	if !ok {
		h.reject(w, "placement must be between 1 and 4.")
		return
	}
	letters := domain.NormalizeWord(q.Get("letters"))
	if (placement != 0) != (letters != "") {
		h.reject(w, "letters and placement go together.")
		return
	}

	info, err := h.svc.GetWordInfo(r.Context(), q.Get("word"))
	if err != nil {
		status, msg := statusAndMessage(r, h.log, err)
		writeJSON(w, status, wordErrorResponse{IsValid: false, Error: msg})
		return
	}

	resp := toWordResponse(info)
	if wantSyllables > 0 {
		parse, matched := info.ParseFor(wantSyllables)
		resp.MatchesSyllables = &matched
		if matched {
			resp.MatchedParse = &parse
		}
	}
	if placement != 0 {
		matched := placement.Matches(info.Word, letters)
		resp.MatchesPlacement = &matched
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *WordHandler) reject(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, wordErrorResponse{IsValid: false, Error: msg})
}

func toWordResponse(info *domain.WordInfo) wordResponse {
	parses := info.SyllableParses
	if parses == nil {
		parses = []domain.SyllableParse{}
	}
	return wordResponse{
		IsValid:        true,
		Word:           info.Word,
		Frequency:      info.Frequency,
		Syllables:      info.SyllableCount,
		SyllableList:   info.SyllableList,
		BaseWordUsed:   info.BaseWordUsed,
		SyllableParses: parses,
	}
}

// optionalPositiveInt parses s; "" yields (0, true).
func optionalPositiveInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func optionalPlacement(s string) (domain.Placement, bool) {
	n, ok := optionalPositiveInt(s)
	if !ok {
		return 0, false
	}
	p := domain.Placement(n)
	if n != 0 && !p.Valid() {
		return 0, false
	}
	return p, true
}
