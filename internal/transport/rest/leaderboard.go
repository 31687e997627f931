package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/syllabl-backend/internal/domain"
	"github.com/heartmarshall/syllabl-backend/internal/service/leaderboard"
)

const maxLeaderboardBody = 64 << 10

type leaderboardService interface {
	Submit(ctx context.Context, input leaderboard.SubmitInput) (*domain.PuzzleResult, error)
	ListByDate(ctx context.Context, puzzleDate string) ([]domain.PuzzleResult, error)
}

// LeaderboardHandler serves daily puzzle result submission and listing.
type LeaderboardHandler struct {
	svc leaderboardService
	log *slog.Logger
}

// NewLeaderboardHandler creates a LeaderboardHandler.
func NewLeaderboardHandler(svc leaderboardService, logger *slog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc, log: logger.With("handler", "leaderboard")}
}

type rarestWordJSON struct {
	Word string `json:"word"`
	// Frequency is null when the client had no guesses to compare.
	Frequency *float64 `json:"frequency"`
}

type submitRequest struct {
	PuzzleDate      string              `json:"puzzleDate"`
	UserID          string              `json:"userId"`
	PuzzleLetters   string              `json:"puzzleLetters"`
	Completed       bool                `json:"completed"`
	FinalScore      int                 `json:"finalScore"`
	StagesCompleted int                 `json:"stagesCompleted"`
	LongestWord     string              `json:"longestWord"`
	RarestWord      *rarestWordJSON     `json:"rarestWord"`
	Entries         []domain.StageEntry `json:"entries"`
}

type resultResponse struct {
	PuzzleDate      string              `json:"puzzleDate"`
	UserID          string              `json:"userId"`
	PuzzleLetters   string              `json:"puzzleLetters"`
	Completed       bool                `json:"completed"`
	FinalScore      int                 `json:"finalScore"`
	StagesCompleted int                 `json:"stagesCompleted"`
	LongestWord     string              `json:"longestWord"`
	RarestWord      domain.RarestWord   `json:"rarestWord"`
	Entries         []domain.StageEntry `json:"entries"`
	Timestamp       time.Time           `json:"timestamp"`
}

type listResponse struct {
	Entries []resultResponse `json:"entries"`
}

// Submit handles POST /leaderboard.
func (h *LeaderboardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLeaderboardBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PuzzleDate == "" || req.UserID == "" || req.Entries == nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	input := leaderboard.SubmitInput{
		PuzzleDate:      req.PuzzleDate,
		UserID:          req.UserID,
		PuzzleLetters:   req.PuzzleLetters,
		Completed:       req.Completed,
		FinalScore:      req.FinalScore,
		StagesCompleted: req.StagesCompleted,
		LongestWord:     req.LongestWord,
		Entries:         req.Entries,
	}
	if req.RarestWord != nil {
		input.RarestWord.Word = req.RarestWord.Word
		if req.RarestWord.Frequency != nil {
			input.RarestWord.Frequency = *req.RarestWord.Frequency
		}
	}

	if _, err := h.svc.Submit(r.Context(), input); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// List handles GET /leaderboard?puzzleDate=YYYY-MM-DD.
func (h *LeaderboardHandler) List(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("puzzleDate")
	if date == "" {
		writeError(w, http.StatusBadRequest, "Missing puzzleDate")
		return
	}

	results, err := h.svc.ListByDate(r.Context(), date)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := listResponse{Entries: make([]resultResponse, 0, len(results))}
	for _, res := range results {
		resp.Entries = append(resp.Entries, toResultResponse(res))
	}
	writeJSON(w, http.StatusOK, resp)
}

// MethodNotAllowed answers any other method on /leaderboard.
func (h *LeaderboardHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET, POST")
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

func (h *LeaderboardHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, ve.Error())
		return
	}
	h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func toResultResponse(res domain.PuzzleResult) resultResponse {
	entries := res.Entries
	if entries == nil {
		entries = []domain.StageEntry{}
	}
	return resultResponse{
		PuzzleDate:      res.PuzzleDate,
		UserID:          res.UserID,
		PuzzleLetters:   res.PuzzleLetters,
		Completed:       res.Completed,
		FinalScore:      res.FinalScore,
		StagesCompleted: res.StagesCompleted,
		LongestWord:     res.LongestWord,
		RarestWord:      res.RarestWord,
		Entries:         entries,
		Timestamp:       res.SubmittedAt,
	}
}
