// Package leaderboard stores daily puzzle results and ranks them.
package leaderboard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/syllabl-backend/internal/domain"
	"github.com/heartmarshall/syllabl-backend/internal/observability"
)

type resultRepo interface {
	UpsertResult(ctx context.Context, res *domain.PuzzleResult) error
	ReplaceEntries(ctx context.Context, resultID uuid.UUID, entries []domain.StageEntry) error
	ListByDate(ctx context.Context, puzzleDate string) ([]domain.PuzzleResult, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements leaderboard submission and listing.
type Service struct {
	log     *slog.Logger
	results resultRepo
	tx      txManager
	now     func() time.Time
}

// NewService creates a new Leaderboard service.
func NewService(logger *slog.Logger, results resultRepo, tx txManager) *Service {
	return &Service{
		log:     logger.With("service", "leaderboard"),
		results: results,
		tx:      tx,
		now:     time.Now,
	}
}

// Submit stores a player's result for a puzzle date. A later submission by
// the same player for the same date replaces the earlier one.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*domain.PuzzleResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	res := &domain.PuzzleResult{
		PuzzleDate:      input.PuzzleDate,
		UserID:          strings.TrimSpace(input.UserID),
		PuzzleLetters:   input.PuzzleLetters,
		Completed:       input.Completed,
		FinalScore:      input.FinalScore,
		StagesCompleted: input.StagesCompleted,
		LongestWord:     input.LongestWord,
		RarestWord:      input.RarestWord,
		Entries:         input.Entries,
		SubmittedAt:     s.now().UTC(),
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.results.UpsertResult(txCtx, res); err != nil {
			return fmt.Errorf("upsert result: %w", err)
		}
		if err := s.results.ReplaceEntries(txCtx, res.ID, res.Entries); err != nil {
			return fmt.Errorf("replace entries: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.LeaderboardSubmissionsTotal.Inc()
	s.log.InfoContext(ctx, "puzzle result stored",
		slog.String("puzzle_date", res.PuzzleDate),
		slog.String("result_id", res.ID.String()),
		slog.Int("final_score", res.FinalScore),
		slog.Int("entries", len(res.Entries)),
	)

	return res, nil
}

// ListByDate returns all results for puzzleDate, best score first.
func (s *Service) ListByDate(ctx context.Context, puzzleDate string) ([]domain.PuzzleResult, error) {
	if msg := validateDate(puzzleDate); msg != "" {
		return nil, domain.NewValidationError("puzzleDate", msg)
	}

	results, err := s.results.ListByDate(ctx, puzzleDate)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return results, nil
}
