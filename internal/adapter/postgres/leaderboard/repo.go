// Package leaderboard persists daily puzzle results and their per-stage entries.
package leaderboard

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/syllabl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/syllabl-backend/internal/domain"
)

const (
	resultsTable = "puzzle_results"
	entriesTable = "puzzle_entries"
)

// Repo provides puzzle result persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new leaderboard repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type resultRow struct {
	ID              uuid.UUID `db:"id"`
	PuzzleDate      string    `db:"puzzle_date"`
	UserID          string    `db:"user_id"`
	PuzzleLetters   string    `db:"puzzle_letters"`
	Completed       bool      `db:"completed"`
	FinalScore      int       `db:"final_score"`
	StagesCompleted int       `db:"stages_completed"`
	LongestWord     string    `db:"longest_word"`
	RarestWord      string    `db:"rarest_word"`
	RarestFrequency float64   `db:"rarest_frequency"`
	SubmittedAt     time.Time `db:"submitted_at"`
}

type entryRow struct {
	ResultID  uuid.UUID `db:"result_id"`
	Stage     int       `db:"stage"`
	Word      string    `db:"word"`
	Frequency float64   `db:"frequency"`
	Score     int       `db:"score"`
	Syllables int       `db:"syllables"`
	Length    int       `db:"length"`
	Placement int       `db:"placement"`
}

// UpsertResult stores res keyed by (puzzle date, user). A player's earlier
// result for the same date is overwritten but keeps its id. The stored id and
// submission time are written back into res.
func (r *Repo) UpsertResult(ctx context.Context, res *domain.PuzzleResult) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}

	query, args, err := postgres.Builder.
		Insert(resultsTable).
		Columns("id", "puzzle_date", "user_id", "puzzle_letters", "completed", "final_score",
			"stages_completed", "longest_word", "rarest_word", "rarest_frequency", "submitted_at").
		Values(res.ID, res.PuzzleDate, res.UserID, res.PuzzleLetters, res.Completed, res.FinalScore,
			res.StagesCompleted, res.LongestWord, res.RarestWord.Word, res.RarestWord.Frequency, res.SubmittedAt).
		Suffix(`ON CONFLICT (puzzle_date, user_id) DO UPDATE SET
			puzzle_letters = EXCLUDED.puzzle_letters,
			completed = EXCLUDED.completed,
			final_score = EXCLUDED.final_score,
			stages_completed = EXCLUDED.stages_completed,
			longest_word = EXCLUDED.longest_word,
			rarest_word = EXCLUDED.rarest_word,
			rarest_frequency = EXCLUDED.rarest_frequency,
			submitted_at = EXCLUDED.submitted_at
		RETURNING id, submitted_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert result query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...)
	if err := row.Scan(&res.ID, &res.SubmittedAt); err != nil {
		return postgres.MapError(err, "puzzle result", res.PuzzleDate+"/"+res.UserID)
	}
	return nil
}

// ReplaceEntries deletes the stored entries of a result and inserts entries
// in their given order.
func (r *Repo) ReplaceEntries(ctx context.Context, resultID uuid.UUID, entries []domain.StageEntry) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := postgres.Builder.
		Delete(entriesTable).
		Where(squirrel.Eq{"result_id": resultID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete entries query: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "puzzle result", resultID)
	}

	if len(entries) == 0 {
		return nil
	}

	insert := postgres.Builder.
		Insert(entriesTable).
		Columns("result_id", "position", "stage", "word", "frequency", "score", "syllables", "length", "placement")
	for i, e := range entries {
		insert = insert.Values(resultID, i, e.Stage, e.Word, e.Frequency, e.Score, e.Syllables, e.Length, int(e.Placement))
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("build insert entries query: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "puzzle result", resultID)
	}
	return nil
}

// ListByDate returns every result for puzzleDate with its entries, highest
// final score first; ties go to the earlier submission.
// Returns an empty slice (not nil) when nobody has played that date.
func (r *Repo) ListByDate(ctx context.Context, puzzleDate string) ([]domain.PuzzleResult, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := postgres.Builder.
		Select("id", "to_char(puzzle_date, 'YYYY-MM-DD') AS puzzle_date", "user_id", "puzzle_letters",
			"completed", "final_score", "stages_completed", "longest_word", "rarest_word",
			"rarest_frequency", "submitted_at").
		From(resultsTable).
		Where(squirrel.Eq{"puzzle_date": puzzleDate}).
		OrderBy("final_score DESC", "submitted_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list results query: %w", err)
	}

	var rows []resultRow
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "puzzle date", puzzleDate)
	}

	results := make([]domain.PuzzleResult, len(rows))
	if len(rows) == 0 {
		return results, nil
	}

	ids := make([]uuid.UUID, len(rows))
	index := make(map[uuid.UUID]int, len(rows))
	for i, rw := range rows {
		results[i] = toDomainResult(rw)
		ids[i] = rw.ID
		index[rw.ID] = i
	}

	query, args, err = postgres.Builder.
		Select("result_id", "stage", "word", "frequency", "score", "syllables", "length", "placement").
		From(entriesTable).
		Where("result_id = ANY(?)", ids).
		OrderBy("result_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list entries query: %w", err)
	}

	var entries []entryRow
	if err := pgxscan.Select(ctx, q, &entries, query, args...); err != nil {
		return nil, postgres.MapError(err, "puzzle date", puzzleDate)
	}

	for _, e := range entries {
		i, ok := index[e.ResultID]
		if !ok {
			continue
		}
		results[i].Entries = append(results[i].Entries, domain.StageEntry{
			Stage:     e.Stage,
			Word:      e.Word,
			Frequency: e.Frequency,
			Score:     e.Score,
			Syllables: e.Syllables,
			Length:    e.Length,
			Placement: domain.Placement(e.Placement),
		})
	}

	return results, nil
}

func toDomainResult(rw resultRow) domain.PuzzleResult {
	return domain.PuzzleResult{
		ID:              rw.ID,
		PuzzleDate:      rw.PuzzleDate,
		UserID:          rw.UserID,
		PuzzleLetters:   rw.PuzzleLetters,
		Completed:       rw.Completed,
		FinalScore:      rw.FinalScore,
		StagesCompleted: rw.StagesCompleted,
		LongestWord:     rw.LongestWord,
		RarestWord:      domain.RarestWord{Word: rw.RarestWord, Frequency: rw.RarestFrequency},
		Entries:         []domain.StageEntry{},
		SubmittedAt:     rw.SubmittedAt,
	}
}
