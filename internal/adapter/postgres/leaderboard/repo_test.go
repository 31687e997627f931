package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postgres "github.com/heartmarshall/syllabl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/syllabl-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/syllabl-backend/internal/domain"
)

var (
	resultColumns = []string{"id", "puzzle_date", "user_id", "puzzle_letters", "completed", "final_score",
		"stages_completed", "longest_word", "rarest_word", "rarest_frequency", "submitted_at"}
	entryColumns = []string{"result_id", "stage", "word", "frequency", "score", "syllables", "length", "placement"}
)

func newMockRepo(t *testing.T) (*Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return New(mock), mock
}

func sampleResult(date, user string) *domain.PuzzleResult {
	return &domain.PuzzleResult{
		PuzzleDate:      date,
		UserID:          user,
		PuzzleLetters:   "ion",
		Completed:       true,
		FinalScore:      420,
		StagesCompleted: 4,
		LongestWord:     "communication",
		RarestWord:      domain.RarestWord{Word: "ionic", Frequency: 1.2},
		SubmittedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
}

func sampleEntries() []domain.StageEntry {
	return []domain.StageEntry{
		{Stage: 1, Word: "lion", Frequency: 30.1, Score: 100, Syllables: 2, Length: 4, Placement: domain.PlacementEnd},
		{Stage: 2, Word: "ionic", Frequency: 1.2, Score: 150, Syllables: 3, Length: 5, Placement: domain.PlacementStart},
	}
}

func TestRepo_UpsertResult_Mock(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	res := sampleResult("2026-10-19", "player-1")
	storedID := uuid.New()
	storedAt := time.Now()

	mock.ExpectQuery(`INSERT INTO puzzle_results .+ ON CONFLICT \(puzzle_date, user_id\) DO UPDATE .+ RETURNING id, submitted_at`).
		WithArgs(pgxmock.AnyArg(), "2026-10-19", "player-1", "ion", true, 420, 4, "communication",
			"ionic", 1.2, res.SubmittedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id", "submitted_at"}).AddRow(storedID, storedAt))

	require.NoError(t, repo.UpsertResult(context.Background(), res))
	assert.Equal(t, storedID, res.ID)
	assert.Equal(t, storedAt, res.SubmittedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_UpsertResult_CheckViolation(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	res := sampleResult("2026-10-19", "player-1")

	mock.ExpectQuery(`INSERT INTO puzzle_results`).
		WillReturnError(&pgconn.PgError{Code: "23514"})

	err := repo.UpsertResult(context.Background(), res)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_ReplaceEntries_Mock(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM puzzle_entries WHERE result_id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`INSERT INTO puzzle_entries \(result_id,position,stage,word,frequency,score,syllables,length,placement\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7,\$8,\$9\),\(\$10`).
		WithArgs(
			id, 0, 1, "lion", 30.1, 100, 2, 4, 1,
			id, 1, 2, "ionic", 1.2, 150, 3, 5, 2,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))

	require.NoError(t, repo.ReplaceEntries(context.Background(), id, sampleEntries()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_ReplaceEntries_EmptyOnlyDeletes(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM puzzle_entries`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repo.ReplaceEntries(context.Background(), id, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_ListByDate_Mock(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	first, second := uuid.New(), uuid.New()
	at := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM puzzle_results WHERE puzzle_date = \$1 ORDER BY final_score DESC, submitted_at ASC`).
		WithArgs("2026-10-19").
		WillReturnRows(pgxmock.NewRows(resultColumns).
			AddRow(first, "2026-10-19", "alice", "ion", true, 500, 4, "lionization", "ionic", 1.2, at).
			AddRow(second, "2026-10-19", "bob", "ion", false, 120, 1, "lion", "lion", 30.1, at))
	mock.ExpectQuery(`SELECT .+ FROM puzzle_entries WHERE result_id = ANY\(\$1\) ORDER BY result_id, position`).
		WithArgs([]uuid.UUID{first, second}).
		WillReturnRows(pgxmock.NewRows(entryColumns).
			AddRow(first, 1, "lion", 30.1, 100, 2, 4, 1).
			AddRow(first, 2, "ionic", 1.2, 150, 3, 5, 2).
			AddRow(second, 1, "lion", 30.1, 120, 2, 4, 1))

	got, err := repo.ListByDate(context.Background(), "2026-10-19")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "alice", got[0].UserID)
	assert.Equal(t, domain.RarestWord{Word: "ionic", Frequency: 1.2}, got[0].RarestWord)
	require.Len(t, got[0].Entries, 2)
	assert.Equal(t, domain.PlacementStart, got[0].Entries[1].Placement)
	assert.Len(t, got[1].Entries, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_ListByDate_Empty(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT .+ FROM puzzle_results`).
		WithArgs("2026-10-19").
		WillReturnRows(pgxmock.NewRows(resultColumns))

	got, err := repo.ListByDate(context.Background(), "2026-10-19")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}

	pool := testhelper.SetupTestDB(t)
	repo := New(pool)
	tx := postgres.NewTxManager(pool)
	ctx := context.Background()

	date := "2026-10-19"
	user := "it-" + uuid.NewString()

	res := sampleResult(date, user)
	err := tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := repo.UpsertResult(ctx, res); err != nil {
			return err
		}
		return repo.ReplaceEntries(ctx, res.ID, sampleEntries())
	})
	require.NoError(t, err)
	firstID := res.ID

	// Resubmission replaces the earlier result and keeps its id.
	again := sampleResult(date, user)
	again.FinalScore = 999
	require.NoError(t, repo.UpsertResult(ctx, again))
	require.NoError(t, repo.ReplaceEntries(ctx, again.ID, sampleEntries()[:1]))
	assert.Equal(t, firstID, again.ID)

	lower := testhelper.SeedPuzzleResult(t, pool, date, "it-"+uuid.NewString(), 1)

	got, err := repo.ListByDate(ctx, date)
	require.NoError(t, err)

	var mine *domain.PuzzleResult
	for i := range got {
		if got[i].UserID == user {
			mine = &got[i]
		}
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].FinalScore, got[i].FinalScore)
		}
	}
	require.NotNil(t, mine)
	assert.Equal(t, 999, mine.FinalScore)
	assert.Equal(t, date, mine.PuzzleDate)
	require.Len(t, mine.Entries, 1)
	assert.Equal(t, "lion", mine.Entries[0].Word)

	var found bool
	for _, r := range got {
		if r.ID == lower {
			found = true
			assert.Empty(t, r.Entries)
		}
	}
	assert.True(t, found)

	empty, err := repo.ListByDate(ctx, "1999-01-01")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
