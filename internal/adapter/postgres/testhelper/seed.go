package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/syllabl-backend/internal/domain"
)

// UniqueWord returns a lowercase word that does not collide with other tests
// sharing the container.
func UniqueWord(prefix string) string {
	var b []byte
	for _, c := range uuid.New().String() {
		if c >= 'a' && c <= 'f' {
			b = append(b, byte(c))
		} else if c >= '0' && c <= '9' {
			b = append(b, byte('g'+c-'0'))
		}
		if len(b) == 10 {
			break
		}
	}
	return prefix + string(b)
}

// SeedWordInfo inserts a word_cache row resolved at resolvedAt.
func SeedWordInfo(t *testing.T, pool *pgxpool.Pool, word string, resolvedAt time.Time) domain.WordInfo {
	t.Helper()

	info := domain.WordInfo{
		ResolvedWord: domain.ResolvedWord{
			Word:          word,
			SyllableCount: 1,
			SyllableList:  []string{word},
			SyllableParses: []domain.SyllableParse{
				domain.NewSyllableParse([]string{word}),
			},
		},
		Frequency:  12.5,
		ResolvedAt: resolvedAt.UTC().Truncate(time.Microsecond),
	}

	list, _ := json.Marshal(info.SyllableList)
	parses, _ := json.Marshal(info.SyllableParses)

	_, err := pool.Exec(context.Background(),
		`INSERT INTO word_cache (word, syllable_count, syllable_list, base_word_used, syllable_parses, frequency, resolved_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		info.Word, info.SyllableCount, list, info.BaseWordUsed, parses, info.Frequency, info.ResolvedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed word %q: %v", word, err)
	}
	return info
}

// SeedPuzzleResult inserts a puzzle result without entries.
func SeedPuzzleResult(t *testing.T, pool *pgxpool.Pool, puzzleDate, userID string, score int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO puzzle_results (id, puzzle_date, user_id, puzzle_letters, final_score)
		 VALUES ($1, $2, $3, 'ion', $4)`,
		id, puzzleDate, userID, score,
	)
	if err != nil {
		t.Fatalf("testhelper: seed puzzle result: %v", err)
	}
	return id
}
