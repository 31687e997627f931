// Package wordcache stores resolved words so repeat lookups skip the
// upstream dictionary and frequency APIs.
package wordcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/syllabl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/syllabl-backend/internal/domain"
)

const table = "word_cache"

var columns = []string{
	"word", "syllable_count", "syllable_list", "base_word_used",
	"syllable_parses", "frequency", "resolved_at",
}

// Repo provides word cache persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new word cache repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	Word           string    `db:"word"`
	SyllableCount  int       `db:"syllable_count"`
	SyllableList   []byte    `db:"syllable_list"`
	BaseWordUsed   bool      `db:"base_word_used"`
	SyllableParses []byte    `db:"syllable_parses"`
	Frequency      float64   `db:"frequency"`
	ResolvedAt     time.Time `db:"resolved_at"`
}

// Get returns the cached entry for word.
// Returns domain.ErrNotFound if the word has never been cached.
func (r *Repo) Get(ctx context.Context, word string) (*domain.WordInfo, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"word": word}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get word query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			err = pgx.ErrNoRows
		}
		return nil, postgres.MapError(err, "word", word)
	}

	return toDomain(rw)
}

// Upsert stores info, replacing any existing entry for the same word.
func (r *Repo) Upsert(ctx context.Context, info *domain.WordInfo) error {
	list, err := json.Marshal(info.SyllableList)
	if err != nil {
		return fmt.Errorf("marshal syllable list: %w", err)
	}
	parses := info.SyllableParses
	if parses == nil {
		parses = []domain.SyllableParse{}
	}
	parsesJSON, err := json.Marshal(parses)
	if err != nil {
		return fmt.Errorf("marshal syllable parses: %w", err)
	}

	query, args, err := postgres.Builder.
		Insert(table).
		Columns(columns...).
		Values(info.Word, info.SyllableCount, list, info.BaseWordUsed, parsesJSON, info.Frequency, info.ResolvedAt).
		Suffix(`ON CONFLICT (word) DO UPDATE SET
			syllable_count = EXCLUDED.syllable_count,
			syllable_list = EXCLUDED.syllable_list,
			base_word_used = EXCLUDED.base_word_used,
			syllable_parses = EXCLUDED.syllable_parses,
			frequency = EXCLUDED.frequency,
			resolved_at = EXCLUDED.resolved_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert word query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "word", info.Word)
	}
	return nil
}

// DeleteOlderThan removes entries resolved before threshold and returns how
// many were deleted.
func (r *Repo) DeleteOlderThan(ctx context.Context, threshold time.Time) (int64, error) {
	query, args, err := postgres.Builder.
		Delete(table).
		Where(squirrel.Lt{"resolved_at": threshold}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete words query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete words older than %s: %w", threshold.Format(time.RFC3339), err)
	}
	return tag.RowsAffected(), nil
}

func toDomain(rw row) (*domain.WordInfo, error) {
	info := &domain.WordInfo{
		ResolvedWord: domain.ResolvedWord{
			Word:          rw.Word,
			SyllableCount: rw.SyllableCount,
			BaseWordUsed:  rw.BaseWordUsed,
		},
		Frequency:  rw.Frequency,
		ResolvedAt: rw.ResolvedAt,
	}
	if err := json.Unmarshal(rw.SyllableList, &info.SyllableList); err != nil {
		return nil, fmt.Errorf("word %s: decode syllable list: %w", rw.Word, err)
	}
	if len(rw.SyllableParses) > 0 {
		if err := json.Unmarshal(rw.SyllableParses, &info.SyllableParses); err != nil {
			return nil, fmt.Errorf("word %s: decode syllable parses: %w", rw.Word, err)
		}
	}
	return info, nil
}
