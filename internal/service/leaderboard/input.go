package leaderboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/heartmarshall/syllabl-backend/internal/domain"
)

const (
	dateLayout    = "2006-01-02"
	maxUserIDLen  = 128
	maxEntries    = 64
	maxLettersLen = 16
	maxWordLen    = 64
)

// SubmitInput holds one player's end-of-puzzle report.
type SubmitInput struct {
	PuzzleDate      string
	UserID          string
	PuzzleLetters   string
	Completed       bool
	FinalScore      int
	StagesCompleted int
	LongestWord     string
	RarestWord      domain.RarestWord
	Entries         []domain.StageEntry
}

// Validate validates the submit input.
func (i SubmitInput) Validate() error {
	var errs []domain.FieldError

	if msg := validateDate(i.PuzzleDate); msg != "" {
		errs = append(errs, domain.FieldError{Field: "puzzleDate", Message: msg})
	}

	userID := strings.TrimSpace(i.UserID)
	if userID == "" {
		errs = append(errs, domain.FieldError{Field: "userId", Message: "required"})
	} else if len(userID) > maxUserIDLen {
		errs = append(errs, domain.FieldError{Field: "userId", Message: "too long"})
	}

	if len(i.PuzzleLetters) > maxLettersLen {
		errs = append(errs, domain.FieldError{Field: "puzzleLetters", Message: "too long"})
	}
	if i.FinalScore < 0 {
		errs = append(errs, domain.FieldError{Field: "finalScore", Message: "must not be negative"})
	}
	if i.StagesCompleted < 0 {
		errs = append(errs, domain.FieldError{Field: "stagesCompleted", Message: "must not be negative"})
	}
	if i.RarestWord.Frequency < 0 {
		errs = append(errs, domain.FieldError{Field: "rarestWord.frequency", Message: "must not be negative"})
	}

	switch {
	case len(i.Entries) == 0:
		errs = append(errs, domain.FieldError{Field: "entries", Message: "required"})
	case len(i.Entries) > maxEntries:
		errs = append(errs, domain.FieldError{Field: "entries", Message: "too many"})
	default:
		for n, e := range i.Entries {
			errs = append(errs, validateEntry(n, e)...)
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateEntry(n int, e domain.StageEntry) []domain.FieldError {
	var errs []domain.FieldError
	field := func(name string) string { return fmt.Sprintf("entries[%d].%s", n, name) }

	if e.Word == "" {
		errs = append(errs, domain.FieldError{Field: field("word"), Message: "required"})
	} else if len(e.Word) > maxWordLen {
		errs = append(errs, domain.FieldError{Field: field("word"), Message: "too long"})
	}
	if e.Stage < 1 {
		errs = append(errs, domain.FieldError{Field: field("stage"), Message: "must be at least 1"})
	}
	if !e.Placement.Valid() {
		errs = append(errs, domain.FieldError{Field: field("placement"), Message: "must be between 1 and 4"})
	}
	if e.Frequency < 0 {
		errs = append(errs, domain.FieldError{Field: field("frequency"), Message: "must not be negative"})
	}
	return errs
}

// validateDate returns a message describing what is wrong with date, or "".
func validateDate(date string) string {
	if date == "" {
		return "required"
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "must be a date in YYYY-MM-DD format"
	}
	return ""
}
