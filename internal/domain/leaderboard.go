package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PuzzleResult is one player's submitted performance on a daily puzzle.
// A player has at most one result per puzzle date; resubmitting replaces it.
type PuzzleResult struct {
	ID              uuid.UUID
	PuzzleDate      string
	UserID          string
	PuzzleLetters   string
	Completed       bool
	FinalScore      int
	StagesCompleted int
	LongestWord     string
	RarestWord      RarestWord
	Entries         []StageEntry
	SubmittedAt     time.Time
}

// RarestWord is the lowest-frequency word a player used in a puzzle.
type RarestWord struct {
	Word      string  `json:"word"`
	Frequency float64 `json:"frequency"`
}

// StageEntry is a single accepted guess within a puzzle.
type StageEntry struct {
	Stage     int       `json:"stage"`
	Word      string    `json:"word"`
	Frequency float64   `json:"frequency"`
	Score     int       `json:"score"`
	Syllables int       `json:"syllables"`
	Length    int       `json:"length"`
	Placement Placement `json:"placement"`
}

// Placement is the rule a stage imposes on where the puzzle letters sit in a guess.
type Placement int

const (
	PlacementEnd     Placement = 1 // guess ends with the letters
	PlacementStart   Placement = 2 // guess starts with the letters
	PlacementMiddle  Placement = 3 // letters inside, touching neither edge
	PlacementBookend Placement = 4 // guess both starts and ends with the letters
)

// Valid reports whether p is one of the known rules.
func (p Placement) Valid() bool {
	return p >= PlacementEnd && p <= PlacementBookend
}

// Matches reports whether guess satisfies the rule for letters.
func (p Placement) Matches(guess, letters string) bool {
	if letters == "" {
		return false
	}
	switch p {
	case PlacementEnd:
		return strings.HasSuffix(guess, letters)
	case PlacementStart:
		return strings.HasPrefix(guess, letters)
	case PlacementMiddle:
		return strings.Contains(guess, letters) &&
			!strings.HasPrefix(guess, letters) &&
			!strings.HasSuffix(guess, letters)
	case PlacementBookend:
		return strings.HasPrefix(guess, letters) && strings.HasSuffix(guess, letters)
	}
	return false
}
