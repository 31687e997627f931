package domain

import "time"

// SyllableParse is one candidate segmentation of a word.
type SyllableParse struct {
	Count     int      `json:"count"`
	Syllables []string `json:"syllables"`
}

// NewSyllableParse builds a parse whose Count always equals len(syllables).
func NewSyllableParse(syllables []string) SyllableParse {
	return SyllableParse{Count: len(syllables), Syllables: syllables}
}

// ResolvedWord is the outcome of syllable resolution for a single word.
type ResolvedWord struct {
	Word           string
	SyllableCount  int
	SyllableList   []string
	BaseWordUsed   bool
	SyllableParses []SyllableParse
}

// HasSyllableCount reports whether any accepted parse of the word has exactly k syllables.
// Callers must use this rather than comparing against SyllableCount alone.
func (w ResolvedWord) HasSyllableCount(k int) bool {
	_, ok := w.ParseFor(k)
	return ok
}

// ParseFor returns the first parse with exactly k syllables.
func (w ResolvedWord) ParseFor(k int) (SyllableParse, bool) {
	for _, p := range w.SyllableParses {
		if p.Count == k {
			return p, true
		}
	}
	return SyllableParse{}, false
}

// WordInfo is a resolved word accepted for play, with its usage frequency.
type WordInfo struct {
	ResolvedWord
	Frequency  float64
	ResolvedAt time.Time
}
