// Package syllable resolves the syllable structure of a word from the
// dictionary records fetched for it.
//
// The engine performs no I/O. Every function is a pure transformation of
// its inputs; per-request mutable state is carried in a State value that is
// passed in and returned, never shared between requests.
package syllable

import (
	"strings"
	"unicode"
)

const (
	// headwordMarker separates syllables in headwords, inflections and run-ons.
	headwordMarker = "*"
	// phoneticMarker separates syllables in pronunciation transcriptions.
	phoneticMarker = "-"
	// parseKeySep joins syllables into the dedup key of a parse.
	parseKeySep = "-"
)

// Segmentation is an ordered list of syllables whose concatenation is a word-form.
// Its count is always len(s).
type Segmentation []string

// Count returns the number of syllables.
func (s Segmentation) Count() int { return len(s) }

// Join returns the lowercased concatenation of all syllables.
func (s Segmentation) Join() string {
	return strings.ToLower(strings.Join(s, ""))
}

func (s Segmentation) key() string {
	return strings.Join(s, parseKeySep)
}

func (s Segmentation) clone() Segmentation {
	if s == nil {
		return nil
	}
	out := make(Segmentation, len(s))
	copy(out, s)
	return out
}

// EvenSplit divides word into n chunks, taking ceil(remaining/chunksLeft)
// runes from the front each time, so chunk lengths never increase.
// n is clamped to [1, len(word)] so no chunk is ever empty.
func EvenSplit(word string, n int) Segmentation {
	runes := []rune(word)
	if len(runes) == 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if n > len(runes) {
		n = len(runes)
	}

	seg := make(Segmentation, 0, n)
	cursor := 0
	for i := 0; i < n; i++ {
		left := n - i
		size := (len(runes) - cursor + left - 1) / left
		seg = append(seg, string(runes[cursor:cursor+size]))
		cursor += size
	}
	return seg
}

// stripMarkers removes headword syllable-break markers.
func stripMarkers(s string) string {
	return strings.ReplaceAll(s, headwordMarker, "")
}

func hasMarkers(s string) bool {
	return strings.Contains(s, headwordMarker)
}

// splitMarked splits a marked form on syllable breaks. Empty pieces from
// doubled or edge markers are dropped.
func splitMarked(s string) Segmentation {
	parts := strings.Split(s, headwordMarker)
	seg := make(Segmentation, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			seg = append(seg, p)
		}
	}
	return seg
}

// normalizedForm is the marker-free, lowercased spelling used for comparisons.
func normalizedForm(s string) string {
	return strings.ToLower(stripMarkers(s))
}

// startsLower reports whether the marker-free form begins with a lowercase letter.
// Capitalised headwords are proper-noun senses.
func startsLower(s string) bool {
	for _, r := range stripMarkers(s) {
		return unicode.IsLower(r)
	}
	return false
}
