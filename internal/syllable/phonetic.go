package syllable

import (
	"regexp"
	"strings"
)

// optionalSegment matches parenthesised optional parts such as "(-ə)".
var optionalSegment = regexp.MustCompile(`\(.*?\)`)

// countPhonetic returns the syllable count implied by one transcription.
func countPhonetic(pron string) int {
	return strings.Count(pron, phoneticMarker) + 1
}

// phoneticSyllables returns the largest syllable count over all non-empty
// transcriptions, or 0 when there are none. Records list stress variants
// side by side, so the maximum is the reading with every syllable voiced.
func phoneticSyllables(prons []string) int {
	best := 0
	for _, p := range prons {
		if p == "" {
			continue
		}
		if n := countPhonetic(p); n > best {
			best = n
		}
	}
	return best
}

// firstPronunciation narrows a list to its primary entry.
func firstPronunciation(prons []string) []string {
	if len(prons) == 0 {
		return nil
	}
	return prons[:1]
}

// State is the per-request resolution state. It is threaded through every
// step by value and must never be reused for another word.
type State struct {
	// OverrideUsed is set once a segmentation has been rebuilt from phonetics.
	OverrideUsed bool
	// BaseWordUsed is set when resolution matched a root form rather than the word itself.
	BaseWordUsed bool
}

// CrossCheck rebuilds seg as an even split of word when the pronunciations
// reveal more syllables than seg has. The rebuild happens at most once per
// State; later calls return seg unchanged.
func CrossCheck(word string, prons []string, seg Segmentation, st State) (Segmentation, State) {
	n := phoneticSyllables(prons)
	if n == 0 || seg.Count() >= n || st.OverrideUsed {
		return seg, st
	}
	st.OverrideUsed = true
	return EvenSplit(word, n), st
}

// finalPhoneticPass re-derives the phonetic count from the first record that
// has a headword and a primary pronunciation. The pass only applies when that
// record's headword, ignoring case, is word itself; a root-form or unrelated
// record leaves seg alone. When the counts disagree and no override has fired
// yet, seg is replaced by an even split of word.
func finalPhoneticPass(word string, records []recordView, seg Segmentation, st State) (Segmentation, State) {
	rec, ok := primaryPronunciationRecord(records)
	if !ok || rec.base != word {
		return seg, st
	}
	n := phoneticSyllables(rec.Pronunciations)
	if st.OverrideUsed || n == seg.Count() {
		return seg, st
	}
	st.OverrideUsed = true
	return EvenSplit(word, n), st
}

func primaryPronunciationRecord(records []recordView) (recordView, bool) {
	for _, rec := range records {
		if rec.Headword != "" && rec.PrimaryPronunciation() != "" {
			return rec, true
		}
	}
	return recordView{}, false
}
