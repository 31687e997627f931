package syllable

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/heartmarshall/syllabl-backend/internal/domain"
)

// offensiveRatioLimit is the share of offensive records at which a word is refused.
const offensiveRatioLimit = 0.35

// Verdict is the outcome of FilterRecords.
type Verdict struct {
	Valid  bool
	Reason domain.RejectReason
}

func reject(reason domain.RejectReason) Verdict {
	return Verdict{Reason: reason}
}

// FilterRecords decides whether a lookup describes a plausible common word.
// Rules run in order and the first failing rule names the reason.
// The lookup is not modified.
func FilterRecords(lookup domain.DictionaryLookup) Verdict {
	if lookup.IsSuggestionsOnly() {
		return reject(domain.RejectSuggestionsOnly)
	}
	if len(lookup.Records) == 0 {
		return reject(domain.RejectNotFound)
	}

	offensive := 0
	for _, rec := range lookup.Records {
		if rec.Offensive {
			offensive++
		}
	}
	if float64(offensive)/float64(len(lookup.Records)) >= offensiveRatioLimit {
		return reject(domain.RejectOffensive)
	}

	for _, rec := range lookup.Records {
		if isCommonHeadword(rec.Headword) {
			return Verdict{Valid: true}
		}
	}
	return reject(domain.RejectNotCommonWord)
}

// isCommonHeadword reports whether a headword names a single common word:
// non-empty, not capitalised, and free of spaces, hyphens, apostrophes and digits.
func isCommonHeadword(headword string) bool {
	hw := stripMarkers(headword)
	if hw == "" {
		return false
	}
	// Anything unchanged by upper-casing is a capital or not a letter at all.
	if first, _ := utf8.DecodeRuneInString(hw); unicode.ToUpper(first) == first {
		return false
	}
	if strings.ContainsAny(hw, " -'") {
		return false
	}
	return !strings.ContainsFunc(hw, unicode.IsDigit)
}
