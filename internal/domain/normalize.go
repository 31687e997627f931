package domain

import (
	"strings"
	"unicode"
)

// NormalizeWord prepares a query word for lookup and comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//
// Interior characters are left alone; use IsPlayableWord to reject them.
func NormalizeWord(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// IsPlayableWord reports whether s is a non-empty run of lowercase letters.
func IsPlayableWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) || !unicode.IsLower(r) {
			return false
		}
	}
	return true
}
