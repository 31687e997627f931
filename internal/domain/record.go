package domain

// DictionaryLookup is what the dictionary service returned for a headword query.
// An unknown word comes back as spelling suggestions instead of records.
type DictionaryLookup struct {
	Records     []DictionaryRecord
	Suggestions []string
}

// IsSuggestionsOnly reports whether the lookup carries suggestions but no records.
func (l DictionaryLookup) IsSuggestionsOnly() bool {
	return len(l.Records) == 0 && len(l.Suggestions) > 0
}

// DictionaryRecord is one sense entry of a headword family.
//
// Records are sparse: any of Pronunciations, Inflections, RunOns and Stems
// may be empty independently of the others.
type DictionaryRecord struct {
	// Headword may contain '*' syllable-break markers ("rab*bit").
	// A leading capital marks a proper-noun sense.
	Headword string
	// Pronunciations in display order; '-' separates phonetic syllables,
	// parenthesised parts are optional.
	Pronunciations []string
	Inflections    []Inflection
	RunOns         []RunOn
	// Stems lists every word-form the record's senses cover.
	Stems     []string
	Offensive bool
}

// PrimaryPronunciation returns the first pronunciation, or "" when there is none.
func (r DictionaryRecord) PrimaryPronunciation() string {
	if len(r.Pronunciations) == 0 {
		return ""
	}
	return r.Pronunciations[0]
}

// HasStem reports whether word is among the record's stems.
func (r DictionaryRecord) HasStem(word string) bool {
	for _, s := range r.Stems {
		if s == word {
			return true
		}
	}
	return false
}

// Inflection is a spelled-out grammatical variant of a headword ("rab*bits").
type Inflection struct {
	Form           string
	Pronunciations []string
}

// RunOn is a related word form listed under a parent sense, with optional variant spellings.
type RunOn struct {
	Form           string
	Variants       []string
	Pronunciations []string
}
