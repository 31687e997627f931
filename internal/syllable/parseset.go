package syllable

import "github.com/heartmarshall/syllabl-backend/internal/domain"

// BuildParseSet derives one candidate parse per pronunciation: optional
// parenthesised parts are dropped, syllables counted, and word split evenly
// into that many chunks. Parses are deduplicated by their joined syllables,
// keeping first-seen order.
func BuildParseSet(word string, prons []string) []domain.SyllableParse {
	parses := make([]domain.SyllableParse, 0, len(prons))
	seen := make(map[string]struct{}, len(prons))

	for _, p := range prons {
		if p == "" {
			continue
		}
		seg := EvenSplit(word, countPhonetic(optionalSegment.ReplaceAllString(p, "")))
		if seg.Count() == 0 {
			continue
		}
		k := seg.key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		parses = append(parses, domain.NewSyllableParse(seg))
	}
	return parses
}

// withAuthoritative puts seg at the front of parses unless a parse with the
// same syllables is already present.
func withAuthoritative(parses []domain.SyllableParse, seg Segmentation) []domain.SyllableParse {
	k := seg.key()
	for _, p := range parses {
		if Segmentation(p.Syllables).key() == k {
			return parses
		}
	}
	out := make([]domain.SyllableParse, 0, len(parses)+1)
	out = append(out, domain.NewSyllableParse(seg.clone()))
	return append(out, parses...)
}

// parseSource picks the pronunciations of the first record that has both a
// headword and at least one pronunciation.
func parseSource(records []recordView) []string {
	for _, rec := range records {
		if rec.Headword != "" && len(rec.Pronunciations) > 0 {
			return rec.Pronunciations
		}
	}
	return nil
}
