package syllable

import "strings"

// suffixRule rebuilds a root segmentation into the suffixed word. apply
// reports false when the root does not match or the phonological test fails.
type suffixRule struct {
	suffix string
	apply  func(word string, seg Segmentation) (Segmentation, bool)
}

var pluralRules = []suffixRule{
	{suffix: "ies", apply: replaceY("ies")},
	{suffix: "es", apply: newSyllable("es", endsSibilant)},
	{suffix: "s", apply: extendLast("s", nil)},
}

var pastTenseRules = []suffixRule{
	{suffix: "ied", apply: replaceY("ied")},
	{suffix: "ed", apply: newSyllable("ed", endsTD)},
	{suffix: "ed", apply: extendLast("ed", func(root string) bool { return !endsTD(root) })},
	{suffix: "d", apply: extendLast("d", nil)},
}

// StitchSuffix re-attaches plural and past-tense morphology to a root
// segmentation. It does nothing unless st.BaseWordUsed is set. The plural
// pass runs first; the past-tense pass runs only if the joined segmentation
// still differs from word. Within a pass the first applicable rule wins.
// Every rule requires the joined segmentation to equal word's root, so a
// suffix already present is never applied twice.
func StitchSuffix(word string, seg Segmentation, st State) (Segmentation, []string) {
	if !st.BaseWordUsed || seg.Count() == 0 {
		return seg, nil
	}

	var applied []string
	if out, sfx, ok := applyRules(word, seg, pluralRules); ok {
		seg = out
		applied = append(applied, sfx)
	}
	if seg.Join() != word {
		if out, sfx, ok := applyRules(word, seg, pastTenseRules); ok {
			seg = out
			applied = append(applied, sfx)
		}
	}
	return seg, applied
}

func applyRules(word string, seg Segmentation, rules []suffixRule) (Segmentation, string, bool) {
	for _, rule := range rules {
		if !strings.HasSuffix(word, rule.suffix) {
			continue
		}
		if out, ok := rule.apply(word, seg); ok {
			return out, rule.suffix, true
		}
	}
	return seg, "", false
}

// replaceY handles "pony"→"ponies" and "carry"→"carried": the trailing y of
// the last syllable becomes the suffix. A root that already lacks the y
// gets the suffix appended to its last syllable. Count is unchanged.
func replaceY(suffix string) func(string, Segmentation) (Segmentation, bool) {
	return func(word string, seg Segmentation) (Segmentation, bool) {
		stem := strings.TrimSuffix(word, suffix)
		joined := seg.Join()
		out := seg.clone()
		last := len(out) - 1

		switch {
		case joined == stem+"y":
			out[last] = out[last][:len(out[last])-1] + suffix
		case joined == stem && suffix == "ies":
			out[last] += suffix
		default:
			return seg, false
		}
		return out, true
	}
}

// newSyllable appends the suffix as its own trailing syllable ("box"→"box·es").
func newSyllable(suffix string, test func(root string) bool) func(string, Segmentation) (Segmentation, bool) {
	return func(word string, seg Segmentation) (Segmentation, bool) {
		root := strings.TrimSuffix(word, suffix)
		if seg.Join() != root || !test(root) {
			return seg, false
		}
		out := append(seg.clone(), suffix)
		return out, true
	}
}

// extendLast glues the suffix onto the last syllable ("cat"→"cats").
func extendLast(suffix string, test func(root string) bool) func(string, Segmentation) (Segmentation, bool) {
	return func(word string, seg Segmentation) (Segmentation, bool) {
		root := strings.TrimSuffix(word, suffix)
		if seg.Join() != root || (test != nil && !test(root)) {
			return seg, false
		}
		out := seg.clone()
		out[len(out)-1] += suffix
		return out, true
	}
}

func endsSibilant(root string) bool {
	for _, s := range []string{"s", "x", "z", "ch", "sh"} {
		if strings.HasSuffix(root, s) {
			return true
		}
	}
	return false
}

func endsTD(root string) bool {
	return strings.HasSuffix(root, "t") || strings.HasSuffix(root, "d")
}
