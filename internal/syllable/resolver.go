package syllable

import (
	"errors"
	"strings"

	"github.com/heartmarshall/syllabl-backend/internal/domain"
)

// MatchSource names the cascade tier that produced a segmentation.
type MatchSource string

const (
	MatchNone       MatchSource = ""
	MatchHeadword   MatchSource = "headword"
	MatchInflection MatchSource = "inflection"
	MatchRunOn      MatchSource = "run-on"
	MatchFallback   MatchSource = "fallback"
)

var (
	errNoCommonEntry = errors.New("only proper-noun headwords available")
	errUnresolvable  = errors.New("no segmentation produced")
)

// recordView caches the marker-free forms of a record's headword.
type recordView struct {
	domain.DictionaryRecord
	bare string // headword without markers, case preserved
	base string // bare, lowercased
}

func viewRecords(records []domain.DictionaryRecord) []recordView {
	views := make([]recordView, len(records))
	for i, rec := range records {
		bare := stripMarkers(rec.Headword)
		views[i] = recordView{DictionaryRecord: rec, bare: bare, base: strings.ToLower(bare)}
	}
	return views
}

// Resolution is the base segmentation picked by the matching cascade.
type Resolution struct {
	Segmentation Segmentation
	State        State
	Source       MatchSource
	// Form is the marked spelling the segmentation was taken from.
	Form string
}

// ResolveRecords walks records in order and applies the matching cascade:
// marked headword equal to word, then a spelled-out inflection, then a
// run-on form or its plural. Every record is visited and a later non-empty
// match replaces an earlier one. Only when nothing matched does the first
// lowercase headword serve as a root fallback.
func ResolveRecords(word string, records []domain.DictionaryRecord, st State) (Resolution, error) {
	return resolveViews(word, viewRecords(records), st)
}

func resolveViews(word string, records []recordView, st State) (Resolution, error) {
	res := Resolution{State: st}

	for _, rec := range records {
		if rec.Headword != "" && rec.base == word && startsLower(rec.Headword) && hasMarkers(rec.Headword) {
			seg := splitMarked(rec.Headword)
			seg, res.State = CrossCheck(word, firstPronunciation(rec.Pronunciations), seg, res.State)
			res.take(seg, MatchHeadword, rec.Headword)
			continue
		}

		if infl, prons, ok := matchInflection(word, rec); ok {
			seg := splitMarked(infl.Form)
			seg, res.State = CrossCheck(word, prons, seg, res.State)
			if res.take(seg, MatchInflection, infl.Form) {
				res.State.BaseWordUsed = false
			}
			continue
		}

		if ro, ok := matchRunOn(word, rec.RunOns); ok {
			seg := splitMarked(ro.Form)
			seg, res.State = CrossCheck(word, firstPronunciation(ro.Pronunciations), seg, res.State)
			if res.take(seg, MatchRunOn, ro.Form) {
				res.State.BaseWordUsed = true
			}
		}
	}

	if res.Segmentation.Count() > 0 {
		return res, nil
	}
	return fallback(word, records, res.State)
}

// take records seg as the current match when it is non-empty.
func (r *Resolution) take(seg Segmentation, src MatchSource, form string) bool {
	if seg.Count() == 0 {
		return false
	}
	r.Segmentation, r.Source, r.Form = seg, src, form
	return true
}

// matchInflection finds the inflection spelling out word on a record whose
// stems cover it. Only the first inflection with a matching spelling is
// considered, and it must carry syllable markers. Its own pronunciation is
// preferred; otherwise every pronunciation of the parent record is used.
func matchInflection(word string, rec recordView) (domain.Inflection, []string, bool) {
	if len(rec.Inflections) == 0 || word == rec.base || !rec.HasStem(word) {
		return domain.Inflection{}, nil, false
	}
	for _, infl := range rec.Inflections {
		if normalizedForm(infl.Form) != word {
			continue
		}
		if !hasMarkers(infl.Form) {
			return domain.Inflection{}, nil, false
		}
		if len(infl.Pronunciations) > 0 && infl.Pronunciations[0] != "" {
			return infl, firstPronunciation(infl.Pronunciations), true
		}
		return infl, rec.Pronunciations, true
	}
	return domain.Inflection{}, nil, false
}

// matchRunOn returns the first run-on whose form or variant spelling equals
// word, or whose plural (+s, +es, y→ies) does.
func matchRunOn(word string, runOns []domain.RunOn) (domain.RunOn, bool) {
	for _, ro := range runOns {
		forms := make([]string, 0, 1+len(ro.Variants))
		forms = append(forms, ro.Form)
		forms = append(forms, ro.Variants...)

		for _, f := range forms {
			root := normalizedForm(f)
			if root == "" {
				continue
			}
			if word == root || word == root+"s" || word == root+"es" {
				return ro, true
			}
			if strings.HasSuffix(root, "y") && word == strings.TrimSuffix(root, "y")+"ies" {
				return ro, true
			}
		}
	}
	return domain.RunOn{}, false
}

// fallback splits the first lowercase headword as a root form.
func fallback(word string, records []recordView, st State) (Resolution, error) {
	for _, rec := range records {
		if !startsLower(rec.Headword) {
			continue
		}
		res := Resolution{State: st}
		seg := splitMarked(rec.Headword)
		seg, res.State = CrossCheck(word, rec.Pronunciations, seg, res.State)
		res.State.BaseWordUsed = true
		if !res.take(seg, MatchFallback, rec.Headword) {
			return res, errUnresolvable
		}
		return res, nil
	}
	return Resolution{State: st}, errNoCommonEntry
}
