package syllable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/syllabl-backend/internal/domain"
)

func TestResolveRecords_HeadwordMatch(t *testing.T) {
	t.Parallel()

	records := []domain.DictionaryRecord{
		{Headword: "rab*bit", Pronunciations: []string{"ˈra-bət"}},
	}

	res, err := ResolveRecords("rabbit", records, State{})

	require.NoError(t, err)
	assert.Equal(t, Segmentation{"rab", "bit"}, res.Segmentation)
	assert.Equal(t, MatchHeadword, res.Source)
	assert.False(t, res.State.BaseWordUsed)
	assert.False(t, res.State.OverrideUsed)
}

func TestResolveRecords_HeadwordWithoutMarkersFallsThrough(t *testing.T) {
	t.Parallel()

	records := []domain.DictionaryRecord{
		{Headword: "cat", Pronunciations: []string{"ˈkat"}},
	}

	res, err := ResolveRecords("cat", records, State{})

	require.NoError(t, err)
	assert.Equal(t, Segmentation{"cat"}, res.Segmentation)
	assert.Equal(t, MatchFallback, res.Source)
	assert.True(t, res.State.BaseWordUsed)
}

func TestResolveRecords_ProperNounHeadwordIgnored(t *testing.T) {
	t.Parallel()

	records := []domain.DictionaryRecord{
		{Headword: "Mar*tin", Pronunciations: []string{"ˈmär-tᵊn"}},
		{Headword: "mar*tin", Pronunciations: []string{"ˈmär-tᵊn"}},
	}

	res, err := ResolveRecords("martin", records, State{})

	require.NoError(t, err)
	assert.Equal(t, MatchHeadword, res.Source)
	assert.Equal(t, "mar*tin", res.Form)
}

func TestResolveRecords_InflectionMatch(t *testing.T) {
	t.Parallel()

	records := []domain.DictionaryRecord{
		{
			Headword:       "car*ry",
			Pronunciations: []string{"ˈker-ē"},
			Stems:          []string{"carry", "carried", "carrying"},
			Inflections: []domain.Inflection{
				{Form: "car*ried"},
				{Form: "car*ry*ing", Pronunciations: []string{"ˈker-ē-iŋ"}},
			},
		},
	}

	t.Run("uses parent pronunciation", func(t *testing.T) {
		t.Parallel()
		res, err := ResolveRecords("carried", records, State{})
		require.NoError(t, err)
		assert.Equal(t, Segmentation{"car", "ried"}, res.Segmentation)
		assert.Equal(t, MatchInflection, res.Source)
		assert.False(t, res.State.BaseWordUsed)
	})

	t.Run("uses own pronunciation", func(t *testing.T) {
		t.Parallel()
		res, err := ResolveRecords("carrying", records, State{})
		require.NoError(t, err)
		assert.Equal(t, Segmentation{"car", "ry", "ing"}, res.Segmentation)
		assert.False(t, res.State.OverrideUsed)
	})
}

func TestResolveRecords_InflectionNeedsStem(t *testing.T) {
	t.Parallel()

	records := []domain.DictionaryRecord{
		{
			Headword:    "car*ry",
			Inflections: []domain.Inflection{{Form: "car*ried"}},
		},
	}

	res, err := ResolveRecords("carried", records, State{})

	require.NoError(t, err)
	assert.Equal(t, MatchFallback, res.Source)
	assert.Equal(t, Segmentation{"car", "ry"}, res.Segmentation)
	assert.True(t, res.State.BaseWordUsed)
}

func TestResolveRecords_InflectionOverrideFromParentPronunciations(t *testing.T) {
	t.Parallel()

	records := []domain.DictionaryRecord{
		{
			Headword:       "fam*i*ly",
			Pronunciations: []string{"ˈfam-lē", "ˈfa-mə-lē"},
			Stems:          []string{"family", "families"},
			Inflections:    []domain.Inflection{{Form: "fam*ilies"}},
		},
	}

	res, err := ResolveRecords("families", records, State{})

	require.NoError(t, err)
	assert.Equal(t, EvenSplit("families", 3), res.Segmentation)
	assert.True(t, res.State.OverrideUsed)
}

func TestResolveRecords_RunOnPlural(t *testing.T) {
	t.Parallel()

	records := []domain.DictionaryRecord{
		{
			Headword: "cat",
			RunOns:   []domain.RunOn{{Form: "cat"}},
		},
	}

	res, err := ResolveRecords("cats", records, State{})

	require.NoError(t, err)
	assert.Equal(t, Segmentation{"cat"}, res.Segmentation)
	assert.Equal(t, MatchRunOn, res.Source)
	assert.True(t, res.State.BaseWordUsed)
}

func TestMatchRunOn(t *testing.T) {
	t.Parallel()

	runOns := []domain.RunOn{
		{Form: "gloom*i*ly"},
		{Form: "ba*by", Variants: []string{"ba*bie"}},
		{Form: "box"},
	}

	tests := []struct {
		word string
		want string
		ok   bool
	}{
		{word: "gloomily", want: "gloom*i*ly", ok: true},
		{word: "babies", want: "ba*by", ok: true},
		{word: "babys", want: "ba*by", ok: true},
		{word: "babie", want: "ba*by", ok: true},
		{word: "boxes", want: "box", ok: true},
		{word: "boxs", want: "box", ok: true},
		{word: "boxed", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			t.Parallel()
			ro, ok := matchRunOn(tt.word, runOns)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, ro.Form)
			}
		})
	}
}

func TestResolveRecords_LastMatchWins(t *testing.T) {
	t.Parallel()

	// Two same-tier matches with conflicting splits: the later record wins.
	records := []domain.DictionaryRecord{
		{Headword: "ro*bot"},
		{Headword: "rob*ot"},
	}

	res, err := ResolveRecords("robot", records, State{})

	require.NoError(t, err)
	assert.Equal(t, Segmentation{"rob", "ot"}, res.Segmentation)
	assert.Equal(t, "rob*ot", res.Form)
}

func TestResolveRecords_LaterTierOverwritesEarlier(t *testing.T) {
	t.Parallel()

	records := []domain.DictionaryRecord{
		{Headword: "ba*by"},
		{Headword: "ba*by*hood", RunOns: []domain.RunOn{{Form: "ba*by"}}},
	}

	res, err := ResolveRecords("baby", records, State{})

	require.NoError(t, err)
	assert.Equal(t, MatchRunOn, res.Source)
	assert.True(t, res.State.BaseWordUsed)
}

func TestResolveRecords_OverrideFiresOnceAcrossRecords(t *testing.T) {
	t.Parallel()

	records := []domain.DictionaryRecord{
		{Headword: "ba*nana", Pronunciations: []string{"bə-ˈna-nə"}},
		{Headword: "ba*nana", Pronunciations: []string{"bə-ˈna-nə"}},
	}

	res, err := ResolveRecords("banana", records, State{})

	require.NoError(t, err)
	assert.True(t, res.State.OverrideUsed)
	// The second record cannot rebuild again, and as the last match it wins.
	assert.Equal(t, Segmentation{"ba", "nana"}, res.Segmentation)
}

func TestResolveRecords_FallbackPicksFirstLowercase(t *testing.T) {
	t.Parallel()

	records := []domain.DictionaryRecord{
		{Headword: "Jump*er"},
		{Headword: "jump", Pronunciations: []string{"ˈjəmp"}},
		{Headword: "jump*er"},
	}

	res, err := ResolveRecords("jumps", records, State{})

	require.NoError(t, err)
	assert.Equal(t, MatchFallback, res.Source)
	assert.Equal(t, Segmentation{"jump"}, res.Segmentation)
	assert.True(t, res.State.BaseWordUsed)
}

func TestResolveRecords_OnlyProperNouns(t *testing.T) {
	t.Parallel()

	records := []domain.DictionaryRecord{
		{Headword: "Xyz", Pronunciations: []string{"ˈeks-ˈwī-ˈzē"}},
	}

	_, err := ResolveRecords("xyz", records, State{})

	assert.ErrorIs(t, err, errNoCommonEntry)
}

func TestResolveRecords_MarkerOnlyHeadwordIsNotCommon(t *testing.T) {
	t.Parallel()

	_, err := ResolveRecords("xyz", []domain.DictionaryRecord{{Headword: "*"}}, State{})

	assert.ErrorIs(t, err, errNoCommonEntry)
}
