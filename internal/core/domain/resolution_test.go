package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResolution() Resolution {
	r := NewResolution()
	r.OriginalSelection = "食べるりんご"
	r.PrimaryResults = []GroupedEntry{{Word: "食べる", Headword: "食べる【たべる】"}}
	r.SecondaryResults = []GroupedEntry{{Word: "走る", Headword: "走る【はしる】"}}
	r.ActiveWords.Add("食べる")
	r.WordToResults.Set("食べる", []NormalizedEntry{{Headword: "食べる【たべる】", Word: "食べる"}})
	return r
}

func TestNewResolution_Empty(t *testing.T) {
	r := NewResolution()
	assert.False(t, r.HasResults())
	assert.False(t, r.Busy())
	assert.Equal(t, 0, r.ActiveWords.Len())
	assert.Equal(t, 0, r.WordToResults.Len())
}

func TestResolution_Results(t *testing.T) {
	r := sampleResolution()
	results := r.Results()
	require.Len(t, results, 2)
	assert.Equal(t, "食べる", results[0].Word)
	assert.Equal(t, "走る", results[1].Word)
	assert.True(t, r.HasResults())
}

func TestResolution_CloneIsDeep(t *testing.T) {
	r := sampleResolution()
	c := r.Clone()

	c.PrimaryResults[0].Word = "changed"
	c.ActiveWords.Delete("食べる")
	c.WordToResults.Delete("食べる")

	assert.Equal(t, "食べる", r.PrimaryResults[0].Word)
	assert.True(t, r.IsActive("食べる"))
	assert.Len(t, r.ResultsFor("食べる"), 1)
}

func TestResolution_CloneCopiesEntrySlices(t *testing.T) {
	r := NewResolution()
	r.PrimaryResults = []GroupedEntry{{
		Word:               "食べる",
		Readings:           []string{"たべる"},
		Senses:             []string{"to eat"},
		SensesWithReadings: []SenseReading{{Text: "to eat", Reading: "たべる"}},
		Raw: RawDictRecord{
			Japanese: []JapaneseForm{NewJapaneseForm("食べる", "たべる")},
			Senses:   []RawSense{{EnglishDefinitions: []string{"to eat"}}},
		},
	}}
	r.WordToResults.Set("食べる", []NormalizedEntry{{Word: "食べる", Senses: []string{"to eat"}}})

	c := r.Clone()
	got := &c.PrimaryResults[0]
	got.Readings[0] = "x"
	got.Senses[0] = "x"
	got.SensesWithReadings[0].Text = "x"
	got.Raw.Senses[0].EnglishDefinitions[0] = "x"
	*got.Raw.Japanese[0].Word = "x"
	c.ResultsFor("食べる")[0].Senses[0] = "x"

	want := r.PrimaryResults[0]
	assert.Equal(t, "たべる", want.Readings[0])
	assert.Equal(t, "to eat", want.Senses[0])
	assert.Equal(t, "to eat", want.SensesWithReadings[0].Text)
	assert.Equal(t, "to eat", want.Raw.Senses[0].EnglishDefinitions[0])
	assert.Equal(t, "食べる", want.Raw.PrimaryForm().WordValue())
	assert.Equal(t, "to eat", r.ResultsFor("食べる")[0].Senses[0])
}

func TestResolution_Find(t *testing.T) {
	r := sampleResolution()

	e, ok := r.Find("走る【はしる】")
	require.True(t, ok)
	assert.Equal(t, "走る", e.Word)

	_, ok = r.Find("missing")
	assert.False(t, ok)
}

func TestResolution_Busy(t *testing.T) {
	assert.True(t, Resolution{Loading: true}.Busy())
	assert.True(t, Resolution{Analyzing: true}.Busy())
}
