package domain

// Display placeholders for records missing data.
const (
	NoWordPlaceholder  = "(no word)"
	NoGlossPlaceholder = "(no gloss)"
)

// NormalizedEntry is a dictionary record reduced to its display fields.
type NormalizedEntry struct {
	Headword string        `json:"headword"`
	Word     string        `json:"word"`
	Reading  string        `json:"reading"`
	Gloss    string        `json:"gloss"`
	Senses   []string      `json:"senses"`
	Raw      RawDictRecord `json:"raw"`
}

// Clone returns a copy that shares no slices with e.
func (e NormalizedEntry) Clone() NormalizedEntry {
	e.Senses = cloneSlice(e.Senses)
	e.Raw = e.Raw.Clone()
	return e
}

// TermResults pairs a lookup candidate with the entries it produced.
type TermResults struct {
	Term  string
	Items []NormalizedEntry
}

// SenseReading records which reading a sense was first seen with.
type SenseReading struct {
	Text    string `json:"text"`
	Reading string `json:"reading"`
}

// GroupedEntry is the user-visible entry: all records sharing a written form.
type GroupedEntry struct {
	Word               string         `json:"word"`
	Reading            string         `json:"reading"`
	Readings           []string       `json:"readings"`
	Headword           string         `json:"headword"`
	Senses             []string       `json:"senses"`
	SensesWithReadings []SenseReading `json:"senses_with_readings"`
	Gloss              string         `json:"gloss"`
	Raw                RawDictRecord  `json:"raw"`
}

// Clone returns a copy that shares no slices with e.
func (e GroupedEntry) Clone() GroupedEntry {
	e.Readings = cloneSlice(e.Readings)
	e.Senses = cloneSlice(e.Senses)
	e.SensesWithReadings = cloneSlice(e.SensesWithReadings)
	e.Raw = e.Raw.Clone()
	return e
}

// Headword formats the display key for a word and reading.
func Headword(word, reading string) string {
	switch {
	case word != "" && reading != "":
		return word + "【" + reading + "】"
	case word != "":
		return word
	case reading != "":
		return reading
	default:
		return NoWordPlaceholder
	}
}

// GroupHeadword formats the display key for a word known under several
// readings, joined with an ideographic comma.
func GroupHeadword(word string, readings []string) string {
	if len(readings) == 0 {
		return word
	}
	joined := readings[0]
	for _, r := range readings[1:] {
		joined += "、" + r
	}
	return word + "【" + joined + "】"
}
