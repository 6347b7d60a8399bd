package domain

// JapaneseForm is one written/reading pair of a dictionary record.
// Either field may be absent on the wire.
type JapaneseForm struct {
	Word    *string `json:"word,omitempty"`
	Reading *string `json:"reading,omitempty"`
}

// NewJapaneseForm builds a form, leaving empty values absent.
func NewJapaneseForm(word, reading string) JapaneseForm {
	var f JapaneseForm
	if word != "" {
		f.Word = &word
	}
	if reading != "" {
		f.Reading = &reading
	}
	return f
}

// WordValue returns the written form, or "" when absent.
func (f JapaneseForm) WordValue() string {
	if f.Word == nil {
		return ""
	}
	return *f.Word
}

// ReadingValue returns the reading, or "" when absent.
func (f JapaneseForm) ReadingValue() string {
	if f.Reading == nil {
		return ""
	}
	return *f.Reading
}

// RawSense is one sense of a dictionary record.
type RawSense struct {
	EnglishDefinitions []string `json:"english_definitions"`
}

// RawDictRecord is a dictionary record in the shape returned by the backend.
type RawDictRecord struct {
	Japanese []JapaneseForm `json:"japanese"`
	Senses   []RawSense     `json:"senses"`
}

// Clone returns a copy that shares no slices or form values with r.
func (r RawDictRecord) Clone() RawDictRecord {
	r.Japanese = cloneEach(r.Japanese, func(f JapaneseForm) JapaneseForm {
		return JapaneseForm{Word: clonePtr(f.Word), Reading: clonePtr(f.Reading)}
	})
	r.Senses = cloneEach(r.Senses, func(s RawSense) RawSense {
		return RawSense{EnglishDefinitions: cloneSlice(s.EnglishDefinitions)}
	})
	return r
}

// PrimaryForm returns the first Japanese form, or an empty form.
func (r RawDictRecord) PrimaryForm() JapaneseForm {
	if len(r.Japanese) == 0 {
		return JapaneseForm{}
	}
	return r.Japanese[0]
}

// LookupData wraps the records of a successful lookup.
type LookupData struct {
	Data []RawDictRecord `json:"data"`
}

// LookupResponse is the result of a single dictionary lookup.
// A response that is not OK carries no records and is not an error.
type LookupResponse struct {
	OK   bool        `json:"ok"`
	Data *LookupData `json:"data,omitempty"`
}

// FoundResponse builds an OK response carrying records.
func FoundResponse(records []RawDictRecord) LookupResponse {
	return LookupResponse{OK: true, Data: &LookupData{Data: records}}
}

// Records returns the response records, or nil when the lookup was not OK.
func (r LookupResponse) Records() []RawDictRecord {
	if !r.OK || r.Data == nil {
		return nil
	}
	return r.Data.Data
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
