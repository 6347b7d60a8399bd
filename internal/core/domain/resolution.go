package domain

import "time"

// Resolution is an immutable snapshot of the resolution state.
// Services publish a fresh snapshot after every transition; holders of a
// snapshot never observe later changes.
type Resolution struct {
	// PassID identifies the pass that produced this snapshot.
	PassID string `json:"pass_id,omitempty"`

	// Text is the selection as last submitted, including blank input.
	Text string `json:"text"`

	// OriginalSelection is the non-blank selection being resolved.
	OriginalSelection string `json:"original_selection"`

	// Loading is true while dictionary lookups are in flight.
	Loading bool `json:"loading"`

	// Analyzing is true while the tokenizer runs.
	Analyzing bool `json:"analyzing"`

	// ErrorMsg is a user-visible failure or informational message.
	ErrorMsg string `json:"error_msg,omitempty"`

	// Tokens holds the tokenizer output for diagnostics.
	Tokens []Token `json:"tokens,omitempty"`

	PrimaryResults   []GroupedEntry `json:"primary_results"`
	SecondaryResults []GroupedEntry `json:"secondary_results"`

	// ActiveWords lists candidate terms that produced at least one entry.
	ActiveWords *OrderedSet[string] `json:"active_words"`

	// WordToResults maps each active term to the entries it produced.
	WordToResults *OrderedMap[string, []NormalizedEntry] `json:"word_to_results"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NewResolution returns an empty snapshot.
func NewResolution() Resolution {
	return Resolution{
		ActiveWords:   NewOrderedSet[string](),
		WordToResults: NewOrderedMap[string, []NormalizedEntry](),
	}
}

// Clone returns a deep copy whose collections can be modified freely.
func (r Resolution) Clone() Resolution {
	out := r
	out.Tokens = cloneSlice(r.Tokens)
	out.PrimaryResults = cloneEach(r.PrimaryResults, GroupedEntry.Clone)
	out.SecondaryResults = cloneEach(r.SecondaryResults, GroupedEntry.Clone)
	out.ActiveWords = r.ActiveWords.Clone()
	out.WordToResults = NewOrderedMap[string, []NormalizedEntry]()
	for _, term := range r.WordToResults.Keys() {
		items, _ := r.WordToResults.Get(term)
		out.WordToResults.Set(term, cloneEach(items, NormalizedEntry.Clone))
	}
	return out
}

// Results returns primary then secondary entries.
func (r Resolution) Results() []GroupedEntry {
	out := make([]GroupedEntry, 0, len(r.PrimaryResults)+len(r.SecondaryResults))
	out = append(out, r.PrimaryResults...)
	return append(out, r.SecondaryResults...)
}

// HasResults reports whether either partition is non-empty.
func (r Resolution) HasResults() bool {
	return len(r.PrimaryResults) > 0 || len(r.SecondaryResults) > 0
}

// Busy reports whether a pass is still running.
func (r Resolution) Busy() bool {
	return r.Loading || r.Analyzing
}

// IsActive reports whether term produced entries in the current pass.
func (r Resolution) IsActive(term string) bool {
	return r.ActiveWords.Has(term)
}

// ResultsFor returns the entries a term produced.
func (r Resolution) ResultsFor(term string) []NormalizedEntry {
	items, _ := r.WordToResults.Get(term)
	return items
}

// Find returns the entry with the given headword.
func (r Resolution) Find(headword string) (GroupedEntry, bool) {
	for _, e := range r.Results() {
		if e.Headword == headword {
			return e, true
		}
	}
	return GroupedEntry{}, false
}

func cloneEach[T any](in []T, clone func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
