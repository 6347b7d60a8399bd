package domain

// Parts of speech, as tagged by the IPA dictionary.
const (
	POSNoun      = "名詞"
	POSVerb      = "動詞"
	POSAdjective = "形容詞"
)

// UnknownBasicForm is the tokenizer's marker for a lemma it could not derive.
const UnknownBasicForm = "*"

// Token is a single morpheme produced by a tokenizer.
type Token struct {
	// SurfaceForm is the text as it appears in the input.
	SurfaceForm string `json:"surface_form"`

	// BasicForm is the dictionary (lemma) form, or UnknownBasicForm.
	BasicForm string `json:"basic_form"`

	// POS is the top-level part of speech.
	POS string `json:"pos"`
}

// IsContentWord reports whether the token is a noun, verb or adjective.
func (t Token) IsContentWord() bool {
	switch t.POS {
	case POSNoun, POSVerb, POSAdjective:
		return true
	default:
		return false
	}
}

// Lemma returns the basic form, falling back to the surface form when the
// basic form is empty or unknown.
func (t Token) Lemma() string {
	if t.BasicForm == "" || t.BasicForm == UnknownBasicForm {
		return t.SurfaceForm
	}
	return t.BasicForm
}
