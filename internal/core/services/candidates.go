package services

import (
	"strings"

	"github.com/custodia-labs/ankify-cli/internal/core/domain"
)

// ExtractCandidates turns a selection and its tokens into lookup terms.
// The selection itself always comes first, followed by the lemma of every
// noun, verb and adjective. Duplicates and empty strings are removed,
// keeping first-occurrence order.
func ExtractCandidates(text string, tokens []domain.Token) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	seen := domain.NewOrderedSet(text)
	for _, tok := range tokens {
		if !tok.IsContentWord() {
			continue
		}
		if lemma := tok.Lemma(); lemma != "" {
			seen.Add(lemma)
		}
	}
	return seen.Items()
}
