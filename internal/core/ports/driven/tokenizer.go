package driven

import (
	"context"

	"github.com/custodia-labs/ankify-cli/internal/core/domain"
)

// Tokenizer splits text into morphemes.
type Tokenizer interface {
	// Tokenize returns the tokens of text in input order.
	Tokenize(ctx context.Context, text string) ([]domain.Token, error)
}
