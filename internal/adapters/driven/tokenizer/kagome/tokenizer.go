// Package kagome provides a driven.Tokenizer backed by the kagome
// morphological analyzer and the IPA dictionary.
package kagome

import (
	"context"
	"fmt"
	"sync"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/custodia-labs/ankify-cli/internal/core/domain"
	"github.com/custodia-labs/ankify-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ankify-cli/internal/logger"
)

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// Tokenizer segments Japanese text with kagome. The dictionary is loaded on
// first use; loading takes noticeable time and memory.
type Tokenizer struct {
	mode tokenizer.TokenizeMode

	once    sync.Once
	kg      *tokenizer.Tokenizer
	initErr error
}

// New creates a tokenizer for the given mode. An unknown mode uses normal.
func New(mode domain.TokenizerMode) *Tokenizer {
	return &Tokenizer{mode: kagomeMode(mode)}
}

func kagomeMode(mode domain.TokenizerMode) tokenizer.TokenizeMode {
	switch mode {
	case domain.TokenizerModeSearch:
		return tokenizer.Search
	case domain.TokenizerModeExtended:
		return tokenizer.Extended
	default:
		return tokenizer.Normal
	}
}

func (t *Tokenizer) init() error {
	t.once.Do(func() {
		defer logger.Timed("load IPA dictionary")()
		kg, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
		if err != nil {
			t.initErr = fmt.Errorf("%w: %w", domain.ErrTokenizerUnavailable, err)
			return
		}
		t.kg = kg
	})
	return t.initErr
}

// Tokenize segments text into tokens in input order.
func (t *Tokenizer) Tokenize(ctx context.Context, text string) ([]domain.Token, error) {
	if err := t.init(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ktoks := t.kg.Analyze(text, t.mode)
	tokens := make([]domain.Token, 0, len(ktoks))
	for _, kt := range ktoks {
		tokens = append(tokens, convertToken(kt))
	}
	return tokens, nil
}

// convertToken keeps the top-level part of speech and the base form.
func convertToken(kt tokenizer.Token) domain.Token {
	tok := domain.Token{
		SurfaceForm: kt.Surface,
		BasicForm:   domain.UnknownBasicForm,
	}
	if pos := kt.POS(); len(pos) > 0 {
		tok.POS = pos[0]
	}
	if base, ok := kt.BaseForm(); ok && base != "" {
		tok.BasicForm = base
	}
	return tok
}
