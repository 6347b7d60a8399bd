package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/ankify-cli/internal/core/domain"
)

// --- Mock implementations ---

// mockTokenizer implements driven.Tokenizer for testing.
type mockTokenizer struct {
	tokens []domain.Token
	err    error
	// block, when set, holds Tokenize until it is closed or ctx ends.
	block chan struct{}
}

func (m *mockTokenizer) Tokenize(ctx context.Context, _ string) ([]domain.Token, error) {
	if m.block != nil {
		select {
		case <-m.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.tokens, nil
}

// mockDictionary implements driven.Dictionary for testing.
type mockDictionary struct {
	mu      sync.Mutex
	records map[string][]domain.RawDictRecord
	errs    map[string]error
	panics  map[string]bool
	calls   []string
}

func newMockDictionary() *mockDictionary {
	return &mockDictionary{
		records: make(map[string][]domain.RawDictRecord),
		errs:    make(map[string]error),
		panics:  make(map[string]bool),
	}
}

func (m *mockDictionary) with(term string, records ...domain.RawDictRecord) *mockDictionary {
	m.records[term] = records
	return m
}

func (m *mockDictionary) Lookup(ctx context.Context, term string) (domain.LookupResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, term)
	m.mu.Unlock()

	if m.panics[term] {
		panic("dictionary exploded")
	}
	if err := ctx.Err(); err != nil {
		return domain.LookupResponse{}, err
	}
	if err := m.errs[term]; err != nil {
		return domain.LookupResponse{}, err
	}
	records, ok := m.records[term]
	if !ok {
		return domain.LookupResponse{OK: false}, nil
	}
	return domain.FoundResponse(records), nil
}

func (m *mockDictionary) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// record builds a dictionary record with one form and one sense per
// definition group.
func record(word, reading string, senses ...[]string) domain.RawDictRecord {
	rec := domain.RawDictRecord{
		Japanese: []domain.JapaneseForm{domain.NewJapaneseForm(word, reading)},
	}
	for _, defs := range senses {
		rec.Senses = append(rec.Senses, domain.RawSense{EnglishDefinitions: defs})
	}
	return rec
}

// tabetaTokens is the tokenizer output for 食べた.
func tabetaTokens() []domain.Token {
	return []domain.Token{
		{SurfaceForm: "食べ", BasicForm: "食べる", POS: domain.POSVerb},
		{SurfaceForm: "た", BasicForm: "た", POS: "助動詞"},
	}
}
