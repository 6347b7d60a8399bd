package memory

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/ankify-cli/internal/core/domain"
	"github.com/custodia-labs/ankify-cli/internal/core/ports/driven"
)

// Ensure DictionaryStore implements the interface.
var _ driven.DictionaryStore = (*DictionaryStore)(nil)

// DictionaryStore is an in-memory implementation of driven.DictionaryStore.
// Terms are matched exactly after NFC normalization.
type DictionaryStore struct {
	mu    sync.RWMutex
	terms map[string][]domain.RawDictRecord
}

// NewDictionaryStore creates a new in-memory dictionary store.
func NewDictionaryStore() *DictionaryStore {
	return &DictionaryStore{
		terms: make(map[string][]domain.RawDictRecord),
	}
}

func termKey(term string) string {
	return norm.NFC.String(strings.TrimSpace(term))
}

// Lookup returns the records stored for term.
func (s *DictionaryStore) Lookup(ctx context.Context, term string) (domain.LookupResponse, error) {
	if err := ctx.Err(); err != nil {
		return domain.LookupResponse{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	records, ok := s.terms[termKey(term)]
	if !ok || len(records) == 0 {
		return domain.LookupResponse{OK: false}, nil
	}
	out := make([]domain.RawDictRecord, len(records))
	copy(out, records)
	return domain.FoundResponse(out), nil
}

// Put replaces the records stored for term.
func (s *DictionaryStore) Put(_ context.Context, term string, records []domain.RawDictRecord) error {
	key := termKey(term)
	if key == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]domain.RawDictRecord, len(records))
	copy(stored, records)
	s.terms[key] = stored
	return nil
}

// Delete removes a term.
func (s *DictionaryStore) Delete(_ context.Context, term string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := termKey(term)
	if _, ok := s.terms[key]; !ok {
		return domain.ErrNotFound
	}
	delete(s.terms, key)
	return nil
}

// Count returns the number of stored terms.
func (s *DictionaryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.terms), nil
}
