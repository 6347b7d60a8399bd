package driven

import (
	"context"

	"github.com/custodia-labs/ankify-cli/internal/core/domain"
)

// Dictionary answers lookups for a single term.
// A term with no entries yields a response that is not OK, not an error.
type Dictionary interface {
	Lookup(ctx context.Context, term string) (domain.LookupResponse, error)
}

// DictionaryStore is a Dictionary whose contents can be written.
type DictionaryStore interface {
	Dictionary

	// Put replaces the records stored for term.
	Put(ctx context.Context, term string, records []domain.RawDictRecord) error

	// Delete removes term. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, term string) error

	// Count returns the number of stored terms.
	Count(ctx context.Context) (int, error)
}
