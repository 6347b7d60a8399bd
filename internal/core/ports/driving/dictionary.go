package driving

import (
	"context"
	"io"
)

// ImportStats summarises a dictionary import.
type ImportStats struct {
	// Terms is the number of terms written.
	Terms int `json:"terms"`

	// Records is the total number of records written.
	Records int `json:"records"`

	// Skipped counts malformed lines.
	Skipped int `json:"skipped"`
}

// DictionaryService manages the offline dictionary.
type DictionaryService interface {
	// Import reads JSON Lines of {"term": ..., "data": [...]} into the store.
	Import(ctx context.Context, r io.Reader) (ImportStats, error)

	// Count returns the number of stored terms.
	Count(ctx context.Context) (int, error)
}
