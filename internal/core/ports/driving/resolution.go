package driving

import (
	"context"

	"github.com/custodia-labs/ankify-cli/internal/core/domain"
)

// ResolutionService resolves selections into dictionary entries and holds
// the resulting state. Presentation layers read snapshots and never mutate
// state except through these methods.
type ResolutionService interface {
	// HandleSelection resolves text and returns the resulting snapshot.
	// Blank text clears the state. Failures are reported in the snapshot's
	// ErrorMsg and also returned wrapped around domain.ErrTokenization or
	// domain.ErrLookup. A pass replaced by a newer call returns
	// domain.ErrSuperseded and leaves state untouched.
	HandleSelection(ctx context.Context, text string) (domain.Resolution, error)

	// RemoveResult removes the entry with entry's headword from the results.
	RemoveResult(entry domain.GroupedEntry) domain.Resolution

	// Snapshot returns the current state.
	Snapshot() domain.Resolution

	// Subscribe registers an observer. The channel always holds the most
	// recent undelivered snapshot. Calling the returned func unsubscribes
	// and closes the channel.
	Subscribe() (<-chan domain.Resolution, func())
}
