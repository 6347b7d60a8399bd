package resolve

import "errors"

// Error definitions for the resolve view.
var (
	// ErrNoResolutionService indicates that no resolution service was provided.
	ErrNoResolutionService = errors.New("resolution service is required")
)
