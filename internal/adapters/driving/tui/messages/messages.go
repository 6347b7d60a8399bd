// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/ankify-cli/internal/core/domain"
)

// ResolutionUpdated carries a snapshot published by the resolution service.
type ResolutionUpdated struct {
	Snapshot domain.Resolution
}

// SubscriptionClosed signals the snapshot channel was closed.
type SubscriptionClosed struct{}

// ResolveFinished is sent when a HandleSelection call returns.
// The snapshot itself arrives separately as ResolutionUpdated.
type ResolveFinished struct {
	Text string
	Err  error
}

// EntryRemoved is sent after an entry is removed from the results.
type EntryRemoved struct {
	Headword string
	Snapshot domain.Resolution
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewResolve is the selection input and results view.
	ViewResolve ViewType = iota
	// ViewSettings is the settings editor.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewResolve:
		return "resolve"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingSaved signals a single setting was written.
type SettingSaved struct {
	Key   string
	Value string
	Err   error
}
