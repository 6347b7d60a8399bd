// Package tui provides an interactive terminal user interface for ankify.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/ankify-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Resolution resolves selections and publishes snapshots. Required.
	Resolution driving.ResolutionService

	// Settings enables the settings view when set.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(resolution driving.ResolutionService, settings driving.SettingsService) *Ports {
	return &Ports{
		Resolution: resolution,
		Settings:   settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Resolution == nil {
		return ErrMissingResolutionService
	}
	return nil
}
