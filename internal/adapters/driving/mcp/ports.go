package mcp

import (
	"github.com/custodia-labs/ankify-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Resolution runs selections and owns the current results.
	Resolution driving.ResolutionService

	// Settings exposes the active configuration. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Resolution == nil {
		return ErrMissingResolutionService
	}
	return nil
}
