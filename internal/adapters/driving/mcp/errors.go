// Package mcp provides an MCP (Model Context Protocol) server adapter for Ankify.
// It lets AI assistants resolve Japanese selections into dictionary entries.
package mcp

import "errors"

// ErrMissingResolutionService is returned when the resolution service is not provided.
var ErrMissingResolutionService = errors.New("mcp: resolution service is required")
