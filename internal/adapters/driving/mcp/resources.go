package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Ankify resources.
	uriScheme = "ankify://"

	currentResolutionURI = uriScheme + "resolution/current"
	settingsURI          = uriScheme + "settings"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         currentResolutionURI,
		Name:        "current-resolution",
		Description: "The most recent resolution: selection, entries and status",
		MIMEType:    "application/json",
	}, s.handleResolutionResource)

	if s.ports.Settings != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         settingsURI,
			Name:        "settings",
			Description: "Active tokenizer and dictionary settings",
			MIMEType:    "application/json",
		}, s.handleSettingsResource)
	}
}

// handleResolutionResource returns the current resolution snapshot.
func (s *Server) handleResolutionResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Resolution.Snapshot())
}

// handleSettingsResource returns the active settings.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}
	return jsonResource(req.Params.URI, settings)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
