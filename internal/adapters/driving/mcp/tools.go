package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ankify-cli/internal/core/domain"
)

// ResolveInput is the input schema for the resolve_selection tool.
type ResolveInput struct {
	Text string `json:"text" jsonschema:"the Japanese text to resolve, e.g. a word or sentence"`
}

// RemoveInput is the input schema for the remove_result tool.
type RemoveInput struct {
	Headword string `json:"headword" jsonschema:"headword of the entry to remove, as returned by resolve_selection"`
}

// ResolutionOutput is the output schema for both tools.
type ResolutionOutput struct {
	Selection   string        `json:"selection"`
	Primary     []EntryOutput `json:"primary"`
	Secondary   []EntryOutput `json:"secondary"`
	ActiveWords []string      `json:"active_words"`
	Message     string        `json:"message,omitempty"`
}

// EntryOutput is a single grouped dictionary entry.
type EntryOutput struct {
	Headword string        `json:"headword"`
	Word     string        `json:"word"`
	Readings []string      `json:"readings"`
	Gloss    string        `json:"gloss"`
	Senses   []SenseOutput `json:"senses"`
}

// SenseOutput is one sense and the reading it belongs to.
type SenseOutput struct {
	Text    string `json:"text"`
	Reading string `json:"reading,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "resolve_selection",
		Description: "Tokenize Japanese text and look up the text and the dictionary form " +
			"of each content word. Primary entries appear literally in the text.",
	}, s.handleResolve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_result",
		Description: "Remove an entry from the current results by headword",
	}, s.handleRemove)
}

// handleResolve handles the resolve_selection tool invocation. Tokenizer and
// lookup failures are reported in the output message.
func (s *Server) handleResolve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResolveInput,
) (*mcp.CallToolResult, ResolutionOutput, error) {
	snap, err := s.ports.Resolution.HandleSelection(ctx, input.Text)
	if err != nil && !errors.Is(err, domain.ErrTokenization) && !errors.Is(err, domain.ErrLookup) {
		return nil, ResolutionOutput{}, err
	}
	return nil, toResolutionOutput(snap), nil
}

// handleRemove handles the remove_result tool invocation.
func (s *Server) handleRemove(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RemoveInput,
) (*mcp.CallToolResult, ResolutionOutput, error) {
	entry, ok := s.ports.Resolution.Snapshot().Find(input.Headword)
	if !ok {
		return nil, ResolutionOutput{}, fmt.Errorf("%w: no entry with headword %q", domain.ErrNotFound, input.Headword)
	}
	return nil, toResolutionOutput(s.ports.Resolution.RemoveResult(entry)), nil
}

func toResolutionOutput(snap domain.Resolution) ResolutionOutput {
	return ResolutionOutput{
		Selection:   snap.OriginalSelection,
		Primary:     toEntryOutputs(snap.PrimaryResults),
		Secondary:   toEntryOutputs(snap.SecondaryResults),
		ActiveWords: snap.ActiveWords.Items(),
		Message:     snap.ErrorMsg,
	}
}

func toEntryOutputs(entries []domain.GroupedEntry) []EntryOutput {
	out := make([]EntryOutput, len(entries))
	for i := range entries {
		e := entries[i]
		senses := make([]SenseOutput, len(e.SensesWithReadings))
		for j, sr := range e.SensesWithReadings {
			senses[j] = SenseOutput{Text: sr.Text, Reading: sr.Reading}
		}
		out[i] = EntryOutput{
			Headword: e.Headword,
			Word:     e.Word,
			Readings: e.Readings,
			Gloss:    e.Gloss,
			Senses:   senses,
		}
	}
	return out
}
