// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ankify-cli/internal/adapters/driving/tui/styles"
)

const (
	selectionCharLimit = 512
	minInputWidth      = 20
	labelWidth         = 14
)

// SelectionInput is the field the user types or pastes Japanese text into.
type SelectionInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewSelectionInput creates a focused selection input.
func NewSelectionInput(s *styles.Styles) *SelectionInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Paste or type Japanese text..."
	ti.Focus()
	ti.CharLimit = selectionCharLimit
	ti.Width = 50

	return &SelectionInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init starts the cursor blinking.
func (s *SelectionInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (s *SelectionInput) Update(msg tea.Msg) (*SelectionInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the labelled input.
func (s *SelectionInput) View() string {
	label := s.styles.Title.Render("Selection: ")
	field := s.styles.InputField.Render(s.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current text.
func (s *SelectionInput) Value() string {
	return s.textinput.Value()
}

// SetValue replaces the current text.
func (s *SelectionInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (s *SelectionInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SelectionInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SelectionInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the rendered width, label included.
func (s *SelectionInput) SetWidth(width int) {
	s.width = width
	s.textinput.Width = max(width-labelWidth, minInputWidth)
}

// Width returns the current width.
func (s *SelectionInput) Width() int {
	return s.width
}

// Reset clears the input.
func (s *SelectionInput) Reset() {
	s.textinput.Reset()
}
