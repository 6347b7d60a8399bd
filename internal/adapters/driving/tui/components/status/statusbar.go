// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ankify-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ankify-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ankify-cli/internal/core/domain"
)

// State represents the resolution phase shown in the bar.
type State string

const (
	StateIdle      State = "idle"
	StateAnalyzing State = "analyzing"
	StateLoading   State = "loading"
	StateResults   State = "results"
	StateMessage   State = "message"
	StateError     State = "error"
)

// Bar displays resolution status and keybinding hints.
type Bar struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	state       State
	message     string
	resultCount int
	inputMode   bool
	width       int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles:    s,
		keymap:    km,
		state:     StateIdle,
		inputMode: true,
		width:     80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update is a no-op; the bar is driven through its setters.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := max(s.width-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateAnalyzing:
		return s.styles.Muted.Render("Analyzing...")
	case StateLoading:
		return s.styles.Muted.Render("Looking up...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(s.message)
		}
		return s.styles.Error.Render("Error")
	case StateMessage:
		return s.styles.Warning.Render(s.message)
	case StateResults:
		return s.styles.Normal.Render(fmt.Sprintf("%d entries", s.resultCount))
	case StateIdle:
		if s.message != "" {
			return s.styles.Muted.Render(s.message)
		}
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.inputMode {
		bindings = s.keymap.InputHelp()
	} else {
		bindings = s.keymap.ResultsHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Help.Render(strings.Join(hints, " | "))
}

// SetResolution derives the bar state from a snapshot.
func (s *Bar) SetResolution(res domain.Resolution) {
	s.message = res.ErrorMsg
	s.resultCount = len(res.PrimaryResults) + len(res.SecondaryResults)

	switch {
	case res.Analyzing:
		s.state = StateAnalyzing
	case res.Loading:
		s.state = StateLoading
	case res.ErrorMsg == domain.NoResultsMessage:
		s.state = StateMessage
	case res.ErrorMsg != "":
		s.state = StateError
	case s.resultCount > 0:
		s.state = StateResults
	default:
		s.state = StateIdle
	}
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the message shown for message, error and idle states.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// ResultCount returns the number of entries last reported.
func (s *Bar) ResultCount() int {
	return s.resultCount
}

// SetInputMode switches the key hints between typing and browsing.
func (s *Bar) SetInputMode(input bool) {
	s.inputMode = input
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to its idle state.
func (s *Bar) Clear() {
	s.state = StateIdle
	s.message = ""
	s.resultCount = 0
}
