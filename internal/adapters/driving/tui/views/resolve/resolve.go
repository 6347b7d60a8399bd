// Package resolve provides the main view: a selection input above the
// entries found in the selection and the entries related to it.
package resolve

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ankify-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/ankify-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/ankify-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ankify-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/ankify-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ankify-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ankify-cli/internal/core/domain"
	"github.com/custodia-labs/ankify-cli/internal/core/ports/driving"
)

// Focus identifies which component receives keys.
type Focus int

const (
	FocusInput Focus = iota
	FocusPrimary
	FocusSecondary
)

// chromeHeight is the space taken by the header, input, words line and status bar.
const chromeHeight = 10

// View is the resolve view.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SelectionInput
	primary   *list.EntryList
	secondary *list.EntryList
	statusbar *status.Bar

	resolution driving.ResolutionService
	ctx        context.Context

	snapshot domain.Resolution
	focus    Focus
	err      error
	width    int
	height   int
	ready    bool
}

// NewView creates a new resolve view.
func NewView(s *styles.Styles, km *keymap.KeyMap, resolution driving.ResolutionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewSelectionInput(s),
		primary:    list.NewEntryList(s, "In selection", false),
		secondary:  list.NewEntryList(s, "Related", true),
		statusbar:  status.NewBar(s, km),
		resolution: resolution,
		ctx:        context.Background(),
		snapshot:   domain.NewResolution(),
		focus:      FocusInput,
		width:      80,
		height:     24,
	}
}

// WithContext sets the context passed to the resolution service.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the resolve view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ResolutionUpdated:
		v.SetSnapshot(msg.Snapshot)
		return v, nil

	case messages.ResolveFinished:
		v.handleResolveFinished(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focus == FocusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	if keymap.Matches(keyStr, v.keymap.SwitchList) {
		v.cycleFocus()
		return v, nil
	}

	if v.focus == FocusInput {
		switch {
		case keymap.Matches(keyStr, v.keymap.Resolve):
			return v, v.submit(v.input.Value())
		case keymap.Matches(keyStr, v.keymap.Back):
			v.input.Reset()
			return v, nil
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	active := v.activeList()
	switch {
	case keymap.Matches(keyStr, v.keymap.Back), keymap.Matches(keyStr, v.keymap.Edit):
		v.setFocus(FocusInput)
		return v, v.input.Focus()
	case keymap.Matches(keyStr, v.keymap.Remove):
		v.removeSelected(active)
		return v, nil
	case keymap.Matches(keyStr, v.keymap.Settings):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSettings}
		}
	case keymap.Matches(keyStr, v.keymap.QuitResults):
		return v, tea.Quit
	}

	active.Update(msg)
	return v, nil
}

// submit starts a resolution pass. Blank text clears the results.
func (v *View) submit(text string) tea.Cmd {
	if v.resolution == nil {
		return func() tea.Msg {
			return messages.ErrorOccurred{Err: ErrNoResolutionService}
		}
	}

	v.err = nil
	if strings.TrimSpace(text) != "" {
		v.statusbar.SetState(status.StateAnalyzing)
	}

	ctx := v.ctx
	return func() tea.Msg {
		_, err := v.resolution.HandleSelection(ctx, text)
		return messages.ResolveFinished{Text: text, Err: err}
	}
}

// handleResolveFinished surfaces errors the snapshot did not already report.
func (v *View) handleResolveFinished(msg messages.ResolveFinished) {
	if msg.Err == nil || errors.Is(msg.Err, domain.ErrSuperseded) {
		return
	}
	if v.snapshot.ErrorMsg != "" {
		return
	}
	v.setError(msg.Err)
}

func (v *View) removeSelected(active *list.EntryList) {
	entry := active.SelectedEntry()
	if entry == nil || v.resolution == nil {
		return
	}
	headword := entry.Headword
	v.SetSnapshot(v.resolution.RemoveResult(*entry))
	v.statusbar.SetMessage("Removed " + headword)
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// cycleFocus moves input → primary → secondary → input, skipping empty lists.
func (v *View) cycleFocus() {
	next := v.focus
	for range 3 {
		next = (next + 1) % 3
		if next == FocusInput ||
			(next == FocusPrimary && !v.primary.IsEmpty()) ||
			(next == FocusSecondary && !v.secondary.IsEmpty()) {
			break
		}
	}
	v.setFocus(next)
}

func (v *View) setFocus(f Focus) {
	v.focus = f
	v.primary.SetFocused(f == FocusPrimary)
	v.secondary.SetFocused(f == FocusSecondary)
	v.statusbar.SetInputMode(f == FocusInput)
	if f == FocusInput {
		v.input.Focus()
	} else {
		v.input.Blur()
	}
}

func (v *View) activeList() *list.EntryList {
	if v.focus == FocusSecondary {
		return v.secondary
	}
	return v.primary
}

// SetSnapshot renders a published snapshot. Focus falls back to the input
// when the focused list becomes empty.
func (v *View) SetSnapshot(res domain.Resolution) {
	v.snapshot = res
	v.primary.SetEntries(res.PrimaryResults)
	v.secondary.SetEntries(res.SecondaryResults)
	v.statusbar.SetResolution(res)
	if v.focus != FocusInput && v.activeList().IsEmpty() {
		v.setFocus(FocusInput)
	}
}

// View renders the resolve view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)
	sections = append(sections, v.styles.Title.Render("Ankify"), "", v.input.View(), "")

	if words := v.snapshot.ActiveWords.Items(); len(words) > 0 {
		sections = append(sections, v.styles.Muted.Render("Words: "+strings.Join(words, " · ")), "")
	}

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections,
		v.primary.View(),
		"",
		v.secondary.View(),
		"",
		v.statusbar.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions and splits the list space.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	listHeight := max((height-chromeHeight)/2, 4)
	v.input.SetWidth(width)
	v.primary.SetDimensions(width, listHeight)
	v.secondary.SetDimensions(width, listHeight)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Selection returns the text in the input.
func (v *View) Selection() string {
	return v.input.Value()
}

// SetSelection replaces the text in the input.
func (v *View) SetSelection(text string) {
	v.input.SetValue(text)
}

// Snapshot returns the last rendered snapshot.
func (v *View) Snapshot() domain.Resolution {
	return v.snapshot
}

// Focus returns the component receiving keys.
func (v *View) Focus() Focus {
	return v.focus
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Status returns the status bar state.
func (v *View) Status() status.State {
	return v.statusbar.State()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focus == FocusInput
}
