// Package settings provides the settings editor view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ankify-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ankify-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ankify-cli/internal/core/domain"
	"github.com/custodia-labs/ankify-cli/internal/core/ports/driving"
)

// ErrNoSettingsService indicates that no settings service was provided.
var ErrNoSettingsService = errors.New("settings service not available")

const (
	keyDown  = "down"
	keyEnter = "enter"
	keyEsc   = "esc"
)

// View lists every setting and edits one value at a time.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	keys     []string
	err      error
	notice   string

	selected int
	editing  bool
	editor   textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	editor := textinput.New()
	editor.CharLimit = 256

	v := &View{
		styles:          s,
		settingsService: settingsService,
		editor:          editor,
	}
	if settingsService != nil {
		v.keys = settingsService.Keys()
	}
	return v
}

// Init loads the current settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

func (v *View) saveSetting(key, value string) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingSaved{Key: key, Value: value, Err: ErrNoSettingsService}
		}
		err := v.settingsService.Set(key, value)
		return messages.SettingSaved{Key: key, Value: value, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.notice = fmt.Sprintf("Set %s = %s", msg.Key, msg.Value)
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKeys(msg)
		}
		return v.handleListKeys(msg)
	}

	return v, nil
}

func (v *View) handleListKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewResolve}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(v.keys)-1 {
			v.selected++
		}
	case keyEnter:
		if v.selected < len(v.keys) {
			v.editing = true
			v.editor.SetValue(v.value(v.keys[v.selected]))
			v.editor.CursorEnd()
			return v, v.editor.Focus()
		}
	}
	return v, nil
}

func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		v.stopEditing()
		return v, nil
	case keyEnter:
		key := v.keys[v.selected]
		value := strings.TrimSpace(v.editor.Value())
		v.stopEditing()
		return v, v.saveSetting(key, value)
	}

	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	return v, cmd
}

func (v *View) stopEditing() {
	v.editing = false
	v.editor.Blur()
	v.editor.Reset()
}

func (v *View) value(key string) string {
	if v.settings == nil {
		return ""
	}
	val, _ := v.settings.Value(key)
	return val
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.settingsService == nil {
		b.WriteString(v.styles.Error.Render(ErrNoSettingsService.Error()))
		b.WriteString("\n")
		return b.String()
	}

	if v.settings == nil && v.err == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		b.WriteString("\n")
		return b.String()
	}

	for i, key := range v.keys {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		value := v.value(key)
		if value == "" {
			value = v.styles.Muted.Render("(default)")
		}

		switch {
		case i == v.selected && v.editing:
			b.WriteString(fmt.Sprintf("%s%-32s %s", indicator, key, v.editor.View()))
		case i == v.selected:
			b.WriteString(v.styles.Selected.Render(fmt.Sprintf("%s%-32s", indicator, key)) + " " + value)
		default:
			b.WriteString(v.styles.Normal.Render(fmt.Sprintf("%s%-32s", indicator, key)) + " " + value)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.settings != nil {
		if err := v.settings.Validate(); err != nil {
			b.WriteString(v.styles.Warning.Render("Configuration is invalid: " + err.Error()))
			b.WriteString("\n")
		}
	}
	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	} else if v.notice != "" {
		b.WriteString(v.styles.Muted.Render(v.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.editing {
		b.WriteString(v.styles.Help.Render("enter: save | esc: cancel"))
	} else {
		b.WriteString(v.styles.Help.Render("↑/↓: navigate | enter: edit | esc: back"))
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.editor.Width = max(width-40, 20)
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Selected returns the index of the selected key.
func (v *View) Selected() int {
	return v.selected
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
