// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application from any view.
	Quit key.Binding

	// QuitResults exits the application when the input is not focused.
	QuitResults key.Binding

	// Resolve submits the selection.
	Resolve key.Binding

	// Back leaves the current view or returns focus to the input.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// SwitchList toggles between the input and the two result lists.
	SwitchList key.Binding

	// Remove drops the selected entry from the results.
	Remove key.Binding

	// Edit focuses the selection input.
	Edit key.Binding

	// Settings opens the settings view.
	Settings key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		QuitResults: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Resolve: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "look up"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		SwitchList: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "remove"),
		),
		Edit: key.NewBinding(
			key.WithKeys("i", "/"),
			key.WithHelp("i", "edit"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
	}
}

// InputHelp returns keybindings shown while typing a selection.
func (k *KeyMap) InputHelp() []key.Binding {
	return []key.Binding{k.Resolve, k.SwitchList, k.Quit}
}

// ResultsHelp returns keybindings shown while browsing results.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Up, k.SwitchList, k.Remove, k.Edit, k.Settings, k.QuitResults}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
