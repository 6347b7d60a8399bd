// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ankify-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ankify-cli/internal/core/domain"
)

// maxSenses bounds the senses rendered beneath each headword.
const maxSenses = 3

// EntryList displays grouped dictionary entries in a navigable list.
type EntryList struct {
	title    string
	entries  []domain.GroupedEntry
	selected int
	focused  bool
	related  bool
	styles   *styles.Styles
	width    int
	height   int
}

// NewEntryList creates an entry list. Related lists use the secondary
// heading colour.
func NewEntryList(s *styles.Styles, title string, related bool) *EntryList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &EntryList{
		title:   title,
		related: related,
		styles:  s,
		width:   80,
		height:  10,
	}
}

// Init initialises the entry list.
func (l *EntryList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *EntryList) Update(msg tea.Msg) (*EntryList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the heading and the visible entries.
func (l *EntryList) View() string {
	heading := l.styles.Section
	if l.related {
		heading = l.styles.Related
	}
	lines := []string{heading.Render(fmt.Sprintf("%s (%d)", l.title, len(l.entries)))}

	if len(l.entries) == 0 {
		lines = append(lines, l.styles.Muted.Render("  (none)"))
		return strings.Join(lines, "\n")
	}

	start, end := l.visibleRange()
	for i := start; i < end; i++ {
		lines = append(lines, l.renderEntry(i, &l.entries[i]))
	}
	if end < len(l.entries) {
		lines = append(lines, l.styles.Muted.Render(fmt.Sprintf("  … %d more", len(l.entries)-end)))
	}

	return strings.Join(lines, "\n")
}

// visibleRange keeps the selection on screen. Each entry takes a headword
// line plus up to maxSenses sense lines.
func (l *EntryList) visibleRange() (int, int) {
	visible := max((l.height-2)/(maxSenses+1), 1)

	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.entries))
	return start, end
}

func (l *EntryList) renderEntry(index int, entry *domain.GroupedEntry) string {
	indicator := "  "
	if index == l.selected && l.focused {
		indicator = "> "
	}

	var head string
	if index == l.selected && l.focused {
		head = l.styles.Selected.Render(indicator + entry.Headword)
	} else {
		head = indicator + l.styles.Headword.Render(entry.Headword)
	}

	lines := []string{head}
	lines = append(lines, l.renderSenses(entry)...)
	return strings.Join(lines, "\n")
}

// renderSenses tags each sense with its reading only when the entry has
// more than one reading.
func (l *EntryList) renderSenses(entry *domain.GroupedEntry) []string {
	if len(entry.SensesWithReadings) == 0 {
		return []string{l.styles.Muted.Render("      " + l.truncate(entry.Gloss))}
	}

	tagged := len(entry.Readings) > 1
	n := min(len(entry.SensesWithReadings), maxSenses)
	out := make([]string, 0, n+1)
	for i := 0; i < n; i++ {
		sr := entry.SensesWithReadings[i]
		line := fmt.Sprintf("      %d. %s", i+1, l.truncate(sr.Text))
		if tagged && sr.Reading != "" {
			line = l.styles.Normal.Render(line) + " " + l.styles.Reading.Render("("+sr.Reading+")")
		} else {
			line = l.styles.Normal.Render(line)
		}
		out = append(out, line)
	}
	if extra := len(entry.SensesWithReadings) - n; extra > 0 {
		out = append(out, l.styles.Muted.Render(fmt.Sprintf("      +%d more", extra)))
	}
	return out
}

func (l *EntryList) truncate(s string) string {
	limit := max(l.width-12, 20)
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}

// SetEntries replaces the entries, keeping the selection in range.
func (l *EntryList) SetEntries(entries []domain.GroupedEntry) {
	l.entries = entries
	if l.selected >= len(entries) {
		l.selected = max(len(entries)-1, 0)
	}
}

// Entries returns the current entries.
func (l *EntryList) Entries() []domain.GroupedEntry {
	return l.entries
}

// Selected returns the index of the selected entry.
func (l *EntryList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *EntryList) SetSelected(index int) {
	if index >= 0 && index < len(l.entries) {
		l.selected = index
	}
}

// SelectedEntry returns the currently selected entry, or nil if none.
func (l *EntryList) SelectedEntry() *domain.GroupedEntry {
	if len(l.entries) == 0 || l.selected < 0 || l.selected >= len(l.entries) {
		return nil
	}
	return &l.entries[l.selected]
}

// MoveUp moves selection up.
func (l *EntryList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *EntryList) MoveDown() {
	if l.selected < len(l.entries)-1 {
		l.selected++
	}
}

// SetFocused marks the list as receiving navigation keys.
func (l *EntryList) SetFocused(focused bool) {
	l.focused = focused
}

// Focused reports whether the list receives navigation keys.
func (l *EntryList) Focused() bool {
	return l.focused
}

// SetDimensions sets the component dimensions.
func (l *EntryList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of entries.
func (l *EntryList) Count() int {
	return len(l.entries)
}

// IsEmpty returns whether the list is empty.
func (l *EntryList) IsEmpty() bool {
	return len(l.entries) == 0
}
