package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	accents := []lipgloss.Color{theme.Primary, theme.Secondary, theme.Reading, theme.Error}
	seen := make(map[lipgloss.Color]bool)
	for _, c := range accents {
		assert.NotEmpty(t, string(c))
		assert.False(t, seen[c], "duplicate accent %s", c)
		seen[c] = true
	}
}

func TestNewStyles_NilTheme(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestNewStyles_UsesTheme(t *testing.T) {
	theme := DefaultTheme()
	theme.Primary = lipgloss.Color("#000000")

	s := NewStyles(theme)

	assert.Same(t, theme, s.Theme())
	assert.Equal(t, lipgloss.Color("#000000"), s.Title.GetForeground())
	assert.True(t, s.Headword.GetBold())
}

func TestDefaultStyles_Render(t *testing.T) {
	s := DefaultStyles()

	assert.Contains(t, s.Reading.Render("たべる"), "たべる")
	assert.Contains(t, s.Section.Render("In selection"), "In selection")
}
