package resolve

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ankify-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/ankify-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ankify-cli/internal/core/domain"
)

// mockResolution implements driving.ResolutionService for testing.
type mockResolution struct {
	handleFunc func(ctx context.Context, text string) (domain.Resolution, error)
	removed    []string
	state      domain.Resolution
	lastText   string
}

func (m *mockResolution) HandleSelection(ctx context.Context, text string) (domain.Resolution, error) {
	m.lastText = text
	if m.handleFunc != nil {
		return m.handleFunc(ctx, text)
	}
	return m.state, nil
}

func (m *mockResolution) RemoveResult(entry domain.GroupedEntry) domain.Resolution {
	m.removed = append(m.removed, entry.Headword)
	next := m.state.Clone()
	next.PrimaryResults = without(next.PrimaryResults, entry.Headword)
	next.SecondaryResults = without(next.SecondaryResults, entry.Headword)
	m.state = next
	return next
}

func (m *mockResolution) Snapshot() domain.Resolution { return m.state }

func (m *mockResolution) Subscribe() (<-chan domain.Resolution, func()) {
	ch := make(chan domain.Resolution, 1)
	return ch, func() {}
}

func without(entries []domain.GroupedEntry, headword string) []domain.GroupedEntry {
	out := make([]domain.GroupedEntry, 0, len(entries))
	for _, e := range entries {
		if e.Headword != headword {
			out = append(out, e)
		}
	}
	return out
}

func tabetaSnapshot() domain.Resolution {
	res := domain.NewResolution()
	res.Text = "食べた"
	res.OriginalSelection = "食べた"
	res.ActiveWords.Add("食べる")
	res.SecondaryResults = []domain.GroupedEntry{
		{Word: "食べる", Headword: "食べる【たべる】", Gloss: "to eat",
			SensesWithReadings: []domain.SenseReading{{Text: "to eat", Reading: "たべる"}}},
	}
	return res
}

func literalSnapshot() domain.Resolution {
	res := tabetaSnapshot()
	res.PrimaryResults = []domain.GroupedEntry{
		{Word: "食べた", Headword: "食べた", Gloss: "ate"},
	}
	return res
}

func newTestView(svc *mockResolution) *View {
	v := NewView(nil, nil, svc)
	v.SetDimensions(100, 40)
	return v
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, &mockResolution{})

	require.NotNil(t, v)
	assert.False(t, v.Ready())
	assert.True(t, v.InputFocused())
	assert.Equal(t, "Initialising...", v.View())
	assert.NotNil(t, v.Init())
}

func TestView_WindowSize(t *testing.T) {
	v := NewView(nil, nil, &mockResolution{})

	v, cmd := v.Update(tea.WindowSizeMsg{Width: 120, Height: 30})

	assert.Nil(t, cmd)
	assert.True(t, v.Ready())
	assert.Contains(t, v.View(), "Ankify")
}

func TestView_TypingGoesToInput(t *testing.T) {
	v := newTestView(&mockResolution{})

	v, _ = v.Update(key("q"))

	assert.Equal(t, "q", v.Selection())
}

func TestView_EnterResolvesSelection(t *testing.T) {
	svc := &mockResolution{}
	v := newTestView(svc)
	v.SetSelection("食べた")

	v, cmd := v.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, status.StateAnalyzing, v.Status())

	msg := cmd()
	finished, ok := msg.(messages.ResolveFinished)
	require.True(t, ok)
	assert.Equal(t, "食べた", finished.Text)
	assert.NoError(t, finished.Err)
	assert.Equal(t, "食べた", svc.lastText)
}

func TestView_EnterOnBlankStillClears(t *testing.T) {
	svc := &mockResolution{lastText: "unset"}
	v := newTestView(svc)

	v, cmd := v.Update(key("enter"))
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, "", svc.lastText)
	assert.NotEqual(t, status.StateAnalyzing, v.Status())
}

func TestView_NoResolutionService(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.SetDimensions(80, 24)

	_, cmd := v.Update(key("enter"))
	require.NotNil(t, cmd)

	msg := cmd()
	errMsg, ok := msg.(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, ErrNoResolutionService)
}

func TestView_ResolutionUpdatedRendersEntries(t *testing.T) {
	v := newTestView(&mockResolution{})

	v, _ = v.Update(messages.ResolutionUpdated{Snapshot: literalSnapshot()})

	view := v.View()
	assert.Contains(t, view, "In selection (1)")
	assert.Contains(t, view, "Related (1)")
	assert.Contains(t, view, "食べる【たべる】")
	assert.Contains(t, view, "Words: 食べる")
	assert.Equal(t, status.StateResults, v.Status())
}

func TestView_NoResultsMessage(t *testing.T) {
	v := newTestView(&mockResolution{})
	res := domain.NewResolution()
	res.ErrorMsg = domain.NoResultsMessage

	v, _ = v.Update(messages.ResolutionUpdated{Snapshot: res})

	assert.Equal(t, status.StateMessage, v.Status())
	assert.Contains(t, v.View(), domain.NoResultsMessage)
}

func TestView_ResolveFinished(t *testing.T) {
	tests := []struct {
		name     string
		errorMsg string
		err      error
		wantErr  bool
	}{
		{"success", "", nil, false},
		{"superseded", "", domain.ErrSuperseded, false},
		{"reported in snapshot", "Lookup failed: boom", domain.ErrLookup, false},
		{"unreported", "", errors.New("boom"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestView(&mockResolution{})
			res := domain.NewResolution()
			res.ErrorMsg = tt.errorMsg
			v.SetSnapshot(res)

			v, _ = v.Update(messages.ResolveFinished{Text: "x", Err: tt.err})

			if tt.wantErr {
				assert.Error(t, v.Err())
				assert.Equal(t, status.StateError, v.Status())
			} else {
				assert.NoError(t, v.Err())
			}
		})
	}
}

func TestView_TabCyclesNonEmptyLists(t *testing.T) {
	v := newTestView(&mockResolution{})

	v, _ = v.Update(key("tab"))
	assert.Equal(t, FocusInput, v.Focus(), "no lists to focus")

	v.SetSnapshot(tabetaSnapshot())
	v, _ = v.Update(key("tab"))
	assert.Equal(t, FocusSecondary, v.Focus(), "empty primary skipped")

	v.SetSnapshot(literalSnapshot())
	v, _ = v.Update(key("tab"))
	assert.Equal(t, FocusInput, v.Focus())
	v, _ = v.Update(key("tab"))
	assert.Equal(t, FocusPrimary, v.Focus())
	assert.False(t, v.InputFocused())
}

func TestView_RemoveSelected(t *testing.T) {
	svc := &mockResolution{state: literalSnapshot()}
	v := newTestView(svc)
	v.SetSnapshot(svc.state)
	v, _ = v.Update(key("tab"))
	require.Equal(t, FocusPrimary, v.Focus())

	v, _ = v.Update(key("d"))

	assert.Equal(t, []string{"食べた"}, svc.removed)
	assert.Empty(t, v.Snapshot().PrimaryResults)
	assert.Len(t, v.Snapshot().SecondaryResults, 1)
	assert.Equal(t, FocusInput, v.Focus(), "focus leaves the emptied list")
}

func TestView_RemoveFromRelated(t *testing.T) {
	svc := &mockResolution{state: tabetaSnapshot()}
	v := newTestView(svc)
	v.SetSnapshot(svc.state)
	v, _ = v.Update(key("tab"))
	require.Equal(t, FocusSecondary, v.Focus())

	v, _ = v.Update(key("d"))

	assert.Equal(t, []string{"食べる【たべる】"}, svc.removed)
	assert.False(t, v.Snapshot().HasResults())
}

func TestView_ResultsKeys(t *testing.T) {
	svc := &mockResolution{state: literalSnapshot()}

	t.Run("edit returns to input", func(t *testing.T) {
		v := newTestView(svc)
		v.SetSnapshot(svc.state)
		v, _ = v.Update(key("tab"))

		v, _ = v.Update(key("i"))

		assert.True(t, v.InputFocused())
	})

	t.Run("esc returns to input", func(t *testing.T) {
		v := newTestView(svc)
		v.SetSnapshot(svc.state)
		v, _ = v.Update(key("tab"))

		v, _ = v.Update(key("esc"))

		assert.True(t, v.InputFocused())
	})

	t.Run("settings", func(t *testing.T) {
		v := newTestView(svc)
		v.SetSnapshot(svc.state)
		v, _ = v.Update(key("tab"))

		_, cmd := v.Update(key("s"))
		require.NotNil(t, cmd)

		assert.Equal(t, messages.ViewChanged{View: messages.ViewSettings}, cmd())
	})

	t.Run("quit", func(t *testing.T) {
		v := newTestView(svc)
		v.SetSnapshot(svc.state)
		v, _ = v.Update(key("tab"))

		_, cmd := v.Update(key("q"))
		require.NotNil(t, cmd)

		assert.Equal(t, tea.Quit(), cmd())
	})
}

func TestView_EscClearsInput(t *testing.T) {
	v := newTestView(&mockResolution{})
	v.SetSelection("猫")

	v, _ = v.Update(key("esc"))

	assert.Equal(t, "", v.Selection())
}

func TestView_ErrorOccurred(t *testing.T) {
	v := newTestView(&mockResolution{})

	v, _ = v.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, v.Err(), "boom")
	assert.Contains(t, v.View(), "Error: boom")
}

func TestView_WithContext(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "v")

	var got context.Context
	svc := &mockResolution{handleFunc: func(ctx context.Context, _ string) (domain.Resolution, error) {
		got = ctx
		return domain.Resolution{}, nil
	}}
	v := newTestView(svc).WithContext(ctx)
	v.SetSelection("猫")

	_, cmd := v.Update(key("enter"))
	cmd()

	assert.Equal(t, "v", got.Value(ctxKey{}))
}
