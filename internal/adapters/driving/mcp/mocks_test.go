package mcp

import (
	"context"

	"github.com/custodia-labs/ankify-cli/internal/core/domain"
)

// mockResolutionService is a mock implementation of driving.ResolutionService.
type mockResolutionService struct {
	state   domain.Resolution
	err     error
	texts   []string
	removed []string
}

func newMockResolutionService(state domain.Resolution) *mockResolutionService {
	return &mockResolutionService{state: state}
}

func (m *mockResolutionService) HandleSelection(_ context.Context, text string) (domain.Resolution, error) {
	m.texts = append(m.texts, text)
	return m.state.Clone(), m.err
}

func (m *mockResolutionService) RemoveResult(entry domain.GroupedEntry) domain.Resolution {
	m.removed = append(m.removed, entry.Headword)
	var kept []domain.GroupedEntry
	for _, e := range m.state.SecondaryResults {
		if e.Headword != entry.Headword {
			kept = append(kept, e)
		}
	}
	m.state.SecondaryResults = kept
	return m.state.Clone()
}

func (m *mockResolutionService) Snapshot() domain.Resolution {
	return m.state.Clone()
}

func (m *mockResolutionService) Subscribe() (<-chan domain.Resolution, func()) {
	ch := make(chan domain.Resolution, 1)
	ch <- m.state.Clone()
	return ch, func() {}
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error { return m.err }

func (m *mockSettingsService) Set(_, _ string) error { return m.err }

func (m *mockSettingsService) Keys() []string { return nil }

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

// tabetaResolution is the state after resolving 食べた.
func tabetaResolution() domain.Resolution {
	r := domain.NewResolution()
	r.OriginalSelection = "食べた"
	r.Text = "食べた"
	r.PrimaryResults = []domain.GroupedEntry{}
	r.SecondaryResults = []domain.GroupedEntry{{
		Word:               "食べる",
		Reading:            "たべる",
		Readings:           []string{"たべる"},
		Headword:           "食べる【たべる】",
		Senses:             []string{"to eat"},
		SensesWithReadings: []domain.SenseReading{{Text: "to eat", Reading: "たべる"}},
		Gloss:              "to eat",
	}}
	r.ActiveWords.Add("食べる")
	return r
}
