package tui

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ankify-cli/internal/core/domain"
)

// MockResolutionService implements driving.ResolutionService for testing.
type MockResolutionService struct {
	HandleSelectionFunc func(ctx context.Context, text string) (domain.Resolution, error)

	mu           sync.Mutex
	state        domain.Resolution
	subscribers  []chan domain.Resolution
	unsubscribed int
}

func (m *MockResolutionService) HandleSelection(ctx context.Context, text string) (domain.Resolution, error) {
	if m.HandleSelectionFunc != nil {
		return m.HandleSelectionFunc(ctx, text)
	}
	return m.Snapshot(), nil
}

func (m *MockResolutionService) RemoveResult(_ domain.GroupedEntry) domain.Resolution {
	return m.Snapshot()
}

func (m *MockResolutionService) Snapshot() domain.Resolution {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *MockResolutionService) Subscribe() (<-chan domain.Resolution, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan domain.Resolution, 1)
	m.subscribers = append(m.subscribers, ch)
	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.unsubscribed++
		close(ch)
	}
}

// Publish stores res and delivers it to every subscriber.
func (m *MockResolutionService) Publish(res domain.Resolution) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = res
	for _, ch := range m.subscribers {
		ch <- res
	}
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct{}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	s := domain.DefaultAppSettings()
	return &s, nil
}

func (m *MockSettingsService) Save(_ *domain.AppSettings) error { return nil }

func (m *MockSettingsService) Set(_, _ string) error { return nil }

func (m *MockSettingsService) Keys() []string {
	return []string{domain.SettingTokenizerMode, domain.SettingDictionaryBackend}
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func TestNewPorts(t *testing.T) {
	res := &MockResolutionService{}
	set := &MockSettingsService{}

	ports := NewPorts(res, set)

	require.NotNil(t, ports)
	assert.Same(t, res, ports.Resolution)
	assert.Same(t, set, ports.Settings)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"all set", NewPorts(&MockResolutionService{}, &MockSettingsService{}), nil},
		{"settings optional", NewPorts(&MockResolutionService{}, nil), nil},
		{"missing resolution", NewPorts(nil, &MockSettingsService{}), ErrMissingResolutionService},
		{"nil ports", nil, ErrInvalidPorts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}
