package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/custodia-labs/ankify-cli/internal/core/domain"
	"github.com/custodia-labs/ankify-cli/internal/core/ports/driving"
)

// mockResolutionService implements driving.ResolutionService for CLI tests.
type mockResolutionService struct {
	handleFunc func(ctx context.Context, text string) (domain.Resolution, error)

	mu           sync.Mutex
	texts        []string
	subscribed   int
	unsubscribed int
}

func (m *mockResolutionService) HandleSelection(ctx context.Context, text string) (domain.Resolution, error) {
	m.mu.Lock()
	m.texts = append(m.texts, text)
	m.mu.Unlock()
	if m.handleFunc != nil {
		return m.handleFunc(ctx, text)
	}
	return domain.NewResolution(), nil
}

func (m *mockResolutionService) RemoveResult(_ domain.GroupedEntry) domain.Resolution {
	return domain.NewResolution()
}

func (m *mockResolutionService) Snapshot() domain.Resolution {
	return domain.NewResolution()
}

func (m *mockResolutionService) Subscribe() (<-chan domain.Resolution, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribed++
	ch := make(chan domain.Resolution, 1)
	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.unsubscribed++
		close(ch)
	}
}

func (m *mockResolutionService) lastText() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.texts) == 0 {
		return ""
	}
	return m.texts[len(m.texts)-1]
}

// mockSettingsService implements driving.SettingsService for CLI tests.
type mockSettingsService struct {
	settings domain.AppSettings
	getErr   error
	setErr   error
	setCalls [][2]string
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultAppSettings()}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(s *domain.AppSettings) error {
	m.settings = *s
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	m.setCalls = append(m.setCalls, [2]string{key, value})
	return m.setErr
}

func (m *mockSettingsService) Keys() []string {
	return []string{domain.SettingTokenizerMode, domain.SettingDictionaryBackend}
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// mockDictionaryService implements driving.DictionaryService for CLI tests.
type mockDictionaryService struct {
	stats    driving.ImportStats
	err      error
	count    int
	imported string
}

func (m *mockDictionaryService) Import(_ context.Context, r io.Reader) (driving.ImportStats, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return driving.ImportStats{}, err
	}
	m.imported = string(data)
	return m.stats, m.err
}

func (m *mockDictionaryService) Count(_ context.Context) (int, error) {
	return m.count, m.err
}

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	resolution *mockResolutionService
	settings   *mockSettingsService
	dictionary *mockDictionaryService
}

// setupTestServices installs fresh mocks and resets command state. The
// returned func restores the previous state.
func setupTestServices() (*testServices, func()) {
	origResolution := resolutionService
	origSettings := settingsService
	origDictionary := dictionaryService
	origWatch := watchConfig
	origFactory := serviceFactory
	origTerminal := stdinIsTerminal
	origRunApp := runApp

	ts := &testServices{
		resolution: &mockResolutionService{},
		settings:   newMockSettingsService(),
		dictionary: &mockDictionaryService{},
	}
	resolutionService = ts.resolution
	settingsService = ts.settings
	dictionaryService = ts.dictionary
	watchConfig = nil
	serviceFactory = nil
	stdinIsTerminal = func() bool { return true }
	lookupJSON = false
	verbose = false

	return ts, func() {
		resolutionService = origResolution
		settingsService = origSettings
		dictionaryService = origDictionary
		watchConfig = origWatch
		serviceFactory = origFactory
		stdinIsTerminal = origTerminal
		runApp = origRunApp
		lookupJSON = false
		verbose = false
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}
}

// executeCommand runs the root command with args and returns its output.
func executeCommand(stdin string, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}
