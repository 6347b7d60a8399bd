package services

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/ankify-cli/internal/core/domain"
	"github.com/custodia-labs/ankify-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ankify-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyTokenizerMode      = domain.SettingTokenizerMode
	KeyDictionaryBackend  = domain.SettingDictionaryBackend
	KeyDictionaryBaseURL  = domain.SettingDictionaryBaseURL
	KeyDictionaryTimeout  = domain.SettingDictionaryTimeout
	KeyDictionaryRate     = domain.SettingDictionaryRate
	KeyDictionaryParallel = domain.SettingDictionaryParallel
	KeyStorageDataDir     = domain.SettingStorageDataDir
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or invalid stored
// values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Tokenizer: domain.TokenizerSettings{
			Mode: s.getTokenizerMode(defaults.Tokenizer.Mode),
		},
		Dictionary: domain.DictionarySettings{
			Backend:           s.getBackend(defaults.Dictionary.Backend),
			BaseURL:           s.configStore.GetString(KeyDictionaryBaseURL), // empty uses adapter default
			TimeoutSeconds:    s.getInt(KeyDictionaryTimeout, defaults.Dictionary.TimeoutSeconds),
			RequestsPerSecond: s.getFloat(KeyDictionaryRate, defaults.Dictionary.RequestsPerSecond),
			Concurrency:       s.getInt(KeyDictionaryParallel, defaults.Dictionary.Concurrency),
		},
		Storage: domain.StorageSettings{
			DataDir: s.configStore.GetString(KeyStorageDataDir),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("validate settings: %w", err)
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyTokenizerMode, settings.Tokenizer.Mode.String()},
		{KeyDictionaryBackend, settings.Dictionary.Backend.String()},
		{KeyDictionaryBaseURL, settings.Dictionary.BaseURL},
		{KeyDictionaryTimeout, settings.Dictionary.TimeoutSeconds},
		{KeyDictionaryRate, settings.Dictionary.RequestsPerSecond},
		{KeyDictionaryParallel, settings.Dictionary.Concurrency},
		{KeyStorageDataDir, settings.Storage.DataDir},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set updates one setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case KeyTokenizerMode:
		settings.Tokenizer.Mode = domain.TokenizerMode(value)
	case KeyDictionaryBackend:
		settings.Dictionary.Backend = domain.DictionaryBackend(value)
	case KeyDictionaryBaseURL:
		settings.Dictionary.BaseURL = value
	case KeyDictionaryTimeout:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.Dictionary.TimeoutSeconds = n
	case KeyDictionaryRate:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.Dictionary.RequestsPerSecond = f
	case KeyDictionaryParallel:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.Dictionary.Concurrency = n
	case KeyStorageDataDir:
		settings.Storage.DataDir = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys returns the settable keys in display order.
func (s *SettingsService) Keys() []string {
	return []string{
		KeyTokenizerMode,
		KeyDictionaryBackend,
		KeyDictionaryBaseURL,
		KeyDictionaryTimeout,
		KeyDictionaryRate,
		KeyDictionaryParallel,
		KeyStorageDataDir,
	}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getTokenizerMode(defaultVal domain.TokenizerMode) domain.TokenizerMode {
	mode := domain.TokenizerMode(s.configStore.GetString(KeyTokenizerMode))
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}

func (s *SettingsService) getBackend(defaultVal domain.DictionaryBackend) domain.DictionaryBackend {
	backend := domain.DictionaryBackend(s.configStore.GetString(KeyDictionaryBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
