package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/ankify-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ankify-cli/internal/adapters/driven/dictionary/jisho"
	"github.com/custodia-labs/ankify-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ankify-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ankify-cli/internal/adapters/driven/tokenizer/kagome"
	"github.com/custodia-labs/ankify-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/ankify-cli/internal/core/domain"
	"github.com/custodia-labs/ankify-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ankify-cli/internal/core/services"
	"github.com/custodia-labs/ankify-cli/internal/logger"
)

// buildServices wires adapters to services for the given config directory.
// The returned func closes the offline dictionary database, if one was opened.
func buildServices(configDir string) (*cli.Services, func(), error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Debug("Config file: %s", configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	settings := loadSettings(settingsService)

	store, closeStore, err := openStore(settings, configDir)
	if err != nil {
		return nil, nil, err
	}

	var dictionary driven.Dictionary = store
	if settings.Dictionary.Backend == domain.DictionaryBackendJisho {
		dictionary = jisho.NewClient(jisho.Config{
			BaseURL:           settings.Dictionary.BaseURL,
			Timeout:           settings.Dictionary.Timeout(),
			RequestsPerSecond: settings.Dictionary.RequestsPerSecond,
		})
	}
	logger.Debug("Dictionary backend: %s, tokenizer mode: %s",
		settings.Dictionary.Backend, settings.Tokenizer.Mode)

	resolution := services.NewResolutionService(kagome.New(settings.Tokenizer.Mode), dictionary)
	resolution.SetConcurrency(settings.Dictionary.Concurrency)

	svcs := &cli.Services{
		Resolution: resolution,
		Settings:   settingsService,
		Dictionary: services.NewDictionaryService(store),
		WatchConfig: func(ctx context.Context) error {
			return configStore.Watch(ctx, func() {
				reapplySettings(settingsService, resolution)
			})
		},
	}
	return svcs, closeStore, nil
}

// loadSettings returns the stored settings, or defaults when they are
// missing or invalid.
func loadSettings(s *services.SettingsService) domain.AppSettings {
	settings, err := s.Get()
	if err != nil {
		logger.Warn("Reading settings: %v; using defaults", err)
		return domain.DefaultAppSettings()
	}
	if err := settings.Validate(); err != nil {
		logger.Warn("Invalid settings (%v); using defaults. Run 'ankify settings show'.", err)
		return domain.DefaultAppSettings()
	}
	return *settings
}

// openStore opens the store backing the dict commands. The memory backend
// keeps records for this process only; every other backend uses SQLite.
func openStore(settings domain.AppSettings, configDir string) (driven.DictionaryStore, func(), error) {
	if settings.Dictionary.Backend == domain.DictionaryBackendMemory {
		return memory.NewDictionaryStore(), func() {}, nil
	}

	dataDir := settings.Storage.DataDir
	if dataDir == "" && configDir != "" {
		dataDir = filepath.Join(configDir, "data")
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening dictionary database: %w", err)
	}
	logger.Debug("Dictionary database: %s", store.Path())

	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("Closing dictionary database: %v", err)
		}
	}, nil
}

// concurrencySetter is the part of the resolution service that follows
// config changes.
type concurrencySetter interface {
	SetConcurrency(n int)
}

// reapplySettings pushes a changed lookup concurrency to the resolution
// service. Other settings take effect on the next start.
func reapplySettings(s *services.SettingsService, r concurrencySetter) {
	settings, err := s.Get()
	if err != nil {
		logger.Warn("Reloading settings: %v", err)
		return
	}
	if err := settings.Validate(); err != nil {
		logger.Warn("Ignoring invalid settings change: %v", err)
		return
	}
	r.SetConcurrency(settings.Dictionary.Concurrency)
	logger.Info("Settings reloaded (concurrency %d)", settings.Dictionary.Concurrency)
}
