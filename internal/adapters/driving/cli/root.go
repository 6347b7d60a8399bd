// Package cli provides the ankify command-line interface.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ankify-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ankify-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services are the driving ports the commands call.
type Services struct {
	Resolution driving.ResolutionService
	Settings   driving.SettingsService
	Dictionary driving.DictionaryService

	// WatchConfig blocks until ctx is done, re-applying settings whenever
	// the config file changes. Long-running commands start it; nil disables.
	WatchConfig func(ctx context.Context) error
}

// ServiceFactory builds the services for a config directory. The returned
// func releases them.
type ServiceFactory func(configDir string) (*Services, func(), error)

var (
	resolutionService driving.ResolutionService
	settingsService   driving.SettingsService
	dictionaryService driving.DictionaryService
	watchConfig       func(ctx context.Context) error

	serviceFactory ServiceFactory
	releaseFn      func()
)

var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "ankify",
	Short: "Resolve Japanese selections into dictionary entries",
	Long: `Ankify tokenizes a Japanese selection, looks up the selection and the
dictionary form of every content word, and groups the results by written
form. Entries whose written form appears in the selection are listed first.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.ankify)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServiceFactory sets how services are built once flags are parsed.
func SetServiceFactory(f ServiceFactory) {
	serviceFactory = f
}

// SetResolutionService sets the resolution service used by commands.
func SetResolutionService(s driving.ResolutionService) {
	resolutionService = s
}

// SetSettingsService sets the settings service used by commands.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetDictionaryService sets the dictionary service used by commands.
func SetDictionaryService(s driving.DictionaryService) {
	dictionaryService = s
}

// Execute runs the root command and releases services afterwards.
func Execute() error {
	defer release()
	return rootCmd.Execute()
}

func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if serviceFactory == nil || resolutionService != nil {
		return nil
	}
	svcs, closeFn, err := serviceFactory(configDir)
	if err != nil {
		return err
	}
	if svcs == nil {
		return errors.New("service factory returned no services")
	}
	resolutionService = svcs.Resolution
	settingsService = svcs.Settings
	dictionaryService = svcs.Dictionary
	watchConfig = svcs.WatchConfig
	releaseFn = closeFn
	return nil
}

func release() {
	if releaseFn != nil {
		releaseFn()
		releaseFn = nil
	}
}

// startConfigWatch runs the config watcher until ctx is done.
func startConfigWatch(ctx context.Context) {
	if watchConfig == nil {
		return
	}
	go func() {
		if err := watchConfig(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("Config watcher stopped: %v", err)
		}
	}()
}
