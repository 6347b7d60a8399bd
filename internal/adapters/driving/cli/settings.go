package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ankify-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change tokenizer, dictionary and storage settings.

Settings are stored in config.toml inside the config directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a single setting.

Keys:
  tokenizer.mode                   normal, search or extended
  dictionary.backend               jisho, sqlite or memory
  dictionary.base_url              Jisho-compatible search endpoint
  dictionary.timeout_seconds       per-request timeout
  dictionary.requests_per_second   request throttle
  dictionary.concurrency           lookups in flight per selection
  storage.data_dir                 offline dictionary directory`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Tokenizer]")
	cmd.Printf("  Mode: %s\n", settings.Tokenizer.Mode.Description())
	cmd.Println()

	cmd.Println("[Dictionary]")
	cmd.Printf("  Backend: %s\n", settings.Dictionary.Backend.Description())
	if settings.Dictionary.Backend.IsRemote() {
		cmd.Printf("  Base URL: %s\n", valueOrDefault(settings.Dictionary.BaseURL))
		cmd.Printf("  Timeout: %s\n", settings.Dictionary.Timeout())
		cmd.Printf("  Requests per second: %g\n", settings.Dictionary.RequestsPerSecond)
	}
	cmd.Printf("  Concurrency: %d\n", settings.Dictionary.Concurrency)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Data directory: %s\n", valueOrDefault(settings.Storage.DataDir))
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'ankify settings set' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("invalid value %q for %s: %w", value, key, err)
		}
		return fmt.Errorf("failed to save setting: %w", err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func valueOrDefault(v string) string {
	if v == "" {
		return "(default)"
	}
	return v
}
