package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ankify-cli/internal/adapters/driving/tui"
)

// runApp runs the TUI program; tests replace it to avoid a terminal.
var runApp = func(app *tui.App) error {
	return app.Run()
}

var tuiCmd = &cobra.Command{
	Use:   "tui [text]",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Ankify.

Type or paste Japanese text and press Enter to look it up. Entries whose
written form appears in the selection are listed under "In selection",
entries for dictionary forms of its words under "Related".

Controls:
  Enter    - Look up the selection
  Tab      - Move between input and result lists
  ↑/k, ↓/j - Navigate entries
  d        - Remove the selected entry
  i        - Edit the selection
  s        - Settings
  q        - Quit (from a result list)
  Ctrl+C   - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if resolutionService == nil {
		return errors.New("resolution service not configured")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	startConfigWatch(ctx)

	app, err := tui.NewApp(tui.NewPorts(resolutionService, settingsService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	defer app.Close()

	app.WithContext(ctx)
	if len(args) > 0 {
		app.WithSelection(args[0])
	}

	if err := runApp(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
