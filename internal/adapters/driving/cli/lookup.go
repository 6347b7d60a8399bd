package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/ankify-cli/internal/core/domain"
)

var lookupJSON bool

// stdinIsTerminal reports whether stdin is interactive. Replaced in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var lookupCmd = &cobra.Command{
	Use:   "lookup [text]",
	Short: "Resolve a Japanese selection",
	Long: `Tokenizes the text, looks up the selection and the dictionary form of
each noun, verb and adjective, and prints the grouped entries.

Primary entries are those whose written form appears in the text. When no
argument is given the text is read from piped stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "output the resolution as JSON")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	if resolutionService == nil {
		return errors.New("resolution service not configured")
	}

	text, err := lookupText(cmd, args)
	if err != nil {
		return err
	}

	snap, err := resolutionService.HandleSelection(cmd.Context(), text)
	if lookupJSON {
		if jsonErr := outputResolutionJSON(cmd, snap); jsonErr != nil {
			return jsonErr
		}
	} else {
		outputResolution(cmd, snap)
	}
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}
	return nil
}

// lookupText returns the argument, or piped stdin when there is none.
func lookupText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if stdinIsTerminal() {
		return "", errors.New("provide text as an argument or pipe it on stdin")
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func outputResolutionJSON(cmd *cobra.Command, snap domain.Resolution) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal resolution: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputResolution(cmd *cobra.Command, snap domain.Resolution) {
	if snap.ErrorMsg != "" {
		cmd.Println(snap.ErrorMsg)
	}
	if !snap.HasResults() {
		return
	}

	outputEntries(cmd, "In selection", snap.PrimaryResults)
	outputEntries(cmd, "Related", snap.SecondaryResults)
}

func outputEntries(cmd *cobra.Command, title string, entries []domain.GroupedEntry) {
	if len(entries) == 0 {
		return
	}
	cmd.Printf("%s:\n", title)
	cmd.Println()
	for i := range entries {
		e := entries[i]
		cmd.Printf("  [%d] %s\n", i+1, e.Headword)
		multipleReadings := len(e.Readings) > 1
		for j, sr := range e.SensesWithReadings {
			if multipleReadings && sr.Reading != "" {
				cmd.Printf("      %d. %s (%s)\n", j+1, sr.Text, sr.Reading)
				continue
			}
			cmd.Printf("      %d. %s\n", j+1, sr.Text)
		}
		cmd.Println()
	}
}
