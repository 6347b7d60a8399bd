package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Manage the offline dictionary",
	Long: `Commands for the offline dictionary used by the sqlite and memory backends.

Select the backend with:
  ankify settings set dictionary.backend sqlite`,
}

var dictImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import dictionary records from JSON Lines",
	Long: `Import dictionary records from a JSON Lines file. Each line holds a term
and the records a Jisho search returned for it:

  {"term": "食べる", "data": [{"japanese": [...], "senses": [...]}]}

Existing terms are replaced. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runDictImport,
}

var dictCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of stored terms",
	Args:  cobra.NoArgs,
	RunE:  runDictCount,
}

func init() {
	dictCmd.AddCommand(dictImportCmd)
	dictCmd.AddCommand(dictCountCmd)
	rootCmd.AddCommand(dictCmd)
}

func runDictImport(cmd *cobra.Command, args []string) error {
	if dictionaryService == nil {
		return errors.New("dictionary service not configured")
	}

	var r io.Reader
	if args[0] == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()
		r = f
	}

	stats, err := dictionaryService.Import(cmd.Context(), r)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported %d terms (%d records).\n", stats.Terms, stats.Records)
	if stats.Skipped > 0 {
		cmd.Printf("Skipped %d invalid lines; run with --verbose for details.\n", stats.Skipped)
	}
	return nil
}

func runDictCount(cmd *cobra.Command, _ []string) error {
	if dictionaryService == nil {
		return errors.New("dictionary service not configured")
	}

	n, err := dictionaryService.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("count failed: %w", err)
	}
	cmd.Printf("%d terms\n", n)
	return nil
}
