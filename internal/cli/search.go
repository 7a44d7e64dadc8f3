package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	searchLimit   int
	searchTimeout time.Duration
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search stored claims by similarity",
	Long: `Search embeds the query and returns the most similar stored claims with
their narrative ids and similarity scores.

Example:
  trustmem search "microchips in vaccines" --limit 10`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVar(&searchLimit, "limit", 5, "maximum number of results")
	searchCmd.Flags().DurationVar(&searchTimeout, "timeout", 60*time.Second, "operation timeout")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	engine, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	results, err := engine.Search(ctx, args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if len(results) == 0 {
		fmt.Fprintln(os.Stderr, "No similar claims found")
		return nil
	}
	return printJSON(results)
}
