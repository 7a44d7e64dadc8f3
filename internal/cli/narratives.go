package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/satyalabs/trustmem/internal/model"
)

var (
	narrativesLimit   int
	narrativesTimeout time.Duration
)

// narrativesCmd lists narratives or shows one narrative's full history
var narrativesCmd = &cobra.Command{
	Use:   "narratives [narrative-id]",
	Short: "List narratives, or show one narrative's items and statistics",
	Long: `Without arguments, narratives lists every known narrative as a compact
summary, largest first. With a narrative id it prints that narrative's
items together with its computed statistics.

Example:
  trustmem narratives
  trustmem narratives NAR_abc12345`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNarratives,
}

func init() {
	rootCmd.AddCommand(narrativesCmd)

	narrativesCmd.Flags().IntVar(&narrativesLimit, "limit", 0, "cap on items scanned per collection (0 = configured default)")
	narrativesCmd.Flags().DurationVar(&narrativesTimeout, "timeout", 60*time.Second, "operation timeout")
}

func runNarratives(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), narrativesTimeout)
	defer cancel()

	engine, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	if len(args) == 1 {
		items, stats, err := engine.Narrative(ctx, args[0])
		if err != nil {
			return fmt.Errorf("get narrative: %w", err)
		}
		return printJSON(struct {
			NarrativeID string               `json:"narrative_id"`
			Items       []model.Item         `json:"items"`
			Stats       model.NarrativeStats `json:"stats"`
		}{args[0], items, stats})
	}

	summaries, err := engine.Narratives(ctx, narrativesLimit)
	if err != nil {
		return fmt.Errorf("list narratives: %w", err)
	}
	return printJSON(summaries)
}
