package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/satyalabs/trustmem/internal/memory"
)

var (
	viralWindow      int
	analyticsTimeout time.Duration
)

// analyticsCmd groups the fleet-wide analysis commands
var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Fleet-wide narrative analytics",
	Long: `Analytics runs over every narrative in the memory at once:
which narratives are going viral, which platforms carry the most risk,
and which (year, platform) pairs look like coordinated campaigns.`,
}

var analyticsViralCmd = &cobra.Command{
	Use:   "viral",
	Short: "Rank narratives accelerating in the recent window",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(ctx context.Context, e *memory.Engine) (interface{}, error) {
			return e.Viral(ctx, viralWindow)
		})
	},
}

var analyticsPlatformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "Rank platforms by narrative exposure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(ctx context.Context, e *memory.Engine) (interface{}, error) {
			return e.PlatformRisk(ctx)
		})
	},
}

var analyticsCampaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "Flag potential coordinated pushes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(ctx context.Context, e *memory.Engine) (interface{}, error) {
			return e.Campaigns(ctx)
		})
	},
}

var analyticsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize the whole narrative ecosystem",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(ctx context.Context, e *memory.Engine) (interface{}, error) {
			return e.Summary(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
	analyticsCmd.AddCommand(analyticsViralCmd)
	analyticsCmd.AddCommand(analyticsPlatformsCmd)
	analyticsCmd.AddCommand(analyticsCampaignsCmd)
	analyticsCmd.AddCommand(analyticsSummaryCmd)

	analyticsViralCmd.Flags().IntVar(&viralWindow, "window", 1, "recent window in years")
	analyticsCmd.PersistentFlags().DurationVar(&analyticsTimeout, "timeout", 60*time.Second, "operation timeout")
}

// withEngine opens the engine, runs the operation, and prints the result
func withEngine(op func(ctx context.Context, e *memory.Engine) (interface{}, error)) error {
	ctx, cancel := context.WithTimeout(context.Background(), analyticsTimeout)
	defer cancel()

	engine, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	result, err := op(ctx, engine)
	if err != nil {
		return fmt.Errorf("analytics: %w", err)
	}
	return printJSON(result)
}
