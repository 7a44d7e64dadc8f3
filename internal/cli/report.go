package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	reportJSONPath string
	reportTimeout  time.Duration
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report <query>",
	Short: "Generate a trust report for a claim",
	Long: `Report answers "have we seen this claim before": it searches the memory,
reconstructs the claim's history, and scores its risk, resurgence
likelihood, and evidence strength. A claim with no history is a normal
outcome, reported as status no_history.

Example:
  trustmem report "5G towers spread the virus"
  trustmem report "miracle cure suppressed" --json report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportJSONPath, "json", "", "also write the report to this path")
	reportCmd.Flags().DurationVar(&reportTimeout, "timeout", 60*time.Second, "operation timeout")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	engine, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	rep, err := engine.TrustReport(ctx, args[0])
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	if reportJSONPath != "" {
		data, err := marshalIndent(rep)
		if err != nil {
			return err
		}
		if err := os.WriteFile(reportJSONPath, data, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", reportJSONPath)
	}
	return printJSON(rep)
}
