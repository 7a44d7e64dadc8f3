package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	claimYear    int
	claimSource  string
	claimTimeout time.Duration
)

// claimCmd groups the text claim operations
var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Ingest text claims into the trust memory",
}

var claimAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Link a text claim to its narrative and remember it",
	Long: `Add embeds the claim, finds the most similar stored claims, and either
attaches the new item to an existing narrative or starts a new one.

Example:
  trustmem claim add "5G towers spread the virus" --year 2020 --source twitter`,
	Args: cobra.ExactArgs(1),
	RunE: runClaimAdd,
}

func init() {
	rootCmd.AddCommand(claimCmd)
	claimCmd.AddCommand(claimAddCmd)

	claimAddCmd.Flags().IntVar(&claimYear, "year", time.Now().Year(), "year the claim was observed")
	claimAddCmd.Flags().StringVar(&claimSource, "source", "unknown", "platform the claim was observed on")
	claimAddCmd.Flags().DurationVar(&claimTimeout, "timeout", 60*time.Second, "operation timeout")
}

func runClaimAdd(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), claimTimeout)
	defer cancel()

	engine, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	res, err := engine.LinkText(ctx, args[0], claimYear, claimSource)
	if err != nil {
		return fmt.Errorf("link claim: %w", err)
	}

	if res.Reinforced {
		fmt.Fprintf(os.Stderr, "Reinforced existing narrative %s\n", res.NarrativeID)
	} else {
		fmt.Fprintf(os.Stderr, "Started new narrative %s\n", res.NarrativeID)
	}
	return printJSON(res)
}
