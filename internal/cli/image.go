package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	imageYear    int
	imageSource  string
	imageTimeout time.Duration
)

// imageCmd groups the image operations
var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Ingest images into the trust memory",
}

var imageAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Link an image to its visual narrative and remember it",
	Long: `Add embeds the image through the CLIP service and links it to the
visual narrative it most resembles, or starts a new one.

Example:
  trustmem image add ./fake_flood.jpg --year 2023 --source telegram`,
	Args: cobra.ExactArgs(1),
	RunE: runImageAdd,
}

func init() {
	rootCmd.AddCommand(imageCmd)
	imageCmd.AddCommand(imageAddCmd)

	imageAddCmd.Flags().IntVar(&imageYear, "year", time.Now().Year(), "year the image was observed")
	imageAddCmd.Flags().StringVar(&imageSource, "source", "unknown", "platform the image was observed on")
	imageAddCmd.Flags().DurationVar(&imageTimeout, "timeout", 60*time.Second, "operation timeout")
}

func runImageAdd(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), imageTimeout)
	defer cancel()

	engine, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	res, err := engine.LinkImage(ctx, args[0], imageYear, imageSource)
	if err != nil {
		return fmt.Errorf("link image: %w", err)
	}

	if res.Reinforced {
		fmt.Fprintf(os.Stderr, "Reinforced existing narrative %s\n", res.NarrativeID)
	} else {
		fmt.Fprintf(os.Stderr, "Started new narrative %s\n", res.NarrativeID)
	}
	return printJSON(res)
}
