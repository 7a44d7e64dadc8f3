package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/satyalabs/trustmem/internal/worker"
)

var (
	concurrency  int
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Ingest claims from a JSONL file in parallel",
	Long: `Batch reads one record per line and links each into the trust memory
using a worker pool. Parallelism affects throughput only; every record
goes through the same linking sequence a single ingest would.

Record format:
  {"claim": "5G towers spread the virus", "year": 2020, "source": "twitter"}
  {"type": "image", "path": "./fake_flood.jpg", "year": 2023, "source": "telegram"}

Example:
  trustmem batch claims.jsonl
  trustmem batch claims.jsonl --concurrency 8 --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	engine, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = engine.Close() }()

	if verbose {
		fmt.Fprintf(os.Stderr, "Input file: %s\n", file)
		fmt.Fprintf(os.Stderr, "Workers:    %d\n", concurrency)
		fmt.Fprintln(os.Stderr)
	}

	processor := worker.NewBatchProcessor(engine, concurrency)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	reinforced := 0
	created := 0
	failures := 0
	for _, result := range results {
		if result.Error != nil {
			failures++
			fmt.Fprintf(os.Stderr, "failed: %+v: %v\n", result.Record, result.Error)
			continue
		}
		if result.Link.Reinforced {
			reinforced++
		} else {
			created++
		}
	}

	fmt.Fprintf(os.Stderr, "Processed %d records: %d reinforced, %d new narratives, %d failures\n",
		len(results), reinforced, created, failures)

	if failures > 0 {
		return fmt.Errorf("%d of %d records failed", failures, len(results))
	}
	return nil
}
