package cli

import (
	"context"
	"fmt"
	"time"

	"confatlas/internal/pipeline"
	"confatlas/internal/store"

	"github.com/spf13/cobra"
)

var reduceTimeout time.Duration

// reduceCmd represents the reduce command
var reduceCmd = &cobra.Command{
	Use:   "reduce",
	Short: "Reduce crawled extended data to predominant-continent records",
	Long: `Reduce reads every *_extended_data.json file under the extended data
directory, replaces each paper's full affiliation list with a single
predominant-continent field, and writes the reduced *_data.json files
to the processed data directory.

Example:
  confatlas reduce
  confatlas reduce --data-dir /data/crawl`,
	RunE: runReduce,
}

func init() {
	rootCmd.AddCommand(reduceCmd)

	reduceCmd.Flags().StringVar(&dataDir, "data-dir", "", "data root containing the crawler output")
	reduceCmd.Flags().IntVar(&workers, "workers", 0, "per-conference worker count (default: number of CPUs)")
	reduceCmd.Flags().DurationVar(&reduceTimeout, "timeout", 15*time.Minute, "stage timeout")
}

func runReduce(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), reduceTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if dataDir != "" {
		cfg.Data.Root = dataDir
	}
	if workers > 0 {
		cfg.Concurrency.Workers = workers
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	if err := store.EnsureDirs(cfg.Data.Root, cfg.Data.Processed); err != nil {
		return fmt.Errorf("prepare directories: %w", err)
	}

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	stats, err := p.Reducer().ProcessAll(ctx,
		cfg.ResolvePath(cfg.Data.Extended),
		cfg.ResolvePath(cfg.Data.Processed))
	if err != nil {
		return fmt.Errorf("data processing: %w", err)
	}
	fmt.Println(pipeline.SummaryReport(stats))
	return nil
}
