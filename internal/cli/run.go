package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"confatlas/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	dataDir    string
	csvDir     string
	workers    int
	noPlots    bool
	runTimeout time.Duration
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full analysis pipeline",
	Long: `Run executes every stage in order:
1. Reduce crawled extended data to predominant-continent records
2. Export unified CSV tables (papers, committees, citations)
3. Classify big-tech participation and write analysis CSVs
4. Generate plots via Rscript (if available)

Stages 2 and 4 degrade to warnings on failure; stages 1 and 3 abort
the run.

Example:
  confatlas run
  confatlas run --data-dir /data/crawl --workers 8 --no-plots`,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&dataDir, "data-dir", "", "data root containing the crawler output (default: current directory)")
	runCmd.Flags().StringVar(&csvDir, "csv-dir", "", "directory for generated CSV tables")
	runCmd.Flags().IntVar(&workers, "workers", 0, "per-conference worker count (default: number of CPUs)")
	runCmd.Flags().BoolVar(&noPlots, "no-plots", false, "skip the external R plotting stage")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 30*time.Minute, "overall pipeline timeout")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if dataDir != "" {
		cfg.Data.Root = dataDir
	}
	if csvDir != "" {
		cfg.Output.CSVDir = csvDir
	}
	if workers > 0 {
		cfg.Concurrency.Workers = workers
	}
	if noPlots {
		cfg.Plots.Enabled = false
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Data root: %s\n", cfg.Data.Root)
		fmt.Fprintf(os.Stderr, "Workers: %d\n", cfg.Concurrency.Workers)
		fmt.Fprintf(os.Stderr, "Plots: %v\n", cfg.Plots.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	if err := p.Run(ctx); err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}
	return nil
}
