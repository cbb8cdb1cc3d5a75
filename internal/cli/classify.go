package cli

import (
	"fmt"

	"confatlas/internal/pipeline"
	"confatlas/internal/report"
	"confatlas/internal/store"

	"github.com/spf13/cobra"
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify big-tech participation per conference and year",
	Long: `Classify scans the processed data for big-company affiliations and
writes two analysis tables:
- big_tech_analysis.csv (per-year percentages of papers with, without,
  and with entirely unknown big-company affiliation)
- big_companies_by_continent_analysis.csv (big-company share broken
  down by predominant continent)

Example:
  confatlas classify
  confatlas classify --data-dir /data/crawl`,
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVar(&dataDir, "data-dir", "", "data root containing the crawler output")
	classifyCmd.Flags().StringVar(&csvDir, "csv-dir", "", "directory for generated CSV tables")
}

func runClassify(cmd *cobra.Command, args []string) error {
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

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	if err := store.EnsureDirs(cfg.Data.Root, cfg.Output.CSVDir); err != nil {
		return fmt.Errorf("prepare directories: %w", err)
	}

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	rows, err := p.Analyzer().WriteReports(
		cfg.ResolvePath(cfg.Data.Processed),
		cfg.ResolvePath(cfg.Output.CSVDir))
	if err != nil {
		return fmt.Errorf("big tech analysis: %w", err)
	}
	fmt.Println(report.Summary(rows))
	return nil
}
