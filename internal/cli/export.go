package cli

import (
	"fmt"
	"os"

	"confatlas/internal/pipeline"
	"confatlas/internal/store"

	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export unified CSV tables from processed data",
	Long: `Export builds the cross-conference CSV tables consumed by the
plotting stage:
- all_papers_analysis.csv (one row per paper with predominant continent)
- all_committees_analysis.csv (one row per committee member per year)
- all_citations_analysis.csv (citing-paper counts per continent)

Each table is independent: a failure in one is reported but does not
block the others.

Example:
  confatlas export
  confatlas export --data-dir /data/crawl --csv-dir outputs/csv`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&dataDir, "data-dir", "", "data root containing the crawler output")
	exportCmd.Flags().StringVar(&csvDir, "csv-dir", "", "directory for generated CSV tables")
}

func runExport(cmd *cobra.Command, args []string) error {
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

	failed := 0
	for name, result := range p.Exporter().ExportAll(cfg) {
		if result.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", name, result.Err)
			continue
		}
		fmt.Printf("✓ %s: %d rows -> %s\n", name, result.Rows, result.Path)
	}
	if failed > 0 {
		return fmt.Errorf("%d table(s) failed to export", failed)
	}
	return nil
}
