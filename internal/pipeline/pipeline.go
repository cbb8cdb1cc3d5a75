// Package pipeline orchestrates the analysis stages: reduce crawled data,
// export unified CSV tables, classify big-tech participation, and hand off
// to the external plotting stage.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"confatlas/internal/catalog"
	"confatlas/internal/classify"
	"confatlas/internal/geo"
	"confatlas/internal/model"
	"confatlas/internal/report"
	"confatlas/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Pipeline wires the stages together over one configuration.
type Pipeline struct {
	cfg      *model.Config
	catalog  *catalog.Catalog
	store    *store.Store
	resolver *geo.ContinentResolver
	reducer  *Reducer
	exporter *Exporter
	analyzer *Analyzer
	plots    *PlotRunner
	log      *zap.Logger
}

// New builds a pipeline from configuration. The catalog is loaded from the
// configured override file when set, otherwise the built-in defaults are
// used.
func New(cfg *model.Config, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		loaded, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		cat = loaded
		logger.Info("loaded catalog override", zap.String("path", cfg.Catalog.Path))
	}

	classifier, err := classify.NewClassifier(cat.Companies)
	if err != nil {
		return nil, fmt.Errorf("build classifier: %w", err)
	}

	st := store.New(logger)
	resolver := geo.NewContinentResolver(geo.NewCountryResolver(cat.CountryFixes, logger))

	return &Pipeline{
		cfg:      cfg,
		catalog:  cat,
		store:    st,
		resolver: resolver,
		reducer:  NewReducer(st, cfg.Concurrency.Workers, logger),
		exporter: NewExporter(st, resolver, logger),
		analyzer: NewAnalyzer(classifier, st, logger),
		plots: NewPlotRunner(cfg.Plots.Rscript, cfg.ResolvePath(cfg.Plots.ScriptsDir),
			cfg.Data.Root, cfg.Plots.Timeout, logger),
		log: logger,
	}, nil
}

// Reducer returns the reduce stage.
func (p *Pipeline) Reducer() *Reducer { return p.reducer }

// Exporter returns the CSV export stage.
func (p *Pipeline) Exporter() *Exporter { return p.exporter }

// Analyzer returns the big-tech classification stage.
func (p *Pipeline) Analyzer() *Analyzer { return p.analyzer }

// Run executes the full pipeline. The reduce and classification stages are
// load-bearing: their failure aborts the run with an error. CSV export and
// plot generation degrade to warnings.
func (p *Pipeline) Run(ctx context.Context) error {
	runID := uuid.NewString()
	started := time.Now()
	p.log.Info("pipeline started", zap.String("run_id", runID))

	if err := store.EnsureDirs(p.cfg.Data.Root,
		p.cfg.Data.Processed, p.cfg.Output.CSVDir, "outputs/plots", "outputs/reports"); err != nil {
		return fmt.Errorf("prepare directories: %w", err)
	}

	// Stage 1: data processing.
	stats, err := p.reducer.ProcessAll(ctx,
		p.cfg.ResolvePath(p.cfg.Data.Extended),
		p.cfg.ResolvePath(p.cfg.Data.Processed))
	if err != nil {
		return fmt.Errorf("data processing: %w", err)
	}
	fmt.Println(SummaryReport(stats))

	// Stage 2: unified CSV export (warn-only).
	for name, result := range p.exporter.ExportAll(p.cfg) {
		if result.Err != nil {
			p.log.Warn("continuing despite export failure",
				zap.String("table", name), zap.Error(result.Err))
		}
	}

	// Stage 3: big-tech classification.
	rows, err := p.analyzer.WriteReports(
		p.cfg.ResolvePath(p.cfg.Data.Processed),
		p.cfg.ResolvePath(p.cfg.Output.CSVDir))
	if err != nil {
		return fmt.Errorf("big tech analysis: %w", err)
	}
	fmt.Println(report.Summary(rows))

	// Stage 4: external plotting stage (warn-only).
	if p.cfg.Plots.Enabled {
		p.plots.RunAll(ctx)
	} else {
		p.log.Info("plot generation disabled")
	}

	p.log.Info("pipeline finished",
		zap.String("run_id", runID),
		zap.Duration("elapsed", time.Since(started).Round(time.Second)))
	return nil
}
