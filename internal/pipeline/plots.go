package pipeline

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// plotScripts lists the R scripts of the external plotting stage, run in
// order. Each consumes the generated CSV tables.
var plotScripts = []struct {
	script      string
	description string
}{
	{"plot_papers_distribution.R", "Papers distribution by continent"},
	{"plot_committee_distribution.R", "Committee distribution by continent"},
	{"plot_asian_trend.R", "Asian papers trend analysis"},
	{"plot_citations_distribution.R", "Accepted vs cited papers comparison"},
	{"plot_gini_simpson.R", "Gini-Simpson diversity index"},
	{"plot_big_tech_companies_by_year.R", "Big tech vs academic papers per year"},
	{"plot_big_tech_by_continent.R", "Big tech by continent"},
	{"plot_committee_papers_heatmap.R", "Committee vs papers heatmap"},
	{"plot_big_tech_companies.R", "Big tech companies analysis"},
	{"plot_asian_trend_distribution.R", "Asian papers distribution trend"},
}

// PlotRunner invokes the external R plotting stage. Plot generation is
// best-effort: a missing interpreter or a failing script degrades to a
// warning, never an error.
type PlotRunner struct {
	rscript    string
	scriptsDir string
	workDir    string
	timeout    time.Duration
	log        *zap.Logger
}

// NewPlotRunner creates a plot runner. rscript is the interpreter name or
// path; scripts are resolved under scriptsDir and run from workDir so that
// relative CSV paths inside the scripts resolve.
func NewPlotRunner(rscript, scriptsDir, workDir string, timeout time.Duration, logger *zap.Logger) *PlotRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlotRunner{
		rscript:    rscript,
		scriptsDir: scriptsDir,
		workDir:    workDir,
		timeout:    timeout,
		log:        logger,
	}
}

// Available reports whether the R interpreter can be found.
func (p *PlotRunner) Available() bool {
	_, err := exec.LookPath(p.rscript)
	return err == nil
}

// RunAll executes every plot script with a per-script timeout, returning
// the generated and failed counts.
func (p *PlotRunner) RunAll(ctx context.Context) (generated, failed int) {
	if !p.Available() {
		p.log.Warn("Rscript not found, skipping plot generation",
			zap.String("rscript", p.rscript))
		return 0, len(plotScripts)
	}

	for _, plot := range plotScripts {
		scriptPath := filepath.Join(p.scriptsDir, plot.script)
		if _, err := os.Stat(scriptPath); err != nil {
			p.log.Warn("plot script not found", zap.String("script", plot.script))
			failed++
			continue
		}

		p.log.Info("generating plot", zap.String("description", plot.description))
		if err := p.runScript(ctx, scriptPath); err != nil {
			p.log.Error("plot generation failed",
				zap.String("script", plot.script),
				zap.Error(err))
			failed++
			continue
		}
		generated++
	}

	p.log.Info("plot generation finished",
		zap.Int("generated", generated),
		zap.Int("failed", failed))
	return generated, failed
}

func (p *PlotRunner) runScript(ctx context.Context, scriptPath string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.rscript, scriptPath)
	cmd.Dir = p.workDir
	output, err := cmd.CombinedOutput()
	if err != nil {
		p.log.Debug("plot script output", zap.ByteString("output", output))
		return err
	}
	return nil
}
