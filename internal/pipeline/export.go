package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"confatlas/internal/geo"
	"confatlas/internal/model"
	"confatlas/internal/report"
	"confatlas/internal/store"

	"go.uber.org/zap"
)

// ExportResult describes one generated CSV.
type ExportResult struct {
	Path string
	Rows int
	Err  error
}

// Exporter generates the unified CSV tables from processed and crawled
// data.
type Exporter struct {
	store    *store.Store
	resolver *geo.ContinentResolver
	log      *zap.Logger
}

// NewExporter creates an exporter.
func NewExporter(st *store.Store, resolver *geo.ContinentResolver, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{store: st, resolver: resolver, log: logger}
}

// PapersCSV builds the unified papers table from processed conference
// files. Files named socc_* are skipped; cloud_* is the canonical copy of
// the same conference.
func (e *Exporter) PapersCSV(processedDir, outPath string) ExportResult {
	if _, err := os.Stat(processedDir); err != nil {
		return ExportResult{Path: outPath, Err: fmt.Errorf("processed data directory: %w", err)}
	}

	var rows []report.PaperRow
	for _, conference := range e.store.Conferences(processedDir, "_data.json") {
		if strings.EqualFold(conference, "socc") {
			continue
		}

		var data model.ConferenceData
		path := filepath.Join(processedDir, conference+"_data.json")
		if err := e.store.LoadJSON(path, &data); err != nil {
			e.log.Warn("skipping unreadable data file", zap.String("path", path), zap.Error(err))
			continue
		}
		rows = append(rows, report.BuildPaperRows(conference, data)...)
	}

	if err := report.WritePapersCSV(e.store, outPath, rows); err != nil {
		return ExportResult{Path: outPath, Err: err}
	}
	return ExportResult{Path: outPath, Rows: len(rows)}
}

// CommitteeCSV builds the unified committee table from committee files.
func (e *Exporter) CommitteeCSV(committeeDir, outPath string) ExportResult {
	if _, err := os.Stat(committeeDir); err != nil {
		return ExportResult{Path: outPath, Err: fmt.Errorf("committee data directory: %w", err)}
	}

	var rows []report.CommitteeRow
	for _, conference := range e.store.Conferences(committeeDir, "_committee.json") {
		var data model.CommitteeData
		path := filepath.Join(committeeDir, conference+"_committee.json")
		if err := e.store.LoadJSON(path, &data); err != nil {
			e.log.Warn("skipping unreadable committee file", zap.String("path", path), zap.Error(err))
			continue
		}
		rows = append(rows, report.BuildCommitteeRows(conference, data, e.resolver)...)
	}

	if err := report.WriteCommitteeCSV(e.store, outPath, rows); err != nil {
		return ExportResult{Path: outPath, Err: err}
	}
	return ExportResult{Path: outPath, Rows: len(rows)}
}

// CitationsCSV builds the unified citations table. For each conference the
// primary citations file is preferred; the intermediate crawler output is
// the fallback. Unparseable or empty files are skipped with a warning.
func (e *Exporter) CitationsCSV(citationsDir, outPath string) ExportResult {
	if _, err := os.Stat(citationsDir); err != nil {
		return ExportResult{Path: outPath, Err: fmt.Errorf("citations data directory: %w", err)}
	}

	intermediateDir := filepath.Join(citationsDir, "IntermediateCitations")

	seen := make(map[string]struct{})
	var conferences []string
	for _, conference := range e.store.Conferences(citationsDir, "_citations_data.json") {
		seen[conference] = struct{}{}
		conferences = append(conferences, conference)
	}
	for _, conference := range e.store.Conferences(intermediateDir, "_citations_s2.json") {
		if _, dup := seen[conference]; !dup {
			conferences = append(conferences, conference)
		}
	}

	var rows []report.CitationRow
	for _, conference := range conferences {
		path := filepath.Join(citationsDir, conference+"_citations_data.json")
		if _, err := os.Stat(path); err != nil {
			path = filepath.Join(intermediateDir, conference+"_citations_s2.json")
		}

		var data model.CitationData
		if err := e.store.LoadJSON(path, &data); err != nil {
			e.log.Warn("skipping citation file", zap.String("path", path), zap.Error(err))
			continue
		}
		if len(data) == 0 {
			e.log.Warn("skipping empty citation file", zap.String("path", path))
			continue
		}
		rows = append(rows, report.BuildCitationRows(conference, data, e.resolver)...)
	}

	if err := report.WriteCitationsCSV(e.store, outPath, rows); err != nil {
		return ExportResult{Path: outPath, Err: err}
	}
	return ExportResult{Path: outPath, Rows: len(rows)}
}

// ExportAll generates every unified table. Individual failures are
// reported per table, not raised.
func (e *Exporter) ExportAll(cfg *model.Config) map[string]ExportResult {
	processedDir := cfg.ResolvePath(cfg.Data.Processed)

	results := map[string]ExportResult{
		"papers":    e.PapersCSV(processedDir, filepath.Join(processedDir, "unifiedPaperData.csv")),
		"committee": e.CommitteeCSV(cfg.ResolvePath(cfg.Data.Committee), filepath.Join(processedDir, "unifiedCommitteeData.csv")),
		"citations": e.CitationsCSV(cfg.ResolvePath(cfg.Data.Citations), filepath.Join(processedDir, "unifiedCitationsData.csv")),
	}

	for name, result := range results {
		if result.Err != nil {
			e.log.Warn("csv export failed", zap.String("table", name), zap.Error(result.Err))
			continue
		}
		e.log.Info("csv generated",
			zap.String("table", name),
			zap.String("path", result.Path),
			zap.Int("rows", result.Rows))
	}
	return results
}
