package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"confatlas/internal/classify"
	"confatlas/internal/model"
	"confatlas/internal/report"
	"confatlas/internal/store"

	"go.uber.org/zap"
)

// Analyzer runs the big-tech classification stage over processed
// conference data.
type Analyzer struct {
	classifier *classify.Classifier
	store      *store.Store
	log        *zap.Logger
}

// NewAnalyzer creates an analyzer.
func NewAnalyzer(classifier *classify.Classifier, st *store.Store, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{classifier: classifier, store: st, log: logger}
}

// loadConferences yields each processed conference's data, applying the
// socc/cloud duplicate rule and containing per-conference read failures.
func (a *Analyzer) loadConferences(processedDir string, fn func(conference string, data model.ConferenceData)) error {
	if _, err := os.Stat(processedDir); err != nil {
		return fmt.Errorf("processed data directory: %w", err)
	}

	conferences := a.store.Conferences(processedDir, "_data.json")
	if len(conferences) == 0 {
		return fmt.Errorf("no processed data found in %s", processedDir)
	}

	for _, conference := range conferences {
		if strings.EqualFold(conference, "socc") {
			continue
		}

		var data model.ConferenceData
		path := filepath.Join(processedDir, conference+"_data.json")
		if err := a.store.LoadJSON(path, &data); err != nil {
			a.log.Error("conference analysis failed",
				zap.String("conference", conference),
				zap.Error(err))
			continue
		}
		fn(conference, data)
	}
	return nil
}

// AnalyzeAll classifies every processed conference and returns the
// per-year percentage rows.
func (a *Analyzer) AnalyzeAll(processedDir string) ([]report.BigTechRow, error) {
	var rows []report.BigTechRow
	err := a.loadConferences(processedDir, func(conference string, data model.ConferenceData) {
		confRows := report.AnalyzeConference(a.classifier, conference, data)
		rows = append(rows, confRows...)
		a.log.Info("analyzed conference",
			zap.String("conference", conference),
			zap.Int("years", len(confRows)))
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AnalyzeAllByContinent computes per-continent big-tech rows for every
// processed conference.
func (a *Analyzer) AnalyzeAllByContinent(processedDir string) ([]report.ContinentRow, error) {
	var rows []report.ContinentRow
	err := a.loadConferences(processedDir, func(conference string, data model.ConferenceData) {
		rows = append(rows, report.AnalyzeByContinent(a.classifier, conference, data)...)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// WriteReports generates both big-tech CSV tables and returns the per-year
// rows for summary rendering.
func (a *Analyzer) WriteReports(processedDir, csvDir string) ([]report.BigTechRow, error) {
	rows, err := a.AnalyzeAll(processedDir)
	if err != nil {
		return nil, err
	}
	if err := report.WriteBigTechCSV(a.store, filepath.Join(csvDir, "big_tech_analysis.csv"), rows); err != nil {
		return nil, fmt.Errorf("write big tech table: %w", err)
	}

	continentRows, err := a.AnalyzeAllByContinent(processedDir)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(csvDir, "big_companies_by_continent_analysis.csv")
	if err := report.WriteContinentCSV(a.store, path, continentRows); err != nil {
		return nil, fmt.Errorf("write continent table: %w", err)
	}

	a.log.Info("big tech reports generated",
		zap.Int("rows", len(rows)),
		zap.Int("continent_rows", len(continentRows)))
	return rows, nil
}
