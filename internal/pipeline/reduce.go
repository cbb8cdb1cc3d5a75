package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"confatlas/internal/geo"
	"confatlas/internal/model"
	"confatlas/internal/store"
	"confatlas/internal/worker"

	"go.uber.org/zap"
)

// ProcessingStats accumulates data-quality counters across a reduce run.
type ProcessingStats struct {
	TotalPapers                 int
	PapersWithContinent         int
	PapersWithoutSufficientData int
	UnknownCountries            int

	// ByGroup tallies papers per grouped continent (first element of the
	// predominant set).
	ByGroup map[geo.Grouped]int
}

func (s *ProcessingStats) merge(other ProcessingStats) {
	s.TotalPapers += other.TotalPapers
	s.PapersWithContinent += other.PapersWithContinent
	s.PapersWithoutSufficientData += other.PapersWithoutSufficientData
	s.UnknownCountries += other.UnknownCountries
	for group, n := range other.ByGroup {
		if s.ByGroup == nil {
			s.ByGroup = make(map[geo.Grouped]int)
		}
		s.ByGroup[group] += n
	}
}

// Reducer transforms extended crawler data into the processed format,
// computing each paper's predominant continent.
type Reducer struct {
	store   *store.Store
	workers int
	log     *zap.Logger
}

// NewReducer creates a reducer.
func NewReducer(st *store.Store, workers int, logger *zap.Logger) *Reducer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reducer{store: st, workers: workers, log: logger}
}

// ProcessPaper computes and attaches a paper's predominant continent and
// returns the paper's contribution to the run statistics.
func (r *Reducer) ProcessPaper(paper *model.Paper) ProcessingStats {
	stats := ProcessingStats{TotalPapers: 1, ByGroup: make(map[geo.Grouped]int)}

	result := geo.Predominant(paper.Authors)
	stats.UnknownCountries = result.UnresolvedCountries

	// A paper where at least half the authors contributed nothing usable
	// is flagged as insufficiently covered.
	if len(paper.Authors) > 0 {
		missing := result.AuthorsWithoutInstitutions + result.UnresolvedCountries
		if missing > 0 && missing*2 >= len(paper.Authors) {
			stats.PapersWithoutSufficientData = 1
		}
	}

	paper.PredominantContinent = paper.PredominantContinent[:0]
	for _, continent := range result.Continents {
		paper.PredominantContinent = append(paper.PredominantContinent, string(continent))
	}

	if len(result.Continents) > 0 {
		stats.PapersWithContinent = 1
		stats.ByGroup[geo.Group(result.Continents[0])]++
	} else {
		stats.ByGroup[geo.GroupUnknown]++
	}
	return stats
}

// ProcessConference computes predominant continents for every paper of a
// conference, returning the processed data and accumulated statistics.
func (r *Reducer) ProcessConference(conference string, data model.ConferenceData) (model.ConferenceData, ProcessingStats) {
	r.log.Info("processing conference", zap.String("conference", conference))

	processed := make(model.ConferenceData, len(data))
	var total ProcessingStats

	for year, papers := range data {
		yearPapers := make([]model.Paper, len(papers))
		copy(yearPapers, papers)
		for i := range yearPapers {
			total.merge(r.ProcessPaper(&yearPapers[i]))
		}
		processed[year] = yearPapers
	}

	if total.TotalPapers > 0 {
		pct := float64(total.PapersWithContinent) / float64(total.TotalPapers) * 100
		r.log.Info("conference processed",
			zap.String("conference", conference),
			zap.Int("papers", total.TotalPapers),
			zap.Float64("pct_with_continent", pct))
	}
	return processed, total
}

// reduceJob processes a single conference file inside the worker pool.
type reduceJob struct {
	conference string
	inPath     string
	outPath    string
	reducer    *Reducer
}

// reduceResult carries a conference's stats or its contained failure.
type reduceResult struct {
	conference string
	stats      ProcessingStats
	err        error
}

func (r *reduceResult) Err() error { return r.err }

func (j *reduceJob) Execute(_ context.Context) worker.Result {
	var data model.ConferenceData
	if err := j.reducer.store.LoadJSON(j.inPath, &data); err != nil {
		return &reduceResult{conference: j.conference, err: err}
	}

	processed, stats := j.reducer.ProcessConference(j.conference, data)

	if err := j.reducer.store.SaveJSON(j.outPath, processed); err != nil {
		return &reduceResult{conference: j.conference, err: err}
	}
	return &reduceResult{conference: j.conference, stats: stats}
}

// ProcessAll reduces every conference found in inDir, writing processed
// files to outDir. Conferences are processed in parallel; a failed
// conference is logged and skipped, never aborting its siblings. The
// returned error covers only whole-stage failures (no input directory).
func (r *Reducer) ProcessAll(ctx context.Context, inDir, outDir string) (map[string]ProcessingStats, error) {
	conferences := r.store.Conferences(inDir, "_extended_data.json")
	if len(conferences) == 0 {
		return nil, fmt.Errorf("no conference data found in %s", inDir)
	}
	r.log.Info("reducing conferences", zap.Int("count", len(conferences)), zap.Int("workers", r.workers))

	pool := worker.NewPool(ctx, r.workers)
	for _, conference := range conferences {
		pool.Submit(&reduceJob{
			conference: conference,
			inPath:     filepath.Join(inDir, conference+"_extended_data.json"),
			outPath:    filepath.Join(outDir, conference+"_data.json"),
			reducer:    r,
		})
	}

	allStats := make(map[string]ProcessingStats)
	for _, result := range pool.Wait() {
		res := result.(*reduceResult)
		if res.err != nil {
			r.log.Error("conference failed",
				zap.String("conference", res.conference),
				zap.Error(res.err))
			continue
		}
		allStats[res.conference] = res.stats
	}
	return allStats, nil
}

// SummaryReport renders reduce statistics as a fixed-width text block.
func SummaryReport(stats map[string]ProcessingStats) string {
	conferences := make([]string, 0, len(stats))
	for conference := range stats {
		conferences = append(conferences, conference)
	}
	sort.Strings(conferences)

	var b strings.Builder
	rule := strings.Repeat("=", 70)
	b.WriteString(rule + "\n")
	b.WriteString("DATA PROCESSING SUMMARY\n")
	b.WriteString(rule + "\n\n")

	var total ProcessingStats
	for _, conference := range conferences {
		confStats := stats[conference]
		total.merge(confStats)

		pct := 0.0
		if confStats.TotalPapers > 0 {
			pct = float64(confStats.PapersWithContinent) / float64(confStats.TotalPapers) * 100
		}
		fmt.Fprintf(&b, "%-15s: %4d papers, %5.1f%% with continent\n",
			conference, confStats.TotalPapers, pct)
	}

	b.WriteString("\n" + strings.Repeat("-", 70) + "\n")
	totalPct := 0.0
	if total.TotalPapers > 0 {
		totalPct = float64(total.PapersWithContinent) / float64(total.TotalPapers) * 100
	}
	fmt.Fprintf(&b, "%-15s: %4d papers, %5.1f%% with continent\n", "TOTAL", total.TotalPapers, totalPct)

	for _, group := range []geo.Grouped{geo.GroupNA, geo.GroupEU, geo.GroupAS, geo.GroupOthers, geo.GroupUnknown} {
		if n, ok := total.ByGroup[group]; ok && n > 0 {
			fmt.Fprintf(&b, "%-15s: %4d papers\n", string(group), n)
		}
	}
	b.WriteString(rule)
	return b.String()
}
