package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"confatlas/internal/classify"
	"confatlas/internal/extract"
	"confatlas/internal/model"
	"confatlas/internal/store"
)

// YearStats holds the classification counts for one conference-year.
type YearStats struct {
	Total      int
	HasBigTech int
	NoBigTech  int
	AllUnknown int
}

// BigTechRow is one row of the big-tech classification table.
// Percentages are rounded to two decimals and use the conference-year's
// total paper count as the base.
type BigTechRow struct {
	Conference string
	Year       string
	PctHasBig  float64
	PctNoBig   float64
	PctAllNone float64
}

var bigTechHeader = []string{"Conference", "Year", "pct_has_big", "pct_no_big", "pct_all_none"}

// AnalyzeConference classifies every paper of a conference and folds the
// results into per-year percentage rows. Conference-years without papers
// produce no row.
func AnalyzeConference(cls *classify.Classifier, conference string, data model.ConferenceData) []BigTechRow {
	var rows []BigTechRow
	for _, year := range sortedYears(data) {
		papers := data[year]
		if len(papers) == 0 {
			continue
		}

		var stats YearStats
		stats.Total = len(papers)
		for i := range papers {
			switch cls.Classify(extract.InstitutionNames(&papers[i])) {
			case classify.HasBigTech:
				stats.HasBigTech++
			case classify.NoBigTech:
				stats.NoBigTech++
			case classify.AllUnknown:
				stats.AllUnknown++
			}
		}

		rows = append(rows, BigTechRow{
			Conference: conference,
			Year:       year,
			PctHasBig:  round2(percent(stats.HasBigTech, stats.Total)),
			PctNoBig:   round2(percent(stats.NoBigTech, stats.Total)),
			PctAllNone: round2(percent(stats.AllUnknown, stats.Total)),
		})
	}
	return rows
}

// WriteBigTechCSV writes the big-tech classification table.
func WriteBigTechCSV(st *store.Store, path string, rows []BigTechRow) error {
	records := make([][]string, len(rows))
	for i, row := range rows {
		records[i] = []string{
			row.Conference,
			row.Year,
			formatPct(row.PctHasBig),
			formatPct(row.PctNoBig),
			formatPct(row.PctAllNone),
		}
	}
	return st.WriteCSV(path, bigTechHeader, records)
}

// ContinentRow is one row of the big-tech-by-continent table. Level
// carries the label "pct_big_<continent>"; the percentage base is the
// conference-year's classified-and-continent-resolved paper count, so
// papers lacking continent data are excluded from the denominator.
type ContinentRow struct {
	Conference string
	Year       string
	Level      string
	Pct        float64
}

var continentHeader = []string{"Conference", "Year", "level_2", "X0"}

// continentBuckets is the fixed emission order of the by-continent table.
// Continents outside the big three collapse into Other.
var continentBuckets = []string{"NA", "EU", "AS", "Other"}

// AnalyzeByContinent computes per-continent big-tech percentages for a
// conference. Papers without a resolved predominant continent are skipped
// entirely. Buckets with no contributing paper are omitted, not written as
// zero rows; the plotting stage relies on absence-implies-zero.
func AnalyzeByContinent(cls *classify.Classifier, conference string, data model.ConferenceData) []ContinentRow {
	var rows []ContinentRow
	for _, year := range sortedYears(data) {
		type bucket struct{ hasBig, total int }
		buckets := make(map[string]*bucket, len(continentBuckets))
		for _, name := range continentBuckets {
			buckets[name] = &bucket{}
		}

		resolvedTotal := 0
		for i := range data[year] {
			paper := &data[year][i]
			if len(paper.PredominantContinent) == 0 {
				continue
			}
			continent := strings.ToUpper(paper.PredominantContinent[0])
			if continent == "" || continent == "UNKNOWN" {
				continue
			}
			b, ok := buckets[continent]
			if !ok {
				b = buckets["Other"]
			}

			if cls.Classify(extract.InstitutionNames(paper)) == classify.HasBigTech {
				b.hasBig++
			}
			b.total++
			resolvedTotal++
		}

		if resolvedTotal == 0 {
			continue
		}
		for _, name := range continentBuckets {
			b := buckets[name]
			if b.total == 0 {
				continue
			}
			rows = append(rows, ContinentRow{
				Conference: conference,
				Year:       year,
				Level:      "pct_big_" + strings.ToLower(name),
				Pct:        round2(percent(b.hasBig, resolvedTotal)),
			})
		}
	}
	return rows
}

// WriteContinentCSV writes the big-tech-by-continent table.
func WriteContinentCSV(st *store.Store, path string, rows []ContinentRow) error {
	records := make([][]string, len(rows))
	for i, row := range rows {
		records[i] = []string{row.Conference, row.Year, row.Level, formatPct(row.Pct)}
	}
	return st.WriteCSV(path, continentHeader, records)
}

// Summary renders per-conference big-tech averages as a fixed-width text
// block for the run log.
func Summary(rows []BigTechRow) string {
	byConference := make(map[string][]BigTechRow)
	for _, row := range rows {
		byConference[row.Conference] = append(byConference[row.Conference], row)
	}

	conferences := make([]string, 0, len(byConference))
	for conference := range byConference {
		conferences = append(conferences, conference)
	}
	sort.Strings(conferences)

	var b strings.Builder
	rule := strings.Repeat("=", 70)
	b.WriteString(rule + "\n")
	b.WriteString("BIG TECH COMPANY ANALYSIS SUMMARY\n")
	b.WriteString(rule + "\n\n")

	for _, conference := range conferences {
		confRows := byConference[conference]
		var sumBig, sumAcademia float64
		for _, row := range confRows {
			sumBig += row.PctHasBig
			sumAcademia += row.PctNoBig
		}
		n := float64(len(confRows))
		fmt.Fprintf(&b, "%-15s: %5.1f%% Big Tech, %5.1f%% Academia\n",
			conference, sumBig/n, sumAcademia/n)
	}

	b.WriteString("\n" + strings.Repeat("-", 70) + "\n")
	fmt.Fprintf(&b, "Total conferences analyzed: %d\n", len(conferences))
	fmt.Fprintf(&b, "Total records: %d\n", len(rows))
	b.WriteString(rule)
	return b.String()
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatPct(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
