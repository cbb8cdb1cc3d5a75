// Package report folds per-paper classification and continent results
// into the flat tables consumed by the plotting stage.
package report

import (
	"sort"

	"confatlas/internal/model"
	"confatlas/internal/store"
)

// PaperRow is one row of the unified papers table.
type PaperRow struct {
	Conference string
	Year       string
	Title      string
	Continent  string
}

// papersHeader is the unified papers CSV schema.
var papersHeader = []string{"Conference", "Year", "Title", "Predominant Continent"}

// BuildPaperRows flattens a processed conference into table rows. The
// continent column carries the first element of the predominant set
// (first-seen tie order) or stays empty when the set is empty. Years are
// emitted in sorted order for stable output.
func BuildPaperRows(conference string, data model.ConferenceData) []PaperRow {
	var rows []PaperRow
	for _, year := range sortedYears(data) {
		for _, paper := range data[year] {
			continent := ""
			if len(paper.PredominantContinent) > 0 {
				continent = paper.PredominantContinent[0]
			}
			rows = append(rows, PaperRow{
				Conference: conference,
				Year:       year,
				Title:      paper.Title,
				Continent:  continent,
			})
		}
	}
	return rows
}

// WritePapersCSV writes the unified papers table.
func WritePapersCSV(st *store.Store, path string, rows []PaperRow) error {
	records := make([][]string, len(rows))
	for i, row := range rows {
		records[i] = []string{row.Conference, row.Year, row.Title, row.Continent}
	}
	return st.WriteCSV(path, papersHeader, records)
}

func sortedYears(data model.ConferenceData) []string {
	years := make([]string, 0, len(data))
	for year := range data {
		years = append(years, year)
	}
	sort.Strings(years)
	return years
}
