package report

import (
	"sort"
	"strconv"

	"confatlas/internal/extract"
	"confatlas/internal/geo"
	"confatlas/internal/model"
	"confatlas/internal/store"
)

// CitationRow is one row of the unified citations table. The value is a
// raw occurrence count, not a percentage: citing papers carry no single
// predominant label, so each distinct continent on a citation counts once.
type CitationRow struct {
	Conference string
	Continent  string
	Count      int
}

var citationsHeader = []string{"Conference", "Continent", "Num_Papers"}

// BuildCitationRows counts citing papers per continent for one
// conference. Buckets appear in first-seen order; continents that never
// occur produce no row.
func BuildCitationRows(conference string, data model.CitationData, resolver *geo.ContinentResolver) []CitationRow {
	var order []geo.Continent
	counts := make(map[geo.Continent]int)

	titles := make([]string, 0, len(data))
	for title := range data {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	for _, title := range titles {
		citations := data[title]
		for i := range citations {
			for _, continent := range extract.CitationContinents(&citations[i], resolver) {
				if _, seen := counts[continent]; !seen {
					order = append(order, continent)
				}
				counts[continent]++
			}
		}
	}

	rows := make([]CitationRow, 0, len(order))
	for _, continent := range order {
		rows = append(rows, CitationRow{
			Conference: conference,
			Continent:  string(continent),
			Count:      counts[continent],
		})
	}
	return rows
}

// WriteCitationsCSV writes the unified citations table.
func WriteCitationsCSV(st *store.Store, path string, rows []CitationRow) error {
	records := make([][]string, len(rows))
	for i, row := range rows {
		records[i] = []string{row.Conference, row.Continent, strconv.Itoa(row.Count)}
	}
	return st.WriteCSV(path, citationsHeader, records)
}
