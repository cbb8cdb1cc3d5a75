package report

import (
	"sort"
	"strings"

	"confatlas/internal/extract"
	"confatlas/internal/geo"
	"confatlas/internal/model"
	"confatlas/internal/store"
)

// CommitteeRow is one row of the unified committee table.
type CommitteeRow struct {
	Conference  string
	Year        string
	Name        string
	Institution string // semicolon-joined
	Continent   string // semicolon-joined, sorted
}

var committeeHeader = []string{"Conference", "Year", "Name", "Institution", "Continent"}

// BuildCommitteeRows flattens a conference's committee rosters into table
// rows. Member institutions are semicolon-joined; their countries are
// resolved to continents, deduplicated, and joined sorted. Years and
// member names are emitted in sorted order for stable output.
func BuildCommitteeRows(conference string, data model.CommitteeData, resolver *geo.ContinentResolver) []CommitteeRow {
	years := make([]string, 0, len(data))
	for year := range data {
		years = append(years, year)
	}
	sort.Strings(years)

	var rows []CommitteeRow
	for _, year := range years {
		members := data[year]
		names := make([]string, 0, len(members))
		for name := range members {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			aff := members[name]
			rows = append(rows, CommitteeRow{
				Conference:  conference,
				Year:        year,
				Name:        name,
				Institution: joinInstitutions(aff),
				Continent:   joinContinents(extract.CommitteeContinents(aff, resolver)),
			})
		}
	}
	return rows
}

// WriteCommitteeCSV writes the unified committee table.
func WriteCommitteeCSV(st *store.Store, path string, rows []CommitteeRow) error {
	records := make([][]string, len(rows))
	for i, row := range rows {
		records[i] = []string{row.Conference, row.Year, row.Name, row.Institution, row.Continent}
	}
	return st.WriteCSV(path, committeeHeader, records)
}

func joinInstitutions(aff model.CommitteeAffiliation) string {
	institutions := make([]string, 0, len(aff.Institutions))
	for inst := range aff.Institutions {
		if inst != "" {
			institutions = append(institutions, inst)
		}
	}
	sort.Strings(institutions)
	return strings.Join(institutions, ";")
}

func joinContinents(continents []geo.Continent) string {
	parts := make([]string, len(continents))
	for i, c := range continents {
		parts[i] = string(c)
	}
	return strings.Join(parts, ";")
}
