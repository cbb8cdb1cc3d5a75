package report

import (
	"path/filepath"
	"testing"

	"confatlas/internal/model"
	"confatlas/internal/store"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func citingAuthor(countries ...string) model.CitingAuthor {
	insts := make([]model.CitingInstitution, len(countries))
	for i, c := range countries {
		insts[i] = model.CitingInstitution{Country: c}
	}
	return model.CitingAuthor{Institutions: insts}
}

func TestBuildCitationRows(t *testing.T) {
	data := model.CitationData{
		"cited paper a": {
			{Title: "citer 1", Authors: []model.CitingAuthor{citingAuthor("US", "DE")}},
			{Title: "citer 2", Authors: []model.CitingAuthor{citingAuthor("US")}},
		},
		"cited paper b": {
			{Title: "citer 3", Authors: []model.CitingAuthor{citingAuthor("CN", "Atlantis")}},
		},
	}

	rows := BuildCitationRows("nsdi", data, testResolver())

	// Each citing paper contributes one count per distinct continent;
	// unresolvable countries are dropped. Buckets appear in first-seen
	// order over the sorted cited-paper titles.
	want := []CitationRow{
		{Conference: "nsdi", Continent: "NA", Count: 2},
		{Conference: "nsdi", Continent: "EU", Count: 1},
		{Conference: "nsdi", Continent: "AS", Count: 1},
	}
	require.Empty(t, cmp.Diff(want, rows))
}

func TestBuildCitationRowsDeduplicatesWithinCitation(t *testing.T) {
	data := model.CitationData{
		"cited": {
			{Title: "citer", Authors: []model.CitingAuthor{
				citingAuthor("US"),
				citingAuthor("CA"), // same continent, counted once
			}},
		},
	}

	rows := BuildCitationRows("atc", data, testResolver())
	want := []CitationRow{{Conference: "atc", Continent: "NA", Count: 1}}
	require.Empty(t, cmp.Diff(want, rows))
}

func TestWriteCitationsCSV(t *testing.T) {
	st := store.New(nil)
	path := filepath.Join(t.TempDir(), "unifiedCitationsData.csv")

	rows := []CitationRow{{Conference: "atc", Continent: "NA", Count: 7}}
	require.NoError(t, WriteCitationsCSV(st, path, rows))

	header, records, err := st.ReadCSV(path)
	require.NoError(t, err)
	require.Equal(t, []string{"Conference", "Continent", "Num_Papers"}, header)
	require.Equal(t, [][]string{{"atc", "NA", "7"}}, records)
}
