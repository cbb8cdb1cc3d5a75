package report

import (
	"path/filepath"
	"testing"

	"confatlas/internal/geo"
	"confatlas/internal/model"
	"confatlas/internal/store"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func testResolver() *geo.ContinentResolver {
	return geo.NewContinentResolver(geo.NewCountryResolver(map[string]string{"UK": "GB"}, nil))
}

func TestBuildCommitteeRows(t *testing.T) {
	data := model.CommitteeData{
		"2020": {
			"Bob": model.CommitteeAffiliation{
				Institutions: map[string]string{"MIT": "US", "ETH Zurich": "CH"},
			},
			"Alice": model.CommitteeAffiliation{Country: "UK"},
		},
	}

	rows := BuildCommitteeRows("nsdi", data, testResolver())

	want := []CommitteeRow{
		{Conference: "nsdi", Year: "2020", Name: "Alice", Institution: "", Continent: "EU"},
		{Conference: "nsdi", Year: "2020", Name: "Bob", Institution: "ETH Zurich;MIT", Continent: "EU;NA"},
	}
	require.Empty(t, cmp.Diff(want, rows))
}

func TestBuildCommitteeRowsUnresolvableCountry(t *testing.T) {
	data := model.CommitteeData{
		"2019": {
			"Eve": model.CommitteeAffiliation{
				Institutions: map[string]string{"Unknown U": "Atlantis"},
			},
		},
	}

	rows := BuildCommitteeRows("atc", data, testResolver())
	require.Len(t, rows, 1)
	require.Equal(t, "Unknown U", rows[0].Institution)
	require.Equal(t, "", rows[0].Continent)
}

func TestWriteCommitteeCSV(t *testing.T) {
	st := store.New(nil)
	path := filepath.Join(t.TempDir(), "unifiedCommitteeData.csv")

	rows := []CommitteeRow{
		{Conference: "atc", Year: "2020", Name: "Alice", Institution: "MIT", Continent: "NA"},
	}
	require.NoError(t, WriteCommitteeCSV(st, path, rows))

	header, records, err := st.ReadCSV(path)
	require.NoError(t, err)
	require.Equal(t, []string{"Conference", "Year", "Name", "Institution", "Continent"}, header)
	require.Equal(t, [][]string{{"atc", "2020", "Alice", "MIT", "NA"}}, records)
}
