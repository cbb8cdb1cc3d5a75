package pipeline

import (
	"path/filepath"
	"testing"

	"confatlas/internal/classify"
	"confatlas/internal/model"
	"confatlas/internal/store"

	"github.com/stretchr/testify/require"
)

func testAnalyzer(t *testing.T) (*Analyzer, *store.Store) {
	t.Helper()
	cls, err := classify.NewClassifier([]string{"google", "ibm"})
	require.NoError(t, err)
	st := store.New(nil)
	return NewAnalyzer(cls, st, nil), st
}

func saveConference(t *testing.T, st *store.Store, dir, conference string, data model.ConferenceData) {
	t.Helper()
	require.NoError(t, st.SaveJSON(filepath.Join(dir, conference+"_data.json"), data))
}

func bigTechPaper(continent string) model.Paper {
	return model.Paper{
		Title: "big",
		Authors: []model.Author{
			{Institutions: []model.Institution{{Name: "Google Research", Country: "US"}}},
		},
		PredominantContinent: []string{continent},
	}
}

func academicPaper(continent string) model.Paper {
	return model.Paper{
		Title: "academic",
		Authors: []model.Author{
			{Institutions: []model.Institution{{Name: "ETH Zurich", Country: "CH"}}},
		},
		PredominantContinent: []string{continent},
	}
}

func TestAnalyzeAll(t *testing.T) {
	dir := t.TempDir()
	a, st := testAnalyzer(t)

	saveConference(t, st, dir, "nsdi", model.ConferenceData{
		"2020": {bigTechPaper("NA"), academicPaper("EU")},
	})

	rows, err := a.AnalyzeAll(dir)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "nsdi", rows[0].Conference)
	require.Equal(t, 50.0, rows[0].PctHasBig)
	require.Equal(t, 50.0, rows[0].PctNoBig)
}

func TestAnalyzeAllSkipsSocc(t *testing.T) {
	dir := t.TempDir()
	a, st := testAnalyzer(t)

	data := model.ConferenceData{"2020": {academicPaper("EU")}}
	saveConference(t, st, dir, "cloud", data)
	saveConference(t, st, dir, "socc", data)

	rows, err := a.AnalyzeAll(dir)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "cloud", rows[0].Conference)
}

func TestAnalyzeAllNoData(t *testing.T) {
	a, _ := testAnalyzer(t)
	_, err := a.AnalyzeAll(t.TempDir())
	require.Error(t, err)
}

func TestWriteReports(t *testing.T) {
	dir := t.TempDir()
	csvDir := t.TempDir()
	a, st := testAnalyzer(t)

	saveConference(t, st, dir, "atc", model.ConferenceData{
		"2021": {bigTechPaper("NA"), academicPaper("EU")},
	})

	rows, err := a.WriteReports(dir, csvDir)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	header, records, err := st.ReadCSV(filepath.Join(csvDir, "big_tech_analysis.csv"))
	require.NoError(t, err)
	require.Equal(t, []string{"Conference", "Year", "pct_has_big", "pct_no_big", "pct_all_none"}, header)
	require.Equal(t, [][]string{{"atc", "2021", "50.00", "50.00", "0.00"}}, records)

	header, records, err = st.ReadCSV(filepath.Join(csvDir, "big_companies_by_continent_analysis.csv"))
	require.NoError(t, err)
	require.Equal(t, []string{"Conference", "Year", "level_2", "X0"}, header)
	require.Equal(t, [][]string{
		{"atc", "2021", "pct_big_na", "50.00"},
		{"atc", "2021", "pct_big_eu", "0.00"},
	}, records)
}
