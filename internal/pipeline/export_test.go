package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"confatlas/internal/geo"
	"confatlas/internal/model"
	"confatlas/internal/store"

	"github.com/stretchr/testify/require"
)

func testExporter() (*Exporter, *store.Store) {
	st := store.New(nil)
	resolver := geo.NewContinentResolver(geo.NewCountryResolver(map[string]string{"UK": "GB"}, nil))
	return NewExporter(st, resolver, nil), st
}

func TestPapersCSVSkipsSocc(t *testing.T) {
	dir := t.TempDir()
	e, st := testExporter()

	papers := model.ConferenceData{
		"2020": {{Title: "p", PredominantContinent: []string{"NA"}}},
	}
	require.NoError(t, st.SaveJSON(filepath.Join(dir, "cloud_data.json"), papers))
	require.NoError(t, st.SaveJSON(filepath.Join(dir, "socc_data.json"), papers))

	outPath := filepath.Join(t.TempDir(), "unifiedPaperData.csv")
	result := e.PapersCSV(dir, outPath)
	require.NoError(t, result.Err)
	require.Equal(t, 1, result.Rows)

	_, records, err := st.ReadCSV(outPath)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "cloud", records[0][0])
}

func TestPapersCSVSkipsUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	e, st := testExporter()

	require.NoError(t, st.SaveJSON(filepath.Join(dir, "nsdi_data.json"), model.ConferenceData{
		"2020": {{Title: "good"}},
	}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "atc_data.json"), []byte("{broken"), 0o644))

	result := e.PapersCSV(dir, filepath.Join(t.TempDir(), "out.csv"))
	require.NoError(t, result.Err)
	require.Equal(t, 1, result.Rows)
}

func TestPapersCSVMissingDirectory(t *testing.T) {
	e, _ := testExporter()
	result := e.PapersCSV(filepath.Join(t.TempDir(), "nope"), filepath.Join(t.TempDir(), "out.csv"))
	require.Error(t, result.Err)
}

func TestCommitteeCSV(t *testing.T) {
	dir := t.TempDir()
	e, st := testExporter()

	committee := model.CommitteeData{
		"2020": {
			"Alice": {Institutions: map[string]string{"MIT": "US"}},
		},
	}
	require.NoError(t, st.SaveJSON(filepath.Join(dir, "nsdi_committee.json"), committee))

	outPath := filepath.Join(t.TempDir(), "unifiedCommitteeData.csv")
	result := e.CommitteeCSV(dir, outPath)
	require.NoError(t, result.Err)
	require.Equal(t, 1, result.Rows)

	_, records, err := st.ReadCSV(outPath)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"nsdi", "2020", "Alice", "MIT", "NA"}}, records)
}

func TestCitationsCSVPrefersPrimaryFile(t *testing.T) {
	dir := t.TempDir()
	e, st := testExporter()

	primary := model.CitationData{
		"cited": {{Title: "citer", Authors: []model.CitingAuthor{
			{Institutions: []model.CitingInstitution{{Country: "US"}}},
		}}},
	}
	fallbackDir := filepath.Join(dir, "IntermediateCitations")
	fallback := model.CitationData{
		"cited": {{Title: "other", Authors: []model.CitingAuthor{
			{Institutions: []model.CitingInstitution{{Country: "DE"}}},
		}}},
	}
	require.NoError(t, st.SaveJSON(filepath.Join(dir, "nsdi_citations_data.json"), primary))
	require.NoError(t, st.SaveJSON(filepath.Join(fallbackDir, "nsdi_citations_s2.json"), fallback))
	// atc only has the intermediate file.
	require.NoError(t, st.SaveJSON(filepath.Join(fallbackDir, "atc_citations_s2.json"), fallback))

	outPath := filepath.Join(t.TempDir(), "unifiedCitationsData.csv")
	result := e.CitationsCSV(dir, outPath)
	require.NoError(t, result.Err)

	_, records, err := st.ReadCSV(outPath)
	require.NoError(t, err)
	// nsdi from the primary file (NA), atc from the fallback (EU).
	require.Equal(t, [][]string{
		{"nsdi", "NA", "1"},
		{"atc", "EU", "1"},
	}, records)
}

func TestCitationsCSVSkipsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	e, st := testExporter()

	require.NoError(t, st.SaveJSON(filepath.Join(dir, "nsdi_citations_data.json"), model.CitationData{}))

	result := e.CitationsCSV(dir, filepath.Join(t.TempDir(), "out.csv"))
	require.NoError(t, result.Err)
	require.Equal(t, 0, result.Rows)
}

func TestExportAll(t *testing.T) {
	root := t.TempDir()
	cfg := model.DefaultConfig()
	cfg.Data.Root = root

	st := store.New(nil)
	processedDir := cfg.ResolvePath(cfg.Data.Processed)
	require.NoError(t, st.SaveJSON(filepath.Join(processedDir, "nsdi_data.json"), model.ConferenceData{
		"2020": {{Title: "p", PredominantContinent: []string{"NA"}}},
	}))

	e, _ := testExporter()
	results := e.ExportAll(cfg)

	require.NoError(t, results["papers"].Err)
	require.Equal(t, 1, results["papers"].Rows)
	// Committee and citations directories are absent; their failures are
	// reported per table.
	require.Error(t, results["committee"].Err)
	require.Error(t, results["citations"].Err)
}
