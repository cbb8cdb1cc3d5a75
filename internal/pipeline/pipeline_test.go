package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"confatlas/internal/model"
	"confatlas/internal/store"

	"github.com/stretchr/testify/require"
)

func TestPipelineRun(t *testing.T) {
	root := t.TempDir()
	cfg := model.DefaultConfig()
	cfg.Data.Root = root
	cfg.Concurrency.Workers = 2
	cfg.Plots.Enabled = false

	st := store.New(nil)
	extendedDir := cfg.ResolvePath(cfg.Data.Extended)
	data := model.ConferenceData{
		"2020": {
			{
				Title: "big tech paper",
				Authors: []model.Author{
					{Institutions: []model.Institution{{Name: "Google Research", Country: "US"}}},
				},
			},
			{
				Title: "academic paper",
				Authors: []model.Author{
					{Institutions: []model.Institution{{Name: "ETH Zurich", Country: "CH"}}},
				},
			},
		},
	}
	require.NoError(t, st.SaveJSON(filepath.Join(extendedDir, "nsdi_extended_data.json"), data))

	p, err := New(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, p.Run(context.Background()))

	// Stage 1 output: processed data with predominant continents.
	var processed model.ConferenceData
	processedDir := cfg.ResolvePath(cfg.Data.Processed)
	require.NoError(t, st.LoadJSON(filepath.Join(processedDir, "nsdi_data.json"), &processed))
	require.Equal(t, []string{"NA"}, processed["2020"][0].PredominantContinent)
	require.Equal(t, []string{"EU"}, processed["2020"][1].PredominantContinent)

	// Stage 2 output: unified papers table.
	_, records, err := st.ReadCSV(filepath.Join(processedDir, "unifiedPaperData.csv"))
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Stage 3 output: big-tech tables.
	_, records, err = st.ReadCSV(filepath.Join(cfg.ResolvePath(cfg.Output.CSVDir), "big_tech_analysis.csv"))
	require.NoError(t, err)
	require.Equal(t, [][]string{{"nsdi", "2020", "50.00", "50.00", "0.00"}}, records)
}

func TestPipelineRunNoInputFails(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Data.Root = t.TempDir()
	cfg.Plots.Enabled = false

	p, err := New(cfg, nil)
	require.NoError(t, err)
	require.Error(t, p.Run(context.Background()))
}

func TestNewWithCatalogOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("companies:\n  - megacorp\n"), 0o644))

	cfg := model.DefaultConfig()
	cfg.Data.Root = t.TempDir()
	cfg.Catalog.Path = path

	p, err := New(cfg, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"megacorp"}, p.catalog.Companies)
}

func TestNewWithMissingCatalogFails(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Catalog.Path = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := New(cfg, nil)
	require.Error(t, err)
}
