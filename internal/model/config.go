package model

import (
	"path/filepath"
	"runtime"
	"time"
)

// Config is the complete runtime configuration.
type Config struct {
	Data        DataConfig        `yaml:"data" mapstructure:"data"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Catalog     CatalogConfig     `yaml:"catalog" mapstructure:"catalog"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Plots       PlotsConfig       `yaml:"plots" mapstructure:"plots"`
}

// DataConfig locates the crawled inputs and the processed outputs. All
// directories are relative to Root unless absolute.
type DataConfig struct {
	Root      string `yaml:"root" mapstructure:"root"`
	Extended  string `yaml:"extended" mapstructure:"extended"`
	Processed string `yaml:"processed" mapstructure:"processed"`
	Committee string `yaml:"committee" mapstructure:"committee"`
	Citations string `yaml:"citations" mapstructure:"citations"`
}

// OutputConfig locates generated artifacts.
type OutputConfig struct {
	CSVDir  string `yaml:"csv_dir" mapstructure:"csv_dir"`
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// CatalogConfig points at an optional YAML catalog override.
type CatalogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ConcurrencyConfig controls the per-conference worker pool.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// PlotsConfig controls the external R plotting stage.
type PlotsConfig struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Rscript    string        `yaml:"rscript" mapstructure:"rscript"`
	ScriptsDir string        `yaml:"scripts_dir" mapstructure:"scripts_dir"`
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// DefaultConfig returns the configuration used when no file, environment
// variable, or flag overrides a value. The directory layout matches what
// the crawler produces.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Root:      ".",
			Extended:  "CrawlerData/ExtendedCrawlerData",
			Processed: "ProcessedData",
			Committee: "CommitteeData",
			Citations: "CrawlerData/CitationsCrawlerData",
		},
		Output: OutputConfig{
			CSVDir: "outputs/csv",
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		Plots: PlotsConfig{
			Enabled:    true,
			Rscript:    "Rscript",
			ScriptsDir: "scripts",
			Timeout:    60 * time.Second,
		},
	}
}

// ResolvePath joins a configured directory with the data root. Absolute
// paths are returned unchanged.
func (c *Config) ResolvePath(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.Data.Root, dir)
}
