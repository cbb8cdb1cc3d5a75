package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Catalog holds the curated reference data the analysis depends on:
// conference display names, country-code fixes, and the big-tech company
// alias list. It is deliberately flat data rather than logic so it can be
// versioned and overridden without touching code.
type Catalog struct {
	// Conferences maps lowercase crawler names to display names.
	Conferences map[string]string `yaml:"conferences"`

	// CountryFixes maps known aliases and historical names to ISO alpha-2
	// codes, checked before any database lookup.
	CountryFixes map[string]string `yaml:"country_fixes"`

	// Companies is the big-tech alias list. Aliases for the same corporate
	// actor (e.g. "meta" and "facebook") are kept as separate entries;
	// presence of any alias is sufficient for a match.
	Companies []string `yaml:"companies"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{
		Conferences:  defaultConferences(),
		CountryFixes: defaultCountryFixes(),
		Companies:    defaultCompanies(),
	}
}

// Load reads a YAML catalog file and overlays it on the defaults.
// Empty sections keep their default values.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var overlay Catalog
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	cat := Default()
	if len(overlay.Conferences) > 0 {
		cat.Conferences = overlay.Conferences
	}
	if len(overlay.CountryFixes) > 0 {
		cat.CountryFixes = overlay.CountryFixes
	}
	if len(overlay.Companies) > 0 {
		cat.Companies = overlay.Companies
	}
	return cat, nil
}

// DisplayName returns the display name for a crawler conference name.
// Unmapped names are returned unchanged.
func (c *Catalog) DisplayName(conference string) string {
	if name, ok := c.Conferences[conference]; ok {
		return name
	}
	return conference
}

func defaultConferences() map[string]string {
	return map[string]string{
		"nsdi":       "NSDI",
		"sigcomm":    "SIGCOMM",
		"cloud":      "SoCC",
		"socc":       "SoCC",
		"eurosys":    "EuroSys",
		"ic2e":       "IC2E",
		"icdcs":      "ICDCS",
		"middleware": "Middleware",
		"ieeecloud":  "IEEE Cloud",
		"ccgrid":     "CCGRID",
		"europar":    "Euro-Par",
		"asplos":     "ASPLOS",
		"atc":        "ATC",
		"osdi":       "OSDI",
	}
}

func defaultCountryFixes() map[string]string {
	return map[string]string{
		"UK":          "GB",
		"U.K.":        "GB",
		"U.S.":        "US",
		"USA":         "US",
		"UAE":         "AE",
		"Korea":       "KR",
		"South Korea": "KR",
		"North Korea": "KP",
		"Russia":      "RU",
		"Viet Nam":    "VN",
		"Vietnam":     "VN",
	}
}

// defaultCompanies returns the big-tech alias list, sorted so that the
// compiled matcher is deterministic across runs.
func defaultCompanies() []string {
	companies := []string{
		// North America
		"ibm", "ibm research", "ibm linux technology center",
		"microsoft", "microsoft azure", "azure", "microsoft research",
		"google", "google cloud", "alphabet",
		"amazon", "amazon web services", "aws",
		"facebook", "meta", "meta platforms",
		"apple", "intel", "oracle", "oracle labs",
		"cisco", "cisco systems", "hp", "hewlett packard", "hp labs",
		"hpe", "hewlett packard enterprise", "nvidia", "vmware", "netflix",
		"uber", "twitter", "yahoo", "snap", "salesforce",
		"amd", "advanced micro devices", "qualcomm", "broadcom",

		// Asia
		"huawei", "alibaba", "alibaba cloud", "bytedance", "tencent",
		"baidu", "samsung", "xiaomi", "tiktok",

		// Europe
		"arm", "arm ltd", "arm limited", "arm holdings",
		"ericsson", "nokia", "siemens", "orange", "atos",
		"deutsche telekom", "bosch", "airbus", "sap",
		"telefonica", "telefónica", "vodafone", "thales", "philips",
	}
	sort.Strings(companies)
	return companies
}
