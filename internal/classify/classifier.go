package classify

import (
	"fmt"
	"regexp"
	"strings"
)

// Label is a paper's affiliation classification. Every paper receives
// exactly one label.
type Label string

const (
	// HasBigTech: at least one author institution matches the company
	// catalog.
	HasBigTech Label = "has_big_company"

	// NoBigTech: institution data exists but none of it matches.
	NoBigTech Label = "no_big_company"

	// AllUnknown: no institution data available. Distinguished from
	// NoBigTech because the two imply different confidence in downstream
	// percentages.
	AllUnknown Label = "all_none"
)

// Classifier matches institution names against the big-tech company
// catalog. The pattern is compiled once and shared; matching is
// case-insensitive and whole-word, so "ibm" matches "IBM Research" and
// "IBM," but not "Ibmresearchlab".
type Classifier struct {
	pattern *regexp.Regexp
}

// NewClassifier compiles the catalog into a single whole-word alternation.
func NewClassifier(companies []string) (*Classifier, error) {
	if len(companies) == 0 {
		return nil, fmt.Errorf("empty company catalog")
	}

	escaped := make([]string, len(companies))
	for i, company := range companies {
		escaped[i] = regexp.QuoteMeta(company)
	}

	pattern, err := regexp.Compile(`(?i)\b(?:` + strings.Join(escaped, "|") + `)\b`)
	if err != nil {
		return nil, fmt.Errorf("compile company pattern: %w", err)
	}
	return &Classifier{pattern: pattern}, nil
}

// Matches reports whether a single institution name contains a catalog
// company as a whole word.
func (c *Classifier) Matches(name string) bool {
	return c.pattern.MatchString(name)
}

// Classify labels a paper from its institution name list. Empty entries
// stand for missing data and never count as known names. Scanning stops at
// the first match; presence is all that matters.
func (c *Classifier) Classify(institutionNames []string) Label {
	sawAnyKnownName := false

	for _, name := range institutionNames {
		if name == "" {
			continue
		}
		sawAnyKnownName = true
		if c.Matches(name) {
			return HasBigTech
		}
	}

	if !sawAnyKnownName {
		return AllUnknown
	}
	return NoBigTech
}
