package geo

import (
	"strings"

	"confatlas/internal/model"
)

// PredominanceResult is the outcome of the per-paper continent vote.
type PredominanceResult struct {
	// Continents holds every continent tied at the maximum vote count, in
	// first-seen order. Empty when no author contributed a vote.
	Continents []Continent

	// AuthorsWithoutInstitutions counts authors that were skipped for
	// having no institution records.
	AuthorsWithoutInstitutions int

	// UnresolvedCountries counts country tokens that fell into the
	// Unknown bucket.
	UnresolvedCountries int
}

// voteTally is an ordered continent->count mapping. Insertion order is
// preserved so that tie sets come out in first-seen order, which callers
// rely on when they pick a single representative.
type voteTally struct {
	order  []Continent
	counts map[Continent]int
}

func newVoteTally() *voteTally {
	return &voteTally{counts: make(map[Continent]int)}
}

func (t *voteTally) add(c Continent) {
	if _, seen := t.counts[c]; !seen {
		t.order = append(t.order, c)
	}
	t.counts[c]++
}

// leaders returns all continents tied at the maximum count, in insertion
// order.
func (t *voteTally) leaders() []Continent {
	if len(t.order) == 0 {
		return nil
	}
	max := 0
	for _, n := range t.counts {
		if n > max {
			max = n
		}
	}
	var leaders []Continent
	for _, c := range t.order {
		if t.counts[c] == max {
			leaders = append(leaders, c)
		}
	}
	return leaders
}

// Predominant computes a paper's predominant continent(s) by majority vote
// over per-author unique countries. Each author votes once per distinct
// country across their institutions, so redundant multi-institution
// records cannot dominate the vote. Tokens that are not exactly two
// characters, or that fail continent resolution, vote for the Unknown
// bucket. Ties are preserved, not broken here.
func Predominant(authors []model.Author) PredominanceResult {
	var result PredominanceResult
	tally := newVoteTally()

	for _, author := range authors {
		if len(author.Institutions) == 0 {
			result.AuthorsWithoutInstitutions++
			continue
		}

		for _, token := range uniqueCountries(author.Institutions) {
			if len(token) != 2 {
				result.UnresolvedCountries++
				tally.add(Unknown)
				continue
			}
			continent, ok := FromAlpha2(token)
			if !ok {
				result.UnresolvedCountries++
				tally.add(Unknown)
				continue
			}
			tally.add(continent)
		}
	}

	result.Continents = tally.leaders()
	return result
}

// uniqueCountries returns the distinct trimmed country tokens of an
// author's institutions, in first-seen order. Empty tokens are kept: a
// missing country is still a vote for Unknown.
func uniqueCountries(institutions []model.Institution) []string {
	seen := make(map[string]struct{}, len(institutions))
	var tokens []string
	for _, inst := range institutions {
		token := strings.TrimSpace(inst.Country)
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}
	return tokens
}
