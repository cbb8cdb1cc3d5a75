// Package extract pulls institution and country fields out of crawled
// records, normalizing the shapes the crawler emits.
package extract

import (
	"sort"
	"strings"

	"confatlas/internal/geo"
	"confatlas/internal/model"
)

// InstitutionNames returns the lowercased, trimmed institution names of a
// paper's authors. Missing data is preserved as empty entries so that the
// classifier can distinguish "no data" from "academic": a paper with no
// author records at all yields a single empty entry, and an author without
// institutions contributes one.
func InstitutionNames(p *model.Paper) []string {
	if len(p.Authors) == 0 {
		return []string{""}
	}

	var names []string
	for _, author := range p.Authors {
		if len(author.Institutions) == 0 {
			names = append(names, "")
			continue
		}
		for _, inst := range author.Institutions {
			names = append(names, strings.ToLower(strings.TrimSpace(inst.Name)))
		}
	}
	return names
}

// CitationContinents returns the distinct continents of a citing paper's
// author affiliations, in first-seen order. Unresolvable countries are
// dropped, not reported, per the citation-counting contract.
func CitationContinents(c *model.Citation, resolver *geo.ContinentResolver) []geo.Continent {
	seen := make(map[geo.Continent]struct{})
	var continents []geo.Continent

	for _, author := range c.Authors {
		for _, inst := range author.Institutions {
			continent, ok := resolver.Resolve(inst.CountryToken())
			if !ok {
				continue
			}
			if _, dup := seen[continent]; dup {
				continue
			}
			seen[continent] = struct{}{}
			continents = append(continents, continent)
		}
	}
	return continents
}

// CommitteeContinents resolves the distinct continents of a committee
// member's affiliation record, sorted for stable output.
func CommitteeContinents(aff model.CommitteeAffiliation, resolver *geo.ContinentResolver) []geo.Continent {
	seen := make(map[geo.Continent]struct{})
	for _, country := range aff.Countries() {
		if continent, ok := resolver.Resolve(country); ok {
			seen[continent] = struct{}{}
		}
	}

	continents := make([]geo.Continent, 0, len(seen))
	for continent := range seen {
		continents = append(continents, continent)
	}
	sort.Slice(continents, func(i, j int) bool { return continents[i] < continents[j] })
	return continents
}
