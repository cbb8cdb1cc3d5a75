package geo

import "github.com/biter777/countries"

// Continent is one of the six fine-grained continent codes, plus Unknown
// for tokens that fail resolution.
type Continent string

const (
	NorthAmerica Continent = "NA"
	Europe       Continent = "EU"
	Asia         Continent = "AS"
	SouthAmerica Continent = "SA"
	Oceania      Continent = "OC"
	Africa       Continent = "AF"
	Unknown      Continent = "Unknown"
)

// Grouped is the four-bucket reporting taxonomy. SA, OC, and AF have too
// few samples for meaningful per-continent statistics and are merged.
type Grouped string

const (
	GroupNA      Grouped = "NA"
	GroupEU      Grouped = "EU"
	GroupAS      Grouped = "AS"
	GroupOthers  Grouped = "Others"
	GroupUnknown Grouped = "Unknown"
)

// ContinentNames maps continent codes to display names.
var ContinentNames = map[Continent]string{
	NorthAmerica: "North America",
	Europe:       "Europe",
	Asia:         "Asia",
	SouthAmerica: "South America",
	Oceania:      "Oceania",
	Africa:       "Africa",
	Unknown:      "Unknown",
}

// ContinentResolver maps country tokens to continents through a
// CountryResolver.
type ContinentResolver struct {
	countries *CountryResolver
}

// NewContinentResolver creates a continent resolver on top of the given
// country resolver.
func NewContinentResolver(countries *CountryResolver) *ContinentResolver {
	return &ContinentResolver{countries: countries}
}

// Resolve maps a raw country token (code, name, or alias) to a continent.
// A failure in either resolution stage yields ok=false; callers treat that
// as Unknown.
func (r *ContinentResolver) Resolve(token string) (Continent, bool) {
	alpha2, ok := r.countries.Resolve(token)
	if !ok {
		return "", false
	}
	return FromAlpha2(alpha2)
}

// FromAlpha2 maps an ISO alpha-2 code to a continent.
func FromAlpha2(alpha2 string) (Continent, bool) {
	country := countries.ByName(alpha2)
	if country == countries.Unknown {
		return "", false
	}

	switch country.Region() {
	case countries.RegionNA:
		return NorthAmerica, true
	case countries.RegionEU:
		return Europe, true
	case countries.RegionAS:
		return Asia, true
	case countries.RegionSA:
		return SouthAmerica, true
	case countries.RegionOC:
		return Oceania, true
	case countries.RegionAF:
		return Africa, true
	default:
		return "", false
	}
}

// Group collapses a continent code into the reporting taxonomy: NA, EU,
// and AS pass through, SA/OC/AF become Others, and anything unresolved
// becomes Unknown. Group is total over its input domain.
func Group(c Continent) Grouped {
	switch c {
	case NorthAmerica:
		return GroupNA
	case Europe:
		return GroupEU
	case Asia:
		return GroupAS
	case SouthAmerica, Oceania, Africa:
		return GroupOthers
	default:
		return GroupUnknown
	}
}
