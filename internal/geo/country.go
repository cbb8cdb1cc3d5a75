package geo

import (
	"strings"

	"github.com/biter777/countries"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// CountryResolver normalizes raw country tokens (ISO alpha-2 codes, full
// names, known aliases, malformed strings) to canonical alpha-2 codes.
// Resolution never fails hard: an unresolvable token yields ok=false and a
// debug log, nothing else.
type CountryResolver struct {
	fixes map[string]string
	cache *gocache.Cache
	log   *zap.Logger
}

// NewCountryResolver creates a resolver using the given alias table.
// Crawled data repeats the same tokens thousands of times, so results
// (including misses) are memoized.
func NewCountryResolver(fixes map[string]string, logger *zap.Logger) *CountryResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CountryResolver{
		fixes: fixes,
		cache: gocache.New(gocache.NoExpiration, 0),
		log:   logger,
	}
}

// Resolve maps a raw token to an ISO alpha-2 code. Order: alias table,
// 2-letter passthrough (upper-cased, not validated), country-name lookup,
// country-name lookup with periods and commas stripped.
func (r *CountryResolver) Resolve(token string) (string, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	if cached, found := r.cache.Get(token); found {
		code := cached.(string)
		return code, code != ""
	}

	code, ok := r.resolve(token)
	r.cache.SetDefault(token, code)
	if !ok {
		r.log.Debug("unresolvable country token", zap.String("token", token))
	}
	return code, ok
}

func (r *CountryResolver) resolve(token string) (string, bool) {
	if fixed, ok := r.fixes[token]; ok {
		return fixed, true
	}

	if len(token) == 2 && isAlpha(token) {
		return strings.ToUpper(token), true
	}

	if country := countries.ByName(token); country != countries.Unknown {
		return country.Alpha2(), true
	}

	cleaned := strings.NewReplacer(".", "", ",", "").Replace(token)
	if cleaned != token {
		if country := countries.ByName(cleaned); country != countries.Unknown {
			return country.Alpha2(), true
		}
	}

	return "", false
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
