package ors

import (
	"fmt"
	"strings"
)

// normalize collapses whitespace so equivalent inputs share cache keys.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// enhanceAddress rewrites known ambiguous patterns into fuller canonical
// forms before geocoding, improving the hit rate for short references.
func enhanceAddress(addr string) string {
	if strings.Contains(addr, "Times Square") && strings.Contains(addr, "New York") {
		return "Times Square, Manhattan, New York City, NY, USA"
	}

	lower := strings.ToLower(addr)
	if idx := strings.Index(lower, "city center"); idx >= 0 {
		city := strings.TrimSpace(strings.TrimSuffix(addr[:idx], ","))
		if city != "" {
			return fmt.Sprintf("downtown %s, %s", city, city)
		}
	}

	return addr
}

// US-state abbreviations treated as a strong country signal. Matching is
// per token, not substring, so "Sunnyvale" does not read as "NY".
var usStateTokens = map[string]struct{}{
	"NY": {},
	"CA": {},
	"FL": {},
	"TX": {},
}

// countryFilter returns an ISO country code to constrain the search when
// the text carries a strong country signal, or "" for an unconstrained
// search.
func countryFilter(addr string) string {
	if strings.Contains(strings.ToUpper(addr), "USA") {
		return "US"
	}

	tokens := strings.FieldsFunc(strings.ToUpper(addr), func(r rune) bool {
		return r == ',' || r == ' ' || r == '.'
	})
	for _, tok := range tokens {
		if _, ok := usStateTokens[tok]; ok {
			return "US"
		}
	}

	return ""
}
