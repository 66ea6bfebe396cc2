package geo

import (
	"strings"

	"github.com/briefcast/briefcast/app/model"
)

// Resolver turns request location input into a GeoContext. Structured input
// passes through; free-text input like "Portland, Oregon" is parsed against
// a state-name lookup table.
type Resolver struct {
	states map[string]string // lowercase state name or code -> short code
}

func NewResolver(states map[string]string) *Resolver {
	// Allow lookups by code as well ("or" and "oregon" both resolve to OR).
	expanded := make(map[string]string, len(states)*2)
	for name, code := range states {
		expanded[name] = code
		expanded[strings.ToLower(code)] = code
	}
	return &Resolver{states: expanded}
}

// Resolve picks the structured context when present, otherwise parses the
// free-text location. Both absent yields a zero GeoContext.
func (r *Resolver) Resolve(structured *model.GeoContext, freeText string) model.GeoContext {
	if structured != nil && !structured.IsZero() {
		return *structured
	}
	return r.ParseLocation(freeText)
}

// ParseLocation parses a "City, Region" string. The part after the first
// comma is matched against the state table; a match fills Region and marks
// the country as the US. Unmatched input still populates City so the
// relevance filter has at least one token to work with.
func (r *Resolver) ParseLocation(location string) model.GeoContext {
	location = strings.TrimSpace(location)
	if location == "" {
		return model.GeoContext{}
	}

	var g model.GeoContext

	parts := strings.SplitN(location, ",", 2)
	g.City = strings.TrimSpace(parts[0])

	if len(parts) == 2 {
		region := strings.TrimSpace(parts[1])
		if code, ok := r.states[strings.ToLower(region)]; ok {
			g.Region = region
			g.Country = "United States"
			g.CountryCode = "us"
			// Normalize two-letter input to the full table entry form.
			if len(region) == 2 {
				g.Region = code
			}
		} else {
			g.Region = region
		}
	}

	return g
}

// Tokens returns the non-empty geo fields usable for substring matching,
// lowercased, dropping tokens shorter than minLen.
func Tokens(g model.GeoContext, minLen int) []string {
	candidates := []string{g.City, g.Region, g.Country, g.CountryCode}

	tokens := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = strings.ToLower(strings.TrimSpace(c))
		if len(c) >= minLen {
			tokens = append(tokens, c)
		}
	}
	return tokens
}

// CanonicalKey renders the context as a deterministic "country-region-city"
// string for cache keys. Empty fields render as empty segments so distinct
// contexts never collide.
func CanonicalKey(g model.GeoContext) string {
	parts := []string{g.Country, g.Region, g.City}
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(parts, "-")
}
