package geo

import (
	"testing"

	"github.com/briefcast/briefcast/app/model"
	"github.com/briefcast/briefcast/app/tuning"
)

func newTestResolver() *Resolver {
	return NewResolver(tuning.Defaults().StateTable())
}

func TestResolve_PrefersStructuredContext(t *testing.T) {
	r := newTestResolver()

	structured := &model.GeoContext{City: "Austin", Region: "TX", Country: "United States", CountryCode: "us"}
	g := r.Resolve(structured, "Portland, Oregon")

	if g.City != "Austin" {
		t.Errorf("Expected structured city 'Austin', got '%s'", g.City)
	}
}

func TestParseLocation_CityAndState(t *testing.T) {
	r := newTestResolver()

	g := r.ParseLocation("Portland, Oregon")

	if g.City != "Portland" {
		t.Errorf("Expected city 'Portland', got '%s'", g.City)
	}
	if g.Region != "Oregon" {
		t.Errorf("Expected region 'Oregon', got '%s'", g.Region)
	}
	if g.CountryCode != "us" {
		t.Errorf("Expected country code 'us', got '%s'", g.CountryCode)
	}
}

func TestParseLocation_StateCode(t *testing.T) {
	r := newTestResolver()

	g := r.ParseLocation("Portland, OR")

	if g.Region != "OR" {
		t.Errorf("Expected region 'OR', got '%s'", g.Region)
	}
	if g.Country != "United States" {
		t.Errorf("Expected country 'United States', got '%s'", g.Country)
	}
}

func TestParseLocation_UnknownRegionKeepsCity(t *testing.T) {
	r := newTestResolver()

	g := r.ParseLocation("Lyon, Rhone")

	if g.City != "Lyon" {
		t.Errorf("Expected city 'Lyon', got '%s'", g.City)
	}
	if g.Region != "Rhone" {
		t.Errorf("Expected region 'Rhone', got '%s'", g.Region)
	}
	if g.CountryCode != "" {
		t.Errorf("Unknown region should not imply a country code, got '%s'", g.CountryCode)
	}
}

func TestParseLocation_Empty(t *testing.T) {
	r := newTestResolver()

	g := r.ParseLocation("  ")
	if !g.IsZero() {
		t.Errorf("Expected zero context for empty input, got %+v", g)
	}
}

func TestTokens(t *testing.T) {
	g := model.GeoContext{City: "Portland", Region: "Oregon", CountryCode: "us"}

	tokens := Tokens(g, 2)
	if len(tokens) != 3 {
		t.Fatalf("Expected 3 tokens, got %d: %v", len(tokens), tokens)
	}
	if tokens[0] != "portland" || tokens[1] != "oregon" || tokens[2] != "us" {
		t.Errorf("Unexpected tokens: %v", tokens)
	}

	// A one-character field is dropped at the default minimum length.
	g.CountryCode = "u"
	tokens = Tokens(g, 2)
	if len(tokens) != 2 {
		t.Errorf("Expected short token to be dropped, got %v", tokens)
	}
}

func TestCanonicalKey(t *testing.T) {
	g := model.GeoContext{City: "Portland", Region: "Oregon", Country: "United States"}

	key := CanonicalKey(g)
	if key != "united states-oregon-portland" {
		t.Errorf("Unexpected canonical key: %s", key)
	}

	if CanonicalKey(model.GeoContext{}) != "--" {
		t.Errorf("Zero context should render empty segments, got %s", CanonicalKey(model.GeoContext{}))
	}
}
