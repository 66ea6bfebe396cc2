package tuning

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the tuning file at path and overlays it on the defaults.
// An empty path returns the defaults untouched.
func Load(path string) (*Tuning, error) {
	t := Defaults()

	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning file: %w", err)
	}

	var loaded Tuning
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse tuning YAML: %w", err)
	}

	merge(t, &loaded)

	if err := validate(t); err != nil {
		return nil, fmt.Errorf("invalid tuning file %s: %w", path, err)
	}

	return t, nil
}

// merge overlays non-zero values from loaded onto the defaults.
func merge(t *Tuning, loaded *Tuning) {
	if loaded.Weights.TitleHit != 0 {
		t.Weights.TitleHit = loaded.Weights.TitleHit
	}
	if loaded.Weights.DescriptionHit != 0 {
		t.Weights.DescriptionHit = loaded.Weights.DescriptionHit
	}
	if loaded.Weights.Freshness != 0 {
		t.Weights.Freshness = loaded.Weights.Freshness
	}
	if loaded.Weights.MinTopicToken != 0 {
		t.Weights.MinTopicToken = loaded.Weights.MinTopicToken
	}
	if loaded.Weights.MinGeoToken != 0 {
		t.Weights.MinGeoToken = loaded.Weights.MinGeoToken
	}
	if len(loaded.Uplifting.Positive) > 0 {
		t.Uplifting.Positive = loaded.Uplifting.Positive
	}
	if len(loaded.Uplifting.Negative) > 0 {
		t.Uplifting.Negative = loaded.Uplifting.Negative
	}
	if len(loaded.States) > 0 {
		t.States = loaded.States
	}
}

func validate(t *Tuning) error {
	nonNegative := map[string]float64{
		"title_hit":       t.Weights.TitleHit,
		"description_hit": t.Weights.DescriptionHit,
		"freshness":       t.Weights.Freshness,
	}
	for name, value := range nonNegative {
		if value < 0 {
			return fmt.Errorf("weight %s must be non-negative", name)
		}
	}

	if t.Weights.MinTopicToken < 1 {
		return fmt.Errorf("min_topic_token must be at least 1")
	}
	if t.Weights.MinGeoToken < 1 {
		return fmt.Errorf("min_geo_token must be at least 1")
	}

	for i, s := range t.States {
		if s.Name == "" || s.Code == "" {
			return fmt.Errorf("state entry at index %d must have both name and code", i)
		}
	}

	return nil
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
