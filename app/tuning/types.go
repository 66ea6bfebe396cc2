package tuning

// Tuning bundles the heuristic constants of the relevance pipeline so they
// can be adjusted from a YAML file without touching control flow. Every
// field has a hard-coded default; a missing file means defaults apply.
type Tuning struct {
	Weights   Weights   `yaml:"weights"`
	Uplifting Uplifting `yaml:"uplifting"`
	States    []State   `yaml:"states"`
}

// Weights are the scoring constants of the relevance filter.
type Weights struct {
	TitleHit       float64 `yaml:"title_hit"`       // token found in the title
	DescriptionHit float64 `yaml:"description_hit"` // token found only in the description
	Freshness      float64 `yaml:"freshness"`       // article has a publish timestamp
	MinTopicToken  int     `yaml:"min_topic_token"` // shortest topic token considered
	MinGeoToken    int     `yaml:"min_geo_token"`   // shortest geo token considered
}

// Uplifting holds the keyword lists of the uplifting-only classifier.
// Negative keywords always take precedence over positive ones.
type Uplifting struct {
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
}

// State maps a region/state name to its short code for free-text
// "City, Region" parsing.
type State struct {
	Name string `yaml:"name"`
	Code string `yaml:"code"`
}

// StateTable returns the state list as a lowercase name -> code lookup map.
func (t *Tuning) StateTable() map[string]string {
	table := make(map[string]string, len(t.States))
	for _, s := range t.States {
		table[normalizeKey(s.Name)] = s.Code
	}
	return table
}
