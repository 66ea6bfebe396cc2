// Package classify implements the "uplifting only" content filter.
package classify

import (
	"strings"

	"github.com/briefcast/briefcast/app/model"
	"github.com/briefcast/briefcast/app/tuning"
)

type Classifier struct {
	positive []string
	negative []string
}

func NewClassifier(lists tuning.Uplifting) *Classifier {
	return &Classifier{
		positive: lowercaseAll(lists.Positive),
		negative: lowercaseAll(lists.Negative),
	}
}

// IsUplifting accepts an article only when its title and description carry
// a positive keyword and no negative keyword. Negative keywords always take
// precedence.
func (c *Classifier) IsUplifting(a model.Article) bool {
	text := strings.ToLower(a.Title + " " + a.Description)

	for _, keyword := range c.negative {
		if strings.Contains(text, keyword) {
			return false
		}
	}

	for _, keyword := range c.positive {
		if strings.Contains(text, keyword) {
			return true
		}
	}

	return false
}

// Run filters a list down to its uplifting entries.
func (c *Classifier) Run(articles []model.Article) []model.Article {
	kept := make([]model.Article, 0, len(articles))
	for _, a := range articles {
		if c.IsUplifting(a) {
			kept = append(kept, a)
		}
	}
	return kept
}

func lowercaseAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}
