// Package relevance ranks fetched articles against the requested topic and
// geography, guaranteeing a minimum yield via scored backfill.
package relevance

import (
	"sort"
	"strings"

	"github.com/briefcast/briefcast/app/geo"
	"github.com/briefcast/briefcast/app/model"
	"github.com/briefcast/briefcast/app/topic"
	"github.com/briefcast/briefcast/app/tuning"
)

type Filter struct {
	weights tuning.Weights
}

func NewFilter(weights tuning.Weights) *Filter {
	return &Filter{weights: weights}
}

// Run returns at least min(minCount, len(articles)) articles, most relevant
// first when backfilled. A non-empty input never produces an empty output.
func (f *Filter) Run(topicName string, g model.GeoContext, articles []model.Article, minCount int) []model.Article {
	if len(articles) == 0 {
		return nil
	}

	class := topic.Classify(topicName)
	core := topic.IsCore(topicName)
	geoTokens := geo.Tokens(g, f.weights.MinGeoToken)
	topicTokens := topic.Tokens(topicName, f.weights.MinTopicToken)

	kept, rest := f.strictPass(class, core, geoTokens, topicTokens, articles)

	if len(kept) >= minCount {
		return kept[:minCount]
	}

	// Scored backfill: rank everything the strict pass rejected and append
	// best-first until the minimum is met.
	scored := make([]scoredArticle, 0, len(rest))
	for _, a := range rest {
		scored = append(scored, scoredArticle{
			article: a,
			score:   f.score(core, geoTokens, topicTokens, a),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	for _, s := range scored {
		if len(kept) >= minCount {
			break
		}
		kept = append(kept, s.article)
	}

	// Geography-local requests must not come back empty: append whatever is
	// left when the scored backfill was not enough.
	if class == topic.ClassLocal && len(kept) < minCount {
		seen := make(map[string]bool, len(kept))
		for _, a := range kept {
			seen[a.Key()] = true
		}
		for _, a := range articles {
			if len(kept) >= minCount {
				break
			}
			if !seen[a.Key()] {
				kept = append(kept, a)
				seen[a.Key()] = true
			}
		}
	}

	if len(kept) == 0 {
		if minCount > len(articles) {
			minCount = len(articles)
		}
		return articles[:minCount]
	}

	return kept
}

type scoredArticle struct {
	article model.Article
	score   float64
}

// strictPass splits articles into those satisfying the containment rule for
// the topic class and the remainder.
func (f *Filter) strictPass(class topic.Class, core bool, geoTokens, topicTokens []string, articles []model.Article) ([]model.Article, []model.Article) {
	var kept, rest []model.Article

	for _, a := range articles {
		if f.strictKeep(class, core, geoTokens, topicTokens, a) {
			kept = append(kept, a)
		} else {
			rest = append(rest, a)
		}
	}

	return kept, rest
}

func (f *Filter) strictKeep(class topic.Class, core bool, geoTokens, topicTokens []string, a model.Article) bool {
	title := strings.ToLower(a.Title)
	description := strings.ToLower(a.Description)

	switch class {
	case topic.ClassLocal:
		// Geography unknown means no filter.
		if len(geoTokens) == 0 {
			return true
		}
		for _, tok := range geoTokens {
			if strings.Contains(title, tok) || strings.Contains(description, tok) {
				return true
			}
		}
		return false

	case topic.ClassCategory, topic.ClassGeneral:
		// Category membership is itself the relevance signal.
		return true

	default:
		// "world" is core despite being queried as free text, so it keeps
		// everything like the other core categories.
		if core || len(topicTokens) == 0 {
			return true
		}
		for _, tok := range topicTokens {
			if strings.Contains(title, tok) || strings.Contains(description, tok) {
				return true
			}
		}
		return false
	}
}

// score rates a rejected article for backfill: a title hit outranks a
// description-only hit for every token, and having a publish timestamp adds
// a small freshness bonus.
func (f *Filter) score(core bool, geoTokens, topicTokens []string, a model.Article) float64 {
	title := strings.ToLower(a.Title)
	description := strings.ToLower(a.Description)

	var score float64

	score += f.tokenScore(title, description, geoTokens)

	// Topic tokens contribute only for non-core topics; core categories
	// carry no keyword signal.
	if !core {
		score += f.tokenScore(title, description, topicTokens)
	}

	if strings.TrimSpace(a.PublishedAt) != "" {
		score += f.weights.Freshness
	}

	return score
}

func (f *Filter) tokenScore(title, description string, tokens []string) float64 {
	var score float64
	for _, tok := range tokens {
		if strings.Contains(title, tok) {
			score += f.weights.TitleHit
		} else if strings.Contains(description, tok) {
			score += f.weights.DescriptionHit
		}
	}
	return score
}
