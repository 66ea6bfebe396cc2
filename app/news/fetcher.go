// Package news fetches articles for a topic, picking a query strategy per
// topic class and caching the deduplicated result.
package news

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/briefcast/briefcast/app/cache"
	"github.com/briefcast/briefcast/app/fanout"
	"github.com/briefcast/briefcast/app/geo"
	"github.com/briefcast/briefcast/app/model"
	"github.com/briefcast/briefcast/app/provider"
	"github.com/briefcast/briefcast/app/topic"
)

const (
	minResults      = 1
	maxResultsLimit = 50
	cacheTTL        = 15 * time.Minute
	freeTextWindow  = 3 * 24 * time.Hour

	// Category queries below this count are topped up with a free-text
	// search before returning.
	categoryBackfillFloor = 5

	missingKeyNote = "Missing NEWS_API_KEY"
)

// Source is the provider surface the fetcher queries.
type Source interface {
	Everything(ctx context.Context, p provider.EverythingParams) ([]model.Article, error)
	TopHeadlines(ctx context.Context, p provider.HeadlinesParams) ([]model.Article, error)
	Configured() bool
}

// Result carries the fetched articles plus an optional diagnostic note for
// the caller. The articles slice is never nil.
type Result struct {
	Articles []model.Article
	Note     string
}

type Fetcher struct {
	source Source
	store  cache.Store
}

func NewFetcher(source Source, store cache.Store) *Fetcher {
	return &Fetcher{source: source, store: store}
}

// Run fetches up to maxResults articles for the topic, consulting the cache
// first. Provider failures degrade to an empty result rather than an error.
func (f *Fetcher) Run(ctx context.Context, topicName string, g model.GeoContext, maxResults int) Result {
	topicName = topic.Normalize(topicName)
	maxResults = clamp(maxResults, minResults, maxResultsLimit)

	if !f.source.Configured() {
		return Result{Articles: []model.Article{}, Note: missingKeyNote}
	}

	key := cache.ArticleKey(topicName, geo.CanonicalKey(g), maxResults)
	if cached, ok := f.lookup(key); ok {
		return Result{Articles: cached}
	}

	var articles []model.Article
	switch topic.Classify(topicName) {
	case topic.ClassGeneral:
		articles = f.fetchGeneral(ctx, g, maxResults)
	case topic.ClassLocal:
		articles = f.fetchLocal(ctx, g, maxResults)
	case topic.ClassCategory:
		articles = f.fetchCategory(ctx, topicName, g, maxResults)
	default:
		articles = f.fetchFreeText(ctx, topicName, maxResults)
	}

	articles = dedupe(articles)
	if len(articles) > maxResults {
		articles = articles[:maxResults]
	}
	if len(articles) > 0 {
		f.remember(key, articles)
	}

	return Result{Articles: articles}
}

// fetchCategory runs a single headline query for a core category, biased by
// the most specific geo keyword available, and backfills thin results with a
// free-text search.
func (f *Fetcher) fetchCategory(ctx context.Context, topicName string, g model.GeoContext, maxResults int) []model.Article {
	bias := strings.TrimSpace(g.City)
	if bias == "" {
		bias = strings.TrimSpace(g.Region)
	}

	articles, err := f.source.TopHeadlines(ctx, provider.HeadlinesParams{
		Category: topicName,
		Country:  countryOrDefault(g),
		Query:    bias,
		PageSize: maxResults,
	})
	if err != nil {
		slog.Warn("Category headlines query failed", "topic", topicName, "error", err)
	}

	floor := min(categoryBackfillFloor, maxResults)
	if len(articles) >= floor {
		return articles
	}

	query := topicName
	if bias != "" {
		query += " " + bias
	}
	backfill, err := f.source.Everything(ctx, provider.EverythingParams{
		Query:    query,
		From:     freeTextFrom(),
		SortBy:   "publishedAt",
		PageSize: maxResults,
	})
	if err != nil {
		slog.Warn("Category backfill query failed", "topic", topicName, "error", err)
		return articles
	}

	return append(articles, backfill...)
}

// fetchGeneral fans out one query per expanded category and keeps at most
// one article from each, so the digest spans the full category spread.
func (f *Fetcher) fetchGeneral(ctx context.Context, g model.GeoContext, maxResults int) []model.Article {
	country := countryOrDefault(g)

	categories := topic.GeneralExpansion()
	tasks := make([]func(context.Context) ([]model.Article, error), 0, len(categories))
	for _, category := range categories {
		category := category
		if category == topic.World {
			tasks = append(tasks, func(ctx context.Context) ([]model.Article, error) {
				return f.source.Everything(ctx, provider.EverythingParams{
					Query:    "world news",
					From:     freeTextFrom(),
					SortBy:   "publishedAt",
					PageSize: 1,
				})
			})
			continue
		}
		tasks = append(tasks, func(ctx context.Context) ([]model.Article, error) {
			return f.source.TopHeadlines(ctx, provider.HeadlinesParams{
				Category: category,
				Country:  country,
				PageSize: 1,
			})
		})
	}

	results := fanout.SettleAll(ctx, tasks)
	if fanout.AllFailed(results) {
		articles, err := f.source.TopHeadlines(ctx, provider.HeadlinesParams{
			Category: topic.General,
			Country:  country,
			PageSize: maxResults,
		})
		if err != nil {
			slog.Warn("General fallback query failed", "error", err)
			return nil
		}
		return articles
	}

	var merged []model.Article
	for i, r := range results {
		if !r.OK() {
			slog.Warn("General branch query failed", "category", categories[i], "error", r.Err)
			continue
		}
		if len(r.Value) > 0 {
			merged = append(merged, r.Value[0])
		}
	}
	return merged
}

// fetchLocal fans out every query the geo context supports: headline and
// search branches for the city and the region, a country headline branch,
// and a generic fallback that fires regardless.
func (f *Fetcher) fetchLocal(ctx context.Context, g model.GeoContext, maxResults int) []model.Article {
	var tasks []func(context.Context) ([]model.Article, error)

	for _, place := range []string{strings.TrimSpace(g.City), strings.TrimSpace(g.Region)} {
		if place == "" {
			continue
		}
		place := place
		tasks = append(tasks,
			func(ctx context.Context) ([]model.Article, error) {
				return f.source.TopHeadlines(ctx, provider.HeadlinesParams{
					Category: topic.General,
					Query:    place,
					PageSize: maxResults,
				})
			},
			func(ctx context.Context) ([]model.Article, error) {
				return f.source.Everything(ctx, provider.EverythingParams{
					QInTitle: place,
					From:     freeTextFrom(),
					SortBy:   "publishedAt",
					PageSize: maxResults,
				})
			},
			func(ctx context.Context) ([]model.Article, error) {
				return f.source.Everything(ctx, provider.EverythingParams{
					Query:    place + " news",
					From:     freeTextFrom(),
					SortBy:   "publishedAt",
					PageSize: maxResults,
				})
			},
		)
	}

	if code := strings.TrimSpace(g.CountryCode); code != "" {
		tasks = append(tasks, func(ctx context.Context) ([]model.Article, error) {
			return f.source.TopHeadlines(ctx, provider.HeadlinesParams{
				Category: topic.General,
				Country:  code,
				PageSize: maxResults,
			})
		})
	}

	tasks = append(tasks, func(ctx context.Context) ([]model.Article, error) {
		return f.source.Everything(ctx, provider.EverythingParams{
			Query:    "local news",
			From:     freeTextFrom(),
			SortBy:   "publishedAt",
			PageSize: maxResults,
		})
	})

	results := fanout.SettleAll(ctx, tasks)
	for _, r := range results {
		if !r.OK() {
			slog.Warn("Local branch query failed", "error", r.Err)
		}
	}

	var merged []model.Article
	for _, branch := range fanout.Successes(results) {
		merged = append(merged, branch...)
	}
	return merged
}

// fetchFreeText searches the last three days of coverage, newest first.
func (f *Fetcher) fetchFreeText(ctx context.Context, topicName string, maxResults int) []model.Article {
	articles, err := f.source.Everything(ctx, provider.EverythingParams{
		Query:    topicName,
		From:     freeTextFrom(),
		SortBy:   "publishedAt",
		PageSize: maxResults,
	})
	if err != nil {
		slog.Warn("Free-text query failed", "topic", topicName, "error", err)
		return nil
	}
	return articles
}

func (f *Fetcher) lookup(key string) ([]model.Article, bool) {
	raw, ok := f.store.Get(key)
	if !ok {
		return nil, false
	}
	var articles []model.Article
	if err := json.Unmarshal([]byte(raw), &articles); err != nil {
		slog.Warn("Failed to decode cached articles", "key", key, "error", err)
		return nil, false
	}
	return articles, true
}

func (f *Fetcher) remember(key string, articles []model.Article) {
	raw, err := json.Marshal(articles)
	if err != nil {
		slog.Warn("Failed to encode articles for cache", "key", key, "error", err)
		return
	}
	f.store.Set(key, string(raw), cacheTTL)
}

// dedupe keeps the first occurrence of each article key.
func dedupe(articles []model.Article) []model.Article {
	seen := make(map[string]bool, len(articles))
	deduped := make([]model.Article, 0, len(articles))
	for _, a := range articles {
		key := a.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, a)
	}
	return deduped
}

func countryOrDefault(g model.GeoContext) string {
	if code := strings.TrimSpace(g.CountryCode); code != "" {
		return strings.ToLower(code)
	}
	return "us"
}

func freeTextFrom() time.Time {
	return time.Now().UTC().Add(-freeTextWindow)
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
