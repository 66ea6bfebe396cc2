package news

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briefcast/briefcast/app/cache"
	"github.com/briefcast/briefcast/app/model"
	"github.com/briefcast/briefcast/app/provider"
)

type fakeSource struct {
	mu             sync.Mutex
	configured     bool
	everything     func(p provider.EverythingParams) ([]model.Article, error)
	topHeadlines   func(p provider.HeadlinesParams) ([]model.Article, error)
	everythingReqs []provider.EverythingParams
	headlineReqs   []provider.HeadlinesParams
}

func (s *fakeSource) Everything(ctx context.Context, p provider.EverythingParams) ([]model.Article, error) {
	s.mu.Lock()
	s.everythingReqs = append(s.everythingReqs, p)
	s.mu.Unlock()
	if s.everything == nil {
		return nil, nil
	}
	return s.everything(p)
}

func (s *fakeSource) TopHeadlines(ctx context.Context, p provider.HeadlinesParams) ([]model.Article, error) {
	s.mu.Lock()
	s.headlineReqs = append(s.headlineReqs, p)
	s.mu.Unlock()
	if s.topHeadlines == nil {
		return nil, nil
	}
	return s.topHeadlines(p)
}

func (s *fakeSource) Configured() bool {
	return s.configured
}

func (s *fakeSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.everythingReqs) + len(s.headlineReqs)
}

func articlesNamed(names ...string) []model.Article {
	articles := make([]model.Article, 0, len(names))
	for _, name := range names {
		articles = append(articles, model.Article{
			Title: name,
			URL:   "https://example.com/" + name,
		})
	}
	return articles
}

func TestRunMissingCredentials(t *testing.T) {
	source := &fakeSource{configured: false}
	fetcher := NewFetcher(source, cache.NewMemoryStore())

	result := fetcher.Run(context.Background(), "technology", model.GeoContext{}, 10)

	if result.Articles == nil {
		t.Fatal("expected an empty slice, got nil")
	}
	if len(result.Articles) != 0 {
		t.Errorf("expected no articles, got %d", len(result.Articles))
	}
	if result.Note != "Missing NEWS_API_KEY" {
		t.Errorf("expected missing key note, got %q", result.Note)
	}
	if source.callCount() != 0 {
		t.Errorf("expected no provider calls, got %d", source.callCount())
	}
}

func TestRunFreeTextStrategy(t *testing.T) {
	source := &fakeSource{
		configured: true,
		everything: func(p provider.EverythingParams) ([]model.Article, error) {
			return articlesNamed("a", "b"), nil
		},
	}
	fetcher := NewFetcher(source, cache.NewMemoryStore())

	result := fetcher.Run(context.Background(), "quantum computing", model.GeoContext{}, 10)

	if len(result.Articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(result.Articles))
	}
	if len(source.everythingReqs) != 1 {
		t.Fatalf("expected 1 search request, got %d", len(source.everythingReqs))
	}

	req := source.everythingReqs[0]
	if req.Query != "quantum computing" {
		t.Errorf("expected query to carry the topic, got %q", req.Query)
	}
	if req.SortBy != "publishedAt" {
		t.Errorf("expected newest-first sort, got %q", req.SortBy)
	}
	wantFrom := time.Now().UTC().Add(-3 * 24 * time.Hour)
	if req.From.IsZero() || wantFrom.Sub(req.From) > time.Minute {
		t.Errorf("expected a three day window starting near %s, got %s", wantFrom, req.From)
	}
}

func TestRunClampsMaxResults(t *testing.T) {
	source := &fakeSource{configured: true}
	fetcher := NewFetcher(source, cache.NewMemoryStore())

	fetcher.Run(context.Background(), "startups", model.GeoContext{}, 0)
	fetcher.Run(context.Background(), "startups", model.GeoContext{}, 500)

	if len(source.everythingReqs) != 2 {
		t.Fatalf("expected 2 search requests, got %d", len(source.everythingReqs))
	}
	if got := source.everythingReqs[0].PageSize; got != 1 {
		t.Errorf("expected page size clamped up to 1, got %d", got)
	}
	if got := source.everythingReqs[1].PageSize; got != 50 {
		t.Errorf("expected page size clamped down to 50, got %d", got)
	}
}

func TestRunServesFromCache(t *testing.T) {
	source := &fakeSource{
		configured: true,
		everything: func(p provider.EverythingParams) ([]model.Article, error) {
			return articlesNamed("cached-story"), nil
		},
	}
	fetcher := NewFetcher(source, cache.NewMemoryStore())

	first := fetcher.Run(context.Background(), "space", model.GeoContext{}, 5)
	second := fetcher.Run(context.Background(), "space", model.GeoContext{}, 5)

	if source.callCount() != 1 {
		t.Errorf("expected the second run to hit the cache, provider called %d times", source.callCount())
	}
	if len(first.Articles) != 1 || len(second.Articles) != 1 {
		t.Fatalf("expected both runs to return 1 article, got %d and %d", len(first.Articles), len(second.Articles))
	}
	if second.Articles[0].Title != "cached-story" {
		t.Errorf("expected cached article, got %q", second.Articles[0].Title)
	}
}

func TestRunCacheKeyedByGeoAndSize(t *testing.T) {
	source := &fakeSource{configured: true}
	fetcher := NewFetcher(source, cache.NewMemoryStore())

	fetcher.Run(context.Background(), "space", model.GeoContext{City: "Austin"}, 5)
	fetcher.Run(context.Background(), "space", model.GeoContext{City: "Denver"}, 5)

	if source.callCount() != 2 {
		t.Errorf("expected distinct geo contexts to miss the cache, provider called %d times", source.callCount())
	}
}

func TestRunDeduplicatesByURL(t *testing.T) {
	duplicated := []model.Article{
		{Title: "first take", URL: "https://example.com/story"},
		{Title: "second take", URL: "https://example.com/story"},
		{Title: "other", URL: "https://example.com/other"},
	}
	source := &fakeSource{
		configured: true,
		everything: func(p provider.EverythingParams) ([]model.Article, error) {
			return duplicated, nil
		},
	}
	fetcher := NewFetcher(source, cache.NewMemoryStore())

	result := fetcher.Run(context.Background(), "markets rally", model.GeoContext{}, 10)

	if len(result.Articles) != 2 {
		t.Fatalf("expected 2 articles after dedup, got %d", len(result.Articles))
	}
	if result.Articles[0].Title != "first take" {
		t.Errorf("expected the first occurrence to win, got %q", result.Articles[0].Title)
	}
}

func TestCategoryStrategySkipsBackfillWhenFull(t *testing.T) {
	source := &fakeSource{
		configured: true,
		topHeadlines: func(p provider.HeadlinesParams) ([]model.Article, error) {
			return articlesNamed("h1", "h2", "h3", "h4", "h5"), nil
		},
	}
	fetcher := NewFetcher(source, cache.NewMemoryStore())

	result := fetcher.Run(context.Background(), "technology", model.GeoContext{City: "Austin", CountryCode: "us"}, 10)

	if len(source.everythingReqs) != 0 {
		t.Errorf("expected no backfill search, got %d", len(source.everythingReqs))
	}
	if len(result.Articles) != 5 {
		t.Errorf("expected 5 articles, got %d", len(result.Articles))
	}

	req := source.headlineReqs[0]
	if req.Category != "technology" || req.Country != "us" {
		t.Errorf("unexpected headline params: %+v", req)
	}
	if req.Query != "Austin" {
		t.Errorf("expected city keyword bias, got %q", req.Query)
	}
}

func TestCategoryStrategyBackfillsThinResults(t *testing.T) {
	source := &fakeSource{
		configured: true,
		topHeadlines: func(p provider.HeadlinesParams) ([]model.Article, error) {
			return articlesNamed("h1"), nil
		},
		everything: func(p provider.EverythingParams) ([]model.Article, error) {
			return articlesNamed("s1", "s2"), nil
		},
	}
	fetcher := NewFetcher(source, cache.NewMemoryStore())

	result := fetcher.Run(context.Background(), "health", model.GeoContext{Region: "Texas"}, 10)

	if len(source.everythingReqs) != 1 {
		t.Fatalf("expected 1 backfill search, got %d", len(source.everythingReqs))
	}
	if got := source.everythingReqs[0].Query; got != "health Texas" {
		t.Errorf("expected topic plus keyword query, got %q", got)
	}
	if len(result.Articles) != 3 {
		t.Errorf("expected headline and backfill articles merged, got %d", len(result.Articles))
	}
}

func TestGeneralStrategyFansOutPerCategory(t *testing.T) {
	source := &fakeSource{
		configured: true,
		topHeadlines: func(p provider.HeadlinesParams) ([]model.Article, error) {
			return articlesNamed(p.Category + "-story"), nil
		},
		everything: func(p provider.EverythingParams) ([]model.Article, error) {
			return articlesNamed("world-story"), nil
		},
	}
	fetcher := NewFetcher(source, cache.NewMemoryStore())

	result := fetcher.Run(context.Background(), "general", model.GeoContext{CountryCode: "us"}, 10)

	if len(source.headlineReqs) != 6 {
		t.Errorf("expected 6 headline branches, got %d", len(source.headlineReqs))
	}
	if len(source.everythingReqs) != 1 {
		t.Errorf("expected 1 world search branch, got %d", len(source.everythingReqs))
	}
	if len(result.Articles) != 7 {
		t.Fatalf("expected one article per category, got %d", len(result.Articles))
	}
	for _, req := range source.headlineReqs {
		if req.PageSize != 1 {
			t.Errorf("expected single-article branches, category %s requested %d", req.Category, req.PageSize)
		}
	}
}

func TestGeneralStrategyFallsBackWhenAllBranchesFail(t *testing.T) {
	var calls int
	var mu sync.Mutex
	source := &fakeSource{configured: true}
	source.everything = func(p provider.EverythingParams) ([]model.Article, error) {
		return nil, errors.New("unreachable")
	}
	source.topHeadlines = func(p provider.HeadlinesParams) ([]model.Article, error) {
		mu.Lock()
		calls++
		fallback := calls > 6
		mu.Unlock()
		if fallback {
			return articlesNamed("plain"), nil
		}
		return nil, errors.New("unreachable")
	}
	fetcher := NewFetcher(source, cache.NewMemoryStore())

	result := fetcher.Run(context.Background(), "general", model.GeoContext{}, 10)

	if len(result.Articles) != 1 || result.Articles[0].Title != "plain" {
		t.Fatalf("expected the plain fallback article, got %+v", result.Articles)
	}
	last := source.headlineReqs[len(source.headlineReqs)-1]
	if last.Category != "general" || last.PageSize != 10 {
		t.Errorf("unexpected fallback params: %+v", last)
	}
}

func TestLocalStrategyBranches(t *testing.T) {
	var counter int
	var mu sync.Mutex
	unique := func() []model.Article {
		mu.Lock()
		counter++
		n := counter
		mu.Unlock()
		return articlesNamed(fmt.Sprintf("story-%d", n))
	}
	source := &fakeSource{configured: true}
	source.everything = func(p provider.EverythingParams) ([]model.Article, error) {
		return unique(), nil
	}
	source.topHeadlines = func(p provider.HeadlinesParams) ([]model.Article, error) {
		return unique(), nil
	}
	fetcher := NewFetcher(source, cache.NewMemoryStore())

	g := model.GeoContext{City: "Austin", Region: "Texas", Country: "United States", CountryCode: "us"}
	result := fetcher.Run(context.Background(), "local", g, 20)

	if got := source.callCount(); got != 8 {
		t.Errorf("expected 8 branches for a full geo context, got %d", got)
	}
	if len(result.Articles) != 8 {
		t.Errorf("expected 8 merged articles, got %d", len(result.Articles))
	}

	var sawTitleQuery bool
	for _, req := range source.everythingReqs {
		if req.QInTitle == "Austin" {
			sawTitleQuery = true
		}
	}
	if !sawTitleQuery {
		t.Error("expected a title-restricted city search branch")
	}
}

func TestLocalStrategyWithoutGeoStillQueries(t *testing.T) {
	source := &fakeSource{
		configured: true,
		everything: func(p provider.EverythingParams) ([]model.Article, error) {
			return articlesNamed("generic"), nil
		},
	}
	fetcher := NewFetcher(source, cache.NewMemoryStore())

	result := fetcher.Run(context.Background(), "local", model.GeoContext{}, 5)

	if len(source.everythingReqs) != 1 {
		t.Fatalf("expected only the generic fallback branch, got %d", len(source.everythingReqs))
	}
	if !strings.Contains(source.everythingReqs[0].Query, "local news") {
		t.Errorf("expected a generic local query, got %q", source.everythingReqs[0].Query)
	}
	if len(result.Articles) != 1 {
		t.Errorf("expected 1 article, got %d", len(result.Articles))
	}
}

func TestRunDoesNotCacheEmptyResults(t *testing.T) {
	source := &fakeSource{
		configured: true,
		everything: func(p provider.EverythingParams) ([]model.Article, error) {
			return nil, errors.New("down")
		},
	}
	fetcher := NewFetcher(source, cache.NewMemoryStore())

	fetcher.Run(context.Background(), "obscure topic", model.GeoContext{}, 5)
	fetcher.Run(context.Background(), "obscure topic", model.GeoContext{}, 5)

	if len(source.everythingReqs) != 2 {
		t.Errorf("expected empty results to skip the cache, provider called %d times", len(source.everythingReqs))
	}
}
