// Package briefing drives the per-topic pipeline and assembles the final
// briefing response.
package briefing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/briefcast/briefcast/app/fanout"
	"github.com/briefcast/briefcast/app/geo"
	"github.com/briefcast/briefcast/app/model"
	"github.com/briefcast/briefcast/app/news"
	"github.com/briefcast/briefcast/app/topic"
)

const (
	// The response always carries at least this many items when the
	// candidate pool can supply them.
	minItems = 3

	snippetLimit = 150
)

type Fetcher interface {
	Run(ctx context.Context, topicName string, g model.GeoContext, maxResults int) news.Result
}

type Filter interface {
	Run(topicName string, g model.GeoContext, articles []model.Article, minCount int) []model.Article
}

type Classifier interface {
	Run(articles []model.Article) []model.Article
}

type Summarizer interface {
	Run(ctx context.Context, topicName string, g model.GeoContext, articles []model.Article, wordCount int, upliftingOnly bool) string
}

// Request describes one briefing: the topics to cover, an optional
// geography (structured or a free-text "City, Region" string), the target
// summary length, and whether to keep uplifting stories only.
type Request struct {
	Topics        []string
	Location      string
	Geo           *model.GeoContext
	WordCount     int
	UpliftingOnly bool
}

type Orchestrator struct {
	fetcher    Fetcher
	filter     Filter
	classifier Classifier
	summarizer Summarizer
	resolver   *geo.Resolver
}

func NewOrchestrator(fetcher Fetcher, filter Filter, classifier Classifier, summarizer Summarizer, resolver *geo.Resolver) *Orchestrator {
	return &Orchestrator{
		fetcher:    fetcher,
		filter:     filter,
		classifier: classifier,
		summarizer: summarizer,
		resolver:   resolver,
	}
}

// topicOutcome carries everything one topic's pipeline produced. Candidates
// hold the pre-filter articles and survive even when a later stage fails,
// so the pool backfill can still use them.
type topicOutcome struct {
	topicName  string
	items      []model.SummaryItem
	summary    string
	candidates []model.Article
}

// Run processes every topic independently and merges the outcomes. A topic
// whose pipeline fails contributes one synthetic error item instead of
// aborting the batch.
func (o *Orchestrator) Run(ctx context.Context, req Request) model.PipelineResult {
	g := o.resolver.Resolve(req.Geo, req.Location)
	size := fetchSize(req.WordCount)

	tasks := make([]func(context.Context) (topicOutcome, error), 0, len(req.Topics))
	for _, rawTopic := range req.Topics {
		topicName := topic.Normalize(rawTopic)
		tasks = append(tasks, func(ctx context.Context) (topicOutcome, error) {
			return o.processTopic(ctx, topicName, g, size, req)
		})
	}

	results := fanout.SettleAll(ctx, tasks)

	var items []model.SummaryItem
	var summaries []string
	var pool []candidate
	for _, r := range results {
		for _, a := range r.Value.candidates {
			pool = append(pool, candidate{topicName: r.Value.topicName, article: a})
		}
		if !r.OK() {
			slog.Warn("Topic pipeline failed", "topic", r.Value.topicName, "error", r.Err)
			items = append(items, errorItem(r.Value.topicName))
			continue
		}
		items = append(items, r.Value.items...)
		summaries = append(summaries, r.Value.summary)
	}

	items = o.backfillFromPool(items, pool)

	return model.PipelineResult{
		Items:    items,
		Combined: model.Combined{Text: strings.Join(summaries, " ")},
	}
}

func (o *Orchestrator) processTopic(ctx context.Context, topicName string, g model.GeoContext, size int, req Request) (outcome topicOutcome, err error) {
	outcome.topicName = topicName

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("topic pipeline failed: %v", rec)
		}
	}()

	fetched := o.fetcher.Run(ctx, topicName, g, size)
	outcome.candidates = fetched.Articles

	kept := o.filter.Run(topicName, g, fetched.Articles, min(5, size))
	if req.UpliftingOnly {
		kept = o.classifier.Run(kept)
	}

	outcome.summary = o.summarizer.Run(ctx, topicName, g, kept, req.WordCount, req.UpliftingOnly)
	outcome.items = summaryItems(topicName, kept)
	return outcome, nil
}

// candidate is one pool entry: a pre-filter article tagged with the topic
// whose fetch produced it.
type candidate struct {
	topicName string
	article   model.Article
}

// backfillFromPool tops the item list up to the minimum count from the
// global candidate pool, skipping articles already present.
func (o *Orchestrator) backfillFromPool(items []model.SummaryItem, pool []candidate) []model.SummaryItem {
	if len(items) >= minItems {
		return items
	}

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		seen[item.ID] = true
	}

	for _, c := range pool {
		if len(items) >= minItems {
			break
		}
		key := c.article.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, toSummaryItem(c.topicName, c.article))
	}
	return items
}

// fetchSize maps the requested summary length to a per-topic fetch size.
func fetchSize(wordCount int) int {
	switch {
	case wordCount >= 1500:
		return 20
	case wordCount >= 800:
		return 12
	default:
		return 6
	}
}

func summaryItems(topicName string, articles []model.Article) []model.SummaryItem {
	items := make([]model.SummaryItem, 0, len(articles))
	for _, a := range articles {
		items = append(items, toSummaryItem(topicName, a))
	}
	return items
}

func toSummaryItem(topicName string, a model.Article) model.SummaryItem {
	return model.SummaryItem{
		ID:      a.Key(),
		Title:   a.Title,
		Snippet: snippet(a.Description),
		Source:  a.Source,
		URL:     a.URL,
		Topic:   topicName,
	}
}

func errorItem(topicName string) model.SummaryItem {
	return model.SummaryItem{
		ID:      "error:" + topicName,
		Title:   fmt.Sprintf("Could not prepare %s news", topicName),
		Snippet: "Something went wrong while preparing this topic. Please try again later.",
		Topic:   topicName,
	}
}

func snippet(description string) string {
	collapsed := strings.Join(strings.Fields(description), " ")
	if len(collapsed) <= snippetLimit {
		return collapsed
	}
	return strings.TrimSpace(collapsed[:snippetLimit]) + "..."
}
