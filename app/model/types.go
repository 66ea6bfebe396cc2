package model

import (
	"time"
)

// Article is a normalized provider record. URL doubles as the deduplication
// key; when a provider returns no URL a synthetic id is generated at
// normalization time so the article still participates in dedup.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt string    `json:"published_at"`
	ImageURL    string    `json:"image_url"`
	FetchedAt   time.Time `json:"-"`
}

// Key returns the dedup key for the article: the URL when present,
// otherwise the synthetic id stored in its place.
func (a Article) Key() string {
	return a.URL
}

// GeoContext carries the resolved geography for a request. All fields are
// optional; an empty GeoContext means geography is unknown.
type GeoContext struct {
	City        string `json:"city"`
	Region      string `json:"region"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
}

// IsZero reports whether no geographic information is available at all.
func (g GeoContext) IsZero() bool {
	return g.City == "" && g.Region == "" && g.Country == "" && g.CountryCode == ""
}

// SummaryItem is the user-facing representation of a retained article.
type SummaryItem struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
	URL     string `json:"url"`
	Topic   string `json:"topic"`
}

// Combined is the assembled summary text. AudioURL is always null here;
// audio generation belongs to a separate endpoint.
type Combined struct {
	Text     string  `json:"text"`
	AudioURL *string `json:"audioUrl"`
}

// PipelineResult is what the aggregation pipeline hands to the HTTP layer.
type PipelineResult struct {
	Items    []SummaryItem `json:"items"`
	Combined Combined      `json:"combined"`
}

// UsageRecord tracks per-user daily quota state. LastUsageDate is a
// calendar date in "2006-01-02" form; DailyCount is only meaningful for
// that day, and a read on a later day must reset it to zero before the
// quota is evaluated.
type UsageRecord struct {
	UserID        string
	DailyCount    int
	LastUsageDate string
	IsPremium     bool
}
