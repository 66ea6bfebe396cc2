package provider

import (
	"time"
)

// EverythingParams parameterize a keyword search over the provider's full
// article index.
type EverythingParams struct {
	Query    string    // keyword query, required
	QInTitle string    // restrict matching to the title, mutually exclusive with Query
	From     time.Time // lower bound of the recency window, optional
	SortBy   string    // "publishedAt", "relevancy" or "popularity", optional
	PageSize int
}

// HeadlinesParams parameterize a category/country "top headlines" query.
type HeadlinesParams struct {
	Category string // native provider category, required
	Country  string // two-letter country code, optional
	Query    string // keyword bias, optional
	PageSize int
}

// response is the provider's wire format.
type response struct {
	Status       string `json:"status"`
	Code         string `json:"code"`
	Message      string `json:"message"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
		PublishedAt string `json:"publishedAt"`
		URLToImage  string `json:"urlToImage"`
	} `json:"articles"`
}
