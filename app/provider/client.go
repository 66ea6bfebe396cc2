package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/briefcast/briefcast/app/model"
)

// ErrMissingAPIKey is returned by every query when no provider credential
// is configured. Callers degrade to an empty result with a note instead of
// failing the request.
var ErrMissingAPIKey = errors.New("missing NEWS_API_KEY")

const defaultPageSize = 20

// Client is a thin transport for the article provider's two query shapes:
// keyword search and category/country top headlines.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	userAgent  string
}

func NewClient(httpClient *http.Client, apiKey, baseURL, userAgent string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		userAgent:  userAgent,
	}
}

// Configured reports whether a provider credential is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Everything runs a keyword search over the provider's article index.
func (c *Client) Everything(ctx context.Context, p EverythingParams) ([]model.Article, error) {
	if !c.Configured() {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{}
	if p.QInTitle != "" {
		params.Set("qInTitle", p.QInTitle)
	} else {
		params.Set("q", p.Query)
	}
	params.Set("language", "en")
	if !p.From.IsZero() {
		params.Set("from", p.From.Format("2006-01-02"))
	}
	if p.SortBy != "" {
		params.Set("sortBy", p.SortBy)
	}
	params.Set("pageSize", strconv.Itoa(pageSizeOrDefault(p.PageSize)))

	return c.query(ctx, "/everything", params)
}

// TopHeadlines runs a category/country query, optionally biased by a
// keyword.
func (c *Client) TopHeadlines(ctx context.Context, p HeadlinesParams) ([]model.Article, error) {
	if !c.Configured() {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("category", p.Category)
	if p.Country != "" {
		params.Set("country", p.Country)
	}
	if p.Query != "" {
		params.Set("q", p.Query)
	}
	params.Set("pageSize", strconv.Itoa(pageSizeOrDefault(p.PageSize)))

	return c.query(ctx, "/top-headlines", params)
}

func (c *Client) query(ctx context.Context, path string, params url.Values) ([]model.Article, error) {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	var parsed response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || parsed.Status == "error" {
		slog.Error("Provider returned an error",
			"http_status", resp.StatusCode,
			"code", parsed.Code,
			"message", parsed.Message)
		return nil, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, parsed.Message)
	}

	return c.normalize(parsed), nil
}

// normalize converts raw provider records into Articles. Records without a
// title are dropped; records without a URL get a synthetic id so they still
// participate in deduplication.
func (c *Client) normalize(parsed response) []model.Article {
	now := time.Now()
	articles := make([]model.Article, 0, len(parsed.Articles))

	for _, raw := range parsed.Articles {
		title := strings.TrimSpace(raw.Title)
		if title == "" || strings.EqualFold(title, "[removed]") {
			continue
		}

		articleURL := strings.TrimSpace(raw.URL)
		if articleURL == "" {
			articleURL = "urn:article:" + uuid.NewString()
		}

		articles = append(articles, model.Article{
			Title:       title,
			Description: strings.TrimSpace(raw.Description),
			URL:         articleURL,
			Source:      strings.TrimSpace(raw.Source.Name),
			PublishedAt: raw.PublishedAt,
			ImageURL:    strings.TrimSpace(raw.URLToImage),
			FetchedAt:   now,
		})
	}

	return articles
}

func pageSizeOrDefault(size int) int {
	if size <= 0 {
		return defaultPageSize
	}
	if size > 100 {
		return 100
	}
	return size
}
