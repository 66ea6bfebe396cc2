// Package summarize turns a filtered article set into spoken-style prose,
// via an LLM call with a deterministic non-LLM fallback.
package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/briefcast/briefcast/app/model"
)

const (
	maxPromptArticles = 4
	maxSnippetChars   = 150
	maxTokenBudget    = 1200

	fallbackOpener = "Here's a quick look at today's top stories."

	systemInstruction = "You are a friendly news anchor delivering a spoken briefing. " +
		"Summarize the provided articles in plain conversational language, as if read aloud. " +
		"Do not use headings, bullet points or markdown. Do not mention that you are summarizing articles."
)

// ChatCompleter is the seam to the LLM completion service, satisfied by
// *openai.Client.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Summarizer struct {
	client ChatCompleter // nil means no credential is configured
	model  string
}

// NewSummarizer builds a Summarizer. An empty API key yields a summarizer
// that always uses the deterministic fallback.
func NewSummarizer(apiKey, model string) *Summarizer {
	if apiKey == "" {
		return &Summarizer{model: model}
	}
	return &Summarizer{client: openai.NewClient(apiKey), model: model}
}

// NewSummarizerWithClient injects a completion client directly, used by
// tests.
func NewSummarizerWithClient(client ChatCompleter, model string) *Summarizer {
	return &Summarizer{client: client, model: model}
}

// Run produces the summary text for one topic. Summarization failure never
// fails the request: every error path degrades to deterministic text.
func (s *Summarizer) Run(ctx context.Context, topicName string, g model.GeoContext, articles []model.Article, wordCount int, upliftingOnly bool) string {
	if len(articles) == 0 {
		return noCoverageMessage(topicName, g)
	}

	if s.client == nil {
		return FallbackSummary(articles)
	}

	prompt := buildPrompt(topicName, g, articles, wordCount, upliftingOnly)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   tokenBudget(wordCount),
		Temperature: 0.7,
	})
	if err != nil {
		slog.Warn("Summarization call failed, using fallback", "topic", topicName, "error", err)
		return FallbackSummary(articles)
	}

	if len(resp.Choices) == 0 {
		slog.Warn("Summarization returned no choices, using fallback", "topic", topicName)
		return FallbackSummary(articles)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		slog.Warn("Summarization returned empty content, using fallback", "topic", topicName)
		return FallbackSummary(articles)
	}

	return content
}

// FallbackSummary is the deterministic substitute for a failed or
// unconfigured LLM call: a fixed opening sentence plus the first three
// article titles joined by periods.
func FallbackSummary(articles []model.Article) string {
	titles := make([]string, 0, 3)
	for _, a := range articles {
		if len(titles) >= 3 {
			break
		}
		title := cleanTitle(a.Title)
		if title != "" {
			titles = append(titles, title)
		}
	}

	if len(titles) == 0 {
		return fallbackOpener
	}
	return fallbackOpener + " " + strings.Join(titles, ". ") + "."
}

// noCoverageMessage is returned without any LLM call when nothing was
// fetched for the topic.
func noCoverageMessage(topicName string, g model.GeoContext) string {
	return fmt.Sprintf("I couldn't find any recent coverage on %s right now. Please try another topic or check back a little later.", describeTopic(topicName, g))
}

func buildPrompt(topicName string, g model.GeoContext, articles []model.Article, wordCount int, upliftingOnly bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a summary of about %d words covering %s.\n", wordCount, describeTopic(topicName, g))
	if upliftingOnly {
		b.WriteString("Keep the tone upbeat and encouraging; these are positive stories.\n")
	}
	b.WriteString("\nArticles:\n")

	count := len(articles)
	if count > maxPromptArticles {
		count = maxPromptArticles
	}
	for i := 0; i < count; i++ {
		a := articles[i]
		fmt.Fprintf(&b, "%d. %s", i+1, cleanTitle(a.Title))
		if snippet := cleanSnippet(a.Description); snippet != "" {
			fmt.Fprintf(&b, " - %s", snippet)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func tokenBudget(wordCount int) int {
	budget := int(float64(wordCount) * 1.2)
	if budget > maxTokenBudget {
		return maxTokenBudget
	}
	if budget < 1 {
		return 1
	}
	return budget
}

func describeTopic(topicName string, g model.GeoContext) string {
	place := strings.TrimSpace(strings.Join(nonEmpty(g.City, g.Region, g.Country), ", "))
	if place == "" {
		return topicName + " news"
	}
	return fmt.Sprintf("%s news in %s", topicName, place)
}

// cleanTitle strips trailing punctuation and whitespace so titles join
// cleanly with periods.
func cleanTitle(title string) string {
	return strings.TrimRight(strings.TrimSpace(title), ".!?,;:- ")
}

// cleanSnippet collapses whitespace and truncates to the snippet budget.
func cleanSnippet(description string) string {
	s := strings.Join(strings.Fields(description), " ")
	if len(s) > maxSnippetChars {
		s = s[:maxSnippetChars]
	}
	return s
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
