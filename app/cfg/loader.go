package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// User store configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./briefcast.db" description:"SQLite database path for the user store (empty switches to the in-memory store)"`

	// Cache configuration
	RedisAddr string `long:"redis-addr" env:"REDIS_ADDR" description:"Redis address for the article cache (empty switches to the in-process cache)"`

	// Article provider configuration
	NewsAPIKey     string `long:"news-api-key" env:"NEWS_API_KEY" description:"API key for the article provider"`
	NewsAPIBaseURL string `long:"news-api-base-url" env:"NEWS_API_BASE_URL" default:"https://newsapi.org/v2" description:"Base URL for the article provider"`

	// Summarization configuration
	OpenAIAPIKey string `long:"openai-api-key" env:"OPENAI_API_KEY" description:"OpenAI API key for summarization (empty switches to the deterministic fallback)"`
	OpenAIModel  string `long:"openai-model" env:"OPENAI_MODEL" default:"gpt-4o-mini" description:"OpenAI model used for summarization"`

	// Application configuration
	Port           string   `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	TuningFile     string   `long:"tuning-file" env:"TUNING_FILE" description:"YAML file with relevance weights and keyword lists (optional)"`
	APIAccessKey   string   `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for admin endpoints (optional)"`
	FreeDailyLimit int      `long:"free-daily-limit" env:"FREE_DAILY_LIMIT" default:"1" description:"Summaries per calendar day for free users"`
	WarmTopics     []string `long:"warm-topic" env:"WARM_TOPICS" env-delim:"," description:"Topics whose article cache is refreshed in the background"`
	WarmInterval   int      `long:"warm-interval" env:"WARM_INTERVAL" default:"600" description:"Cache warm interval in seconds"`
	WorkerCount    int      `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of background workers"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Briefcast/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:         raw.DBPath,
		RedisAddr:      raw.RedisAddr,
		NewsAPIKey:     raw.NewsAPIKey,
		NewsAPIBaseURL: raw.NewsAPIBaseURL,
		OpenAIAPIKey:   raw.OpenAIAPIKey,
		OpenAIModel:    raw.OpenAIModel,
		Port:           raw.Port,
		TuningFile:     raw.TuningFile,
		APIAccessKey:   raw.APIAccessKey,
		FreeDailyLimit: raw.FreeDailyLimit,
		WarmTopics:     raw.WarmTopics,
		WarmInterval:   raw.WarmInterval,
		WorkerCount:    raw.WorkerCount,
		UserAgent:      raw.UserAgent,
		Timezone:       raw.Timezone,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// SetForTesting installs a configuration without going through flag parsing.
func SetForTesting(cfg *Cfg) {
	globalCfg = cfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
