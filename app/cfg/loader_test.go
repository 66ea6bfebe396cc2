package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		DBPath:         "./test.db",
		RedisAddr:      "localhost:6379",
		NewsAPIKey:     "news-key",
		NewsAPIBaseURL: "https://newsapi.org/v2",
		OpenAIAPIKey:   "openai-key",
		OpenAIModel:    "gpt-4o-mini",
		Port:           "8080",
		APIAccessKey:   "test-key",
		FreeDailyLimit: 1,
		WarmTopics:     []string{"technology", "business"},
		WarmInterval:   600,
		WorkerCount:    3,
		UserAgent:      "Test Agent",
		Timezone:       "UTC",
		Debug:          true,
		Version:        "test-version",
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.DBPath != "./test.db" {
		t.Errorf("Expected DB path './test.db', got '%s'", cfg.DBPath)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("Expected redis addr 'localhost:6379', got '%s'", cfg.RedisAddr)
	}
	if cfg.NewsAPIKey != "news-key" {
		t.Errorf("Expected news API key 'news-key', got '%s'", cfg.NewsAPIKey)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("Expected model 'gpt-4o-mini', got '%s'", cfg.OpenAIModel)
	}
	if cfg.FreeDailyLimit != 1 {
		t.Errorf("Expected free daily limit 1, got %d", cfg.FreeDailyLimit)
	}
	if len(cfg.WarmTopics) != 2 {
		t.Errorf("Expected 2 warm topics, got %d", len(cfg.WarmTopics))
	}
	if cfg.WorkerCount != 3 {
		t.Errorf("Expected worker count 3, got %d", cfg.WorkerCount)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}

func TestSetForTesting(t *testing.T) {
	SetForTesting(&Cfg{Port: "9999"})
	if Get().Port != "9999" {
		t.Errorf("Expected port '9999', got '%s'", Get().Port)
	}
}
