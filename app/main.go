package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briefcast/briefcast/app/api"
	"github.com/briefcast/briefcast/app/briefing"
	"github.com/briefcast/briefcast/app/cache"
	"github.com/briefcast/briefcast/app/cfg"
	"github.com/briefcast/briefcast/app/classify"
	"github.com/briefcast/briefcast/app/database"
	"github.com/briefcast/briefcast/app/geo"
	"github.com/briefcast/briefcast/app/news"
	"github.com/briefcast/briefcast/app/provider"
	"github.com/briefcast/briefcast/app/relevance"
	"github.com/briefcast/briefcast/app/summarize"
	"github.com/briefcast/briefcast/app/tasks"
	"github.com/briefcast/briefcast/app/tuning"
	"github.com/briefcast/briefcast/app/usage"
)

func main() {
	appConfig, err := cfg.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if appConfig == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appConfig.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Briefcast server", "version", appConfig.Version)

	// Relevance weights and keyword lists
	tun := tuning.Defaults()
	if appConfig.TuningFile != "" {
		tun, err = tuning.Load(appConfig.TuningFile)
		if err != nil {
			log.Fatal("Failed to load tuning file:", err)
		}
		slog.Info("Loaded tuning file", "path", appConfig.TuningFile)
	}

	// User store: sqlite when a database path is configured, in-memory
	// otherwise. The pipeline is oblivious to which backend is active.
	var accounts api.AccountStore
	storeBackend := "memory"
	if appConfig.DBPath != "" {
		db, err := database.NewConnection(appConfig.DBPath)
		if err != nil {
			log.Fatal("Failed to open database:", err)
		}
		defer db.Close()

		version, dirty, err := database.RunMigrations(db)
		if err != nil {
			log.Fatal("Failed to run migrations:", err)
		}
		slog.Info("Database ready", "path", appConfig.DBPath, "migration_version", version, "dirty", dirty)

		accounts = database.NewUserRepository(db)
		storeBackend = "sqlite"
	} else {
		slog.Warn("No database path configured, usage records will not survive restarts")
		accounts = usage.NewMemoryStore()
	}

	// Article cache: redis when configured and reachable, in-process map
	// otherwise.
	var store cache.Store
	cacheBackend := "memory"
	if appConfig.RedisAddr != "" {
		redisStore, err := cache.NewRedisStore(appConfig.RedisAddr)
		if err != nil {
			slog.Warn("Redis unreachable, falling back to the in-process cache", "addr", appConfig.RedisAddr, "error", err)
			store = cache.NewMemoryStore()
		} else {
			slog.Info("Connected to redis", "addr", appConfig.RedisAddr)
			store = redisStore
			cacheBackend = "redis"
		}
	} else {
		store = cache.NewMemoryStore()
	}

	// Pipeline components
	httpClient := &http.Client{Timeout: 30 * time.Second}
	client := provider.NewClient(httpClient, appConfig.NewsAPIKey, appConfig.NewsAPIBaseURL, appConfig.UserAgent)
	if !client.Configured() {
		slog.Warn("No article provider key configured, fetches will return empty results")
	}

	fetcher := news.NewFetcher(client, store)
	filter := relevance.NewFilter(tun.Weights)
	classifier := classify.NewClassifier(tun.Uplifting)
	summarizer := summarize.NewSummarizer(appConfig.OpenAIAPIKey, appConfig.OpenAIModel)
	resolver := geo.NewResolver(tun.StateTable())

	orchestrator := briefing.NewOrchestrator(fetcher, filter, classifier, summarizer, resolver)
	gate := usage.NewGate(accounts, appConfig.FreeDailyLimit, time.Local)

	// Background cache warming
	scheduler := tasks.NewScheduler(fetcher)
	if len(appConfig.WarmTopics) > 0 {
		slog.Info("Starting cache warm scheduler", "topics", len(appConfig.WarmTopics), "workers", appConfig.WorkerCount)
		scheduler.Start()
		defer scheduler.Stop()
	}

	// HTTP server
	handler := api.NewHandler(orchestrator, gate, accounts, cacheBackend, storeBackend, appConfig.FreeDailyLimit)
	server := api.NewServer(handler, appConfig.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appConfig.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error, shutting down", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown failed", "error", err)
	}

	slog.Info("Shutdown complete")
}
