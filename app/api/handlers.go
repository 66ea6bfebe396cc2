package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/briefcast/briefcast/app/briefing"
	"github.com/briefcast/briefcast/app/model"
)

const (
	singleRequestTimeout = 45 * time.Second
	batchRequestTimeout  = 60 * time.Second

	defaultWordCount = 200
)

func NewHandler(pipeline PipelineInterface, gate GateInterface, accounts AccountStore,
	cacheBackend, storeBackend string, freeLimit int) *Handler {
	return &Handler{
		pipeline:     pipeline,
		gate:         gate,
		accounts:     accounts,
		cacheBackend: cacheBackend,
		storeBackend: storeBackend,
		freeLimit:    freeLimit,
		startedAt:    time.Now(),
	}
}

type briefingRequest struct {
	UserID        string            `json:"user_id"`
	Topics        []string          `json:"topics"`
	Location      string            `json:"location"`
	Geo           *model.GeoContext `json:"geo"`
	WordCount     int               `json:"word_count"`
	UpliftingOnly bool              `json:"uplifting_only"`
}

func (h *Handler) CreateBriefing(c *gin.Context) {
	var req briefingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.UserID == "" {
		req.UserID = c.GetHeader("X-User-ID")
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	if len(req.Topics) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one topic is required"})
		return
	}
	if req.WordCount <= 0 {
		req.WordCount = defaultWordCount
	}

	decision, err := h.gate.CanProceed(req.UserID)
	if err != nil {
		slog.Error("Quota check failed", "user", req.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check usage quota"})
		return
	}
	if !decision.Allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":     "Daily briefing limit reached",
			"remaining": decision.Remaining,
		})
		return
	}

	timeout := singleRequestTimeout
	if len(req.Topics) > 1 {
		timeout = batchRequestTimeout
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	result := h.pipeline.Run(ctx, briefing.Request{
		Topics:        req.Topics,
		Location:      req.Location,
		Geo:           req.Geo,
		WordCount:     req.WordCount,
		UpliftingOnly: req.UpliftingOnly,
	})

	if err := h.gate.RecordUsage(req.UserID); err != nil {
		slog.Error("Failed to record usage", "user", req.UserID, "error", err)
	}
	h.served.Add(1)

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := gin.H{
		"uptime":           time.Since(h.startedAt).Round(time.Second).String(),
		"briefings_served": h.served.Load(),
		"cache_backend":    h.cacheBackend,
		"user_store":       h.storeBackend,
		"free_daily_limit": h.freeLimit,
	}

	if count, err := h.accounts.GetUserCount(); err == nil {
		stats["users"] = count
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) APIGetUsage(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user id parameter"})
		return
	}

	record, err := h.accounts.Get(userID)
	if err != nil {
		slog.Error("Database error", "operation", "get_usage", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":         record.UserID,
		"daily_count":     record.DailyCount,
		"last_usage_date": record.LastUsageDate,
		"is_premium":      record.IsPremium,
	})
}

type premiumRequest struct {
	Premium bool `json:"premium"`
}

func (h *Handler) APISetPremium(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user id parameter"})
		return
	}

	var req premiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.accounts.SetPremium(userID, req.Premium); err != nil {
		slog.Error("Database error", "operation", "set_premium", "user", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user_id": userID,
		"premium": req.Premium,
	})
}
