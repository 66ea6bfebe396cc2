package api

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/briefcast/briefcast/app/briefing"
	"github.com/briefcast/briefcast/app/model"
	"github.com/briefcast/briefcast/app/usage"
)

type PipelineInterface interface {
	Run(ctx context.Context, req briefing.Request) model.PipelineResult
}

type GateInterface interface {
	CanProceed(userID string) (usage.Decision, error)
	RecordUsage(userID string) error
}

// AccountStore is the user store surface the admin endpoints need on top
// of the quota gate. Both the sqlite repository and the in-memory store
// satisfy it.
type AccountStore interface {
	usage.UserStore
	SetPremium(userID string, premium bool) error
	GetUserCount() (int, error)
}

type Handler struct {
	pipeline     PipelineInterface
	gate         GateInterface
	accounts     AccountStore
	cacheBackend string
	storeBackend string
	freeLimit    int
	startedAt    time.Time
	served       atomic.Int64
}
