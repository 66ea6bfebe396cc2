// Package usage enforces the daily briefing quota for free users.
package usage

import (
	"fmt"
	"time"

	"github.com/briefcast/briefcast/app/model"
)

// UserStore persists per-user quota records. Get returns a fresh record for
// users it has never seen.
type UserStore interface {
	Get(userID string) (model.UsageRecord, error)
	Save(record model.UsageRecord) error
}

// Decision is the outcome of a quota check.
type Decision struct {
	Allowed   bool
	Remaining int
}

type Gate struct {
	store UserStore
	limit int
	loc   *time.Location
	now   func() time.Time
}

func NewGate(store UserStore, limit int, loc *time.Location) *Gate {
	if loc == nil {
		loc = time.UTC
	}
	return &Gate{store: store, limit: limit, loc: loc, now: time.Now}
}

// CanProceed checks the user's quota for the current calendar day. Crossing
// a day boundary resets the counter, and the reset is persisted immediately
// so a crash cannot revive yesterday's count.
func (g *Gate) CanProceed(userID string) (Decision, error) {
	record, err := g.store.Get(userID)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to load usage record: %w", err)
	}

	if record.IsPremium {
		return Decision{Allowed: true, Remaining: g.limit}, nil
	}

	today := g.today()
	if record.LastUsageDate != today {
		record.DailyCount = 0
		record.LastUsageDate = today
		if err := g.store.Save(record); err != nil {
			return Decision{}, fmt.Errorf("failed to persist quota reset: %w", err)
		}
	}

	remaining := g.limit - record.DailyCount
	if remaining < 0 {
		remaining = 0
	}
	return Decision{Allowed: record.DailyCount < g.limit, Remaining: remaining}, nil
}

// RecordUsage counts one briefing against today's quota.
func (g *Gate) RecordUsage(userID string) error {
	record, err := g.store.Get(userID)
	if err != nil {
		return fmt.Errorf("failed to load usage record: %w", err)
	}

	today := g.today()
	if record.LastUsageDate != today {
		record.DailyCount = 0
	}
	record.DailyCount++
	record.LastUsageDate = today

	if err := g.store.Save(record); err != nil {
		return fmt.Errorf("failed to persist usage record: %w", err)
	}
	return nil
}

func (g *Gate) today() string {
	return g.now().In(g.loc).Format("2006-01-02")
}
