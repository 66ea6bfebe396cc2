package cache

import (
	"sync"
	"time"
)

// MemoryStore is the in-process fallback cache used when no Redis backend
// is reachable. Expiry is emulated by a deferred deletion scheduled at TTL,
// with a timestamp check on read in case the timer has not fired yet.
type MemoryStore struct {
	mu     sync.RWMutex
	items  map[string]memoryItem
	timers map[string]*time.Timer
}

type memoryItem struct {
	value     string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items:  make(map[string]memoryItem),
		timers: make(map[string]*time.Timer),
	}
}

func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()

	if !ok {
		return "", false
	}
	if time.Now().After(item.expiresAt) {
		m.Delete(key)
		return "", false
	}
	return item.value, true
}

func (m *MemoryStore) Set(key string, value string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if timer, ok := m.timers[key]; ok {
		timer.Stop()
	}

	m.items[key] = memoryItem{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	m.timers[key] = time.AfterFunc(ttl, func() {
		m.Delete(key)
	})
}

func (m *MemoryStore) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if timer, ok := m.timers[key]; ok {
		timer.Stop()
		delete(m.timers, key)
	}
	delete(m.items, key)
}

// Len reports the number of live entries, used by the stats endpoint.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
