package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

const defaultSweepInterval = time.Minute

// MemoryCache is a process-local Cache. It backs the weather cache when
// Redis is not configured and serves as the cache in tests.
//
// Expired entries are dropped on read and by a sweep that runs on write at
// most once per sweep interval, so the map only holds live keys plus what
// expired since the last sweep.
type MemoryCache struct {
	mu            sync.Mutex
	entries       map[string]memoryEntry
	now           func() time.Time
	sweepInterval time.Duration
	nextSweep     time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries:       make(map[string]memoryEntry),
		now:           time.Now,
		sweepInterval: defaultSweepInterval,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", ErrCacheMiss
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		return "", ErrCacheMiss
	}
	return e.value, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value string, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if !now.Before(m.nextSweep) {
		m.evictExpired(now)
		m.nextSweep = now.Add(m.sweepInterval)
	}

	e := memoryEntry{value: value}
	if expiration > 0 {
		e.expiresAt = now.Add(expiration)
	}
	m.entries[key] = e
	return nil
}

// evictExpired must be called with mu held.
func (m *MemoryCache) evictExpired(now time.Time) {
	for key, e := range m.entries {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(m.entries, key)
		}
	}
}

// Len reports the number of stored entries, expired or not.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *MemoryCache) SetJSON(ctx context.Context, key string, value any, expiration time.Duration) error {
	return setJSON(ctx, m, key, value, expiration)
}

func (m *MemoryCache) GetJSON(ctx context.Context, key string, dest any) error {
	return getJSON(ctx, m, key, dest)
}

func (m *MemoryCache) Close() error { return nil }
