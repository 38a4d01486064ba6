package adapters

import (
	"context"
	"sync"
	"time"

	"github.com/minn-platform/backend/internal/application/adapter"
)

// memoryLoginGuard is the single-instance fallback used when Redis is not
// configured. Counters live in process memory and expire lazily, mirroring
// the Redis guard's first-failure-opens-the-window semantics.
type memoryLoginGuard struct {
	mu      sync.Mutex
	window  time.Duration
	entries map[string]*failureEntry
}

type failureEntry struct {
	count     int
	expiresAt time.Time
}

// NewMemoryLoginGuard creates an in-process login guard.
func NewMemoryLoginGuard(window time.Duration) adapter.LoginGuard {
	return &memoryLoginGuard{
		window:  window,
		entries: make(map[string]*failureEntry),
	}
}

// RecordFailure increments the failure count for the key and returns the new count.
func (g *memoryLoginGuard) RecordFailure(ctx context.Context, key string) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	entry, ok := g.entries[key]
	if !ok || now.After(entry.expiresAt) {
		entry = &failureEntry{expiresAt: now.Add(g.window)}
		g.entries[key] = entry
	}
	entry.count++
	return entry.count, nil
}

// Reset clears the failure count for the key.
func (g *memoryLoginGuard) Reset(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.entries, key)
	return nil
}

// Failures returns the current failure count for the key.
func (g *memoryLoginGuard) Failures(ctx context.Context, key string) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry, ok := g.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return 0, nil
	}
	return entry.count, nil
}
