package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ctrlz-health/carefinder/internal/domain/providers"
)

const defaultSweepInterval = time.Minute

// MemoryAdapter is an in-process CacheProvider used when Redis is not
// configured. Entries expire after a fixed TTL, swept on a schedule and
// re-checked on access. Entry count is capped defensively: when full, the
// entry closest to expiry is evicted.
type MemoryAdapter struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	maxEntries int
	stop       chan struct{}
	stopOnce   sync.Once
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryAdapter creates a new in-memory cache adapter capped at
// maxEntries and starts its expiry sweep.
func NewMemoryAdapter(maxEntries int) *MemoryAdapter {
	if maxEntries <= 0 {
		maxEntries = 256
	}
	a := &MemoryAdapter{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
		stop:       make(chan struct{}),
	}
	go a.sweepLoop(defaultSweepInterval)
	return a
}

var _ providers.CacheProvider = (*MemoryAdapter)(nil)

// Get retrieves a value from cache
func (a *MemoryAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry, ok := a.entries[key]
	if !ok {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	if time.Now().After(entry.expiresAt) {
		delete(a.entries, key)
		return nil, fmt.Errorf("key not found: %s", key)
	}
	return entry.value, nil
}

// Set stores a value in cache with expiration
func (a *MemoryAdapter) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.entries[key]; !exists && len(a.entries) >= a.maxEntries {
		a.evictSoonestLocked()
	}

	a.entries[key] = memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(time.Duration(expirationSeconds) * time.Second),
	}
	return nil
}

// Delete removes a value from cache
func (a *MemoryAdapter) Delete(ctx context.Context, key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.entries, key)
	return nil
}

// Exists checks if a key exists in cache
func (a *MemoryAdapter) Exists(ctx context.Context, key string) (bool, error) {
	_, err := a.Get(ctx, key)
	return err == nil, nil
}

// Close stops the expiry sweep.
func (a *MemoryAdapter) Close() {
	a.stopOnce.Do(func() { close(a.stop) })
}

// Len reports the current entry count.
func (a *MemoryAdapter) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

func (a *MemoryAdapter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stop:
			return
		case <-ticker.C:
			a.sweep()
		}
	}
}

func (a *MemoryAdapter) sweep() {
	now := time.Now()
	a.mu.Lock()
	defer a.mu.Unlock()
	for key, entry := range a.entries {
		if now.After(entry.expiresAt) {
			delete(a.entries, key)
		}
	}
}

func (a *MemoryAdapter) evictSoonestLocked() {
	var victim string
	var soonest time.Time
	for key, entry := range a.entries {
		if victim == "" || entry.expiresAt.Before(soonest) {
			victim = key
			soonest = entry.expiresAt
		}
	}
	if victim != "" {
		delete(a.entries, victim)
	}
}
