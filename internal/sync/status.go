package sync

import (
	"context"
	"sync"

	"github.com/ytget/app-launcher/internal/model"
)

// StatusCache holds the last-known running flag per application. It is
// derived state: fully recomputable from a status query, never persisted,
// safe to drop and rebuild on every refresh cycle.
type StatusCache struct {
	querier RunningQuerier

	mu      sync.RWMutex
	entries map[string]bool
}

// NewStatusCache creates an empty status cache backed by querier.
func NewStatusCache(querier RunningQuerier) *StatusCache {
	return &StatusCache{
		querier: querier,
		entries: make(map[string]bool),
	}
}

// Refresh rebuilds the cache for the given application paths with one
// batched query. An empty path set clears the cache without any external
// call. On query failure the previous entries are left untouched and the
// error is returned to the caller.
func (c *StatusCache) Refresh(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		c.mu.Lock()
		c.entries = make(map[string]bool)
		c.mu.Unlock()
		return nil
	}

	statuses, err := c.querier.QueryRunning(ctx, paths)
	if err != nil {
		return err
	}

	next := make(map[string]bool, len(statuses))
	for _, status := range statuses {
		next[model.IdentityKey(status.Path)] = status.Running
	}

	c.mu.Lock()
	c.entries = next
	c.mu.Unlock()

	return nil
}

// MarkRunning optimistically records path as running, ahead of the next
// poll. Never rolled back here: if the app failed to start, the next
// refresh corrects the entry.
func (c *StatusCache) MarkRunning(path string) {
	c.mu.Lock()
	c.entries[model.IdentityKey(path)] = true
	c.mu.Unlock()
}

// Running reports the last-known running state for path. Unknown paths
// report not running.
func (c *StatusCache) Running(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[model.IdentityKey(path)]
}

// Len returns the number of cached entries.
func (c *StatusCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
