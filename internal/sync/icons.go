package sync

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ytget/app-launcher/internal/model"
)

// IconCache holds decoded icon bytes per application for the life of the
// process. Entries are fetched at most once per call site and never evicted.
// Fetch failures are swallowed: the entry stays absent and the UI falls back
// to a glyph. Failures are not negatively cached, so a later fetch of the
// same identity tries again.
type IconCache struct {
	fetcher IconFetcher
	logger  zerolog.Logger

	mu       sync.RWMutex
	entries  map[string][]byte
	inflight map[string]bool
}

// NewIconCache creates an empty icon cache backed by fetcher.
func NewIconCache(fetcher IconFetcher, logger zerolog.Logger) *IconCache {
	return &IconCache{
		fetcher:  fetcher,
		logger:   logger.With().Str("component", "icon_cache").Logger(),
		entries:  make(map[string][]byte),
		inflight: make(map[string]bool),
	}
}

// FetchOne populates the entry for path if it is missing. No-op when the
// entry exists or a fetch for it is already underway. Errors are absorbed.
func (c *IconCache) FetchOne(ctx context.Context, path string) {
	if !c.claim(path) {
		return
	}
	c.fetch(ctx, path)
}

// FetchAll populates entries for every path not already cached. Fetches run
// concurrently with independent failure domains; the call returns only after
// every outcome, success or failure, has been recorded.
func (c *IconCache) FetchAll(ctx context.Context, paths []string) {
	var wg sync.WaitGroup
	for _, path := range paths {
		if !c.claim(path) {
			continue
		}
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			c.fetch(ctx, p)
		}(path)
	}
	wg.Wait()
}

// Icon returns the cached icon bytes for path.
func (c *IconCache) Icon(path string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.entries[model.IdentityKey(path)]
	return data, ok
}

// Len returns the number of cached icons.
func (c *IconCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// claim reserves path for fetching. Returns false when the entry already
// exists or another fetch is in flight.
func (c *IconCache) claim(path string) bool {
	key := model.IdentityKey(path)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		return false
	}
	if c.inflight[key] {
		return false
	}
	c.inflight[key] = true
	return true
}

// fetch performs one external icon fetch for a claimed path and records the
// outcome. Must only be called after a successful claim.
func (c *IconCache) fetch(ctx context.Context, path string) {
	key := model.IdentityKey(path)

	data, err := c.fetcher.FetchIcon(ctx, path)

	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.inflight, key)
	if err != nil {
		// absent entry means fallback glyph; a later fetch may retry
		c.logger.Debug().Err(err).Str("path", path).Msg("icon fetch failed")
		return
	}
	c.entries[key] = data
}
