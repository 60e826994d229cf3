package sync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ytget/app-launcher/internal/model"
)

// DefaultPollInterval is how often running status is re-polled.
const DefaultPollInterval = 5 * time.Second

// Options configures a Synchronizer.
type Options struct {
	// IconsEnabled turns on icon warm-up and per-register icon fetches.
	IconsEnabled bool

	// PollInterval overrides the status poll period. Zero means default.
	PollInterval time.Duration
}

// Synchronizer owns the canonical registered-application list and keeps the
// derived caches and the persisted display order coherent with it. Mutations
// go through the Provider, whose returned list replaces canonical state
// wholesale; each mutation is followed by a status refresh before the call
// returns. Independent calls are not serialized against each other: the last
// response observed wins.
type Synchronizer struct {
	provider   Provider
	orderStore OrderStore
	logger     zerolog.Logger

	status *StatusCache
	icons  *IconCache

	iconsEnabled bool
	pollInterval time.Duration

	mu       sync.RWMutex
	apps     []model.RegisteredApp
	order    []string
	onChange func()
	closed   bool
	started  bool

	cancelPoll context.CancelFunc
	pollDone   chan struct{}
}

// New creates a Synchronizer. The persisted display order is read once here;
// a read failure simply yields an empty prior order.
func New(provider Provider, orderStore OrderStore, opts Options, logger zerolog.Logger) *Synchronizer {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	return &Synchronizer{
		provider:     provider,
		orderStore:   orderStore,
		logger:       logger.With().Str("component", "synchronizer").Logger(),
		status:       NewStatusCache(provider),
		icons:        NewIconCache(provider, logger),
		iconsEnabled: opts.IconsEnabled,
		pollInterval: interval,
		order:        orderStore.LoadOrder(),
	}
}

// SetChangeCallback sets the function invoked whenever visible state changed
// (canonical list, status, icons, or order).
func (s *Synchronizer) SetChangeCallback(callback func()) {
	s.mu.Lock()
	s.onChange = callback
	s.mu.Unlock()
}

// Load fetches the canonical list and replaces local state. On success it
// refreshes running status and, when icons are enabled, warms the icon cache
// for every loaded identity. On failure previous canonical state is left
// untouched and the error is returned.
func (s *Synchronizer) Load(ctx context.Context) error {
	apps, err := s.provider.ListRegistered(ctx)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	s.applyApps(apps)

	if err := s.RefreshStatus(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("status refresh after load failed")
	}
	if s.iconsEnabled {
		s.icons.FetchAll(ctx, appPaths(apps))
		s.notifyChange()
	}

	return nil
}

// Register validates path, then adds it through the provider. Validation
// failures are returned before any external call. On success canonical state
// is replaced, status refreshed, and (if enabled) the new app's icon fetched.
func (s *Synchronizer) Register(ctx context.Context, path, name string) error {
	if err := model.ValidatePath(path); err != nil {
		return err
	}

	apps, err := s.provider.AddRegistered(ctx, path, name)
	if err != nil {
		return fmt.Errorf("failed to register app: %w", err)
	}

	s.applyApps(apps)

	if err := s.RefreshStatus(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("status refresh after register failed")
	}
	if s.iconsEnabled {
		s.icons.FetchOne(ctx, path)
		s.notifyChange()
	}

	return nil
}

// Unregister removes path through the provider and replaces canonical state
// with the returned list. The icon cache entry is deliberately kept: icons
// are process-lifetime cached regardless of registration state.
func (s *Synchronizer) Unregister(ctx context.Context, path string) error {
	apps, err := s.provider.RemoveRegistered(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to unregister app: %w", err)
	}

	s.applyApps(apps)

	if err := s.RefreshStatus(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("status refresh after unregister failed")
	}

	return nil
}

// Discover returns installable candidates from the provider. It never
// mutates canonical state: callers pick candidates and Register them
// explicitly.
func (s *Synchronizer) Discover(ctx context.Context) ([]model.RegisteredApp, error) {
	candidates, err := s.provider.DiscoverInstalled(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to discover apps: %w", err)
	}
	return candidates, nil
}

// Launch starts the app and, on success, optimistically marks it running so
// the UI reflects the action before the next poll. The optimistic entry is
// never rolled back here; a failed start is corrected by the next refresh.
func (s *Synchronizer) Launch(ctx context.Context, path string) error {
	if err := s.provider.Launch(ctx, path); err != nil {
		return err
	}

	s.status.MarkRunning(path)
	s.logger.Info().Str("event_id", uuid.NewString()).Str("path", path).Msg("app launched")
	s.notifyChange()

	return nil
}

// RefreshStatus re-polls running status for the current canonical list with
// one batched query. An empty list clears the cache without an external
// call. On failure the previous entries survive and the scheduler keeps
// going.
func (s *Synchronizer) RefreshStatus(ctx context.Context) error {
	s.mu.RLock()
	paths := appPaths(s.apps)
	s.mu.RUnlock()

	if err := s.status.Refresh(ctx, paths); err != nil {
		return fmt.Errorf("failed to refresh status: %w", err)
	}

	s.logger.Debug().Str("cycle_id", uuid.NewString()).Int("apps", len(paths)).Msg("status refreshed")
	s.notifyChange()

	return nil
}

// OrderedApps returns the canonical apps arranged in the user's display
// order.
func (s *Synchronizer) OrderedApps() []model.RegisteredApp {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byKey := make(map[string]model.RegisteredApp, len(s.apps))
	for _, app := range s.apps {
		byKey[model.IdentityKey(app.Path)] = app
	}

	ordered := make([]model.RegisteredApp, 0, len(s.apps))
	for _, identity := range s.order {
		if app, ok := byKey[model.IdentityKey(identity)]; ok {
			ordered = append(ordered, app)
		}
	}
	return ordered
}

// Running reports the last-known running state for path.
func (s *Synchronizer) Running(path string) bool {
	return s.status.Running(path)
}

// Icon returns the cached icon bytes for path, if any.
func (s *Synchronizer) Icon(path string) ([]byte, bool) {
	return s.icons.Icon(path)
}

// FilterUnregistered returns the candidates not already in the canonical
// list, preserving their order.
func (s *Synchronizer) FilterUnregistered(candidates []model.RegisteredApp) []model.RegisteredApp {
	s.mu.RLock()
	registered := make(map[string]bool, len(s.apps))
	for _, app := range s.apps {
		registered[model.IdentityKey(app.Path)] = true
	}
	s.mu.RUnlock()

	var unregistered []model.RegisteredApp
	for _, candidate := range candidates {
		if !registered[model.IdentityKey(candidate.Path)] {
			unregistered = append(unregistered, candidate)
		}
	}
	return unregistered
}

// MoveApp relocates source to target's position in the display order.
func (s *Synchronizer) MoveApp(source, target string) {
	s.mu.Lock()
	next, changed := MoveTo(s.order, source, target)
	if changed {
		s.order = next
		s.orderStore.SaveOrder(next)
	}
	s.mu.Unlock()

	if changed {
		s.notifyChange()
	}
}

// MoveAppToIndex relocates source to the given position, clamped to range.
func (s *Synchronizer) MoveAppToIndex(source string, index int) {
	s.mu.Lock()
	next, changed := MoveToIndex(s.order, source, index)
	if changed {
		s.order = next
		s.orderStore.SaveOrder(next)
	}
	s.mu.Unlock()

	if changed {
		s.notifyChange()
	}
}

// Start begins the periodic status poll. Safe to call once; subsequent calls
// are no-ops. The poll runs until Close.
func (s *Synchronizer) Start() {
	s.mu.Lock()
	if s.started || s.closed {
		s.mu.Unlock()
		return
	}
	s.started = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancelPoll = cancel
	s.pollDone = make(chan struct{})
	s.mu.Unlock()

	go s.pollLoop(ctx)
}

// Close tears the synchronizer down: the poll ticker is cancelled and
// awaited, and late results are dropped by the closed guard. Idempotent.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cancel := s.cancelPoll
	done := s.pollDone
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// pollLoop re-polls status every pollInterval until cancelled. A failed
// refresh is logged and the loop keeps going.
func (s *Synchronizer) pollLoop(ctx context.Context) {
	defer close(s.pollDone)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.RefreshStatus(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled status refresh failed")
			}
		}
	}
}

// applyApps replaces canonical state with a provider-returned list and
// reconciles the display order against it, persisting the order only when
// it changed. Dropped silently after Close.
func (s *Synchronizer) applyApps(apps []model.RegisteredApp) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	s.apps = apps

	next := Reconcile(appPaths(apps), s.order)
	if !OrderEqual(next, s.order) {
		s.order = next
		s.orderStore.SaveOrder(next)
	}
	s.mu.Unlock()

	s.notifyChange()
}

// notifyChange invokes the UI callback unless the synchronizer is torn down.
func (s *Synchronizer) notifyChange() {
	s.mu.RLock()
	callback := s.onChange
	closed := s.closed
	s.mu.RUnlock()

	if closed || callback == nil {
		return
	}
	callback()
}

// appPaths extracts the identity paths from a list of apps.
func appPaths(apps []model.RegisteredApp) []string {
	paths := make([]string, 0, len(apps))
	for _, app := range apps {
		paths = append(paths, app.Path)
	}
	return paths
}
