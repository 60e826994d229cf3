package sync

import (
	"context"

	"github.com/ytget/app-launcher/internal/model"
)

// RunningQuerier answers one batched running-status query for a set of
// application paths.
type RunningQuerier interface {
	QueryRunning(ctx context.Context, paths []string) ([]model.AppStatus, error)
}

// IconFetcher loads the icon bytes for a single application.
type IconFetcher interface {
	FetchIcon(ctx context.Context, path string) ([]byte, error)
}

// Provider is the external registry the synchronizer mirrors. Mutating calls
// return the full updated list, which replaces local canonical state
// wholesale.
type Provider interface {
	RunningQuerier
	IconFetcher

	ListRegistered(ctx context.Context) ([]model.RegisteredApp, error)
	AddRegistered(ctx context.Context, path, name string) ([]model.RegisteredApp, error)
	RemoveRegistered(ctx context.Context, path string) ([]model.RegisteredApp, error)
	DiscoverInstalled(ctx context.Context) ([]model.RegisteredApp, error)
	Launch(ctx context.Context, path string) error
}

// OrderStore persists the user's display order. Implementations absorb
// read/write failures silently: display order is a non-critical preference,
// and a failed read is indistinguishable from "no prior order".
type OrderStore interface {
	LoadOrder() []string
	SaveOrder(order []string)
}

// Syncer is the surface the UI consumes.
type Syncer interface {
	SetChangeCallback(func())
	Load(ctx context.Context) error
	Register(ctx context.Context, path, name string) error
	Unregister(ctx context.Context, path string) error
	Discover(ctx context.Context) ([]model.RegisteredApp, error)
	Launch(ctx context.Context, path string) error
	RefreshStatus(ctx context.Context) error

	OrderedApps() []model.RegisteredApp
	Running(path string) bool
	Icon(path string) ([]byte, bool)
	FilterUnregistered(candidates []model.RegisteredApp) []model.RegisteredApp

	MoveApp(source, target string)
	MoveAppToIndex(source string, index int)

	Start()
	Close()
}
