package sync

import (
	"context"
	"sync"

	"github.com/ytget/app-launcher/internal/model"
)

// fakeProvider is an in-memory Provider that counts every external call.
type fakeProvider struct {
	mu sync.Mutex

	apps    []model.RegisteredApp
	running map[string]bool
	icons   map[string][]byte
	iconErr map[string]error

	listErr   error
	addErr    error
	removeErr error
	queryErr  error
	launchErr error

	listCalls     int
	addCalls      int
	removeCalls   int
	discoverCalls int
	queryCalls    int
	launchCalls   int
	iconCalls     map[string]int
}

func newFakeProvider(apps ...model.RegisteredApp) *fakeProvider {
	return &fakeProvider{
		apps:      apps,
		running:   make(map[string]bool),
		icons:     make(map[string][]byte),
		iconErr:   make(map[string]error),
		iconCalls: make(map[string]int),
	}
}

func (f *fakeProvider) ListRegistered(_ context.Context) ([]model.RegisteredApp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.RegisteredApp(nil), f.apps...), nil
}

func (f *fakeProvider) AddRegistered(_ context.Context, path, name string) ([]model.RegisteredApp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls++
	if f.addErr != nil {
		return nil, f.addErr
	}
	if name == "" {
		name = model.BundleName(path)
	}
	f.apps = append(f.apps, model.RegisteredApp{Name: name, Path: path})
	return append([]model.RegisteredApp(nil), f.apps...), nil
}

func (f *fakeProvider) RemoveRegistered(_ context.Context, path string) ([]model.RegisteredApp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeCalls++
	if f.removeErr != nil {
		return nil, f.removeErr
	}
	retained := f.apps[:0]
	for _, app := range f.apps {
		if !model.SameIdentity(app.Path, path) {
			retained = append(retained, app)
		}
	}
	f.apps = retained
	return append([]model.RegisteredApp(nil), f.apps...), nil
}

func (f *fakeProvider) DiscoverInstalled(_ context.Context) ([]model.RegisteredApp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.discoverCalls++
	return append([]model.RegisteredApp(nil), f.apps...), nil
}

func (f *fakeProvider) Launch(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.launchCalls++
	return f.launchErr
}

func (f *fakeProvider) QueryRunning(_ context.Context, paths []string) ([]model.AppStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryCalls++
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	statuses := make([]model.AppStatus, 0, len(paths))
	for _, path := range paths {
		statuses = append(statuses, model.AppStatus{
			Path:    path,
			Running: f.running[model.IdentityKey(path)],
		})
	}
	return statuses, nil
}

func (f *fakeProvider) FetchIcon(_ context.Context, path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := model.IdentityKey(path)
	f.iconCalls[key]++
	if err := f.iconErr[key]; err != nil {
		return nil, err
	}
	if data, ok := f.icons[key]; ok {
		return data, nil
	}
	return []byte("icon:" + key), nil
}

func (f *fakeProvider) iconCallCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.iconCalls[model.IdentityKey(path)]
}

func (f *fakeProvider) queryCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queryCalls
}

// fakeOrderStore records every persisted order.
type fakeOrderStore struct {
	mu    sync.Mutex
	order []string
	saves int
}

func (f *fakeOrderStore) LoadOrder() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.order...)
}

func (f *fakeOrderStore) SaveOrder(order []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.order = append([]string(nil), order...)
	f.saves++
}

func (f *fakeOrderStore) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}
