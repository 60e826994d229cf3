package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"

	"github.com/ytget/app-launcher/internal/model"
	"github.com/ytget/app-launcher/internal/platform"
)

// Registry file location, resolved under the user config directory.
const (
	RegistryFileRelative = "app-launcher/apps.json"
)

// Discovery locations scanned for installed app bundles.
const (
	SystemApplicationsDir = "/Applications"
	HomeApplicationsDir   = "Applications"
)

// Service is the authoritative registry of applications: a JSON file on
// disk plus the host facilities for discovery, launching, running detection,
// and icon lookup. Every mutating call returns the full updated list so
// callers can replace their state wholesale.
type Service struct {
	filePath     string
	discoverDirs []string
	logger       zerolog.Logger
}

// NewService creates a registry service storing its file under the user
// config directory.
func NewService(logger zerolog.Logger) (*Service, error) {
	filePath, err := xdg.ConfigFile(RegistryFileRelative)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve registry path: %w", err)
	}

	dirs := []string{SystemApplicationsDir}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, HomeApplicationsDir))
	}

	return &Service{
		filePath:     filePath,
		discoverDirs: dirs,
		logger:       logger.With().Str("component", "registry").Logger(),
	}, nil
}

// NewServiceAt creates a registry service with explicit file path and
// discovery directories. Used by tests.
func NewServiceAt(filePath string, discoverDirs []string, logger zerolog.Logger) *Service {
	return &Service{
		filePath:     filePath,
		discoverDirs: discoverDirs,
		logger:       logger.With().Str("component", "registry").Logger(),
	}
}

// ListRegistered returns the registered applications, sorted and deduped.
// A missing registry file yields an empty list, not an error.
func (s *Service) ListRegistered(_ context.Context) ([]model.RegisteredApp, error) {
	return s.readAll()
}

// AddRegistered validates and canonicalizes path, upserts the entry, and
// returns the full updated list. An existing entry with the same identity
// (case-insensitive path) is replaced rather than duplicated.
func (s *Service) AddRegistered(_ context.Context, path, name string) ([]model.RegisteredApp, error) {
	normalizedPath, err := platform.NormalizeBundlePath(path)
	if err != nil {
		return nil, err
	}

	normalizedName := strings.TrimSpace(name)
	if normalizedName == "" {
		normalizedName = model.BundleName(normalizedPath)
	}
	if normalizedName == "" {
		return nil, fmt.Errorf("failed to derive app name from path %s", normalizedPath)
	}

	apps, err := s.readAll()
	if err != nil {
		return nil, err
	}

	newApp := model.RegisteredApp{Name: normalizedName, Path: normalizedPath}
	replaced := false
	for i := range apps {
		if model.SameIdentity(apps[i].Path, newApp.Path) {
			apps[i] = newApp
			replaced = true
			break
		}
	}
	if !replaced {
		apps = append(apps, newApp)
	}

	sorted := sortAndDedupeApps(apps)
	if err := s.writeAll(sorted); err != nil {
		return nil, err
	}

	s.logger.Info().Str("path", normalizedPath).Str("name", normalizedName).Msg("registered app")

	return sorted, nil
}

// RemoveRegistered deletes the entry with the given identity and returns the
// full updated list. Removing an unknown identity is not an error.
func (s *Service) RemoveRegistered(_ context.Context, path string) ([]model.RegisteredApp, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, model.ErrEmptyPath
	}

	apps, err := s.readAll()
	if err != nil {
		return nil, err
	}

	retained := apps[:0]
	for _, app := range apps {
		if !model.SameIdentity(app.Path, trimmed) {
			retained = append(retained, app)
		}
	}

	sorted := sortAndDedupeApps(retained)
	if err := s.writeAll(sorted); err != nil {
		return nil, err
	}

	s.logger.Info().Str("path", trimmed).Msg("unregistered app")

	return sorted, nil
}

// DiscoverInstalled scans the discovery directories for app bundles. It has
// no persistence side effect: callers decide which candidates to register.
func (s *Service) DiscoverInstalled(_ context.Context) ([]model.RegisteredApp, error) {
	var discovered []model.RegisteredApp
	for _, dir := range s.discoverDirs {
		discovered = append(discovered, collectAppsFromDirectory(dir)...)
	}
	return sortAndDedupeApps(discovered), nil
}

// Launch starts the application at path via the platform launcher command.
func (s *Service) Launch(_ context.Context, path string) error {
	normalizedPath, err := platform.NormalizeBundlePath(path)
	if err != nil {
		return err
	}
	return platform.OpenApp(normalizedPath)
}

// QueryRunning reports the running state for every given path using a single
// process-table snapshot.
func (s *Service) QueryRunning(_ context.Context, paths []string) ([]model.AppStatus, error) {
	snapshot := platform.TakeProcessSnapshot()

	statuses := make([]model.AppStatus, 0, len(paths))
	for _, path := range paths {
		statuses = append(statuses, model.AppStatus{
			Path:    path,
			Running: snapshot.AppRunning(path),
		})
	}
	return statuses, nil
}

// FetchIcon returns the raw bytes of the bundle's icon file. Fails when the
// bundle ships no icon; the caller decides how to fall back.
func (s *Service) FetchIcon(_ context.Context, path string) ([]byte, error) {
	iconPath, err := platform.FindBundleIcon(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(iconPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read icon %s: %w", iconPath, err)
	}
	return data, nil
}

// readAll loads and normalizes the registry file.
func (s *Service) readAll() ([]model.RegisteredApp, error) {
	contents, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		return []model.RegisteredApp{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read app registry: %w", err)
	}

	var apps []model.RegisteredApp
	if err := json.Unmarshal(contents, &apps); err != nil {
		return nil, fmt.Errorf("failed to parse app registry: %w", err)
	}

	return sortAndDedupeApps(apps), nil
}

// writeAll persists the full list, creating the parent directory on demand.
func (s *Service) writeAll(apps []model.RegisteredApp) error {
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(s.filePath)); err != nil {
		return fmt.Errorf("failed to create app registry directory: %w", err)
	}

	payload, err := json.MarshalIndent(apps, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize app registry: %w", err)
	}

	if err := os.WriteFile(s.filePath, payload, 0644); err != nil {
		return fmt.Errorf("failed to write app registry: %w", err)
	}
	return nil
}

// sortAndDedupeApps removes case-insensitive path duplicates (later entries
// win, so an upsert replaces in place) and sorts by name then path.
func sortAndDedupeApps(apps []model.RegisteredApp) []model.RegisteredApp {
	deduped := make([]model.RegisteredApp, 0, len(apps))

	for _, app := range apps {
		replaced := false
		for i := range deduped {
			if model.SameIdentity(deduped[i].Path, app.Path) {
				deduped[i] = app
				replaced = true
				break
			}
		}
		if !replaced {
			deduped = append(deduped, app)
		}
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		left, right := deduped[i], deduped[j]
		leftName, rightName := strings.ToLower(left.Name), strings.ToLower(right.Name)
		if leftName != rightName {
			return leftName < rightName
		}
		return strings.ToLower(left.Path) < strings.ToLower(right.Path)
	})

	return deduped
}

// collectAppsFromDirectory lists the app bundles directly inside directory.
// Unreadable directories are skipped.
func collectAppsFromDirectory(directory string) []model.RegisteredApp {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil
	}

	var apps []model.RegisteredApp
	for _, entry := range entries {
		candidate := filepath.Join(directory, entry.Name())
		if !platform.IsAppBundleDir(candidate) {
			continue
		}

		resolved, err := filepath.EvalSymlinks(candidate)
		if err != nil {
			resolved = candidate
		}

		name := model.BundleName(resolved)
		if name == "" {
			continue
		}

		apps = append(apps, model.RegisteredApp{Name: name, Path: resolved})
	}

	return apps
}
