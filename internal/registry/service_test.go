package registry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ytget/app-launcher/internal/model"
)

// makeBundle creates a fake .app bundle directory and returns its path.
func makeBundle(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create bundle dir: %v", err)
	}
	return path
}

func newTestService(t *testing.T, discoverDirs ...string) *Service {
	t.Helper()
	return NewServiceAt(filepath.Join(t.TempDir(), "apps.json"), discoverDirs, zerolog.Nop())
}

func TestListRegisteredMissingFile(t *testing.T) {
	service := newTestService(t)

	apps, err := service.ListRegistered(context.Background())
	if err != nil {
		t.Fatalf("Expected no error for missing registry file, got %v", err)
	}
	if len(apps) != 0 {
		t.Errorf("Expected empty list, got %d entries", len(apps))
	}
}

func TestListRegisteredCorruptFile(t *testing.T) {
	service := newTestService(t)
	if err := os.WriteFile(service.filePath, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	if _, err := service.ListRegistered(context.Background()); err == nil {
		t.Error("Expected error for corrupt registry file")
	}
}

func TestAddRegistered(t *testing.T) {
	appsDir := t.TempDir()
	bundle := makeBundle(t, appsDir, "Notes.app")
	service := newTestService(t)

	apps, err := service.AddRegistered(context.Background(), bundle, "")
	if err != nil {
		t.Fatalf("Expected add to succeed, got %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("Expected 1 app, got %d", len(apps))
	}
	if apps[0].Name != "Notes" {
		t.Errorf("Expected name derived from bundle, got %q", apps[0].Name)
	}

	// upsert with explicit name replaces in place, no duplicate
	apps, err = service.AddRegistered(context.Background(), bundle, "My Notes")
	if err != nil {
		t.Fatalf("Expected upsert to succeed, got %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("Expected 1 app after upsert, got %d", len(apps))
	}
	if apps[0].Name != "My Notes" {
		t.Errorf("Expected upserted name, got %q", apps[0].Name)
	}

	// survives a reload
	reloaded, err := service.ListRegistered(context.Background())
	if err != nil {
		t.Fatalf("Expected reload to succeed, got %v", err)
	}
	if len(reloaded) != 1 || reloaded[0].Name != "My Notes" {
		t.Errorf("Expected persisted entry, got %+v", reloaded)
	}
}

func TestAddRegisteredRejectsInvalidPath(t *testing.T) {
	service := newTestService(t)

	if _, err := service.AddRegistered(context.Background(), "not-an-app-path", ""); !errors.Is(err, model.ErrNotAppBundle) {
		t.Errorf("Expected ErrNotAppBundle, got %v", err)
	}

	if _, err := service.AddRegistered(context.Background(), "", ""); !errors.Is(err, model.ErrEmptyPath) {
		t.Errorf("Expected ErrEmptyPath, got %v", err)
	}

	// structurally valid but not on disk
	if _, err := service.AddRegistered(context.Background(), "/nonexistent/Ghost.app", ""); err == nil {
		t.Error("Expected error for nonexistent bundle")
	}
}

func TestRemoveRegistered(t *testing.T) {
	appsDir := t.TempDir()
	notes := makeBundle(t, appsDir, "Notes.app")
	mail := makeBundle(t, appsDir, "Mail.app")
	service := newTestService(t)

	if _, err := service.AddRegistered(context.Background(), notes, ""); err != nil {
		t.Fatalf("Failed to add Notes: %v", err)
	}
	if _, err := service.AddRegistered(context.Background(), mail, ""); err != nil {
		t.Fatalf("Failed to add Mail: %v", err)
	}

	// removal matches case-insensitively
	apps, err := service.RemoveRegistered(context.Background(), filepath.Join(appsDir, "NOTES.APP"))
	if err != nil {
		t.Fatalf("Expected remove to succeed, got %v", err)
	}
	if len(apps) != 1 || apps[0].Name != "Mail" {
		t.Errorf("Expected only Mail to remain, got %+v", apps)
	}

	// removing an unknown identity is not an error
	apps, err = service.RemoveRegistered(context.Background(), "/Applications/Ghost.app")
	if err != nil {
		t.Fatalf("Expected remove of unknown path to succeed, got %v", err)
	}
	if len(apps) != 1 {
		t.Errorf("Expected list unchanged, got %+v", apps)
	}

	if _, err := service.RemoveRegistered(context.Background(), "  "); !errors.Is(err, model.ErrEmptyPath) {
		t.Errorf("Expected ErrEmptyPath for blank path, got %v", err)
	}
}

func TestDiscoverInstalled(t *testing.T) {
	appsDir := t.TempDir()
	makeBundle(t, appsDir, "Dugout.app")
	makeBundle(t, appsDir, "Companion.app")
	makeBundle(t, appsDir, "NotAnApp") // plain directory, skipped
	if err := os.WriteFile(filepath.Join(appsDir, "Stray.app"), []byte("file"), 0644); err != nil {
		t.Fatalf("Failed to create stray file: %v", err)
	}

	service := newTestService(t, appsDir, filepath.Join(appsDir, "missing-dir"))

	apps, err := service.DiscoverInstalled(context.Background())
	if err != nil {
		t.Fatalf("Expected discover to succeed, got %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("Expected 2 candidates, got %d: %+v", len(apps), apps)
	}
	// sorted by name
	if apps[0].Name != "Companion" || apps[1].Name != "Dugout" {
		t.Errorf("Expected sorted candidates, got %+v", apps)
	}
}

func TestSortAndDedupeApps(t *testing.T) {
	apps := []model.RegisteredApp{
		{Name: "Dugout", Path: "/Applications/Dugout.app"},
		{Name: "Companion", Path: "/Applications/companion.app"},
		{Name: "Companion Updated", Path: "/applications/Companion.app"},
	}

	result := sortAndDedupeApps(apps)
	if len(result) != 2 {
		t.Fatalf("Expected 2 apps after dedupe, got %d", len(result))
	}
	if result[0].Name != "Companion Updated" {
		t.Errorf("Expected later duplicate to win, got %q", result[0].Name)
	}
	if result[1].Name != "Dugout" {
		t.Errorf("Expected Dugout last, got %q", result[1].Name)
	}
}

func TestQueryRunningCoversEveryPath(t *testing.T) {
	service := newTestService(t)

	statuses, err := service.QueryRunning(context.Background(), []string{
		"/Applications/A.app",
		"/Applications/B.app",
	})
	if err != nil {
		t.Fatalf("Expected query to succeed, got %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("Expected one status per path, got %d", len(statuses))
	}
	if statuses[0].Path != "/Applications/A.app" || statuses[1].Path != "/Applications/B.app" {
		t.Errorf("Expected statuses to preserve request order, got %+v", statuses)
	}
}

func TestFetchIcon(t *testing.T) {
	appsDir := t.TempDir()
	bundle := makeBundle(t, appsDir, "Notes.app")
	resources := filepath.Join(bundle, "Contents", "Resources")
	if err := os.MkdirAll(resources, 0755); err != nil {
		t.Fatalf("Failed to create resources dir: %v", err)
	}
	iconData := []byte("icns-bytes")
	if err := os.WriteFile(filepath.Join(resources, "AppIcon.icns"), iconData, 0644); err != nil {
		t.Fatalf("Failed to write icon: %v", err)
	}

	service := newTestService(t)

	data, err := service.FetchIcon(context.Background(), bundle)
	if err != nil {
		t.Fatalf("Expected icon fetch to succeed, got %v", err)
	}
	if string(data) != string(iconData) {
		t.Errorf("Expected icon bytes round-trip, got %q", data)
	}

	// bundle without an icon fails
	bare := makeBundle(t, appsDir, "Bare.app")
	if _, err := service.FetchIcon(context.Background(), bare); err == nil {
		t.Error("Expected error for bundle without icon")
	}
}
