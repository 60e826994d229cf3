package model

import (
	"errors"
	"path/filepath"
	"strings"
)

// AppBundleSuffix is the extension every registrable application path must carry.
const AppBundleSuffix = ".app"

// Validation errors returned before any external call is made.
var (
	// ErrEmptyPath means the supplied application path was empty or blank
	ErrEmptyPath = errors.New("app path is required")

	// ErrNotAppBundle means the supplied path does not reference an application bundle
	ErrNotAppBundle = errors.New("app path must reference an .app bundle")
)

// RegisteredApp represents a single application known to the registry.
// Path is the identity: a stable application-bundle path, unique across the
// registry. Casing is preserved as entered; comparisons are case-insensitive.
type RegisteredApp struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// AppStatus represents the running state of one registered application
// as reported by a status query.
type AppStatus struct {
	Path    string `json:"path"`
	Running bool   `json:"running"`
}

// IdentityKey returns the canonical lookup key for an application path.
// Identities are compared case-insensitively, so caches key by this value
// while the displayed path keeps its original casing.
func IdentityKey(path string) string {
	return strings.ToLower(strings.TrimSpace(path))
}

// SameIdentity reports whether two application paths refer to the same app.
func SameIdentity(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// BundleName derives the human-readable bundle name from an application path
// (e.g. "/Applications/Notes.app" -> "Notes"). Returns "" for empty paths.
func BundleName(path string) string {
	base := filepath.Base(strings.TrimRight(strings.TrimSpace(path), "/"))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ValidatePath checks that path is structurally a registrable application
// reference: non-blank and ending with the app bundle suffix. It rejects bad
// input synchronously, before any registry call.
func ValidatePath(path string) error {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ErrEmptyPath
	}
	if !strings.HasSuffix(strings.ToLower(trimmed), AppBundleSuffix) {
		return ErrNotAppBundle
	}
	return nil
}

// DisplayName returns the app's name, falling back to the bundle name when
// the registry entry carries no explicit name.
func (a RegisteredApp) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return BundleName(a.Path)
}

// FallbackGlyph returns the single character shown when no icon is available:
// the upper-cased first rune of the display name, or "?" when even that is empty.
func (a RegisteredApp) FallbackGlyph() string {
	name := a.DisplayName()
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return "?"
}
