package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ytget/app-launcher/internal/model"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Icon lookup locations inside an app bundle
const (
	BundleResourcesDir = "Contents/Resources"
)

// Icon file extensions tried in order
var (
	IconExtensions = []string{".icns", ".png"}
)

// IsAppBundleDir reports whether path names an existing directory with the
// app bundle extension. Mirrors the structural check done before registering.
func IsAppBundleDir(path string) bool {
	if model.ValidatePath(path) != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// NormalizeBundlePath trims, validates, and canonicalizes an app bundle path.
// Symlinks are resolved so two spellings of the same bundle share one
// identity; resolution failures fall back to the cleaned absolute path.
func NormalizeBundlePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if err := model.ValidatePath(trimmed); err != nil {
		return "", err
	}
	if !IsAppBundleDir(trimmed) {
		return "", fmt.Errorf("invalid app bundle path: %s: expected an existing %s directory",
			trimmed, model.AppBundleSuffix)
	}

	resolved, err := filepath.EvalSymlinks(trimmed)
	if err != nil {
		resolved = trimmed
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return resolved, nil
	}
	return abs, nil
}

// FindBundleIcon returns the path of the bundle's icon file, searching
// Contents/Resources for the conventional extensions. Returns an error when
// the bundle ships no usable icon.
func FindBundleIcon(bundlePath string) (string, error) {
	resources := filepath.Join(bundlePath, BundleResourcesDir)
	entries, err := os.ReadDir(resources)
	if err != nil {
		return "", fmt.Errorf("failed to read bundle resources: %w", err)
	}

	for _, ext := range IconExtensions {
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if strings.EqualFold(filepath.Ext(entry.Name()), ext) {
				return filepath.Join(resources, entry.Name()), nil
			}
		}
	}

	return "", fmt.Errorf("no icon found in %s", resources)
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}
