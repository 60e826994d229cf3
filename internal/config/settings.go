package config

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyDisplayOrder = "app_display_order"
	KeyIconsEnabled = "icons_enabled"
	KeyPollSeconds  = "status_poll_seconds"
	KeySignalsShown = "signals_shown"
	KeySignalBusDir = "signal_bus_directory"
	KeyHideOnBlur   = "hide_on_blur"
)

// Default values
const (
	DefaultIconsEnabled = true
	DefaultPollSeconds  = 5
	DefaultSignalsShown = false
	DefaultHideOnBlur   = true

	MinPollSeconds = 1
	MaxPollSeconds = 60
)

// Signal bus location relative to the home directory
const (
	DefaultSignalBusRelative = ".app-launcher/signal-bus"
)

// Settings manages application configuration, including the persisted
// display order: a JSON array of app identity strings kept under a fixed
// preferences key. A missing or corrupt stored order reads back as empty.
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// LoadOrder returns the persisted display order. Never fails: display order
// is a non-critical preference, so an unreadable value means "no prior
// order".
func (s *Settings) LoadOrder() []string {
	return s.app.Preferences().StringList(KeyDisplayOrder)
}

// SaveOrder persists the full display order, replacing the stored value.
func (s *Settings) SaveOrder(order []string) {
	s.app.Preferences().SetStringList(KeyDisplayOrder, order)
}

// GetIconsEnabled returns whether app icons are fetched and displayed
func (s *Settings) GetIconsEnabled() bool {
	return s.app.Preferences().BoolWithFallback(KeyIconsEnabled, DefaultIconsEnabled)
}

// SetIconsEnabled sets whether app icons are fetched and displayed
func (s *Settings) SetIconsEnabled(enabled bool) {
	s.app.Preferences().SetBool(KeyIconsEnabled, enabled)
}

// GetPollSeconds returns the status poll period in seconds
func (s *Settings) GetPollSeconds() int {
	value := s.app.Preferences().IntWithFallback(KeyPollSeconds, DefaultPollSeconds)
	if value < MinPollSeconds || value > MaxPollSeconds {
		return DefaultPollSeconds
	}
	return value
}

// SetPollSeconds sets the status poll period in seconds
func (s *Settings) SetPollSeconds(seconds int) {
	if seconds < MinPollSeconds {
		seconds = MinPollSeconds
	}
	if seconds > MaxPollSeconds {
		seconds = MaxPollSeconds
	}
	s.app.Preferences().SetInt(KeyPollSeconds, seconds)
}

// GetSignalsShown returns whether per-app signals are rendered on cards
func (s *Settings) GetSignalsShown() bool {
	return s.app.Preferences().BoolWithFallback(KeySignalsShown, DefaultSignalsShown)
}

// SetSignalsShown sets whether per-app signals are rendered on cards
func (s *Settings) SetSignalsShown(shown bool) {
	s.app.Preferences().SetBool(KeySignalsShown, shown)
}

// GetSignalBusDir returns the directory watched for per-app signal files
func (s *Settings) GetSignalBusDir() string {
	dir := s.app.Preferences().String(KeySignalBusDir)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultSignalBusRelative
		}
		dir = filepath.Join(home, DefaultSignalBusRelative)
		s.SetSignalBusDir(dir)
	}
	return dir
}

// SetSignalBusDir sets the directory watched for per-app signal files
func (s *Settings) SetSignalBusDir(dir string) {
	s.app.Preferences().SetString(KeySignalBusDir, dir)
}

// GetHideOnBlur returns whether the window hides when it loses focus
func (s *Settings) GetHideOnBlur() bool {
	return s.app.Preferences().BoolWithFallback(KeyHideOnBlur, DefaultHideOnBlur)
}

// SetHideOnBlur sets whether the window hides when it loses focus
func (s *Settings) SetHideOnBlur(hide bool) {
	s.app.Preferences().SetBool(KeyHideOnBlur, hide)
}
