package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconRefresh  = "⟳"
	IconSearch   = "🔍"
	IconRemove   = "×"
	IconUp       = "↑"
	IconDown     = "↓"
	RunningDot   = "●"
	StoppedDot   = "○"
)

// Text fragments
const (
	RunningText = "Running"
	StoppedText = "Stopped"
)

// Layout sizing (app cards / lists)
const (
	CardIconSize   float32 = 40
	CardMinWidth   float32 = 380
	CardMinHeight  float32 = 56
	GlyphTextSize  float32 = 22
	SignalMaxWidth float32 = 140
)

// Dialog sizing
const (
	DiscoverDialogWidth  float32 = 460
	DiscoverDialogHeight float32 = 420
)
