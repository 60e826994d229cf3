package ui

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ytget/app-launcher/internal/config"
	"github.com/ytget/app-launcher/internal/model"
	"github.com/ytget/app-launcher/internal/signals"
	syncsvc "github.com/ytget/app-launcher/internal/sync"
)

// RootActionTimeout bounds every user-initiated registry call so a stuck
// external call cannot wedge the UI goroutines behind it.
const RootActionTimeout = 15 * time.Second

// RootUI represents the main UI structure
type RootUI struct {
	window   fyne.Window
	syncer   syncsvc.Syncer
	settings *config.Settings
	signals  *signals.Reader
	logger   zerolog.Logger

	// UI components
	pathEntry   *widget.Entry
	nameEntry   *widget.Entry
	registerBtn *widget.Button
	cardList    *fyne.Container
	emptyLabel  *widget.Label
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, syncer syncsvc.Syncer, settings *config.Settings, signalReader *signals.Reader, logger zerolog.Logger) *RootUI {
	ui := &RootUI{
		window:   window,
		syncer:   syncer,
		settings: settings,
		signals:  signalReader,
		logger:   logger.With().Str("component", "ui").Logger(),
	}

	window.SetTitle("App Launcher")

	// State changes arrive from background goroutines; hop onto the Fyne
	// thread before touching widgets.
	ui.syncer.SetChangeCallback(func() {
		fyne.Do(ui.refreshList)
	})

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// Register form
	ui.pathEntry = widget.NewEntry()
	ui.pathEntry.SetPlaceHolder("/Applications/Example.app")
	ui.pathEntry.Validator = ui.validatePath
	ui.pathEntry.OnSubmitted = func(string) {
		ui.onRegisterClick()
	}

	ui.nameEntry = widget.NewEntry()
	ui.nameEntry.SetPlaceHolder("Display name (optional)")

	ui.registerBtn = widget.NewButton("Register", ui.onRegisterClick)
	ui.registerBtn.Importance = widget.HighImportance

	discoverBtn := widget.NewButton(IconSearch, ui.onDiscoverClick)
	discoverBtn.Importance = widget.LowImportance

	refreshBtn := widget.NewButton(IconRefresh, ui.onRefreshClick)
	refreshBtn.Importance = widget.LowImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	toolbar := container.NewHBox(discoverBtn, refreshBtn, settingsBtn)
	pathRow := container.NewBorder(nil, nil, toolbar, ui.registerBtn, ui.pathEntry)
	topPanel := container.NewVBox(pathRow, ui.nameEntry)

	// App card list
	ui.cardList = container.NewVBox()
	ui.emptyLabel = widget.NewLabel("No applications registered yet. Use Register or " + IconSearch + " to add some.")
	ui.emptyLabel.Alignment = fyne.TextAlignCenter

	content := container.NewBorder(
		topPanel, // top
		nil,      // bottom
		nil,      // left
		nil,      // right
		container.NewVScroll(container.NewVBox(ui.cardList, ui.emptyLabel)),
	)

	ui.window.SetContent(content)
	ui.refreshList()
}

// validatePath gives inline feedback in the register form before any call
// leaves the process.
func (ui *RootUI) validatePath(input string) error {
	if input == "" {
		return nil // empty field shows no error, the button path rechecks
	}
	return model.ValidatePath(input)
}

// refreshList rebuilds the card list from the synchronizer's current state.
// Must run on the Fyne thread.
func (ui *RootUI) refreshList() {
	apps := ui.syncer.OrderedApps()

	var signalsByKey map[string]signals.Signal
	if ui.settings.GetSignalsShown() && ui.signals != nil {
		signalsByKey = ui.signals.ReadAll(apps)
	}

	ui.cardList.RemoveAll()
	for _, app := range apps {
		var icon fyne.Resource
		if data, ok := ui.syncer.Icon(app.Path); ok {
			icon = IconResource(app, data)
		}

		signalText := ""
		if sig, ok := signalsByKey[model.IdentityKey(app.Path)]; ok {
			signalText = formatSignal(sig)
		}

		card := NewAppCard(app, ui.syncer.Running(app.Path), icon, signalText)
		card.SetCallbacks(ui.onLaunch, ui.onRemove, ui.onMoveUp, ui.onMoveDown)
		ui.cardList.Add(card)
	}

	if len(apps) == 0 {
		ui.emptyLabel.Show()
	} else {
		ui.emptyLabel.Hide()
	}
	ui.cardList.Refresh()
}

// onRegisterClick handles the register form submission
func (ui *RootUI) onRegisterClick() {
	path := ui.pathEntry.Text
	name := ui.nameEntry.Text

	if err := model.ValidatePath(path); err != nil {
		dialog.ShowError(err, ui.window)
		return
	}

	ui.logger.Info().Str("path", path).Msg("registering application")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), RootActionTimeout)
		defer cancel()

		if err := ui.syncer.Register(ctx, path, name); err != nil {
			ui.logger.Error().Err(err).Str("path", path).Msg("register failed")
			fyne.Do(func() {
				dialog.ShowError(fmt.Errorf("register %s: %w", path, err), ui.window)
			})
			return
		}

		fyne.Do(func() {
			ui.pathEntry.SetText("")
			ui.nameEntry.SetText("")
		})
	}()
}

// onDiscoverClick scans the standard application directories and offers the
// not-yet-registered results in a dialog.
func (ui *RootUI) onDiscoverClick() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), RootActionTimeout)
		defer cancel()

		found, err := ui.syncer.Discover(ctx)
		if err != nil {
			ui.logger.Error().Err(err).Msg("discover failed")
			fyne.Do(func() {
				dialog.ShowError(fmt.Errorf("discover applications: %w", err), ui.window)
			})
			return
		}

		candidates := ui.syncer.FilterUnregistered(found)
		fyne.Do(func() {
			NewDiscoverDialog(ui.window, candidates, ui.onAddDiscovered).Show()
		})
	}()
}

// onAddDiscovered registers one candidate picked in the discover dialog.
func (ui *RootUI) onAddDiscovered(candidate model.RegisteredApp) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), RootActionTimeout)
		defer cancel()

		if err := ui.syncer.Register(ctx, candidate.Path, candidate.Name); err != nil {
			ui.logger.Error().Err(err).Str("path", candidate.Path).Msg("register discovered app failed")
			fyne.Do(func() {
				dialog.ShowError(fmt.Errorf("register %s: %w", candidate.DisplayName(), err), ui.window)
			})
		}
	}()
}

// onRefreshClick forces an immediate status refresh outside the poll cycle.
func (ui *RootUI) onRefreshClick() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), RootActionTimeout)
		defer cancel()

		if err := ui.syncer.RefreshStatus(ctx); err != nil {
			ui.logger.Warn().Err(err).Msg("manual status refresh failed")
		}
	}()
}

// onLaunch handles the Launch button on a card
func (ui *RootUI) onLaunch(path string) {
	ui.logger.Info().Str("path", path).Msg("launch requested")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), RootActionTimeout)
		defer cancel()

		if err := ui.syncer.Launch(ctx, path); err != nil {
			ui.logger.Error().Err(err).Str("path", path).Msg("launch failed")
			fyne.Do(func() {
				widget.ShowPopUp(widget.NewLabel("Launch failed: "+err.Error()), ui.window.Canvas())
			})
		}
	}()
}

// onRemove handles the remove button on a card, with confirmation
func (ui *RootUI) onRemove(path string) {
	dialog.ShowConfirm("Remove Application",
		fmt.Sprintf("Remove %s from the launcher?", model.BundleName(path)),
		func(confirmed bool) {
			if !confirmed {
				return
			}
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), RootActionTimeout)
				defer cancel()

				if err := ui.syncer.Unregister(ctx, path); err != nil {
					ui.logger.Error().Err(err).Str("path", path).Msg("unregister failed")
					fyne.Do(func() {
						dialog.ShowError(fmt.Errorf("remove %s: %w", path, err), ui.window)
					})
				}
			}()
		}, ui.window)
}

// onMoveUp moves a card one position toward the top.
func (ui *RootUI) onMoveUp(path string) {
	ui.moveBy(path, -1)
}

// onMoveDown moves a card one position toward the bottom.
func (ui *RootUI) onMoveDown(path string) {
	ui.moveBy(path, 1)
}

func (ui *RootUI) moveBy(path string, delta int) {
	apps := ui.syncer.OrderedApps()
	for i, app := range apps {
		if model.SameIdentity(app.Path, path) {
			ui.syncer.MoveAppToIndex(path, i+delta)
			return
		}
	}
}

// onShowSettings opens the settings dialog
func (ui *RootUI) onShowSettings() {
	sd := NewSettingsDialog(ui.settings, ui.window)
	sd.OnSaved = func() {
		if ui.signals != nil {
			ui.signals.SetBusDir(ui.settings.GetSignalBusDir())
		}
		ui.refreshList()
	}
	sd.Show()
}

// formatSignal renders a signal line for a card, e.g. "CPU 42.5 (12:03)".
func formatSignal(sig signals.Signal) string {
	label := sig.Label
	if label == "" {
		label = "Signal"
	}
	if sig.Timestamp != "" {
		return fmt.Sprintf("%s %.1f (%s)", label, sig.Value, sig.Timestamp)
	}
	return fmt.Sprintf("%s %.1f", label, sig.Value)
}
