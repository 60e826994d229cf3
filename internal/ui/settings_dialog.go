package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/app-launcher/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	window   fyne.Window
	dialog   *dialog.ConfirmDialog

	// UI components
	iconsCheck       *widget.Check
	pollSecondsEntry *widget.Entry
	signalsCheck     *widget.Check
	signalDirEntry   *widget.Entry
	hideOnBlurCheck  *widget.Check

	// OnSaved is invoked after settings were persisted.
	OnSaved func()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		window:   window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	sd.iconsCheck = widget.NewCheck("Show application icons", nil)

	sd.pollSecondsEntry = widget.NewEntry()
	sd.pollSecondsEntry.SetPlaceHolder("1-60")

	sd.signalsCheck = widget.NewCheck("Show backend signals", nil)

	sd.signalDirEntry = widget.NewEntry()
	sd.signalDirEntry.SetPlaceHolder("Signal bus directory path")

	browseDirBtn := widget.NewButton("Browse", sd.onBrowseDirectory)
	signalDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.signalDirEntry)

	sd.hideOnBlurCheck = widget.NewCheck("Hide window when focus is lost", nil)

	// Create form
	form := container.NewVBox(
		widget.NewLabel("Launcher Settings"),
		widget.NewSeparator(),

		sd.iconsCheck,

		widget.NewLabel("Status Poll Interval (seconds):"),
		sd.pollSecondsEntry,

		widget.NewSeparator(),
		widget.NewLabel("Signals"),
		widget.NewSeparator(),

		sd.signalsCheck,

		widget.NewLabel("Signal Bus Directory:"),
		signalDirRow,

		widget.NewSeparator(),
		widget.NewLabel("Window Behavior"),
		widget.NewSeparator(),

		sd.hideOnBlurCheck,
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(460, 420))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.iconsCheck.SetChecked(sd.settings.GetIconsEnabled())
	sd.pollSecondsEntry.SetText(strconv.Itoa(sd.settings.GetPollSeconds()))
	sd.signalsCheck.SetChecked(sd.settings.GetSignalsShown())
	sd.signalDirEntry.SetText(sd.settings.GetSignalBusDir())
	sd.hideOnBlurCheck.SetChecked(sd.settings.GetHideOnBlur())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.signalDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	sd.settings.SetIconsEnabled(sd.iconsCheck.Checked)

	if pollStr := sd.pollSecondsEntry.Text; pollStr != "" {
		if seconds, err := strconv.Atoi(pollStr); err == nil {
			sd.settings.SetPollSeconds(seconds)
		}
	}

	sd.settings.SetSignalsShown(sd.signalsCheck.Checked)

	if sd.signalDirEntry.Text != "" {
		sd.settings.SetSignalBusDir(sd.signalDirEntry.Text)
	}

	sd.settings.SetHideOnBlur(sd.hideOnBlurCheck.Checked)

	if sd.OnSaved != nil {
		sd.OnSaved()
	}

	dialog.ShowInformation("Settings", "Settings saved. Some changes apply after restart.", sd.window)
}
