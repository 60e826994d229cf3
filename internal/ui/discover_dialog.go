package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/app-launcher/internal/model"
)

// DiscoverDialog lists discovered application bundles and lets the user
// register individual candidates without closing the dialog.
type DiscoverDialog struct {
	window     fyne.Window
	dialog     *dialog.CustomDialog
	candidates []model.RegisteredApp
	onAdd      func(app model.RegisteredApp)

	added map[string]bool
	list  *fyne.Container
}

// NewDiscoverDialog creates a dialog for the given discovery results.
func NewDiscoverDialog(window fyne.Window, candidates []model.RegisteredApp, onAdd func(app model.RegisteredApp)) *DiscoverDialog {
	dd := &DiscoverDialog{
		window:     window,
		candidates: candidates,
		onAdd:      onAdd,
		added:      make(map[string]bool),
	}

	dd.createUI()
	return dd
}

// Show displays the discover dialog
func (dd *DiscoverDialog) Show() {
	dd.dialog.Show()
}

// createUI creates the discover dialog UI
func (dd *DiscoverDialog) createUI() {
	dd.list = container.NewVBox()
	for _, candidate := range dd.candidates {
		dd.list.Add(dd.candidateRow(candidate))
	}

	var content fyne.CanvasObject = container.NewVScroll(dd.list)
	if len(dd.candidates) == 0 {
		content = widget.NewLabel("No new applications found.")
	}

	dd.dialog = dialog.NewCustom("Discover Applications", "Close", content, dd.window)
	dd.dialog.Resize(fyne.NewSize(DiscoverDialogWidth, DiscoverDialogHeight))
}

// candidateRow builds one row: name, path and an Add button that disables
// itself once the candidate has been registered.
func (dd *DiscoverDialog) candidateRow(candidate model.RegisteredApp) fyne.CanvasObject {
	nameLabel := widget.NewLabel(candidate.DisplayName())
	nameLabel.TextStyle = fyne.TextStyle{Bold: true}

	pathLabel := widget.NewLabel(candidate.Path)
	pathLabel.Truncation = fyne.TextTruncateEllipsis

	addBtn := widget.NewButton("Add", nil)
	addBtn.Importance = widget.HighImportance
	addBtn.OnTapped = func() {
		key := model.IdentityKey(candidate.Path)
		if dd.added[key] {
			return
		}
		dd.added[key] = true
		addBtn.SetText("Added")
		addBtn.Disable()
		if dd.onAdd != nil {
			dd.onAdd(candidate)
		}
	}

	info := container.NewVBox(nameLabel, pathLabel)
	return container.NewBorder(nil, widget.NewSeparator(), nil, addBtn, info)
}
