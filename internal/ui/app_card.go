package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/app-launcher/internal/model"
)

// AppCard is one launcher row: icon (or fallback glyph), name, running
// indicator, optional signal readout, and the launch/reorder/remove actions.
type AppCard struct {
	widget.BaseWidget

	app        model.RegisteredApp
	running    bool
	icon       fyne.Resource
	signalText string

	content *fyne.Container

	// Callbacks
	onLaunch   func(path string)
	onRemove   func(path string)
	onMoveUp   func(path string)
	onMoveDown func(path string)
}

// NewAppCard creates a card for one registered application.
func NewAppCard(app model.RegisteredApp, running bool, icon fyne.Resource, signalText string) *AppCard {
	card := &AppCard{
		app:        app,
		running:    running,
		icon:       icon,
		signalText: signalText,
	}
	card.ExtendBaseWidget(card)
	card.createUI()
	return card
}

// SetCallbacks sets the action callbacks
func (c *AppCard) SetCallbacks(
	onLaunch func(path string),
	onRemove func(path string),
	onMoveUp func(path string),
	onMoveDown func(path string),
) {
	c.onLaunch = onLaunch
	c.onRemove = onRemove
	c.onMoveUp = onMoveUp
	c.onMoveDown = onMoveDown
}

// CreateRenderer implements fyne.Widget.
func (c *AppCard) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.content)
}

// MinSize implements fyne.Widget.
func (c *AppCard) MinSize() fyne.Size {
	min := c.BaseWidget.MinSize()
	if min.Width < CardMinWidth {
		min.Width = CardMinWidth
	}
	if min.Height < CardMinHeight {
		min.Height = CardMinHeight
	}
	return min
}

// createUI assembles the card layout.
func (c *AppCard) createUI() {
	iconBox := container.NewGridWrap(
		fyne.NewSize(CardIconSize, CardIconSize),
		c.iconObject(),
	)

	nameLabel := widget.NewLabel(c.app.DisplayName())
	nameLabel.TextStyle = fyne.TextStyle{Bold: true}
	nameLabel.Truncation = fyne.TextTruncateEllipsis

	statusText := c.statusLine()
	statusColor := theme.Color(theme.ColorNameForeground)
	if c.running {
		statusColor = theme.Color(theme.ColorNameSuccess)
	}
	statusLabel := canvas.NewText(statusText, statusColor)
	statusLabel.TextSize = theme.Size(theme.SizeNameCaptionText)

	launchBtn := widget.NewButton("Launch", func() {
		if c.onLaunch != nil {
			c.onLaunch(c.app.Path)
		}
	})
	launchBtn.Importance = widget.HighImportance

	upBtn := widget.NewButton(IconUp, func() {
		if c.onMoveUp != nil {
			c.onMoveUp(c.app.Path)
		}
	})
	upBtn.Importance = widget.LowImportance

	downBtn := widget.NewButton(IconDown, func() {
		if c.onMoveDown != nil {
			c.onMoveDown(c.app.Path)
		}
	})
	downBtn.Importance = widget.LowImportance

	removeBtn := widget.NewButton(IconRemove, func() {
		if c.onRemove != nil {
			c.onRemove(c.app.Path)
		}
	})
	removeBtn.Importance = widget.DangerImportance

	actions := container.NewHBox(upBtn, downBtn, launchBtn, removeBtn)
	info := container.NewVBox(nameLabel, statusLabel)

	c.content = container.NewBorder(nil, nil, iconBox, actions, info)
}

// iconObject picks the fetched icon or the fallback glyph.
func (c *AppCard) iconObject() fyne.CanvasObject {
	if c.icon != nil {
		return NewIconImage(c.icon)
	}
	return NewFallbackGlyph(c.app)
}

// statusLine renders the running indicator plus any signal readout.
func (c *AppCard) statusLine() string {
	dot, text := StoppedDot, StoppedText
	if c.running {
		dot, text = RunningDot, RunningText
	}
	if c.signalText != "" {
		return fmt.Sprintf("%s %s · %s", dot, text, c.signalText)
	}
	return fmt.Sprintf("%s %s", dot, text)
}
