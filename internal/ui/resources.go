package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"

	"github.com/ytget/app-launcher/internal/model"
)

// IconResource wraps cached icon bytes as a Fyne resource for an app.
func IconResource(app model.RegisteredApp, data []byte) fyne.Resource {
	return fyne.NewStaticResource(app.DisplayName()+"-icon", data)
}

// NewIconImage renders the app's icon at card size.
func NewIconImage(resource fyne.Resource) *canvas.Image {
	image := canvas.NewImageFromResource(resource)
	image.FillMode = canvas.ImageFillContain
	image.SetMinSize(fyne.NewSize(CardIconSize, CardIconSize))
	return image
}

// NewFallbackGlyph renders the deterministic placeholder shown when no icon
// could be fetched: the first character of the app's display name.
func NewFallbackGlyph(app model.RegisteredApp) *canvas.Text {
	text := canvas.NewText(app.FallbackGlyph(), theme.Color(theme.ColorNamePrimary))
	text.TextSize = GlyphTextSize
	text.TextStyle = fyne.TextStyle{Bold: true}
	text.Alignment = fyne.TextAlignCenter
	return text
}
