package main

import (
	"context"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/rs/zerolog"

	"github.com/ytget/app-launcher/internal/config"
	"github.com/ytget/app-launcher/internal/registry"
	"github.com/ytget/app-launcher/internal/signals"
	syncsvc "github.com/ytget/app-launcher/internal/sync"
	"github.com/ytget/app-launcher/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.app-launcher"
	AppName = "App Launcher"

	WindowWidth  = 420
	WindowHeight = 640

	StartupTimeout = 30 * time.Second
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	logger.Info().Str("version", version).Msg("app launcher starting")

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(AppName)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)

	registrySvc, err := registry.NewService(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize registry")
	}

	syncer := syncsvc.New(registrySvc, settings, syncsvc.Options{
		IconsEnabled: settings.GetIconsEnabled(),
		PollInterval: time.Duration(settings.GetPollSeconds()) * time.Second,
	}, logger)

	signalReader := signals.NewReader(settings.GetSignalBusDir(), logger)

	// Create and setup UI
	ui.NewRootUI(myWindow, syncer, settings, signalReader, logger)

	// Initial load plus the poll scheduler run in the background so the
	// window appears immediately.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), StartupTimeout)
		defer cancel()

		if err := syncer.Load(ctx); err != nil {
			logger.Error().Err(err).Msg("initial load failed")
		}
		syncer.Start()
	}()

	setupWindowBehavior(myApp, myWindow, settings, logger)

	// Show and run
	myWindow.ShowAndRun()

	syncer.Close()
	logger.Info().Msg("app launcher stopped")
}

// setupWindowBehavior wires the tray icon and the launcher-style hide
// behavior: closing or unfocusing the window hides it instead of quitting.
func setupWindowBehavior(myApp fyne.App, myWindow fyne.Window, settings *config.Settings, logger zerolog.Logger) {
	if desk, ok := myApp.(desktop.App); ok {
		trayMenu := fyne.NewMenu(AppName,
			fyne.NewMenuItem("Open", func() {
				myWindow.Show()
				myWindow.RequestFocus()
			}),
			fyne.NewMenuItem("Quit", func() {
				myApp.Quit()
			}),
		)
		desk.SetSystemTrayMenu(trayMenu)

		myWindow.SetCloseIntercept(func() {
			myWindow.Hide()
		})
		logger.Debug().Msg("system tray enabled")
	}

	if settings.GetHideOnBlur() {
		myApp.Lifecycle().SetOnExitedForeground(func() {
			myWindow.Hide()
		})
	}
}
