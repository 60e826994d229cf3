package ui

// Package ui contains the Fyne-based desktop user interface for the launcher.
// It wires user interactions to the registry synchronizer and renders app
// cards, the register form, the discover dialog, and settings.
