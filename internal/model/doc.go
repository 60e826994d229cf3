package model

// Package model defines domain data structures used across the app:
// registered applications, running-status entries, and identity helpers.
// Structures are designed for direct binding in the UI and for JSON
// persistence in the on-disk registry.
