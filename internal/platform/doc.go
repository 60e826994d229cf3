package platform

// Package platform contains OS/platform integration glue: app-bundle path
// checks, process-table snapshots for running detection, bundle icon lookup,
// and the OS launch command.
