package registry

// Package registry implements the authoritative application registry backed
// by a JSON file plus host integration: bundle discovery, launching via the
// OS open command, process-based running detection, and bundle icon reading.
// The synchronizer consumes it through the sync.Provider interface.
