package sync

// Package sync keeps the in-memory view of registered applications coherent
// with the external registry: the canonical app list, a polled running-status
// cache, a process-lifetime icon cache, and the persisted user display order.
// All external access goes through the Provider interface; the package owns
// no I/O of its own besides the OrderStore preference writes.
