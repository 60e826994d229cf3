package sync

import (
	"context"
	"errors"
	"testing"
)

func TestRefreshEmptyClearsWithoutExternalCall(t *testing.T) {
	provider := newFakeProvider()
	provider.running["/a/x.app"] = true
	cache := NewStatusCache(provider)

	if err := cache.Refresh(context.Background(), []string{"/a/X.app"}); err != nil {
		t.Fatalf("Expected initial refresh to succeed, got %v", err)
	}
	if cache.Len() != 1 {
		t.Fatalf("Expected 1 entry after refresh, got %d", cache.Len())
	}

	callsBefore := provider.queryCallCount()
	if err := cache.Refresh(context.Background(), nil); err != nil {
		t.Fatalf("Expected empty refresh to succeed, got %v", err)
	}

	if cache.Len() != 0 {
		t.Errorf("Expected cache cleared, got %d entries", cache.Len())
	}
	if provider.queryCallCount() != callsBefore {
		t.Error("Expected empty refresh to issue zero external calls")
	}
}

func TestRefreshReplacesWholeMap(t *testing.T) {
	provider := newFakeProvider()
	provider.running["/a/x.app"] = true
	cache := NewStatusCache(provider)

	if err := cache.Refresh(context.Background(), []string{"/a/X.app", "/a/Y.app"}); err != nil {
		t.Fatalf("Expected refresh to succeed, got %v", err)
	}

	if !cache.Running("/a/X.app") {
		t.Error("Expected X running")
	}
	if cache.Running("/a/Y.app") {
		t.Error("Expected Y not running")
	}

	// X disappears from the queried set: stale entry must not survive
	if err := cache.Refresh(context.Background(), []string{"/a/Y.app"}); err != nil {
		t.Fatalf("Expected refresh to succeed, got %v", err)
	}
	if cache.Running("/a/X.app") {
		t.Error("Expected X entry dropped after rebuild")
	}
	if cache.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", cache.Len())
	}
}

func TestRefreshFailureKeepsPreviousEntries(t *testing.T) {
	provider := newFakeProvider()
	provider.running["/a/x.app"] = true
	cache := NewStatusCache(provider)

	if err := cache.Refresh(context.Background(), []string{"/a/X.app"}); err != nil {
		t.Fatalf("Expected refresh to succeed, got %v", err)
	}

	provider.queryErr = errors.New("ps unavailable")
	if err := cache.Refresh(context.Background(), []string{"/a/X.app"}); err == nil {
		t.Fatal("Expected refresh failure to surface")
	}

	if !cache.Running("/a/X.app") {
		t.Error("Expected previous entries untouched after failed refresh")
	}
}

func TestMarkRunning(t *testing.T) {
	cache := NewStatusCache(newFakeProvider())

	if cache.Running("/a/X.app") {
		t.Error("Expected unknown path to report not running")
	}

	cache.MarkRunning("/a/X.app")

	// lookups are case-insensitive
	if !cache.Running("/A/x.APP") {
		t.Error("Expected optimistic entry visible under any casing")
	}
}
