package sync

import "testing"

func TestReconcileAppendsNewInCanonicalOrder(t *testing.T) {
	canonical := []string{"A", "B", "C"}
	previous := []string{"C", "A"}

	got := Reconcile(canonical, previous)
	want := []string{"C", "A", "B"}

	if !OrderEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestReconcileDropsRemovedIdentities(t *testing.T) {
	canonical := []string{"B"}
	previous := []string{"A", "B", "C"}

	got := Reconcile(canonical, previous)
	if !OrderEqual(got, []string{"B"}) {
		t.Errorf("Expected only canonical identities to survive, got %v", got)
	}
}

func TestReconcileSetEquality(t *testing.T) {
	canonical := []string{"/a/X.app", "/a/Y.app", "/a/Z.app"}
	previous := []string{"/a/Z.app", "/a/Gone.app", "/a/X.app"}

	got := Reconcile(canonical, previous)

	if len(got) != len(canonical) {
		t.Fatalf("Expected %d identities, got %d", len(canonical), len(got))
	}
	seen := make(map[string]bool)
	for _, identity := range got {
		seen[identity] = true
	}
	for _, identity := range canonical {
		if !seen[identity] {
			t.Errorf("Expected %q in reconciled order, got %v", identity, got)
		}
	}
}

func TestReconcileIdempotent(t *testing.T) {
	canonical := []string{"A", "B", "C", "D"}
	previous := []string{"D", "B", "X"}

	once := Reconcile(canonical, previous)
	twice := Reconcile(canonical, once)

	if !OrderEqual(once, twice) {
		t.Errorf("Expected reconcile to be idempotent: %v vs %v", once, twice)
	}
}

func TestReconcileCaseInsensitiveSurvival(t *testing.T) {
	canonical := []string{"/Applications/Notes.app"}
	previous := []string{"/applications/NOTES.APP"}

	got := Reconcile(canonical, previous)
	if len(got) != 1 || got[0] != "/Applications/Notes.app" {
		t.Errorf("Expected survivor normalized to canonical casing, got %v", got)
	}
}

func TestReconcileDedupesPrevious(t *testing.T) {
	canonical := []string{"A", "B"}
	previous := []string{"B", "b", "B"}

	got := Reconcile(canonical, previous)
	if !OrderEqual(got, []string{"B", "A"}) {
		t.Errorf("Expected duplicates collapsed, got %v", got)
	}
}

func TestOrderEqual(t *testing.T) {
	if !OrderEqual([]string{"A", "B"}, []string{"A", "B"}) {
		t.Error("Expected identical orders to compare equal")
	}
	if OrderEqual([]string{"A", "B"}, []string{"B", "A"}) {
		t.Error("Expected different orders to compare unequal")
	}
	if OrderEqual([]string{"A"}, []string{"A", "B"}) {
		t.Error("Expected different lengths to compare unequal")
	}
	if !OrderEqual(nil, []string{}) {
		t.Error("Expected nil and empty to compare equal")
	}
}

func TestMoveTo(t *testing.T) {
	order := []string{"A", "B", "C", "D"}

	moved, changed := MoveTo(order, "A", "C")
	if !changed || !OrderEqual(moved, []string{"B", "C", "A", "D"}) {
		t.Errorf("Expected A at C's position, got %v (changed=%v)", moved, changed)
	}

	moved, changed = MoveTo(order, "D", "B")
	if !changed || !OrderEqual(moved, []string{"A", "D", "B", "C"}) {
		t.Errorf("Expected D at B's position, got %v (changed=%v)", moved, changed)
	}

	// either identity absent: no-op
	if _, changed = MoveTo(order, "X", "B"); changed {
		t.Error("Expected no-op when source is absent")
	}
	if _, changed = MoveTo(order, "A", "X"); changed {
		t.Error("Expected no-op when target is absent")
	}

	// same identity: no-op, matched case-insensitively
	if _, changed = MoveTo(order, "a", "A"); changed {
		t.Error("Expected no-op when source equals target")
	}
}

func TestMoveToIndex(t *testing.T) {
	order := []string{"A", "B", "C"}

	moved, changed := MoveToIndex(order, "C", 0)
	if !changed || !OrderEqual(moved, []string{"C", "A", "B"}) {
		t.Errorf("Expected C first, got %v", moved)
	}

	// index clamped to the end
	moved, changed = MoveToIndex(order, "A", 99)
	if !changed || !OrderEqual(moved, []string{"B", "C", "A"}) {
		t.Errorf("Expected A clamped to last, got %v", moved)
	}

	// negative index clamped to the start
	moved, changed = MoveToIndex(order, "B", -5)
	if !changed || !OrderEqual(moved, []string{"B", "A", "C"}) {
		t.Errorf("Expected B clamped to first, got %v", moved)
	}

	// resulting position unchanged: no-op
	if _, changed = MoveToIndex(order, "A", 0); changed {
		t.Error("Expected no-op when position is unchanged")
	}

	if _, changed = MoveToIndex(order, "X", 1); changed {
		t.Error("Expected no-op for absent identity")
	}
}
