package sync

import (
	"github.com/ytget/app-launcher/internal/model"
)

// Reconcile merges a previously persisted display order with the current
// canonical identity list. Surviving identities keep their previous relative
// order; identities new to the registry are appended in canonical order;
// identities gone from the registry are dropped. The result always contains
// exactly the canonical identities, once each, in canonical casing.
func Reconcile(canonical, previous []string) []string {
	canonicalByKey := make(map[string]string, len(canonical))
	for _, identity := range canonical {
		key := model.IdentityKey(identity)
		if _, exists := canonicalByKey[key]; !exists {
			canonicalByKey[key] = identity
		}
	}

	next := make([]string, 0, len(canonical))
	placed := make(map[string]bool, len(canonical))

	for _, identity := range previous {
		key := model.IdentityKey(identity)
		canonicalIdentity, survives := canonicalByKey[key]
		if !survives || placed[key] {
			continue
		}
		next = append(next, canonicalIdentity)
		placed[key] = true
	}

	for _, identity := range canonical {
		key := model.IdentityKey(identity)
		if placed[key] {
			continue
		}
		next = append(next, canonicalByKey[key])
		placed[key] = true
	}

	return next
}

// OrderEqual reports whether two orders are identical (same length, pairwise
// equal). Used to skip persistence writes when reconciliation changed nothing.
func OrderEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// MoveTo relocates source to the position currently held by target. Returns
// the (possibly new) order and whether anything moved. No-op when either
// identity is absent or both are the same.
func MoveTo(order []string, source, target string) ([]string, bool) {
	sourceIdx := indexOf(order, source)
	targetIdx := indexOf(order, target)
	if sourceIdx < 0 || targetIdx < 0 || sourceIdx == targetIdx {
		return order, false
	}
	return moveElement(order, sourceIdx, targetIdx), true
}

// MoveToIndex relocates source to index, clamped to the valid range. Returns
// the (possibly new) order and whether anything moved.
func MoveToIndex(order []string, source string, index int) ([]string, bool) {
	sourceIdx := indexOf(order, source)
	if sourceIdx < 0 {
		return order, false
	}

	if index < 0 {
		index = 0
	}
	if index > len(order)-1 {
		index = len(order) - 1
	}
	if index == sourceIdx {
		return order, false
	}

	return moveElement(order, sourceIdx, index), true
}

// indexOf finds an identity in the order, comparing case-insensitively.
func indexOf(order []string, identity string) int {
	for i, entry := range order {
		if model.SameIdentity(entry, identity) {
			return i
		}
	}
	return -1
}

// moveElement returns a copy of order with the element at from placed at to.
func moveElement(order []string, from, to int) []string {
	next := make([]string, 0, len(order))
	moved := order[from]

	for i, entry := range order {
		if i != from {
			next = append(next, entry)
		}
	}

	next = append(next, "")
	copy(next[to+1:], next[to:])
	next[to] = moved

	return next
}
