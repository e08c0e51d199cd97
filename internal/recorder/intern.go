package recorder

import (
	"sort"

	"github.com/gpucache/pipecache/internal/resource"
)

// internTable is a per-kind intern table: hash-keyed canonical storage plus
// a handle-keyed resolution map for folding dependency references recorded
// later (§3 "Entity: Intern table").
type internTable[T any] struct {
	byHash   map[resource.Hash]T
	byHandle map[resource.Handle]resource.Hash
}

func newInternTable[T any]() *internTable[T] {
	return &internTable[T]{
		byHash:   make(map[resource.Hash]T),
		byHandle: make(map[resource.Handle]resource.Hash),
	}
}

// intern stores v under hash if no value is stored there yet ("first
// insert wins", §3). It always records handle to hash, even on a duplicate
// hash, so later descriptors can reference this handle and resolve to the
// hash of whichever canonical copy won.
func (t *internTable[T]) intern(handle resource.Handle, hash resource.Hash, v T) {
	if _, exists := t.byHash[hash]; !exists {
		t.byHash[hash] = v
	}
	t.byHandle[handle] = hash
}

func (t *internTable[T]) resolve(handle resource.Handle) (resource.Hash, bool) {
	hash, ok := t.byHandle[handle]
	return hash, ok
}

func (t *internTable[T]) get(hash resource.Hash) (T, bool) {
	v, ok := t.byHash[hash]
	return v, ok
}

func (t *internTable[T]) len() int {
	return len(t.byHash)
}

// sortedHashes returns every interned hash in ascending order, giving
// Serialize a deterministic iteration order over Go's unordered maps.
func (t *internTable[T]) sortedHashes() []resource.Hash {
	out := make([]resource.Hash, 0, len(t.byHash))
	for h := range t.byHash {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
