// Package entity provides lazily-populated lookup tables for remote
// records. Each table memoizes within a run; a fetch happens only on
// the first miss, via an injected loader, so tests can swap in fakes.
package entity

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a key the remote service did not return after a
// fetch attempt. Lookups never default silently.
var ErrNotFound = errors.New("entity not found")

// table is a memoizing key→value map. load receives the missing keys
// and returns every record it could fetch; fetched records are merged
// into the table so later lookups stay local.
type table[K comparable, V any] struct {
	entries map[K]V
	load    func(missing []K) (map[K]V, error)
}

func newTable[K comparable, V any](load func([]K) (map[K]V, error)) table[K, V] {
	return table[K, V]{entries: make(map[K]V), load: load}
}

// get returns the cached value for key, fetching on first miss.
func (t *table[K, V]) get(key K) (V, error) {
	if v, ok := t.entries[key]; ok {
		return v, nil
	}
	if err := t.fetch([]K{key}); err != nil {
		var zero V
		return zero, err
	}
	v, ok := t.entries[key]
	if !ok {
		var zero V
		return zero, fmt.Errorf("key %v: %w", key, ErrNotFound)
	}
	return v, nil
}

// warm fetches all still-unknown keys in one loader call.
func (t *table[K, V]) warm(keys []K) error {
	var missing []K
	seen := make(map[K]struct{}, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := t.entries[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return t.fetch(missing)
}

func (t *table[K, V]) fetch(missing []K) error {
	got, err := t.load(missing)
	if err != nil {
		return err
	}
	// Last writer wins within a run; re-fetching is idempotent.
	for k, v := range got {
		t.entries[k] = v
	}
	return nil
}

func (t *table[K, V]) put(key K, value V) {
	t.entries[key] = value
}
