// Package mapx provides get-or-default and get-or-add helpers for maps and sync.Map.
package mapx

import (
	"fmt"
	"sync"
)

// GetOrDefault returns m[k] if present, otherwise producer(). m is never modified.
func GetOrDefault[K comparable, V any](m map[K]V, k K, producer func() V) V {
	if v, ok := m[k]; ok {
		return v
	}
	return producer()
}

// GetOrAdd returns m[k] if present, otherwise stores v under k and returns it.
func GetOrAdd[K comparable, V any](m map[K]V, k K, v V) V {
	if got, ok := m[k]; ok {
		return got
	}
	m[k] = v
	return v
}

// GetOrAddFunc is like GetOrAdd but calls producer only when k is absent.
func GetOrAddFunc[K comparable, V any](m map[K]V, k K, producer func() V) V {
	if got, ok := m[k]; ok {
		return got
	}
	v := producer()
	m[k] = v
	return v
}

// StoreLatest stores v for k in m.
// It returns stored == true if k was absent, otherwise the value v replaced.
// Values must be comparable, as sync.Map.CompareAndSwap requires.
func StoreLatest[K, V any](m *sync.Map, k K, v V) (old V, stored bool) {
	for {
		oldAny, loaded := m.LoadOrStore(k, v)
		if !loaded {
			var zero V
			return zero, true
		}
		if m.CompareAndSwap(k, oldAny, v) {
			old, _ := oldAny.(V)
			return old, false
		}
		// lost a race with another writer, try again
	}
}

// Load returns the value stored for k in m.
// It fails if the key is absent or the value is not a V.
func Load[K, V any](m *sync.Map, k K) (V, error) {
	latest, ok := m.Load(k)
	if !ok {
		var zero V
		return zero, fmt.Errorf("key %v not found in sync map", k)
	}
	v, ok := latest.(V)
	if !ok {
		var zero V
		return zero, fmt.Errorf("loaded value is not of expected type: %T", latest)
	}
	return v, nil
}
