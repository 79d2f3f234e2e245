package xiter

import "iter"

// Compact yields seq with runs of equal values collapsed to one value.
// Unlike a set-based dedupe, a value reappearing after a different one is yielded again.
func Compact[T comparable](seq iter.Seq[T]) iter.Seq[T] {
	return CompactFunc(seq, func(v T) T { return v })
}

// CompactFunc yields the key of each run of consecutive elements of seq sharing keyFn(v).
// A nil seq or keyFn yields nothing.
func CompactFunc[T any, K comparable](seq iter.Seq[T], keyFn func(T) K) iter.Seq[K] {
	return func(yield func(K) bool) {
		chunks, err := ChunkGroupBy(seq, keyFn)
		if err != nil {
			return
		}
		for g := range chunks.All() {
			if !yield(g.Key()) {
				return
			}
		}
	}
}
