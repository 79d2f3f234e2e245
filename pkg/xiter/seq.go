// Package xiter provides adapters for Go 1.23+ iter.Seq.
//
// The centrepiece is ChunkGroupBy, which groups consecutive elements sharing a key
// into runs. The small adapters in this file are the building blocks used around it.
package xiter

import "iter"

// SeqOf returns an iter.Seq[T] over vals, in order.
func SeqOf[T any](vals ...T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range vals {
			if !yield(v) {
				return
			}
		}
	}
}

// Map returns an iter.Seq[U] yielding f(v) for every v in seq.
func Map[T, U any](seq iter.Seq[T], f func(T) U) iter.Seq[U] {
	return func(yield func(U) bool) {
		for v := range seq {
			if !yield(f(v)) {
				return
			}
		}
	}
}

// Filter returns an iter.Seq[T] yielding the elements of seq for which pred reports true.
func Filter[T any](seq iter.Seq[T], pred func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if pred(v) && !yield(v) {
				return
			}
		}
	}
}
