package xiter

import "iter"

// Zipped holds a pair of values and their presence flags.
type Zipped[T, U any] struct {
	V1  T
	OK1 bool
	V2  U
	OK2 bool
}

// ZipLongest pairs the elements of seqT and seqU until both are exhausted.
// Once one side runs out its value is the zero value and its OK flag is false.
func ZipLongest[T, U any](seqT iter.Seq[T], seqU iter.Seq[U]) iter.Seq[Zipped[T, U]] {
	return func(yield func(Zipped[T, U]) bool) {
		tNext, tStop := iter.Pull(seqT)
		defer tStop()
		uNext, uStop := iter.Pull(seqU)
		defer uStop()
		for {
			t, okT := tNext()
			u, okU := uNext()
			if !okT && !okU {
				return
			}
			if !yield(Zipped[T, U]{V1: t, OK1: okT, V2: u, OK2: okU}) {
				return
			}
		}
	}
}
