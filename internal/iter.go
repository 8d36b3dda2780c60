package internal

import (
	"iter"
	"slices"
)

// IterSeqConcat concatenates multiple iterators into a single iterator sequence.
func IterSeqConcat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for val := range seq {
				if !yield(val) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// Permutations yields every ordering of values, in lexicographic order of
// their positions. Each yielded slice is a fresh copy.
func Permutations[T any](values []T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		index := make([]int, len(values))
		for n := range index {
			index[n] = n
		}

		for {
			perm := make([]T, len(values))
			for n, i := range index {
				perm[n] = values[i]
			}
			if !yield(perm) {
				return
			}

			// Advance to the next permutation of the positions.
			k := len(index) - 2
			for k >= 0 && index[k] >= index[k+1] {
				k--
			}
			if k < 0 {
				return
			}
			l := len(index) - 1
			for index[l] <= index[k] {
				l--
			}
			index[k], index[l] = index[l], index[k]
			slices.Reverse(index[k+1:])
		}
	}
}
