package recordstore

import "iter"

// Group is one bucket of a GroupBy, labelled with the first spelling of its key.
type Group[V any] struct {
	Key   string
	Value V
}

// Aggregate folds seq into a single value.
func Aggregate[T, A any](seq iter.Seq[T], seed A, fn func(A, T) A) A {
	acc := seed
	for r := range seq {
		acc = fn(acc, r)
	}
	return acc
}

// Sum adds up the selected projection.
func Sum[T any](seq iter.Seq[T], selector func(T) float64) float64 {
	return Aggregate(seq, 0.0, func(acc float64, r T) float64 {
		return acc + selector(r)
	})
}

// Average returns the mean of the selected projection, or 0 for an empty sequence.
func Average[T any](seq iter.Seq[T], selector func(T) float64) float64 {
	var total float64
	var n int
	for r := range seq {
		total += selector(r)
		n++
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// Count returns the number of elements in seq.
func Count[T any](seq iter.Seq[T]) int {
	return Aggregate(seq, 0, func(acc int, _ T) int { return acc + 1 })
}

// GroupBy buckets seq by a case-folded key and folds each bucket with fn.
// Groups are returned in order of first appearance.
func GroupBy[T, V any](seq iter.Seq[T], key func(T) string, fn func(V, T) V) []Group[V] {
	var groups []Group[V]
	index := make(map[string]int)
	for r := range seq {
		k := key(r)
		folded := Fold(k)
		i, ok := index[folded]
		if !ok {
			i = len(groups)
			index[folded] = i
			groups = append(groups, Group[V]{Key: k})
		}
		groups[i].Value = fn(groups[i].Value, r)
	}
	return groups
}

// Distinct returns the distinct keys of seq under case folding, in order of first appearance.
func Distinct[T any](seq iter.Seq[T], key func(T) string) []string {
	groups := GroupBy(seq, key, func(n int, _ T) int { return n + 1 })
	keys := make([]string, 0, len(groups))
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	return keys
}
