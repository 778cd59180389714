// Package roundrobinrandom implements a randomized round-based ordering type.
//
// Each element in an Order is visited in random sequence, once per round
// (possibly excluding the round it is added to the Order). Therefore, in an
// Order of n elements, successive visits to the same element will occur at
// intervals of at most 2n-1 calls to Next.
//
// A Tie built over n operands (see tie.go) builds one Order per call,
// adds indices 0..n-1, and drains Next n times to get a single-round
// permutation: the "round" here is deliberately never allowed to
// repeat, which is what turns a long-lived round-robin ordering into a
// one-shot Fisher-Yates-style shuffle.
package roundrobinrandom

import "math/rand"

// An Order holds values to return in a randomized round-based sequence such
// that each value is returned once per round. The sequence is shuffled after
// each round. The zero value of type Order is an empty Order ready for use.
type Order[T comparable] struct {
	a    []T
	next int
}

// Next returns the next value in the Order, shuffling first if necessary. If
// the Order is empty, it returns the zero value of type T.
func (o *Order[T]) Next() T {
	var t T
	if len(o.a) == 0 {
		return t
	}
	if o.next == len(o.a) {
		o.next = 0
		rand.Shuffle(len(o.a), o.swap)
	}
	t = o.a[o.next]
	o.next++
	return t
}

// Add inserts t into a random position in the Order. Depending on where it is
// inserted, t may or may not be returned in the current round.
func (o *Order[T]) Add(t T) {
	o.addAt(t, rand.Intn(len(o.a)+1))
}

// addAt inserts t at index k, which must be in the range [0, len(o.a)].
func (o *Order[T]) addAt(t T, k int) {
	o.a = append(o.a, t)
	last := len(o.a) - 1
	if k < o.next {
		o.swap(o.next, last)
		o.next++
	} else {
		o.swap(k, last)
	}
}

func (o *Order[T]) swap(i, j int) {
	o.a[i], o.a[j] = o.a[j], o.a[i]
}
