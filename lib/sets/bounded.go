package sets

import (
	"github.com/2x3systems/orbits/orbit"
	"github.com/pkg/errors"
)

// BoundedOpts configures a Bounded set.
type BoundedOpts struct {
	Capacity int           // slot count, rounded up to a power of two >= 2 (default orbit.DefaultScratchCapacity)
	Strict   bool          // panic with orbit.ErrScratchOverflow instead of growing
	Metrics  orbit.Metrics // optional
}

const (
	empty       = -1
	minCapacity = 2 // smallest capacity whose max load admits a key
)

// Bounded is an open addressing hash set with linear probing.
//
// Occupied slots are threaded into a chain (most recent first) so that Clear() and Each() cost O(Len()) rather than O(capacity).
// A slot is free iff next[slot] == empty; the chain ends at the sentinel index len(next).
type Bounded[K comparable] struct {
	hash    func(K) uint64
	keys    []K
	next    []int32
	head    int32
	count   int
	maxFill int
	mask    uint64
	strict  bool
	metrics orbit.Metrics
}

// NewBounded returns an empty set keyed by the given hash function.
func NewBounded[K comparable](hash func(K) uint64, opts BoundedOpts) *Bounded[K] {
	if opts.Capacity <= 0 {
		opts.Capacity = orbit.DefaultScratchCapacity
	}
	X := &Bounded[K]{
		hash:    hash,
		strict:  opts.Strict,
		metrics: opts.Metrics,
	}
	X.alloc(max(orbit.CeilPow2(opts.Capacity), minCapacity))
	return X
}

func (X *Bounded[K]) alloc(capacity int) {
	X.keys = make([]K, capacity)
	X.next = make([]int32, capacity)
	for i := range X.next {
		X.next[i] = empty
	}
	X.head = int32(capacity)
	X.count = 0
	X.maxFill = orbit.MaxKeysFor(capacity)
	X.mask = uint64(capacity - 1)
}

// Capacity returns the current slot count.
func (X *Bounded[K]) Capacity() int {
	return len(X.next)
}

func (X *Bounded[K]) Len() int {
	return X.count
}

func (X *Bounded[K]) Insert(k K) bool {
	if X.count >= X.maxFill {
		if X.contains(k) {
			X.reportInsert(0, false)
			return false
		}
		X.overflow()
	}

	probes := 0
	slot := X.hash(k) & X.mask
	for X.next[slot] != empty {
		if X.keys[slot] == k {
			X.reportInsert(probes, false)
			return false
		}
		probes++
		slot = (slot + 1) & X.mask
	}

	X.keys[slot] = k
	X.next[slot] = X.head
	X.head = int32(slot)
	X.count++
	X.reportInsert(probes, true)
	return true
}

func (X *Bounded[K]) reportInsert(probes int, added bool) {
	if X.metrics != nil {
		X.metrics.SetInsert(probes, added)
	}
}

func (X *Bounded[K]) contains(k K) bool {
	slot := X.hash(k) & X.mask
	for X.next[slot] != empty {
		if X.keys[slot] == k {
			return true
		}
		slot = (slot + 1) & X.mask
	}
	return false
}

func (X *Bounded[K]) overflow() {
	if X.strict {
		panic(errors.Wrapf(orbit.ErrScratchOverflow, "bounded set holds %d keys at capacity %d", X.count, len(X.next)))
	}
	X.grow(2 * len(X.next))
}

// grow rehashes into a table of the given capacity, preserving the Each() order.
func (X *Bounded[K]) grow(capacity int) {
	prev := make([]K, 0, X.count)
	X.Each(func(k K) bool {
		prev = append(prev, k)
		return true
	})

	X.alloc(capacity)
	for i := len(prev) - 1; i >= 0; i-- {
		slot := X.hash(prev[i]) & X.mask
		for X.next[slot] != empty {
			slot = (slot + 1) & X.mask
		}
		X.keys[slot] = prev[i]
		X.next[slot] = X.head
		X.head = int32(slot)
		X.count++
	}

	if X.metrics != nil {
		X.metrics.SetGrow(capacity)
	}
}

func (X *Bounded[K]) Clear() {
	end := int32(len(X.next))
	var zero K
	for slot := X.head; slot != end; {
		next := X.next[slot]
		X.next[slot] = empty
		X.keys[slot] = zero
		slot = next
	}
	X.head = end
	X.count = 0
}

func (X *Bounded[K]) Each(fn func(k K) bool) {
	end := int32(len(X.next))
	for slot := X.head; slot != end; slot = X.next[slot] {
		if !fn(X.keys[slot]) {
			return
		}
	}
}

// Clone returns an independent deep copy.
func (X *Bounded[K]) Clone() *Bounded[K] {
	dup := *X
	dup.keys = append([]K(nil), X.keys...)
	dup.next = append([]int32(nil), X.next...)
	return &dup
}

// Take moves the contents of X into a new set, leaving X empty with the same capacity.
func (X *Bounded[K]) Take() *Bounded[K] {
	moved := *X
	X.alloc(len(moved.next))
	return &moved
}
