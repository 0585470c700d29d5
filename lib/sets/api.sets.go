// Package sets provides the insert-only candidate sets used while testing canonicity.
package sets

import (
	"github.com/2x3systems/orbits/orbit"
)

// Set is an insert-only collection of distinct keys that can be cleared and reused.
//
// Sets are not safe for concurrent use.
type Set[K any] interface {

	// Insert adds k and returns true if it was not already present.
	Insert(k K) bool

	// Clear removes all keys, retaining allocated storage.
	Clear()

	// Len returns the number of keys present.
	Len() int

	// Each calls fn for each key until fn returns false.
	//
	// The set must not be modified during Each.
	Each(fn func(k K) bool)
}

// Opts selects and sizes a Set.
type Opts struct {
	Kind     orbit.SetKind // defaults to orbit.SetBounded
	Capacity int           // initial slot count for bounded kinds (rounded up to a power of two, default orbit.DefaultScratchCapacity)
	Metrics  orbit.Metrics // optional
}

// Hasher is the capability a key needs for hashed sets.
type Hasher[K any] interface {
	comparable
	Hash() uint64
}

// Comparer is the capability a key needs for ordered sets.
type Comparer[K any] interface {
	Less(other K) bool
}

// Key is satisfied by every vector layout in perm.
type Key[K any] interface {
	Hasher[K]
	Comparer[K]
}

// New returns an empty Set of the requested kind.
func New[K Key[K]](opts Opts) (Set[K], error) {
	switch opts.Kind {
	case orbit.SetBounded, orbit.SetBoundedStrict:
		return NewBounded(func(k K) uint64 { return k.Hash() }, BoundedOpts{
			Capacity: opts.Capacity,
			Strict:   opts.Kind == orbit.SetBoundedStrict,
			Metrics:  opts.Metrics,
		}), nil
	case orbit.SetTree:
		return NewTree(func(a, b K) int {
			switch {
			case a.Less(b):
				return -1
			case b.Less(a):
				return 1
			}
			return 0
		}), nil
	}
	return nil, orbit.ErrUnsupportedSetKind
}
