// Package orbit holds the types shared by the perm, sets, group and walker packages.
//
// Vectors are words over a small alphabet; a permutation group acts on a word by relabeling
// its positions. The canonical representative of an orbit is its lexicographically largest
// word, found or tested against a strong generating set.
package orbit

const (

	// MaxWidth is the widest vector layout supported (perm.Generic).
	MaxWidth = 32

	// PackedWidth is the lane count of perm.Packed16.
	PackedWidth = 16

	// MaxPart is the largest value a single vector entry can hold.
	MaxPart = 255

	// DefaultScratchCapacity is the bounded set capacity used when a group's order is unknown or large.
	DefaultScratchCapacity = 2048

	// MaxLoadNum / MaxLoadDen is the fill ratio above which a bounded set refuses to insert.
	MaxLoadNum = 7
	MaxLoadDen = 8
)

// SetKind selects the Set implementation used for canonicity scratch storage.
type SetKind int32

const (
	// SetBounded is a fixed-capacity open addressing set (default).
	SetBounded SetKind = iota

	// SetBoundedStrict is SetBounded that panics with ErrScratchOverflow rather than growing.
	SetBoundedStrict

	// SetTree is a growable ordered set, for groups whose level width is unbounded in practice.
	SetTree
)

func (kind SetKind) String() string {
	switch kind {
	case SetBounded:
		return "bounded"
	case SetBoundedStrict:
		return "bounded-strict"
	case SetTree:
		return "tree"
	}
	return "unknown"
}

// ParseSetKind is the inverse of SetKind.String()
func ParseSetKind(str string) (SetKind, error) {
	for _, kind := range []SetKind{SetBounded, SetBoundedStrict, SetTree} {
		if kind.String() == str {
			return kind, nil
		}
	}
	return SetBounded, ErrUnsupportedSetKind
}

// Metrics receives optional instrumentation from the hot paths.
//
// A nil Metrics is valid everywhere and disables collection.  Implementations must be safe for concurrent use.
type Metrics interface {

	// SetInsert is called once per Set insert attempt; probes is the number of occupied slots stepped over.
	SetInsert(probes int, added bool)

	// SetGrow is called when a bounded set rehashes into a larger table.
	SetGrow(newCapacity int)

	// CanonicityTest is called once per IsCanonical() call.
	CanonicityTest(canonical bool)

	// LevelWidth reports the number of candidates retained after processing one SGS level.
	LevelWidth(width int)

	// TaskSpawned is called each time the walker forks a concurrent subtree.
	TaskSpawned()
}
