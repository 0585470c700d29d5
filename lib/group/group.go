package group

import (
	"math"
	"sync"

	"github.com/2x3systems/orbits/lib/perm"
	"github.com/2x3systems/orbits/orbit"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// Group is a permutation group of degree N acting on the positions of words of layout V.
//
// A Group is read-only after New() and may be shared by any number of goroutines.
type Group[V perm.Vect[V]] struct {
	Name string
	N    int
	SGS  SGS[V]

	order   int
	opts    Opts
	pool    sync.Pool
	proto   V
	metrics orbit.Metrics
}

// New validates sgs and returns the group it generates.
//
// sgs must carry N-1 or N levels (a trailing level, when present, holds only the identity) and every permutation
// must have the layout of proto.  A malformed SGS yields an error wrapping orbit.ErrMalformedGroup.
func New[V perm.Vect[V]](name string, proto V, N int, sgs SGS[V], opts Opts) (*Group[V], error) {
	if N < 0 || N > proto.Width() {
		return nil, errors.Wrapf(orbit.ErrBadWidth, "group %q: degree %d, vector width %d", name, N, proto.Width())
	}

	G := &Group[V]{
		Name:    name,
		N:       N,
		SGS:     sgs,
		opts:    opts,
		proto:   proto.Zero(),
		metrics: opts.Metrics,
	}
	if err := G.CheckSGS(); err != nil {
		return nil, err
	}

	G.order = 1
	for _, level := range sgs {
		G.order = orbit.MulSat(G.order, len(level), math.MaxInt)
	}
	if G.opts.Scratch.Capacity <= 0 {
		G.opts.Scratch.Capacity = G.ScratchCapacity()
	}
	if _, err := newScratch[V](G.opts.Scratch, nil); err != nil {
		return nil, err
	}
	G.pool.New = func() interface{} {
		st, _ := newScratch[V](G.opts.Scratch, G.metrics)
		return st
	}

	klog.V(2).Infof("group %q: degree %d, order %d, scratch %v/%d", name, N, G.order, G.opts.Scratch.Kind, G.opts.Scratch.Capacity)
	return G, nil
}

// CheckSGS verifies the stabilizer chain: each level starts with the identity, holds permutations of 0..N-1
// (fixing every point beyond N), fixes the points below its level, and maps its level point to distinct images.
func (G *Group[V]) CheckSGS() error {
	if len(G.SGS) != G.N && len(G.SGS) != G.N-1 {
		return errors.Wrapf(orbit.ErrMalformedGroup, "group %q: %d levels for degree %d", G.Name, len(G.SGS), G.N)
	}

	W := G.proto.Width()
	one := G.proto.Identity()
	for level, transversal := range G.SGS {
		if len(transversal) == 0 {
			return errors.Wrapf(orbit.ErrMalformedGroup, "group %q: level %d is empty", G.Name, level)
		}
		if transversal[0] != one {
			return errors.Wrapf(orbit.ErrMalformedGroup, "group %q: level %d does not start with the identity", G.Name, level)
		}
		images := uint64(0)
		for j, p := range transversal {
			if p.Width() != W {
				return errors.Wrapf(orbit.ErrMalformedGroup, "group %q: level %d entry %d has width %d, want %d", G.Name, level, j, p.Width(), W)
			}
			if !p.IsPermutation(G.N) {
				return errors.Wrapf(orbit.ErrMalformedGroup, "group %q: level %d entry %d %v is not a permutation of degree %d", G.Name, level, j, p, G.N)
			}
			for i := 0; i < level; i++ {
				if p.At(i) != uint8(i) {
					return errors.Wrapf(orbit.ErrMalformedGroup, "group %q: level %d entry %d moves %d", G.Name, level, j, i)
				}
			}
			bit := uint64(1) << p.At(level)
			if images&bit != 0 {
				return errors.Wrapf(orbit.ErrMalformedGroup, "group %q: level %d repeats the image %d", G.Name, level, p.At(level))
			}
			images |= bit
		}
	}
	return nil
}

// Order returns the number of elements of the group, saturating at math.MaxInt.
func (G *Group[V]) Order() int {
	return G.order
}

// ScratchCapacity is the default bounded set capacity: one level of the canonicity walk holds at most Order()
// distinct images, so the capacity is sized for min(Order(), orbit.MaxKeysFor(orbit.DefaultScratchCapacity)).
// Larger groups rely on the set growing.
func (G *Group[V]) ScratchCapacity() int {
	keys := orbit.MaxKeysFor(orbit.DefaultScratchCapacity)
	if G.order < keys {
		keys = G.order
	}
	return orbit.CapacityFor(keys)
}

// Zero returns the all-zero word of the group's layout.
func (G *Group[V]) Zero() V {
	return G.proto
}

// String returns the group's name.
func (G *Group[V]) String() string {
	return G.Name
}

// NewScratch returns scratch storage sized for this group.
func (G *Group[V]) NewScratch() *Scratch[V] {
	st, err := newScratch[V](G.opts.Scratch, G.metrics)
	if err != nil {
		panic(err) // validated in New()
	}
	return st
}

func (G *Group[V]) acquire() *Scratch[V] {
	return G.pool.Get().(*Scratch[V])
}

func (G *Group[V]) release(st *Scratch[V]) {
	G.pool.Put(st)
}
