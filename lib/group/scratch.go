package group

import (
	"github.com/2x3systems/orbits/lib/perm"
	"github.com/2x3systems/orbits/lib/sets"
	"github.com/2x3systems/orbits/orbit"
)

// Scratch holds the pair of candidate sets used by one canonicity test.
//
// A Scratch must never be used by two goroutines at once: overlapping calls silently corrupt each other's
// candidates and yield wrong answers rather than a crash.  Each worker owns one Scratch (see walker.Opts).
type Scratch[V perm.Vect[V]] struct {
	cur, next sets.Set[V]
}

func newScratch[V perm.Vect[V]](opts ScratchOpts, metrics orbit.Metrics) (*Scratch[V], error) {
	setOpts := sets.Opts{
		Kind:     opts.Kind,
		Capacity: opts.Capacity,
		Metrics:  metrics,
	}
	cur, err := sets.New[V](setOpts)
	if err != nil {
		return nil, err
	}
	next, _ := sets.New[V](setOpts)
	return &Scratch[V]{
		cur:  cur,
		next: next,
	}, nil
}

func (st *Scratch[V]) reset(v V) {
	st.cur.Clear()
	st.next.Clear()
	st.cur.Insert(v)
}
