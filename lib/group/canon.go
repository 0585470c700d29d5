package group

import (
	"sort"

	"github.com/2x3systems/orbits/lib/sets"
)

// IsCanonical reports whether v is the largest word in its orbit.
//
// st may be nil, in which case scratch storage is taken from an internal pool.
func (G *Group[V]) IsCanonical(v V, st *Scratch[V]) bool {
	if st == nil {
		st = G.acquire()
		defer G.release(st)
	}
	_, larger := G.findLarger(v, st)
	if G.metrics != nil {
		G.metrics.CanonicityTest(!larger)
	}
	return !larger
}

// Canonical returns the largest word in the orbit of v.
//
// st may be nil, in which case scratch storage is taken from an internal pool.
func (G *Group[V]) Canonical(v V, st *Scratch[V]) V {
	if st == nil {
		st = G.acquire()
		defer G.release(st)
	}
	for {
		child, larger := G.findLarger(v, st)
		if !larger {
			return v
		}
		v = child // strictly larger, so this terminates
	}
}

// findLarger walks levels 0..N-2 and returns the first image found that is larger than v.
//
// At level i, a candidate survives into the next level iff it agrees with v on positions 0..i.
func (G *Group[V]) findLarger(v V, st *Scratch[V]) (larger V, found bool) {
	W := v.Width()
	st.reset(v)
	cur, next := st.cur, st.next

	for i := 0; i < G.N-1; i++ {
		next.Clear()
		transversal := G.SGS[i][1:]
		vi := v.At(i)

		cur.Each(func(c V) bool {
			if c.At(i) == vi {
				next.Insert(c)
			}
			for _, x := range transversal {
				child := c.Permuted(x)
				d := v.FirstDiff(child, W)
				if d < W && v.At(d) < child.At(d) {
					larger, found = child, true
					return false
				}
				if d > i {
					next.Insert(child)
				}
			}
			return true
		})
		if found {
			return
		}
		if G.metrics != nil {
			G.metrics.LevelWidth(next.Len())
		}
		cur, next = next, cur
	}
	return
}

// Orbit returns every image of v under the group, in ascending order.
//
// The orbit is closed breadth-first under the SGS entries, so its cost is proportional to the orbit size.
func (G *Group[V]) Orbit(v V) []V {
	seen := sets.NewBounded(func(w V) uint64 { return w.Hash() }, sets.BoundedOpts{
		Capacity: G.opts.Scratch.Capacity,
	})
	seen.Insert(v)
	queue := []V{v}
	for len(queue) > 0 {
		w := queue[0]
		queue = queue[1:]
		for _, level := range G.SGS {
			for _, x := range level[1:] {
				if img := w.Permuted(x); seen.Insert(img) {
					queue = append(queue, img)
				}
			}
		}
	}

	orbit := make([]V, 0, seen.Len())
	seen.Each(func(w V) bool {
		orbit = append(orbit, w)
		return true
	})
	sort.Slice(orbit, func(i, j int) bool { return orbit[i].Less(orbit[j]) })
	return orbit
}
