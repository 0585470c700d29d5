package walker

import (
	"github.com/2x3systems/orbits/lib/group"
	"github.com/2x3systems/orbits/lib/perm"
)

// storage hands out per-goroutine scratch, keeping at most one idle Scratch per worker.
type storage[V perm.Vect[V]] struct {
	G    *group.Group[V]
	idle chan *group.Scratch[V]
}

func newStorage[V perm.Vect[V]](G *group.Group[V], workers int) *storage[V] {
	return &storage[V]{
		G:    G,
		idle: make(chan *group.Scratch[V], workers),
	}
}

func (s *storage[V]) get() *group.Scratch[V] {
	select {
	case st := <-s.idle:
		return st
	default:
		return s.G.NewScratch()
	}
}

func (s *storage[V]) put(st *group.Scratch[V]) {
	select {
	case s.idle <- st:
	default:
	}
}
