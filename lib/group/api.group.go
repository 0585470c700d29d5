// Package group implements permutation groups given by a strong generating set and the canonicity engine over them.
//
// The canonical representative of an orbit is its lexicographically largest word.  IsCanonical and Canonical walk
// the stabilizer chain level by level, keeping only the images that still agree with the word on the positions
// already processed.
package group

import (
	"github.com/2x3systems/orbits/lib/perm"
	"github.com/2x3systems/orbits/orbit"
)

// SGS is a strong generating set: level i lists a transversal of the pointwise stabilizer of 0..i-1 in the
// stabilizer of 0..i-2.  Every level starts with the identity.
type SGS[V perm.Vect[V]] [][]V

// Opts tunes a Group; the zero value is ready to use.
type Opts struct {
	Scratch ScratchOpts
	Metrics orbit.Metrics // optional; receives canonicity and scratch set events
}

// ScratchOpts selects the sets held by a Scratch.
type ScratchOpts struct {
	Kind     orbit.SetKind // defaults to orbit.SetBounded
	Capacity int           // if 0, sized from the group order (see Group.ScratchCapacity)
}
