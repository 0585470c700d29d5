package walker

import (
	"fmt"

	"github.com/2x3systems/orbits/lib/group"
	"github.com/2x3systems/orbits/lib/perm"
	"github.com/2x3systems/orbits/orbit"
	"github.com/pkg/errors"
)

// node is one partial word of the search tree.
type node[V perm.Vect[V]] struct {
	v     V
	depth int // sum of the entries of v (depth walk)
	eval  V   // remaining symbol counts (evaluation walk)
	sum   int // sum of eval
}

// Policy decides the shape of the search tree: where it starts, what the children of a node are, and which nodes
// are recorded.  Children are only ever visited if canonical.
type Policy[V perm.Vect[V]] interface {
	fmt.Stringer

	root(G *group.Group[V]) node[V]
	isLeaf(n *node[V]) bool

	// remaining is an estimate of the number of levels below n.
	remaining(n *node[V]) int

	// expand calls visit for each canonical child of n, stopping at the first error.
	expand(G *group.Group[V], n *node[V], st *group.Scratch[V], visit func(child node[V]) error) error
}

type depthPolicy[V perm.Vect[V]] struct {
	target  int
	maxPart int
}

// Depth returns the policy recording the canonical words whose entries sum to depth and are each <= maxPart.
func Depth[V perm.Vect[V]](depth, maxPart int) (Policy[V], error) {
	if depth < 0 || maxPart < 0 || maxPart > orbit.MaxPart {
		return nil, errors.Wrapf(orbit.ErrBadDepth, "depth %d, max part %d (limit %d)", depth, maxPart, orbit.MaxPart)
	}
	return depthPolicy[V]{
		target:  depth,
		maxPart: maxPart,
	}, nil
}

func (pol depthPolicy[V]) String() string {
	return fmt.Sprintf("depth %d (max part %d)", pol.target, pol.maxPart)
}

func (pol depthPolicy[V]) root(G *group.Group[V]) node[V] {
	return node[V]{v: G.Zero()}
}

func (pol depthPolicy[V]) isLeaf(n *node[V]) bool {
	return n.depth == pol.target
}

func (pol depthPolicy[V]) remaining(n *node[V]) int {
	return pol.target - n.depth
}

// expand bumps one entry at or after the last non-zero position.
func (pol depthPolicy[V]) expand(G *group.Group[V], n *node[V], st *group.Scratch[V], visit func(child node[V]) error) error {
	N := G.N
	i := n.v.LastNonZero(N)
	if i >= N {
		i = 0
	}
	for ; i < N; i++ {
		x := int(n.v.At(i)) + 1
		if x > pol.maxPart {
			continue
		}
		child := n.v.With(i, uint8(x))
		if !G.IsCanonical(child, st) {
			continue
		}
		if err := visit(node[V]{v: child, depth: n.depth + 1}); err != nil {
			return err
		}
	}
	return nil
}

type evalPolicy[V perm.Vect[V]] struct {
	eval V
	sum  int
}

// Evaluation returns the policy recording the canonical words in which symbol k occurs eval[k] times.
//
// The counts of symbols 0..G.N-1 must sum to G.N and eval must be zero beyond G.N.
func Evaluation[V perm.Vect[V]](G *group.Group[V], eval V) (Policy[V], error) {
	if eval.Width() != G.Zero().Width() {
		return nil, errors.Wrapf(orbit.ErrBadEvaluation, "evaluation width %d, group layout width %d", eval.Width(), G.Zero().Width())
	}
	sum := perm.Sum(eval, eval.Width())
	if sum != G.N || perm.Sum(eval, G.N) != G.N {
		return nil, errors.Wrapf(orbit.ErrBadEvaluation, "%v sums to %d, want %d", perm.Format(eval, G.N), sum, G.N)
	}
	return evalPolicy[V]{
		eval: eval,
		sum:  sum,
	}, nil
}

func (pol evalPolicy[V]) String() string {
	return fmt.Sprintf("evaluation %v", pol.eval)
}

func (pol evalPolicy[V]) root(G *group.Group[V]) node[V] {
	return node[V]{
		v:    G.Zero(),
		eval: pol.eval,
		sum:  pol.sum,
	}
}

func (pol evalPolicy[V]) isLeaf(n *node[V]) bool {
	return n.sum == 0 || n.sum == int(n.eval.At(0))
}

func (pol evalPolicy[V]) remaining(n *node[V]) int {
	return n.sum - int(n.eval.At(0))
}

// expand places a non-zero symbol after skipping i of the remaining zeros.
func (pol evalPolicy[V]) expand(G *group.Group[V], n *node[V], st *group.Scratch[V], visit func(child node[V]) error) error {
	N := G.N
	first := n.v.LastNonZero(N)
	if first >= N {
		first = 0
	} else {
		first++
	}

	zeros := int(n.eval.At(0))
	for i := 0; i <= zeros; i++ {
		for s := 1; s < N; s++ {
			count := n.eval.At(s)
			if count == 0 {
				continue
			}
			child := n.v.With(first+i, uint8(s))
			if !G.IsCanonical(child, st) {
				continue
			}
			err := visit(node[V]{
				v:    child,
				eval: n.eval.With(s, count-1).With(0, uint8(zeros-i)),
				sum:  n.sum - 1 - i,
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
