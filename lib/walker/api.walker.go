// Package walker enumerates orbit representatives by walking the tree of canonical words.
package walker

import (
	"context"

	"github.com/2x3systems/orbits/lib/group"
	"github.com/2x3systems/orbits/lib/perm"
	"github.com/2x3systems/orbits/orbit"
)

// ElementsOfDepth returns the canonical words whose entries sum to depth (entries are bounded by depth).
func ElementsOfDepth[V perm.Vect[V]](ctx context.Context, G *group.Group[V], depth int, opts Opts) ([]V, error) {
	return ElementsOfDepthMaxPart(ctx, G, depth, depth, opts)
}

// ElementsOfDepthMaxPart returns the canonical words whose entries sum to depth and are each <= maxPart.
func ElementsOfDepthMaxPart[V perm.Vect[V]](ctx context.Context, G *group.Group[V], depth, maxPart int, opts Opts) ([]V, error) {
	pol, err := Depth[V](depth, maxPart)
	if err != nil {
		return nil, err
	}
	return Walk[V, *[]V, []V](ctx, G, pol, ResultList[V]{}, opts)
}

// ElementsOfDepthNumber counts the canonical words whose entries sum to depth.
func ElementsOfDepthNumber[V perm.Vect[V]](ctx context.Context, G *group.Group[V], depth int, opts Opts) (uint64, error) {
	return ElementsOfDepthNumberMaxPart(ctx, G, depth, depth, opts)
}

// ElementsOfDepthNumberMaxPart counts the canonical words whose entries sum to depth and are each <= maxPart.
func ElementsOfDepthNumberMaxPart[V perm.Vect[V]](ctx context.Context, G *group.Group[V], depth, maxPart int, opts Opts) (uint64, error) {
	pol, err := Depth[V](depth, maxPart)
	if err != nil {
		return 0, err
	}
	return Walk[V, *uint64, uint64](ctx, G, pol, ResultCounter[V]{}, opts)
}

// ElementsOfEvaluation returns the canonical words in which symbol k occurs eval[k] times.
func ElementsOfEvaluation[V perm.Vect[V]](ctx context.Context, G *group.Group[V], eval V, opts Opts) ([]V, error) {
	pol, err := Evaluation(G, eval)
	if err != nil {
		return nil, err
	}
	return Walk[V, *[]V, []V](ctx, G, pol, ResultList[V]{}, opts)
}

// ElementsOfEvaluationNumber counts the canonical words in which symbol k occurs eval[k] times.
func ElementsOfEvaluationNumber[V perm.Vect[V]](ctx context.Context, G *group.Group[V], eval V, opts Opts) (uint64, error) {
	pol, err := Evaluation(G, eval)
	if err != nil {
		return 0, err
	}
	return Walk[V, *uint64, uint64](ctx, G, pol, ResultCounter[V]{}, opts)
}

// Opts tunes a walk; the zero value walks on GOMAXPROCS goroutines.
type Opts struct {
	Workers   int           // max goroutines running subtrees at once (0 => GOMAXPROCS, 1 => strictly sequential)
	SeqCutoff int           // subtrees with fewer remaining levels are walked inline (0 => DefaultSeqCutoff)
	Metrics   orbit.Metrics // optional
}

const DefaultSeqCutoff = 3

// Result is the accumulator strategy of a walk.
//
// Each concurrently walked subtree updates its own accumulator from NewAcc(); Merge folds a finished subtree's
// accumulator into its parent's, in the order the subtrees would have been visited sequentially.
type Result[V perm.Vect[V], A any, R any] interface {
	NewAcc() A
	Update(acc A, v V)
	Merge(into, from A)
	Value(acc A) R
}

// ResultList collects the canonical words.
type ResultList[V perm.Vect[V]] struct{}

func (ResultList[V]) NewAcc() *[]V {
	return new([]V)
}

func (ResultList[V]) Update(acc *[]V, v V) {
	*acc = append(*acc, v)
}

func (ResultList[V]) Merge(into, from *[]V) {
	*into = append(*into, *from...)
}

func (ResultList[V]) Value(acc *[]V) []V {
	return *acc
}

// ResultCounter counts the canonical words.
type ResultCounter[V perm.Vect[V]] struct{}

func (ResultCounter[V]) NewAcc() *uint64 {
	return new(uint64)
}

func (ResultCounter[V]) Update(acc *uint64, v V) {
	*acc++
}

func (ResultCounter[V]) Merge(into, from *uint64) {
	*into += *from
}

func (ResultCounter[V]) Value(acc *uint64) uint64 {
	return *acc
}
