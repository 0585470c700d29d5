package sets

import (
	"github.com/emirpasic/gods/trees/redblacktree"
)

// Tree is a growable ordered set backed by a red-black tree.
//
// It never overflows, which makes it the fallback for groups whose level width is not known up front.
// Each() visits keys in ascending order.
type Tree[K any] struct {
	tree redblacktree.Tree
}

// NewTree returns an empty set ordered by cmp (negative, zero, positive as with strings.Compare).
func NewTree[K any](cmp func(a, b K) int) *Tree[K] {
	return &Tree[K]{
		tree: redblacktree.Tree{
			Comparator: func(A, B interface{}) int {
				return cmp(A.(K), B.(K))
			},
		},
	}
}

func (X *Tree[K]) Insert(k K) bool {
	if _, found := X.tree.Get(k); found {
		return false
	}
	X.tree.Put(k, nil)
	return true
}

func (X *Tree[K]) Clear() {
	X.tree.Clear()
}

func (X *Tree[K]) Len() int {
	return X.tree.Size()
}

func (X *Tree[K]) Each(fn func(k K) bool) {
	itr := X.tree.Iterator()
	for itr.Next() {
		if !fn(itr.Key().(K)) {
			return
		}
	}
}
