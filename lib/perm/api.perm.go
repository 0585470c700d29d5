// Package perm provides the fixed width small-integer vectors that the canonicity engine permutes.
package perm

import (
	"fmt"

	"github.com/2x3systems/orbits/orbit"
	"github.com/pkg/errors"
)

// Vect is the capability every vector layout implements.
//
// A Vect holds Width() entries.  Position queries return Width() as the "none" sentinel.
// Indices outside [0, Width()) are precondition violations and panic with orbit.ErrIndexOutOfRange.
// Values are immutable; With() returns a modified copy.
type Vect[V any] interface {
	comparable
	fmt.Stringer

	// Width is the number of positions (and the sentinel returned by position queries).
	Width() int

	// At returns the entry at position i.
	At(i int) uint8

	// With returns a copy whose entry at position i is x.
	With(i int, x uint8) V

	// Equal is true iff all Width() entries coincide.
	Equal(other V) bool

	// Less is strict lexicographic order.
	Less(other V) bool

	// FirstDiff returns the smallest index < bound where the vectors differ, or Width().
	FirstDiff(other V, bound int) int

	// LessPartial compares the first k entries: 0 if they agree, otherwise the signed difference at the first differing position.
	LessPartial(other V, k int) int

	// Permuted returns r where r[i] = self[p[i]].
	Permuted(p V) V

	FirstZero(bound int) int
	LastZero(bound int) int
	FirstNonZero(bound int) int
	LastNonZero(bound int) int

	// IsPermutation is true iff the entries are a rearrangement of 0..Width()-1 and every position >= k is fixed.
	IsPermutation(k int) bool

	// Hash returns a well-mixed 64 bit hash of the entries.
	Hash() uint64

	// Zero returns the all-zero vector of the same layout.
	Zero() V

	// Identity returns the identity permutation of the same layout.
	Identity() V
}

// Transposition returns the elementary transposition swapping i and i+1 in the layout of proto.
func Transposition[V Vect[V]](proto V, i int) V {
	if i < 0 || i+1 >= proto.Width() {
		panic(errors.Wrapf(orbit.ErrIndexOutOfRange, "transposition %d (width %d)", i, proto.Width()))
	}
	one := proto.Identity()
	return one.With(i, uint8(i+1)).With(i+1, uint8(i))
}

// Compose returns the product a*b, defined as a.Permuted(b).
func Compose[V Vect[V]](a, b V) V {
	return a.Permuted(b)
}

// Inverse returns q where q.Permuted(p) and p.Permuted(q) are the identity.  p must be a permutation.
func Inverse[V Vect[V]](p V) V {
	q := p.Zero()
	for i := range p.Width() {
		q = q.With(int(p.At(i)), uint8(i))
	}
	return q
}

// FromSlice returns fill with its leading entries replaced by vals.
func FromSlice[V Vect[V]](fill V, vals []uint8) (V, error) {
	if len(vals) > fill.Width() {
		return fill, errors.Wrapf(orbit.ErrIndexOutOfRange, "%d values for width %d", len(vals), fill.Width())
	}
	v := fill
	for i, x := range vals {
		v = v.With(i, x)
	}
	return v, nil
}

// Compare returns -1, 0, +1 in lexicographic order.
func Compare[V Vect[V]](a, b V) int {
	d := a.FirstDiff(b, a.Width())
	if d >= a.Width() {
		return 0
	}
	if a.At(d) < b.At(d) {
		return -1
	}
	return 1
}

// Sum returns the sum of the first n entries.
func Sum[V Vect[V]](v V, n int) int {
	total := 0
	for i := range n {
		total += int(v.At(i))
	}
	return total
}

// Format writes the first n entries of v as "[a,b,c]".
func Format[V Vect[V]](v V, n int) string {
	return appendVect(nil, v.At, n)
}

func appendVect(buf []byte, at func(int) uint8, n int) string {
	buf = append(buf, '[')
	for i := range n {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendUint8(buf, at(i))
	}
	buf = append(buf, ']')
	return string(buf)
}

func appendUint8(buf []byte, x uint8) []byte {
	if x >= 100 {
		buf = append(buf, '0'+x/100)
	}
	if x >= 10 {
		buf = append(buf, '0'+(x/10)%10)
	}
	return append(buf, '0'+x%10)
}

func outOfRange(i, width int) {
	panic(errors.Wrapf(orbit.ErrIndexOutOfRange, "index %d (width %d)", i, width))
}
