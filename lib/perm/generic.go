package perm

import (
	"github.com/2x3systems/orbits/orbit"
	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

// Generic is a vector of any width up to orbit.MaxWidth, scanned one entry at a time.
//
// Entries at positions >= Width() are always zero so that == remains a faithful equality.
type Generic struct {
	p [orbit.MaxWidth]uint8
	n uint8
}

// NewGeneric returns the width wide word with the given leading entries and zeros after.
func NewGeneric(width int, vals ...uint8) Generic {
	X, err := FromSlice(GenericZero(width), vals)
	if err != nil {
		panic(err)
	}
	return X
}

// GenericPerm returns the width wide permutation with the given leading images, fixing every later point.
func GenericPerm(width int, vals ...uint8) Generic {
	X, err := FromSlice(GenericZero(width).Identity(), vals)
	if err != nil {
		panic(err)
	}
	return X
}

// GenericZero returns the zero vector of the given width.
func GenericZero(width int) Generic {
	if width < 0 || width > orbit.MaxWidth {
		panic(errors.Wrapf(orbit.ErrBadWidth, "generic width %d", width))
	}
	return Generic{n: uint8(width)}
}

func (X Generic) Width() int {
	return int(X.n)
}

func (X Generic) At(i int) uint8 {
	if uint(i) >= uint(X.n) {
		outOfRange(i, int(X.n))
	}
	return X.p[i]
}

func (X Generic) With(i int, x uint8) Generic {
	if uint(i) >= uint(X.n) {
		outOfRange(i, int(X.n))
	}
	X.p[i] = x
	return X
}

func (X Generic) Equal(other Generic) bool {
	return X == other
}

func (X Generic) clamp(bound int) int {
	if bound > int(X.n) {
		return int(X.n)
	}
	return bound
}

func (X Generic) FirstDiff(other Generic, bound int) int {
	bound = X.clamp(bound)
	for i := 0; i < bound; i++ {
		if X.p[i] != other.p[i] {
			return i
		}
	}
	return int(X.n)
}

func (X Generic) Less(other Generic) bool {
	d := X.FirstDiff(other, int(X.n))
	return d != int(X.n) && X.p[d] < other.p[d]
}

func (X Generic) LessPartial(other Generic, k int) int {
	d := X.FirstDiff(other, k)
	if d == int(X.n) {
		return 0
	}
	return int(X.p[d]) - int(other.p[d])
}

func (X Generic) Permuted(p Generic) Generic {
	if p.n != X.n {
		panic(errors.Wrapf(orbit.ErrBadWidth, "permuting width %d by width %d", X.n, p.n))
	}
	r := Generic{n: X.n}
	for i := 0; i < int(X.n); i++ {
		idx := p.p[i]
		if idx >= X.n {
			outOfRange(int(idx), int(X.n))
		}
		r.p[i] = X.p[idx]
	}
	return r
}

func (X Generic) FirstZero(bound int) int {
	bound = X.clamp(bound)
	for i := 0; i < bound; i++ {
		if X.p[i] == 0 {
			return i
		}
	}
	return int(X.n)
}

func (X Generic) LastZero(bound int) int {
	for i := X.clamp(bound) - 1; i >= 0; i-- {
		if X.p[i] == 0 {
			return i
		}
	}
	return int(X.n)
}

func (X Generic) FirstNonZero(bound int) int {
	bound = X.clamp(bound)
	for i := 0; i < bound; i++ {
		if X.p[i] != 0 {
			return i
		}
	}
	return int(X.n)
}

func (X Generic) LastNonZero(bound int) int {
	for i := X.clamp(bound) - 1; i >= 0; i-- {
		if X.p[i] != 0 {
			return i
		}
	}
	return int(X.n)
}

func (X Generic) IsPermutation(k int) bool {
	seen := uint64(0)
	for i := 0; i < int(X.n); i++ {
		x := X.p[i]
		if x >= X.n || seen&(1<<x) != 0 {
			return false
		}
		seen |= 1 << x
		if i >= k && x != uint8(i) {
			return false
		}
	}
	return true
}

func (X Generic) Hash() uint64 {
	return xxhash.Sum64(X.p[:X.n])
}

func (X Generic) Zero() Generic {
	return Generic{n: X.n}
}

func (X Generic) Identity() Generic {
	r := Generic{n: X.n}
	for i := 0; i < int(X.n); i++ {
		r.p[i] = uint8(i)
	}
	return r
}

func (X Generic) String() string {
	var scrap [128]byte
	return appendVect(scrap[:0], X.At, int(X.n))
}
