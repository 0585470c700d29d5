package perm

import (
	"encoding/binary"
	"math/bits"

	"github.com/2x3systems/orbits/orbit"
	"github.com/cespare/xxhash/v2"
)

// Packed16 is a 16 lane vector packed into two words so that comparisons and scans run on 8 lanes at a time.
//
// Lane i lives in byte i&7 of lo (i < 8) or hi (i >= 8).  The zero value is the zero vector.
type Packed16 struct {
	lo, hi uint64
}

const (
	lanes7f = 0x7f7f7f7f7f7f7f7f
	lanes80 = 0x8080808080808080

	identityLo = 0x0706050403020100
	identityHi = 0x0f0e0d0c0b0a0908
)

// Vect16 returns the word with the given leading entries and zeros after.
func Vect16(vals ...uint8) Packed16 {
	X, err := FromSlice(Packed16{}, vals)
	if err != nil {
		panic(err)
	}
	return X
}

// Perm16 returns the permutation with the given leading images, fixing every later point.
func Perm16(vals ...uint8) Packed16 {
	X, err := FromSlice(Packed16{lo: identityLo, hi: identityHi}, vals)
	if err != nil {
		panic(err)
	}
	return X
}

// zeroLanes sets the high bit of every zero byte of x (exact, unlike the borrow based trick).
func zeroLanes(x uint64) uint64 {
	y := (x & lanes7f) + lanes7f
	return ^(y | x | lanes7f)
}

// laneMasks selects lanes [0, bound).
func laneMasks(bound int) (lo, hi uint64) {
	switch {
	case bound <= 0:
		return 0, 0
	case bound < 8:
		return (uint64(1) << (8 * bound)) - 1, 0
	case bound < 16:
		return ^uint64(0), (uint64(1) << (8 * (bound - 8))) - 1
	}
	return ^uint64(0), ^uint64(0)
}

func firstLane(lo, hi uint64) int {
	if lo != 0 {
		return bits.TrailingZeros64(lo) >> 3
	}
	if hi != 0 {
		return 8 + bits.TrailingZeros64(hi)>>3
	}
	return orbit.PackedWidth
}

func lastLane(lo, hi uint64) int {
	if hi != 0 {
		return 8 + (63-bits.LeadingZeros64(hi))>>3
	}
	if lo != 0 {
		return (63 - bits.LeadingZeros64(lo)) >> 3
	}
	return orbit.PackedWidth
}

func (X Packed16) Width() int {
	return orbit.PackedWidth
}

func (X Packed16) at(i int) uint8 {
	if i < 8 {
		return uint8(X.lo >> (8 * i))
	}
	return uint8(X.hi >> (8 * (i - 8)))
}

func (X Packed16) At(i int) uint8 {
	if uint(i) >= orbit.PackedWidth {
		outOfRange(i, orbit.PackedWidth)
	}
	return X.at(i)
}

func (X Packed16) With(i int, x uint8) Packed16 {
	if uint(i) >= orbit.PackedWidth {
		outOfRange(i, orbit.PackedWidth)
	}
	if i < 8 {
		shift := 8 * i
		X.lo = X.lo&^(0xff<<shift) | uint64(x)<<shift
	} else {
		shift := 8 * (i - 8)
		X.hi = X.hi&^(0xff<<shift) | uint64(x)<<shift
	}
	return X
}

func (X Packed16) Equal(other Packed16) bool {
	return X == other
}

func (X Packed16) FirstDiff(other Packed16, bound int) int {
	mlo, mhi := laneMasks(bound)
	return firstLane((X.lo^other.lo)&mlo, (X.hi^other.hi)&mhi)
}

func (X Packed16) Less(other Packed16) bool {
	d := firstLane(X.lo^other.lo, X.hi^other.hi)
	return d < orbit.PackedWidth && X.at(d) < other.at(d)
}

func (X Packed16) LessPartial(other Packed16, k int) int {
	d := X.FirstDiff(other, k)
	if d == orbit.PackedWidth {
		return 0
	}
	return int(X.at(d)) - int(other.at(d))
}

// shuffle follows PSHUFB: an index with its high bit set yields 0, otherwise only its low 4 bits are used.
func (X Packed16) shuffle(idx uint8) uint64 {
	if idx&0x80 != 0 {
		return 0
	}
	return uint64(X.at(int(idx & 0x0f)))
}

func (X Packed16) Permuted(p Packed16) Packed16 {
	var r Packed16
	for i := 0; i < 8; i++ {
		shift := 8 * i
		r.lo |= X.shuffle(uint8(p.lo>>shift)) << shift
		r.hi |= X.shuffle(uint8(p.hi>>shift)) << shift
	}
	return r
}

func (X Packed16) FirstZero(bound int) int {
	mlo, mhi := laneMasks(bound)
	return firstLane(zeroLanes(X.lo)&mlo, zeroLanes(X.hi)&mhi)
}

func (X Packed16) LastZero(bound int) int {
	mlo, mhi := laneMasks(bound)
	return lastLane(zeroLanes(X.lo)&mlo, zeroLanes(X.hi)&mhi)
}

func (X Packed16) FirstNonZero(bound int) int {
	mlo, mhi := laneMasks(bound)
	return firstLane(^zeroLanes(X.lo)&lanes80&mlo, ^zeroLanes(X.hi)&lanes80&mhi)
}

func (X Packed16) LastNonZero(bound int) int {
	mlo, mhi := laneMasks(bound)
	return lastLane(^zeroLanes(X.lo)&lanes80&mlo, ^zeroLanes(X.hi)&lanes80&mhi)
}

func (X Packed16) IsPermutation(k int) bool {
	seen := uint32(0)
	for i := 0; i < orbit.PackedWidth; i++ {
		x := X.at(i)
		if x >= orbit.PackedWidth {
			return false
		}
		seen |= 1 << x
	}
	if seen != 0xffff {
		return false
	}
	last := lastLane(X.lo^identityLo, X.hi^identityHi)
	return last == orbit.PackedWidth || last < k
}

func (X Packed16) Hash() uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], X.lo)
	binary.LittleEndian.PutUint64(buf[8:], X.hi)
	return xxhash.Sum64(buf[:])
}

func (X Packed16) Zero() Packed16 {
	return Packed16{}
}

func (X Packed16) Identity() Packed16 {
	return Packed16{lo: identityLo, hi: identityHi}
}

func (X Packed16) String() string {
	var scrap [64]byte
	return appendVect(scrap[:0], X.at, orbit.PackedWidth)
}
