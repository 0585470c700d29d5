package orbit

import "math/bits"

// CeilPow2 returns the smallest power of two >= n (and 1 for n <= 1).
func CeilPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// CapacityFor returns a bounded set capacity that holds maxKeys keys without exceeding the max load.
func CapacityFor(maxKeys int) int {
	need := (maxKeys*MaxLoadDen + MaxLoadNum - 1) / MaxLoadNum
	if need < 16 {
		need = 16
	}
	return CeilPow2(need)
}

// MaxKeysFor is the number of keys a bounded set of the given capacity accepts.
func MaxKeysFor(capacity int) int {
	return capacity * MaxLoadNum / MaxLoadDen
}

// MulSat multiplies two non-negative ints, saturating at limit.
func MulSat(a, b, limit int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > limit/b {
		return limit
	}
	p := a * b
	if p > limit {
		return limit
	}
	return p
}
