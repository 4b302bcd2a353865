// Copyright 2025 Gustavo C. Viegas. All rights reserved.

// Package bitvec defines a growable bit vector used to mask
// subsets of indexed draw calls.
package bitvec

const nbit = 64

// V is a growable bit vector.
// The zero value is an empty vector ready for use.
type V struct {
	s []uint64
}

// Len returns the number of bits in the vector.
func (v *V) Len() int { return len(v.s) * nbit }

// Grow resizes the vector so that it contains at least n bits.
// The new extent is appended as a range of unset bits.
func (v *V) Grow(n int) {
	if w := (n + nbit - 1) / nbit; w > len(v.s) {
		v.s = append(v.s, make([]uint64, w-len(v.s))...)
	}
}

// Set sets a given bit, growing the vector if necessary.
func (v *V) Set(index int) {
	v.Grow(index + 1)
	v.s[index/nbit] |= 1 << (index & (nbit - 1))
}

// Unset unsets a given bit.
// Bits beyond v.Len are unset already.
func (v *V) Unset(index int) {
	if index < v.Len() {
		v.s[index/nbit] &^= 1 << (index & (nbit - 1))
	}
}

// IsSet checks whether a given bit is set.
// Bits beyond v.Len report false.
func (v *V) IsSet(index int) bool {
	if index >= v.Len() {
		return false
	}
	return v.s[index/nbit]&(1<<(index&(nbit-1))) != 0
}

// Clear unsets every bit in the vector.
func (v *V) Clear() { clear(v.s) }

// SetAll sets the first n bits, growing the vector if necessary.
func (v *V) SetAll(n int) {
	v.Grow(n)
	for i := 0; i < n/nbit; i++ {
		v.s[i] = ^uint64(0)
	}
	if r := n & (nbit - 1); r != 0 {
		v.s[n/nbit] |= 1<<r - 1
	}
}
