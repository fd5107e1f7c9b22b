package word

import "math/bits"

// Word128 is a 128-bit bitset word, stored as two 64-bit limbs since Go
// has no native 128-bit integer. The shift logic follows the same
// "shift across a limb boundary by splitting into a below-64 and a
// 64-or-more case" shape as a barrel shifter built from 64-bit stages.
type Word128 struct {
	hi, lo uint64
}

// NewWord128 builds a word from explicit high/low 64-bit halves.
func NewWord128(hi, lo uint64) Word128 {
	return Word128{hi: hi, lo: lo}
}

func (w Word128) And(o Word128) Word128 {
	return Word128{hi: w.hi & o.hi, lo: w.lo & o.lo}
}

func (w Word128) Or(o Word128) Word128 {
	return Word128{hi: w.hi | o.hi, lo: w.lo | o.lo}
}

func (w Word128) Xor(o Word128) Word128 {
	return Word128{hi: w.hi ^ o.hi, lo: w.lo ^ o.lo}
}

func (w Word128) Not() Word128 {
	return Word128{hi: ^w.hi, lo: ^w.lo}
}

// Shl shifts left by n bits, n in [0, 128). A Go shift of a uint64 by
// 64 yields 0 (well-defined, unlike C), so the n<64 formula below needs
// no special case at n==0.
func (w Word128) Shl(n uint) Word128 {
	if n >= 128 {
		return Word128{}
	}
	if n < 64 {
		return Word128{
			hi: (w.hi << n) | (w.lo >> (64 - n)),
			lo: w.lo << n,
		}
	}
	return Word128{hi: w.lo << (n - 64), lo: 0}
}

// Shr shifts right by n bits, n in [0, 128).
func (w Word128) Shr(n uint) Word128 {
	if n >= 128 {
		return Word128{}
	}
	if n < 64 {
		return Word128{
			hi: w.hi >> n,
			lo: (w.lo >> n) | (w.hi << (64 - n)),
		}
	}
	return Word128{hi: 0, lo: w.hi >> (n - 64)}
}

func (w Word128) PopCount() int {
	return bits.OnesCount64(w.hi) + bits.OnesCount64(w.lo)
}

func (w Word128) TrailingZeros() int {
	if w.lo != 0 {
		return bits.TrailingZeros64(w.lo)
	}
	if w.hi != 0 {
		return 64 + bits.TrailingZeros64(w.hi)
	}
	return 128
}

func (w Word128) IsZero() bool { return w.hi == 0 && w.lo == 0 }

func (w Word128) Equal(o Word128) bool { return w.hi == o.hi && w.lo == o.lo }

func (Word128) Zero() Word128 { return Word128{} }
func (Word128) One() Word128  { return Word128{lo: 1} }
func (Word128) Max() Word128  { return Word128{hi: ^uint64(0), lo: ^uint64(0)} }
func (Word128) Size() int     { return 128 }

// FromInt stores n in the low limb; counters never approach 2^64.
func (Word128) FromInt(n int) Word128 { return Word128{lo: uint64(n)} }

// ToInt returns the low limb as an int; counters never use the high limb.
func (w Word128) ToInt() int { return int(w.lo) }
