package intrinsics

import "berberis/berrors"

// RoundingMode is the RISC-V vector fixed-point rounding mode (vxrm),
// shared by Roundoff and the averaging add/subtract built on top of it.
type RoundingMode uint8

const (
	// RNU rounds to nearest, ties up.
	RNU RoundingMode = 0
	// RNE rounds to nearest, ties to even.
	RNE RoundingMode = 1
	// RDN truncates (rounds down / toward negative infinity for the
	// already-shifted bits — i.e. no rounding bit is added).
	RDN RoundingMode = 2
	// ROD rounds to odd: the result's low bit is forced to 1 whenever any
	// discarded bit was set.
	ROD RoundingMode = 3
)

// Roundoff computes value>>shift, rounding the discarded low "shift" bits
// according to mode. shift must be less than the bit width of T;
// Roundoff(v, 0) is the identity for every mode.
//
// Ported directly from the source's Roundoff<ElementType>: the discarded
// bits select a rounding increment r that's added to the truncated value.
func Roundoff[T Integer](mode RoundingMode, v T, shift uint) T {
	width := bitWidth(v)
	d := shift & (width - 1)
	if d == 0 {
		return v
	}
	var r T
	switch mode {
	case RNU:
		r = (v >> (d - 1)) & 1
	case RNE:
		roundBit := (v >> (d - 1)) & 1
		stickyOrHigh := T(0)
		if v&((T(1)<<(d-1))-1) != 0 {
			stickyOrHigh = 1
		}
		stickyOrHigh |= (v >> d) & 1
		r = roundBit & stickyOrHigh
	case RDN:
		r = 0
	case ROD:
		top := (v >> d) & 1
		sticky := T(0)
		if v&((T(1)<<d)-1) != 0 {
			sticky = 1
		}
		r = (1 - top) & sticky
	default:
		berrors.Fatalf("intrinsics.Roundoff: invalid rounding mode %d", mode)
	}
	return (v >> d) + r
}

// Aadd is the averaging add: aadd(mode, x, y) = roundoff(mode, x + y, 1),
// truncated to the operand width.
func Aadd[T Integer](mode RoundingMode, x, y T) T {
	return Roundoff(mode, x+y, 1)
}

// Asub is the averaging subtract: asub(mode, x, y) ≡ roundoff(mode, x-y, 1)
// modulo the operand width.
func Asub[T Integer](mode RoundingMode, x, y T) T {
	return Roundoff(mode, x-y, 1)
}
