package intrinsics

import "math"

// canonicalQuietNaN32/64 are the canonical quiet-NaN bit patterns used
// whenever both operands of Max/Min are NaN, per the guest ISA's
// NaN-boxing rules (top mantissa bit set, all exponent bits set).
const (
	canonicalQuietNaN32Bits = 0x7FC0_0000
	canonicalQuietNaN64Bits = 0x7FF8_0000_0000_0000
)

// Max32 implements the RISC-V/ARM FP max semantics: if both inputs are
// NaN, return the canonical quiet NaN; if exactly one is NaN, return the
// other; if both are zero with opposite sign, return +0; otherwise the
// larger of the two.
func Max32(a, b float32) float32 {
	aNaN, bNaN := math.IsNaN(float64(a)), math.IsNaN(float64(b))
	switch {
	case aNaN && bNaN:
		return math.Float32frombits(canonicalQuietNaN32Bits)
	case aNaN:
		return b
	case bNaN:
		return a
	}
	if isZero32(a) && isZero32(b) && signbit32(a) != signbit32(b) {
		return 0 // +0.0
	}
	if a > b {
		return a
	}
	return b
}

// Min32 is Max32's counterpart: both-zero-opposite-sign returns -0.
func Min32(a, b float32) float32 {
	aNaN, bNaN := math.IsNaN(float64(a)), math.IsNaN(float64(b))
	switch {
	case aNaN && bNaN:
		return math.Float32frombits(canonicalQuietNaN32Bits)
	case aNaN:
		return b
	case bNaN:
		return a
	}
	if isZero32(a) && isZero32(b) && signbit32(a) != signbit32(b) {
		return math.Float32frombits(1 << 31) // -0.0
	}
	if a < b {
		return a
	}
	return b
}

// Max64 is Max32 at double precision.
func Max64(a, b float64) float64 {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return math.Float64frombits(canonicalQuietNaN64Bits)
	case aNaN:
		return b
	case bNaN:
		return a
	}
	if a == 0 && b == 0 && math.Signbit(a) != math.Signbit(b) {
		return 0
	}
	if a > b {
		return a
	}
	return b
}

// Min64 is Min32 at double precision.
func Min64(a, b float64) float64 {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return math.Float64frombits(canonicalQuietNaN64Bits)
	case aNaN:
		return b
	case bNaN:
		return a
	}
	if a == 0 && b == 0 && math.Signbit(a) != math.Signbit(b) {
		return math.Float64frombits(1 << 63)
	}
	if a < b {
		return a
	}
	return b
}

func isZero32(f float32) bool  { return f == 0 }
func signbit32(f float32) bool { return math.Float32bits(f)>>31 != 0 }
