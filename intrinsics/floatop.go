package intrinsics

import (
	"math/big"

	"berberis/berrors"
)

// FPRoundingMode names a host FPU rounding mode. Four of the five map
// directly onto the target CPU's control register; the fifth,
// FPRoundNearestMaxMagnitude (round to nearest, ties away from zero),
// has no native support on either host ISA Berberis targets and is
// always emulated — see ExecuteFloatOp.
type FPRoundingMode uint8

const (
	FPRoundNearestEven          FPRoundingMode = iota // RNE, IEEE 754 default
	FPRoundTowardZero                                 // RTZ
	FPRoundDown                                       // RDN, toward -Inf
	FPRoundUp                                         // RUP, toward +Inf
	FPRoundNearestMaxMagnitude                        // RMM, ties away from zero
)

func (m FPRoundingMode) bigMode() big.RoundingMode {
	switch m {
	case FPRoundNearestEven:
		return big.ToNearestEven
	case FPRoundTowardZero:
		return big.ToZero
	case FPRoundDown:
		return big.ToNegativeInf
	case FPRoundUp:
		return big.ToPositiveInf
	case FPRoundNearestMaxMagnitude:
		return big.ToNearestAway
	default:
		berrors.Fatalf("intrinsics: invalid FPRoundingMode %d", m)
		return big.ToNearestEven
	}
}

// FloatWidth is the target precision an ExecuteFloatOp result is rounded
// to: the guest single- or double-precision format.
type FloatWidth int

const (
	Width32 FloatWidth = 32
	Width64 FloatWidth = 64
)

func (w FloatWidth) mantissaBits() uint {
	if w == Width32 {
		return 24
	}
	return 53
}

// ExecuteFloatOp calls compute (which must itself be written in terms of
// ordinary float64 arithmetic, using Go's fixed round-to-nearest-even) and
// returns its result rounded to width under the requested mode.
//
// If requested equals current — the rounding mode the guest CPU state
// already has installed — compute's own (RNE) rounding already matches
// the desired outcome for the common case and is returned unmodified,
// mirroring the source's fast path of calling op directly without
// touching any control register.
//
// Otherwise compute is treated as having produced a wider-than-target
// intermediate (float64 has 53 mantissa bits, 29 more than float32), and
// that intermediate is re-rounded to width's precision under requested's
// rounding rule using math/big, which natively supports all five IEEE
// rounding directions including ties-away-from-zero — the one mode
// neither host ISA's FPU exposes, so this path is not a fast path but a
// from-scratch redo of the final rounding step.
func ExecuteFloatOp(requested, current FPRoundingMode, width FloatWidth, compute func() float64) float64 {
	exact := compute()
	if requested == current {
		return exact
	}
	bf := new(big.Float).SetPrec(width.mantissaBits()).SetMode(requested.bigMode())
	bf.SetFloat64(exact)
	rounded, _ := bf.Float64()
	return rounded
}
