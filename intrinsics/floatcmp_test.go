package intrinsics

import (
	"math"
	"testing"
)

func TestMinMaxNaNPolicy(t *testing.T) {
	nan := float32(math.NaN())
	if got := Min32(nan, 3.0); got != 3.0 {
		t.Errorf("Min32(NaN, 3.0) = %v, want 3.0", got)
	}
	if got := Min32(3.0, nan); got != 3.0 {
		t.Errorf("Min32(3.0, NaN) = %v, want 3.0", got)
	}
	both := Min32(nan, nan)
	if !math.IsNaN(float64(both)) {
		t.Errorf("Min32(NaN, NaN) = %v, want NaN", both)
	}
	if math.Float32bits(both) != canonicalQuietNaN32Bits {
		t.Errorf("Min32(NaN, NaN) bits = %#x, want canonical %#x", math.Float32bits(both), uint32(canonicalQuietNaN32Bits))
	}
}

func TestMinMaxSignedZero(t *testing.T) {
	posZero := float32(0.0)
	negZero := math.Float32frombits(1 << 31)

	if got := Min32(posZero, negZero); !math.Signbit(float64(got)) {
		t.Errorf("Min32(+0,-0) = %v, want -0", got)
	}
	if got := Max32(posZero, negZero); math.Signbit(float64(got)) {
		t.Errorf("Max32(+0,-0) = %v, want +0", got)
	}
}

func TestMinMax64(t *testing.T) {
	nan := math.NaN()
	if got := Max64(nan, 1.5); got != 1.5 {
		t.Errorf("Max64(NaN, 1.5) = %v, want 1.5", got)
	}
	if got := Max64(1.5, 2.5); got != 2.5 {
		t.Errorf("Max64(1.5, 2.5) = %v, want 2.5", got)
	}
}
