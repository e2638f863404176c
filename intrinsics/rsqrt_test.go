package intrinsics

import (
	"math"
	"testing"
)

func TestRSqrtEstimateSpecialCases(t *testing.T) {
	if got := RSqrtEstimate32(0); !math.IsInf(float64(got), 1) {
		t.Errorf("RSqrtEstimate32(+0) = %v, want +Inf", got)
	}
	negZero := math.Float32frombits(1 << 31)
	if got := RSqrtEstimate32(negZero); !math.IsInf(float64(got), -1) {
		t.Errorf("RSqrtEstimate32(-0) = %v, want -Inf", got)
	}
	if got := RSqrtEstimate32(-2.1); !math.IsNaN(float64(got)) {
		t.Errorf("RSqrtEstimate32(-2.1) = %v, want NaN", got)
	}
}

func TestRSqrtEstimateApproximatesReciprocalSqrt(t *testing.T) {
	got := RSqrtEstimate64(4.0)
	want := 0.5
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("RSqrtEstimate64(4.0) = %v, want ~%v", got, want)
	}
}
