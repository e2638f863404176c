package intrinsics

import (
	"math"
	"testing"
)

func TestDivSignedByZero(t *testing.T) {
	if got := DivSigned[int32](7, 0); got != -1 {
		t.Errorf("DivSigned(7,0) = %d, want -1", got)
	}
}

func TestDivUnsignedByZero(t *testing.T) {
	if got := DivUnsigned[uint32](7, 0); got != math.MaxUint32 {
		t.Errorf("DivUnsigned(7,0) = %d, want MaxUint32", got)
	}
}

func TestDivMinByNegOne(t *testing.T) {
	const min32 = int32(math.MinInt32)
	if got := DivSigned(min32, int32(-1)); got != min32 {
		t.Errorf("DivSigned(MinInt32,-1) = %d, want %d", got, min32)
	}
	if got := RemSigned(min32, int32(-1)); got != 0 {
		t.Errorf("RemSigned(MinInt32,-1) = %d, want 0", got)
	}
}

func TestDivOrdinary(t *testing.T) {
	if got := DivSigned[int32](10, 3); got != 3 {
		t.Errorf("DivSigned(10,3) = %d, want 3", got)
	}
	if got := DivUnsigned[uint32](10, 3); got != 3 {
		t.Errorf("DivUnsigned(10,3) = %d, want 3", got)
	}
}
