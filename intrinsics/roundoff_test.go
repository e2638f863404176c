package intrinsics

import "testing"

func TestRoundoffIdentityAtShiftZero(t *testing.T) {
	for _, mode := range []RoundingMode{RNU, RNE, RDN, ROD} {
		for _, v := range []int8{0, 1, -1, 127, -128, 42} {
			if got := Roundoff(mode, v, 0); got != v {
				t.Errorf("Roundoff(%d, %d, 0) = %d, want %d", mode, v, got, v)
			}
		}
	}
}

func TestRoundoffScenarios(t *testing.T) {
	if got := Roundoff[int8](RNU, 65, 2); got != 16 {
		t.Errorf("RNU(65,2) = %d, want 16", got)
	}
	if got := Roundoff[int8](RDN, -125, 2); got != -32 {
		t.Errorf("RDN(-125,2) = %d, want -32", got)
	}
	if got := Roundoff[uint8](ROD, 125, 2); got != 31 {
		t.Errorf("ROD(125,2) = %d, want 31", got)
	}
}

func TestAaddAsubMatchRoundoffDefinition(t *testing.T) {
	x, y := int16(1000), int16(-337)
	for _, mode := range []RoundingMode{RNU, RNE, RDN, ROD} {
		if got, want := Aadd(mode, x, y), Roundoff(mode, x+y, 1); got != want {
			t.Errorf("Aadd(mode=%d) = %d, want %d", mode, got, want)
		}
		if got, want := Asub(mode, x, y), Roundoff(mode, x-y, 1); got != want {
			t.Errorf("Asub(mode=%d) = %d, want %d", mode, got, want)
		}
	}
}
