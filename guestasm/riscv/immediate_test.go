package riscv

import "testing"

func TestMakeIImmediatePositive(t *testing.T) {
	im, ok := MakeIImmediate(5)
	if !ok {
		t.Fatalf("I-immediate(5) should fit")
	}
	want := RawImmediate(5 << 20)
	if im.Raw() != want {
		t.Fatalf("I-immediate(5) = %#x, want %#x", im.Raw(), want)
	}
}

func TestMakeIImmediateNegative(t *testing.T) {
	im, ok := MakeIImmediate(-1)
	if !ok {
		t.Fatalf("I-immediate(-1) should fit")
	}
	want := RawImmediate(uint32(int32(-1) << 20))
	if im.Raw() != want {
		t.Fatalf("I-immediate(-1) = %#x, want %#x", im.Raw(), want)
	}
}

func TestMakeIImmediateOutOfRangeReturnsFalse(t *testing.T) {
	if _, ok := MakeIImmediate(2048); ok {
		t.Fatalf("I-immediate(2048) should not fit (max positive is 2047)")
	}
	if _, ok := MakeIImmediate(-2049); ok {
		t.Fatalf("I-immediate(-2049) should not fit (min is -2048)")
	}
}

func TestIAcceptableValueRejectsOutOfRange(t *testing.T) {
	if iAcceptableValue(2048) {
		t.Fatalf("2048 should not fit I-immediate (max positive is 2047)")
	}
	if !iAcceptableValue(2047) {
		t.Fatalf("2047 should fit I-immediate")
	}
	if !iAcceptableValue(-2048) {
		t.Fatalf("-2048 should fit I-immediate")
	}
	if iAcceptableValue(-2049) {
		t.Fatalf("-2049 should not fit I-immediate")
	}
}

func TestIImmediateDecodeRoundTrips(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 2047, -2048, 42, -42} {
		im, ok := MakeIImmediate(v)
		if !ok {
			t.Fatalf("MakeIImmediate(%d) should fit", v)
		}
		if got := im.Decode(); got != v {
			t.Fatalf("I-immediate(%d).Decode() = %d, want %d", v, got, v)
		}
	}
}

func TestBAcceptableValueRejectsOdd(t *testing.T) {
	if bAcceptableValue(3) {
		t.Fatalf("odd value 3 should not fit B-immediate")
	}
	if !bAcceptableValue(4094) {
		t.Fatalf("4094 should fit B-immediate")
	}
	if !bAcceptableValue(-4096) {
		t.Fatalf("-4096 should fit B-immediate")
	}
}

func TestMakeBImmediateOddValueReturnsFalse(t *testing.T) {
	if _, ok := MakeBImmediate(3); ok {
		t.Fatalf("B-immediate(3) is odd and should not fit")
	}
}

func TestMakeBImmediateBitScatter(t *testing.T) {
	// -4096 (all immediate bits are the sign pattern) should scatter to
	// 0x8000_0000 only (bit31=sign, all others zero since every
	// scattered source bit of -4096 below bit12 is zero).
	im, ok := MakeBImmediate(-4096)
	if !ok {
		t.Fatalf("B-immediate(-4096) should fit")
	}
	want := RawImmediate(0x80000000)
	if im.Raw() != want {
		t.Fatalf("B-immediate(-4096) = %#x, want %#x", im.Raw(), want)
	}
}

func TestBImmediateDecodeRoundTrips(t *testing.T) {
	for _, v := range []int64{0, 4094, -4096, -2, 2, 100, -100} {
		im, ok := MakeBImmediate(v)
		if !ok {
			t.Fatalf("MakeBImmediate(%d) should fit", v)
		}
		if got := im.Decode(); got != v {
			t.Fatalf("B-immediate(%d).Decode() = %d, want %d", v, got, v)
		}
	}
}

func TestJImmediateDecodeRoundTrips(t *testing.T) {
	for _, v := range []int64{0, 2, -2, 1048574, -1048576, 1000, -1000} {
		im, ok := MakeJImmediate(v)
		if !ok {
			t.Fatalf("MakeJImmediate(%d) should fit", v)
		}
		if got := im.Decode(); got != v {
			t.Fatalf("J-immediate(%d).Decode() = %d, want %d", v, got, v)
		}
	}
}

func TestMakeUImmediateIdentity(t *testing.T) {
	im, ok := MakeUImmediate(0x12345000)
	if !ok {
		t.Fatalf("U-immediate(0x12345000) should fit")
	}
	if im.Raw() != RawImmediate(0x12345000) {
		t.Fatalf("U-immediate(0x12345000) = %#x, want 0x12345000", im.Raw())
	}
}

func TestUAcceptableValueRequiresPageAlignment(t *testing.T) {
	if uAcceptableValue(0x1000) != true {
		t.Fatalf("0x1000 (multiple of 4096) should fit U-immediate")
	}
	if uAcceptableValue(0x1001) {
		t.Fatalf("0x1001 is not a multiple of 4096 and should not fit U-immediate")
	}
}

func TestMakeCsrImmediateRange(t *testing.T) {
	im, ok := MakeCsrImmediate(31)
	if !ok {
		t.Fatalf("CSR-immediate(31) should fit")
	}
	want := RawImmediate(31 << 15)
	if im.Raw() != want {
		t.Fatalf("CSR-immediate(31) = %#x, want %#x", im.Raw(), want)
	}
	if got := im.Decode(); got != 31 {
		t.Fatalf("CSR-immediate(31).Decode() = %d, want 31", got)
	}
}

func TestMakeCsrImmediateOutOfRangeReturnsFalse(t *testing.T) {
	if _, ok := MakeCsrImmediate(32); ok {
		t.Fatalf("CSR-immediate(32) should not fit a 5-bit field")
	}
	if _, ok := MakeCsrImmediate(-1); ok {
		t.Fatalf("CSR-immediate(-1) should not fit an unsigned field")
	}
}

func TestCsrAcceptableValueRejectsOutOfRange(t *testing.T) {
	if csrAcceptableValue(32) {
		t.Fatalf("32 should not fit a 5-bit CSR immediate")
	}
	if csrAcceptableValue(-1) {
		t.Fatalf("-1 should not fit an unsigned CSR immediate")
	}
}

func TestMakeShift5ImmediateRange(t *testing.T) {
	im, ok := MakeShift5Immediate(31)
	if !ok {
		t.Fatalf("shift5(31) should fit")
	}
	want := RawImmediate(31 << 20)
	if im.Raw() != want {
		t.Fatalf("shift5(31) = %#x, want %#x", im.Raw(), want)
	}
	if _, ok := MakeShift5Immediate(32); ok {
		t.Fatalf("shift5(32) should not fit a 5-bit shift amount")
	}
}

func TestMakeShift6ImmediateAllowsValuesAbove31(t *testing.T) {
	im, ok := MakeShift6Immediate(63)
	if !ok {
		t.Fatalf("shift6(63) should fit")
	}
	want := RawImmediate(63 << 20)
	if im.Raw() != want {
		t.Fatalf("shift6(63) = %#x, want %#x", im.Raw(), want)
	}
	if _, ok := MakeShift6Immediate(64); ok {
		t.Fatalf("shift6(64) should not fit a 6-bit shift amount")
	}
}

func TestMakeSImmediateMatchesIImmediateRange(t *testing.T) {
	// S-immediate accepts the same values as I-immediate, scattered
	// into bits 31:25 and 11:7 instead of 31:20.
	im, ok := MakeSImmediate(-1)
	if !ok {
		t.Fatalf("S-immediate(-1) should fit")
	}
	want := RawImmediate(uint32(int32(-1)) & 0xFE000F80)
	if im.Raw() != want {
		t.Fatalf("S-immediate(-1) = %#x, want %#x", im.Raw(), want)
	}
}

func TestSImmediateDecodeRoundTrips(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 2047, -2048, 42, -42} {
		im, ok := MakeSImmediate(v)
		if !ok {
			t.Fatalf("MakeSImmediate(%d) should fit", v)
		}
		if got := im.Decode(); got != v {
			t.Fatalf("S-immediate(%d).Decode() = %d, want %d", v, got, v)
		}
	}
}

func TestIImmediateSImmediateCrossConversion(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 2047, -2048, 42, -42} {
		i, ok := MakeIImmediate(v)
		if !ok {
			t.Fatalf("MakeIImmediate(%d) should fit", v)
		}
		s := i.ToSImmediate()
		want, ok := MakeSImmediate(v)
		if !ok {
			t.Fatalf("MakeSImmediate(%d) should fit", v)
		}
		if s != want {
			t.Fatalf("IImmediate(%d).ToSImmediate() = %+v, want %+v", v, s, want)
		}
		back := s.ToIImmediate()
		if back != i {
			t.Fatalf("SImmediate(%d).ToIImmediate() = %+v, want %+v", v, back, i)
		}
	}
}

func TestConditionFunct3AndAlwaysNever(t *testing.T) {
	if ConditionEqual.Funct3() != 0 {
		t.Fatalf("ConditionEqual.Funct3() = %d, want 0", ConditionEqual.Funct3())
	}
	if !ConditionAlways.IsAlways() || !ConditionNever.IsNever() {
		t.Fatalf("IsAlways/IsNever predicates wrong")
	}
}
