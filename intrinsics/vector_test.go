package intrinsics

import "testing"

func TestVectorBinOpTailUndisturbed(t *testing.T) {
	dst := []int32{9, 9, 9, 9}
	src1 := []int32{1, 2, 3, 4}
	src2 := []int32{10, 20, 30, 40}
	VectorBinOp(0, 2, nil, TailUndisturbed, MaskUndisturbed, dst, src1, src2, func(a, b int32) int32 { return a + b })

	want := []int32{11, 22, 9, 9}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestVectorBinOpTailAgnostic(t *testing.T) {
	dst := make([]uint32, 4)
	src1 := []uint32{1, 2, 3, 4}
	src2 := []uint32{10, 20, 30, 40}
	VectorBinOp(0, 2, nil, TailAgnostic, MaskUndisturbed, dst, src1, src2, func(a, b uint32) uint32 { return a + b })

	if dst[0] != 11 || dst[1] != 22 {
		t.Fatalf("active elements wrong: %v", dst)
	}
	if dst[2] != ^uint32(0) || dst[3] != ^uint32(0) {
		t.Errorf("tail elements should be all-ones, got %v", dst)
	}
}

func TestVectorBinOpMaskInactive(t *testing.T) {
	dst := []int32{100, 100, 100, 100}
	src1 := []int32{1, 2, 3, 4}
	src2 := []int32{1, 1, 1, 1}
	mask := []bool{true, false, true, false}
	VectorBinOp(0, 4, mask, TailUndisturbed, MaskAgnostic, dst, src1, src2, func(a, b int32) int32 { return a + b })

	if dst[0] != 2 || dst[2] != 4 {
		t.Fatalf("active lanes wrong: %v", dst)
	}
	if dst[1] != -1 || dst[3] != -1 {
		t.Errorf("inactive lanes should be all-ones (-1 as int32), got %v", dst)
	}
}

func TestVectorUnaryOpRespectsVstart(t *testing.T) {
	dst := []int8{5, 5, 5, 5}
	src := []int8{1, 2, 3, 4}
	VectorUnaryOp(1, 3, nil, TailUndisturbed, MaskUndisturbed, dst, src, func(a int8) int8 { return -a })

	want := []int8{5, -2, -3, 5}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}
