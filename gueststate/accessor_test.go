package gueststate

import "testing"

func TestAccessorHeaderRoundTrip(t *testing.T) {
	buf := make([]byte, accessorHeaderSize)
	writeAccessorHeader(buf, HostArchX86_64, ISARiscv64, 0xDEADBEEF, 4096)

	sig, hostArch, guestArch, dataPtr, dataSize := ReadAccessorHeader(buf)
	if sig != accessorHeaderSignature {
		t.Errorf("signature = %#x, want %#x", sig, accessorHeaderSignature)
	}
	if hostArch != HostArchX86_64 {
		t.Errorf("hostArch = %v, want x86-64", hostArch)
	}
	if guestArch != uint32(accessorGuestRiscv64) {
		t.Errorf("guestArch = %v, want riscv64", guestArch)
	}
	if dataPtr != 0xDEADBEEF {
		t.Errorf("dataPointer = %#x, want 0xdeadbeef", dataPtr)
	}
	if dataSize != 4096 {
		t.Errorf("dataSize = %d, want 4096", dataSize)
	}
}

func TestAccessorHeaderFieldOffsets(t *testing.T) {
	buf := make([]byte, accessorHeaderSize)
	writeAccessorHeader(buf, HostArchX86_64, ISAArm64, 1, 2)

	// Bit-exact per spec: data-pointer at byte offset 12, data-size at 20.
	if buf[12] != 1 {
		t.Errorf("byte 12 = %d, want 1 (low byte of data-pointer)", buf[12])
	}
	if buf[20] != 2 {
		t.Errorf("byte 20 = %d, want 2 (low byte of data-size)", buf[20])
	}
}
