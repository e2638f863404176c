package x86_64

import (
	"bytes"
	"testing"
)

func TestEmitMovRegImm64LowReg(t *testing.T) {
	a := New()
	a.EmitMovRegImm64(RAX, 0x1122334455667788)
	want := []byte{0x48, 0xb8, 0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11}
	if !bytes.Equal(a.Bytes(), want) {
		t.Fatalf("movabs rax = % x, want % x", a.Bytes(), want)
	}
}

func TestEmitMovRegImm64ExtendedReg(t *testing.T) {
	a := New()
	a.EmitMovRegImm64(R8, 1)
	want := []byte{0x49, 0xb8, 1, 0, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(a.Bytes(), want) {
		t.Fatalf("movabs r8 = % x, want % x", a.Bytes(), want)
	}
}

func TestEmitMovRRExtendedRegs(t *testing.T) {
	a := New()
	a.EmitMovRR(R8, RAX) // mov r8, rax: dst is the ModR/M r/m field, so REX.B is set
	want := []byte{0x49, 0x89, 0xc0}
	if !bytes.Equal(a.Bytes(), want) {
		t.Fatalf("mov r8, rax = % x, want % x", a.Bytes(), want)
	}
}

func TestEmitAddRIImm8Form(t *testing.T) {
	a := New()
	a.EmitAddRI(RCX, 5)
	want := []byte{0x48, 0x83, 0xc1, 0x05}
	if !bytes.Equal(a.Bytes(), want) {
		t.Fatalf("add rcx, 5 = % x, want % x", a.Bytes(), want)
	}
}

func TestEmitAddRIImm32FormOnRax(t *testing.T) {
	a := New()
	a.EmitAddRI(RAX, 1000)
	want := []byte{0x48, 0x05, 0xe8, 0x03, 0x00, 0x00}
	if !bytes.Equal(a.Bytes(), want) {
		t.Fatalf("add rax, 1000 = % x, want % x", a.Bytes(), want)
	}
}

func TestEmitLoadMemDisp0NonRbpNonRsp(t *testing.T) {
	a := New()
	a.EmitLoadMem(RCX, RDX, 0)
	want := []byte{0x48, 0x8b, 0x0a}
	if !bytes.Equal(a.Bytes(), want) {
		t.Fatalf("mov rcx, [rdx] = % x, want % x", a.Bytes(), want)
	}
}

func TestEmitLoadMemRspBaseNeedsSIB(t *testing.T) {
	a := New()
	a.EmitLoadMem(RAX, RSP, 0)
	want := []byte{0x48, 0x8b, 0x04, 0x24}
	if !bytes.Equal(a.Bytes(), want) {
		t.Fatalf("mov rax, [rsp] = % x, want % x", a.Bytes(), want)
	}
}

func TestEmitStoreMemDisp8(t *testing.T) {
	a := New()
	a.EmitStoreMem(RBP, -8, RAX)
	want := []byte{0x48, 0x89, 0x45, 0xf8}
	if !bytes.Equal(a.Bytes(), want) {
		t.Fatalf("mov [rbp-8], rax = % x, want % x", a.Bytes(), want)
	}
}

func TestResolveJumpsForwardBranch(t *testing.T) {
	a := New()
	l := a.NewLabel()
	a.EmitJmpRel32(l) // 5 bytes: e9 + 4-byte rel32 placeholder
	a.EmitPush(RAX)   // 1 byte, lands at offset 5
	a.Bind(l)
	a.ResolveJumps()

	code := a.Bytes()
	if code[0] != 0xe9 {
		t.Fatalf("expected jmp opcode 0xe9, got %#x", code[0])
	}
	// jmp is at offset 0, 5 bytes long; label bound at offset 6 (after push).
	rel := int32(code[1]) | int32(code[2])<<8 | int32(code[3])<<16 | int32(code[4])<<24
	wantRel := int32(6 - 5)
	if rel != wantRel {
		t.Fatalf("rel32 = %d, want %d", rel, wantRel)
	}
}

func TestResolveJumpsBackwardBranch(t *testing.T) {
	a := New()
	l := a.NewLabel()
	a.Bind(l)          // label at offset 0
	a.EmitPush(RAX)    // 1 byte, jmp starts at offset 1
	a.EmitJmpRel32(l)
	a.ResolveJumps()

	code := a.Bytes()
	jmpOpcodeOffset := 1
	if code[jmpOpcodeOffset] != 0xe9 {
		t.Fatalf("expected jmp opcode at offset 1, got %#x", code[jmpOpcodeOffset])
	}
	fixupOffset := jmpOpcodeOffset + 1
	rel := int32(code[fixupOffset]) | int32(code[fixupOffset+1])<<8 |
		int32(code[fixupOffset+2])<<16 | int32(code[fixupOffset+3])<<24
	wantRel := int32(0 - (fixupOffset + 4))
	if rel != wantRel {
		t.Fatalf("rel32 = %d, want %d", rel, wantRel)
	}
}

func TestEmitJccRel32Opcode(t *testing.T) {
	a := New()
	l := a.NewLabel()
	a.EmitJccRel32(CondE, l)
	a.Bind(l)
	a.ResolveJumps()
	code := a.Bytes()
	if code[0] != 0x0f || code[1] != byte(0x80|CondE) {
		t.Fatalf("jcc opcode = % x, want 0f 84", code[:2])
	}
}
