// Assembler emits RV64IM guest instruction words from the pre-scattered
// immediates in immediate.go, following the R/I/S/B/U/J format helpers
// (EmitRTypeInstruction/EmitITypeInstruction/EmitSTypeInstruction/
// EmitBTypeInstruction/EmitUTypeInstruction/EmitJTypeInstruction) of
// original_source/assembler/include/berberis/assembler/riscv.h's
// Assembler<> template. The per-mnemonic opcode/funct3/funct7 constants
// below are the public RV64I/M base-ISA encodings (the header's own
// per-mnemonic Emit methods live in a generated file this tree does not
// carry), not transcribed from that header directly.
package riscv

import "berberis/berrors"

// Reg names one of the 32 RISC-V integer registers by its 5-bit
// encoding. The ABI aliases mirror the calling-convention names used in
// disassembly and in the original header's x0-x31 constants.
type Reg int

const (
	X0 Reg = iota
	X1
	X2
	X3
	X4
	X5
	X6
	X7
	X8
	X9
	X10
	X11
	X12
	X13
	X14
	X15
	X16
	X17
	X18
	X19
	X20
	X21
	X22
	X23
	X24
	X25
	X26
	X27
	X28
	X29
	X30
	X31
)

const (
	Zero = X0
	RA   = X1
	SP   = X2
	GP   = X3
	TP   = X4
	T0   = X5
	T1   = X6
	T2   = X7
	S0   = X8
	FP   = X8
	S1   = X9
	A0   = X10
	A1   = X11
	A2   = X12
	A3   = X13
	A4   = X14
	A5   = X15
	A6   = X16
	A7   = X17
	S2   = X18
	S3   = X19
	S4   = X20
	S5   = X21
	S6   = X22
	S7   = X23
	S8   = X24
	S9   = X25
	S10  = X26
	S11  = X27
	T3   = X28
	T4   = X29
	T5   = X30
	T6   = X31
)

// Label is a not-yet-placed branch target within the function currently
// being assembled. Bind fixes its position; every branch or jump
// recorded against it is patched by ResolveJumps.
type Label struct {
	bound bool
	pos   int
}

type fixupKind int

const (
	fixupBranch fixupKind = iota // B-type, 13-bit byte offset
	fixupJal                     // J-type, 21-bit byte offset
)

type fixup struct {
	codeOffset int // offset of the instruction word being patched
	label      *Label
	kind       fixupKind
}

// Assembler accumulates the guest code for one trampoline stub or
// translated block. It is not safe for concurrent use.
type Assembler struct {
	code   []byte
	fixups []fixup
}

func New() *Assembler { return &Assembler{} }

// Bytes returns the code emitted so far. Valid only after ResolveJumps.
func (a *Assembler) Bytes() []byte { return a.code }

// Pos returns the current emission cursor, the byte offset a Label
// bound here will resolve to.
func (a *Assembler) Pos() int { return len(a.code) }

func (a *Assembler) NewLabel() *Label { return &Label{} }

// Bind fixes label's position to the current cursor. Binding the same
// label twice is a programming error.
func (a *Assembler) Bind(label *Label) {
	berrors.CheckFatal(!label.bound, "riscv: label already bound")
	label.bound = true
	label.pos = len(a.code)
}

func (a *Assembler) emitWord(inst uint32) {
	a.code = append(a.code, byte(inst), byte(inst>>8), byte(inst>>16), byte(inst>>24))
}

func getWord(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func putWord(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

// === Format helpers ===
// Each takes the opcode/funct3/funct7 bits fixed by the mnemonic and
// the operand fields, and ORs in the caller's already-scattered
// immediate, mirroring the header's EmitXTypeInstruction helpers.

func rType(opcode, funct3, funct7 uint32, rd, rs1, rs2 Reg) uint32 {
	return opcode | (uint32(rd&0x1f) << 7) | (funct3 << 12) |
		(uint32(rs1&0x1f) << 15) | (uint32(rs2&0x1f) << 20) | (funct7 << 25)
}

func iType(opcode, funct3 uint32, rd, rs1 Reg, imm IImmediate) uint32 {
	return opcode | (uint32(rd&0x1f) << 7) | (funct3 << 12) | (uint32(rs1&0x1f) << 15) | uint32(imm.Raw())
}

func sType(opcode, funct3 uint32, rs1, rs2 Reg, imm SImmediate) uint32 {
	return opcode | (funct3 << 12) | (uint32(rs1&0x1f) << 15) | (uint32(rs2&0x1f) << 20) | uint32(imm.Raw())
}

func bType(opcode uint32, funct3 uint32, rs1, rs2 Reg, imm BImmediate) uint32 {
	return opcode | (funct3 << 12) | (uint32(rs1&0x1f) << 15) | (uint32(rs2&0x1f) << 20) | uint32(imm.Raw())
}

func uType(opcode uint32, rd Reg, imm UImmediate) uint32 {
	return opcode | (uint32(rd&0x1f) << 7) | uint32(imm.Raw())
}

func jType(opcode uint32, rd Reg, imm JImmediate) uint32 {
	return opcode | (uint32(rd&0x1f) << 7) | uint32(imm.Raw())
}

// === R-type: register-register ALU and M-extension ===

const (
	opOp  = 0x33
	opOp32 = 0x3b
)

func (a *Assembler) EmitAdd(rd, rs1, rs2 Reg)  { a.emitWord(rType(opOp, 0x0, 0x00, rd, rs1, rs2)) }
func (a *Assembler) EmitSub(rd, rs1, rs2 Reg)  { a.emitWord(rType(opOp, 0x0, 0x20, rd, rs1, rs2)) }
func (a *Assembler) EmitSll(rd, rs1, rs2 Reg)  { a.emitWord(rType(opOp, 0x1, 0x00, rd, rs1, rs2)) }
func (a *Assembler) EmitSlt(rd, rs1, rs2 Reg)  { a.emitWord(rType(opOp, 0x2, 0x00, rd, rs1, rs2)) }
func (a *Assembler) EmitSltu(rd, rs1, rs2 Reg) { a.emitWord(rType(opOp, 0x3, 0x00, rd, rs1, rs2)) }
func (a *Assembler) EmitXor(rd, rs1, rs2 Reg)  { a.emitWord(rType(opOp, 0x4, 0x00, rd, rs1, rs2)) }
func (a *Assembler) EmitSrl(rd, rs1, rs2 Reg)  { a.emitWord(rType(opOp, 0x5, 0x00, rd, rs1, rs2)) }
func (a *Assembler) EmitSra(rd, rs1, rs2 Reg)  { a.emitWord(rType(opOp, 0x5, 0x20, rd, rs1, rs2)) }
func (a *Assembler) EmitOr(rd, rs1, rs2 Reg)   { a.emitWord(rType(opOp, 0x6, 0x00, rd, rs1, rs2)) }
func (a *Assembler) EmitAnd(rd, rs1, rs2 Reg)  { a.emitWord(rType(opOp, 0x7, 0x00, rd, rs1, rs2)) }

func (a *Assembler) EmitAddw(rd, rs1, rs2 Reg) { a.emitWord(rType(opOp32, 0x0, 0x00, rd, rs1, rs2)) }
func (a *Assembler) EmitSubw(rd, rs1, rs2 Reg) { a.emitWord(rType(opOp32, 0x0, 0x20, rd, rs1, rs2)) }
func (a *Assembler) EmitSllw(rd, rs1, rs2 Reg) { a.emitWord(rType(opOp32, 0x1, 0x00, rd, rs1, rs2)) }
func (a *Assembler) EmitSrlw(rd, rs1, rs2 Reg) { a.emitWord(rType(opOp32, 0x5, 0x00, rd, rs1, rs2)) }
func (a *Assembler) EmitSraw(rd, rs1, rs2 Reg) { a.emitWord(rType(opOp32, 0x5, 0x20, rd, rs1, rs2)) }

const mulFunct7 = 0x01

func (a *Assembler) EmitMul(rd, rs1, rs2 Reg)    { a.emitWord(rType(opOp, 0x0, mulFunct7, rd, rs1, rs2)) }
func (a *Assembler) EmitMulh(rd, rs1, rs2 Reg)   { a.emitWord(rType(opOp, 0x1, mulFunct7, rd, rs1, rs2)) }
func (a *Assembler) EmitMulhsu(rd, rs1, rs2 Reg) { a.emitWord(rType(opOp, 0x2, mulFunct7, rd, rs1, rs2)) }
func (a *Assembler) EmitMulhu(rd, rs1, rs2 Reg)  { a.emitWord(rType(opOp, 0x3, mulFunct7, rd, rs1, rs2)) }
func (a *Assembler) EmitDiv(rd, rs1, rs2 Reg)    { a.emitWord(rType(opOp, 0x4, mulFunct7, rd, rs1, rs2)) }
func (a *Assembler) EmitDivu(rd, rs1, rs2 Reg)   { a.emitWord(rType(opOp, 0x5, mulFunct7, rd, rs1, rs2)) }
func (a *Assembler) EmitRem(rd, rs1, rs2 Reg)    { a.emitWord(rType(opOp, 0x6, mulFunct7, rd, rs1, rs2)) }
func (a *Assembler) EmitRemu(rd, rs1, rs2 Reg)   { a.emitWord(rType(opOp, 0x7, mulFunct7, rd, rs1, rs2)) }

func (a *Assembler) EmitMulw(rd, rs1, rs2 Reg)  { a.emitWord(rType(opOp32, 0x0, mulFunct7, rd, rs1, rs2)) }
func (a *Assembler) EmitDivw(rd, rs1, rs2 Reg)  { a.emitWord(rType(opOp32, 0x4, mulFunct7, rd, rs1, rs2)) }
func (a *Assembler) EmitDivuw(rd, rs1, rs2 Reg) { a.emitWord(rType(opOp32, 0x5, mulFunct7, rd, rs1, rs2)) }
func (a *Assembler) EmitRemw(rd, rs1, rs2 Reg)  { a.emitWord(rType(opOp32, 0x6, mulFunct7, rd, rs1, rs2)) }
func (a *Assembler) EmitRemuw(rd, rs1, rs2 Reg) { a.emitWord(rType(opOp32, 0x7, mulFunct7, rd, rs1, rs2)) }

// === I-type: immediate ALU, shifts, loads, JALR ===

const (
	opOpImm   = 0x13
	opOpImm32 = 0x1b
	opLoad    = 0x03
	opJalr    = 0x67
	opSystem  = 0x73
)

func (a *Assembler) EmitAddi(rd, rs1 Reg, imm IImmediate) { a.emitWord(iType(opOpImm, 0x0, rd, rs1, imm)) }
func (a *Assembler) EmitSlti(rd, rs1 Reg, imm IImmediate) { a.emitWord(iType(opOpImm, 0x2, rd, rs1, imm)) }
func (a *Assembler) EmitSltiu(rd, rs1 Reg, imm IImmediate) {
	a.emitWord(iType(opOpImm, 0x3, rd, rs1, imm))
}
func (a *Assembler) EmitXori(rd, rs1 Reg, imm IImmediate) { a.emitWord(iType(opOpImm, 0x4, rd, rs1, imm)) }
func (a *Assembler) EmitOri(rd, rs1 Reg, imm IImmediate)  { a.emitWord(iType(opOpImm, 0x6, rd, rs1, imm)) }
func (a *Assembler) EmitAndi(rd, rs1 Reg, imm IImmediate) { a.emitWord(iType(opOpImm, 0x7, rd, rs1, imm)) }

// EmitSlli/Srli/Srai take a Shift6Immediate: RV64's shift-amount field
// is 6 bits (shamt[5:0] at bits 25:20), with bit 30 selecting arithmetic
// vs logical right shift the way funct7's top bit does for R-type.
func (a *Assembler) EmitSlli(rd, rs1 Reg, shamt Shift6Immediate) {
	a.emitWord(opOpImm | (uint32(rd&0x1f) << 7) | (0x1 << 12) | (uint32(rs1&0x1f) << 15) | uint32(shamt.Raw()))
}
func (a *Assembler) EmitSrli(rd, rs1 Reg, shamt Shift6Immediate) {
	a.emitWord(opOpImm | (uint32(rd&0x1f) << 7) | (0x5 << 12) | (uint32(rs1&0x1f) << 15) | uint32(shamt.Raw()))
}
func (a *Assembler) EmitSrai(rd, rs1 Reg, shamt Shift6Immediate) {
	a.emitWord(opOpImm | (uint32(rd&0x1f) << 7) | (0x5 << 12) | (uint32(rs1&0x1f) << 15) | uint32(shamt.Raw()) | (1 << 30))
}

func (a *Assembler) EmitAddiw(rd, rs1 Reg, imm IImmediate) {
	a.emitWord(iType(opOpImm32, 0x0, rd, rs1, imm))
}

// EmitSlliw/Srliw/Sraiw take a Shift5Immediate: the W-suffixed shifts
// operate on the low 32 bits, so their shift amount is only 5 bits wide
// (shamt[4:0] at bits 24:20, bit 25 always zero).
func (a *Assembler) EmitSlliw(rd, rs1 Reg, shamt Shift5Immediate) {
	a.emitWord(opOpImm32 | (uint32(rd&0x1f) << 7) | (0x1 << 12) | (uint32(rs1&0x1f) << 15) | uint32(shamt.Raw()))
}
func (a *Assembler) EmitSrliw(rd, rs1 Reg, shamt Shift5Immediate) {
	a.emitWord(opOpImm32 | (uint32(rd&0x1f) << 7) | (0x5 << 12) | (uint32(rs1&0x1f) << 15) | uint32(shamt.Raw()))
}
func (a *Assembler) EmitSraiw(rd, rs1 Reg, shamt Shift5Immediate) {
	a.emitWord(opOpImm32 | (uint32(rd&0x1f) << 7) | (0x5 << 12) | (uint32(rs1&0x1f) << 15) | uint32(shamt.Raw()) | (1 << 30))
}

func (a *Assembler) EmitLb(rd, rs1 Reg, imm IImmediate)  { a.emitWord(iType(opLoad, 0x0, rd, rs1, imm)) }
func (a *Assembler) EmitLh(rd, rs1 Reg, imm IImmediate)  { a.emitWord(iType(opLoad, 0x1, rd, rs1, imm)) }
func (a *Assembler) EmitLw(rd, rs1 Reg, imm IImmediate)  { a.emitWord(iType(opLoad, 0x2, rd, rs1, imm)) }
func (a *Assembler) EmitLd(rd, rs1 Reg, imm IImmediate)  { a.emitWord(iType(opLoad, 0x3, rd, rs1, imm)) }
func (a *Assembler) EmitLbu(rd, rs1 Reg, imm IImmediate) { a.emitWord(iType(opLoad, 0x4, rd, rs1, imm)) }
func (a *Assembler) EmitLhu(rd, rs1 Reg, imm IImmediate) { a.emitWord(iType(opLoad, 0x5, rd, rs1, imm)) }
func (a *Assembler) EmitLwu(rd, rs1 Reg, imm IImmediate) { a.emitWord(iType(opLoad, 0x6, rd, rs1, imm)) }

// EmitJalr emits JALR rd, rs1, imm (indirect jump-and-link).
func (a *Assembler) EmitJalr(rd, rs1 Reg, imm IImmediate) { a.emitWord(iType(opJalr, 0x0, rd, rs1, imm)) }

// EmitEcall emits the ECALL environment-call trap.
func (a *Assembler) EmitEcall() { a.emitWord(opSystem) }

// EmitEbreak emits the EBREAK debugger-trap instruction: the guest
// instruction a trampoline stub is made of, so that running it from
// guest context always traps back into the runtime.
func (a *Assembler) EmitEbreak() { a.emitWord(opSystem | (1 << 20)) }

func (a *Assembler) EmitCsrrw(rd, rs1 Reg, csr uint32) {
	a.emitWord(opSystem | (uint32(rd&0x1f) << 7) | (0x1 << 12) | (uint32(rs1&0x1f) << 15) | (csr << 20))
}
func (a *Assembler) EmitCsrrs(rd, rs1 Reg, csr uint32) {
	a.emitWord(opSystem | (uint32(rd&0x1f) << 7) | (0x2 << 12) | (uint32(rs1&0x1f) << 15) | (csr << 20))
}
func (a *Assembler) EmitCsrrc(rd, rs1 Reg, csr uint32) {
	a.emitWord(opSystem | (uint32(rd&0x1f) << 7) | (0x3 << 12) | (uint32(rs1&0x1f) << 15) | (csr << 20))
}

// EmitCsrrwi/rsi/rci take a CsrImmediate for the 5-bit uimm operand,
// pre-scattered into the rs1 field position by MakeCsrImmediate.
func (a *Assembler) EmitCsrrwi(rd Reg, csr uint32, uimm CsrImmediate) {
	a.emitWord(opSystem | (uint32(rd&0x1f) << 7) | (0x5 << 12) | uint32(uimm.Raw()) | (csr << 20))
}
func (a *Assembler) EmitCsrrsi(rd Reg, csr uint32, uimm CsrImmediate) {
	a.emitWord(opSystem | (uint32(rd&0x1f) << 7) | (0x6 << 12) | uint32(uimm.Raw()) | (csr << 20))
}
func (a *Assembler) EmitCsrrci(rd Reg, csr uint32, uimm CsrImmediate) {
	a.emitWord(opSystem | (uint32(rd&0x1f) << 7) | (0x7 << 12) | uint32(uimm.Raw()) | (csr << 20))
}

// === S-type: stores ===

const opStore = 0x23

func (a *Assembler) EmitSb(rs1, rs2 Reg, imm SImmediate) { a.emitWord(sType(opStore, 0x0, rs1, rs2, imm)) }
func (a *Assembler) EmitSh(rs1, rs2 Reg, imm SImmediate) { a.emitWord(sType(opStore, 0x1, rs1, rs2, imm)) }
func (a *Assembler) EmitSw(rs1, rs2 Reg, imm SImmediate) { a.emitWord(sType(opStore, 0x2, rs1, rs2, imm)) }
func (a *Assembler) EmitSd(rs1, rs2 Reg, imm SImmediate) { a.emitWord(sType(opStore, 0x3, rs1, rs2, imm)) }

// === B-type: conditional branches ===

const opBranch = 0x63

// EmitBranch emits a conditional branch over rs1/rs2 to label per cond,
// recording a fixup resolved once label is bound. cond must be a real
// comparison (not kAlways/kNever); lowering those is the caller's job,
// matching Condition.Funct3's own contract.
func (a *Assembler) EmitBranch(cond Condition, rs1, rs2 Reg, label *Label) {
	off := len(a.code)
	a.emitWord(bType(opBranch, cond.Funct3(), rs1, rs2, BImmediate{}))
	a.fixups = append(a.fixups, fixup{codeOffset: off, label: label, kind: fixupBranch})
}

// === U-type ===

const (
	opLui   = 0x37
	opAuipc = 0x17
)

func (a *Assembler) EmitLui(rd Reg, imm UImmediate)   { a.emitWord(uType(opLui, rd, imm)) }
func (a *Assembler) EmitAuipc(rd Reg, imm UImmediate) { a.emitWord(uType(opAuipc, rd, imm)) }

// === J-type ===

const opJal = 0x6f

// EmitJal emits an unconditional jump-and-link to label, recording a
// fixup resolved once label is bound.
func (a *Assembler) EmitJal(rd Reg, label *Label) {
	off := len(a.code)
	a.emitWord(jType(opJal, rd, JImmediate{}))
	a.fixups = append(a.fixups, fixup{codeOffset: off, label: label, kind: fixupJal})
}

// ResolveJumps patches every recorded branch/jump fixup against its
// now-bound label. Every label referenced by a fixup must already be
// bound; leaving one unbound, or a branch distance too large for its
// format's immediate width, is a codegen bug, not recoverable input.
func (a *Assembler) ResolveJumps() {
	for _, fix := range a.fixups {
		berrors.CheckFatal(fix.label.bound, "riscv: resolve_jumps: unbound label")
		delta := int64(fix.label.pos - fix.codeOffset)
		switch fix.kind {
		case fixupBranch:
			imm, ok := MakeBImmediate(delta)
			berrors.CheckFatal(ok, "riscv: resolve_jumps: branch offset %d out of range", delta)
			existing := getWord(a.code[fix.codeOffset : fix.codeOffset+4])
			putWord(a.code[fix.codeOffset:], existing|uint32(imm.Raw()))
		case fixupJal:
			imm, ok := MakeJImmediate(delta)
			berrors.CheckFatal(ok, "riscv: resolve_jumps: jal offset %d out of range", delta)
			existing := getWord(a.code[fix.codeOffset : fix.codeOffset+4])
			putWord(a.code[fix.codeOffset:], existing|uint32(imm.Raw()))
		}
	}
}
