// Package aarch64 is the host-ISA assembler for the AArch64 backend:
// fixed-width 32-bit little-endian instruction emission plus a Label
// abstraction for branches and a PC-relative ADRP+ADD load-address
// pseudo that emits two instructions but registers a single fixup.
// Adapted from aarch64.go/backend_aarch64.go's instruction-word
// construction and preserve-opcode-bits patch technique, generalized
// from a whole-binary fixup table (callFixups/jumpFixups keyed by
// function name and label id) to a per-function Label the caller binds
// directly.
package aarch64

import "berberis/berrors"

// Reg names a general-purpose register (X0-X30, 31=SP/XZR depending on
// instruction context, matching AArch64's encoding).
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
	X16 // IP0, reserved scratch register for out-of-range load/store offsets
	X17 // IP1
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
	FP  Reg = 29
	LR  Reg = 30
	SP  Reg = 31
	XZR Reg = 31
)

// Cond is a B.cond/CSET condition code (bits [3:0] of a B.cond
// encoding, bits [15:12] of the CSINC that CSET is an alias of).
type Cond uint32

const (
	CondEQ Cond = 0x0
	CondNE Cond = 0x1
	CondCS Cond = 0x2
	CondCC Cond = 0x3
	CondMI Cond = 0x4
	CondPL Cond = 0x5
	CondVS Cond = 0x6
	CondVC Cond = 0x7
	CondHI Cond = 0x8
	CondLS Cond = 0x9
	CondGE Cond = 0xA
	CondLT Cond = 0xB
	CondGT Cond = 0xC
	CondLE Cond = 0xD
)

// Label is a not-yet-placed branch target. Bind fixes its position;
// every branch recorded against it is patched by ResolveJumps.
type Label struct {
	bound bool
	pos   int
}

type fixupKind int

const (
	fixupB        fixupKind = iota // 26-bit instruction-count immediate, bits [25:0]
	fixupBCond                     // 19-bit instruction-count immediate, bits [23:5]
	fixupAdrpAdd                   // PC-relative load-address pseudo: ADRP+ADD pair
)

type fixup struct {
	codeOffset int // byte offset of the instruction word being patched
	label      *Label
	kind       fixupKind
}

// Assembler accumulates the host code for one function.
type Assembler struct {
	code   []byte
	fixups []fixup
}

func New() *Assembler { return &Assembler{} }

func (a *Assembler) Bytes() []byte { return a.code }
func (a *Assembler) Pos() int      { return len(a.code) }

func (a *Assembler) NewLabel() *Label { return &Label{} }

func (a *Assembler) Bind(label *Label) {
	berrors.CheckFatal(!label.bound, "aarch64: label already bound")
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

// === Immediate loading ===

// EmitMovZ emits MOVZ Xd, #imm16, LSL #shift (shift one of 0,16,32,48).
func (a *Assembler) EmitMovZ(rd Reg, imm16 uint16, shift uint) {
	hw := uint32(shift / 16)
	a.emitWord(0xD2800000 | (hw << 21) | (uint32(imm16) << 5) | uint32(rd&0x1f))
}

// EmitMovK emits MOVK Xd, #imm16, LSL #shift.
func (a *Assembler) EmitMovK(rd Reg, imm16 uint16, shift uint) {
	hw := uint32(shift / 16)
	a.emitWord(0xF2800000 | (hw << 21) | (uint32(imm16) << 5) | uint32(rd&0x1f))
}

// EmitLoadImm64 loads a full 64-bit value into rd via a fixed
// four-instruction MOVZ/MOVK sequence, always 16 bytes so that a
// caller who records it for later repatching (e.g. to a pointer not
// yet known) can find all four instruction words at predictable
// offsets.
func (a *Assembler) EmitLoadImm64(rd Reg, val uint64) {
	a.EmitMovZ(rd, uint16(val), 0)
	a.EmitMovK(rd, uint16(val>>16), 16)
	a.EmitMovK(rd, uint16(val>>32), 32)
	a.EmitMovK(rd, uint16(val>>48), 48)
}

// === Arithmetic / logic ===

func (a *Assembler) rrr(base uint32, rd, rn, rm Reg) {
	a.emitWord(base | (uint32(rm&0x1f) << 16) | (uint32(rn&0x1f) << 5) | uint32(rd&0x1f))
}

func (a *Assembler) EmitAddRR(rd, rn, rm Reg) { a.rrr(0x8B000000, rd, rn, rm) }
func (a *Assembler) EmitSubRR(rd, rn, rm Reg) { a.rrr(0xCB000000, rd, rn, rm) }
func (a *Assembler) EmitAndRR(rd, rn, rm Reg) { a.rrr(0x8A000000, rd, rn, rm) }
func (a *Assembler) EmitOrrRR(rd, rn, rm Reg) { a.rrr(0xAA000000, rd, rn, rm) }
func (a *Assembler) EmitEorRR(rd, rn, rm Reg) { a.rrr(0xCA000000, rd, rn, rm) }
func (a *Assembler) EmitSdiv(rd, rn, rm Reg)  { a.rrr(0x9AC00C00, rd, rn, rm) }

// EmitMul emits MUL Xd, Xn, Xm (alias for MADD Xd, Xn, Xm, XZR).
func (a *Assembler) EmitMul(rd, rn, rm Reg) {
	a.emitWord(0x9B007C00 | (uint32(rm&0x1f) << 16) | (uint32(rn&0x1f) << 5) | uint32(rd&0x1f))
}

// EmitAddImm emits ADD Xd, Xn, #imm12.
func (a *Assembler) EmitAddImm(rd, rn Reg, imm12 uint32) {
	a.emitWord(0x91000000 | ((imm12 & 0xFFF) << 10) | (uint32(rn&0x1f) << 5) | uint32(rd&0x1f))
}

// EmitSubImm emits SUB Xd, Xn, #imm12.
func (a *Assembler) EmitSubImm(rd, rn Reg, imm12 uint32) {
	a.emitWord(0xD1000000 | ((imm12 & 0xFFF) << 10) | (uint32(rn&0x1f) << 5) | uint32(rd&0x1f))
}

// === Compare ===

// EmitCmpRR emits CMP Xn, Xm (SUBS XZR, Xn, Xm).
func (a *Assembler) EmitCmpRR(rn, rm Reg) {
	a.emitWord(0xEB000000 | (uint32(rm&0x1f) << 16) | (uint32(rn&0x1f) << 5) | uint32(XZR&0x1f))
}

// EmitCmpImm emits CMP Xn, #imm12 (SUBS XZR, Xn, #imm12).
func (a *Assembler) EmitCmpImm(rn Reg, imm12 uint32) {
	a.emitWord(0xF1000000 | ((imm12 & 0xFFF) << 10) | (uint32(rn&0x1f) << 5) | uint32(XZR&0x1f))
}

// EmitCset emits CSET Xd, cond (CSINC Xd, XZR, XZR, invert(cond)).
func (a *Assembler) EmitCset(rd Reg, cond Cond) {
	inv := uint32(cond) ^ 1
	a.emitWord(0x9A9F07E0 | (inv << 12) | uint32(rd&0x1f))
}

// === Memory ===

// EmitLdr emits LDR Xt, [Xn, #offset], choosing the unsigned-scaled,
// signed-9-bit, or scratch-register-computed form depending on range.
func (a *Assembler) EmitLdr(rt, rn Reg, offset int) {
	a.loadStore(0xF9400000, 0xF8400000, rt, rn, offset)
}

// EmitStr emits STR Xt, [Xn, #offset].
func (a *Assembler) EmitStr(rt, rn Reg, offset int) {
	a.loadStore(0xF9000000, 0xF8000000, rt, rn, offset)
}

func (a *Assembler) loadStore(scaledBase, unscaledBase uint32, rt, rn Reg, offset int) {
	switch {
	case offset == 0:
		a.emitWord(scaledBase | (uint32(rn&0x1f) << 5) | uint32(rt&0x1f))
	case offset > 0 && offset%8 == 0 && offset/8 < 4096:
		uimm := uint32(offset / 8)
		a.emitWord(scaledBase | (uimm << 10) | (uint32(rn&0x1f) << 5) | uint32(rt&0x1f))
	case offset >= -256 && offset <= 255:
		simm9 := uint32(offset) & 0x1FF
		a.emitWord(unscaledBase | (simm9 << 12) | (uint32(rn&0x1f) << 5) | uint32(rt&0x1f))
	default:
		a.EmitLoadImm64(X16, uint64(int64(offset)))
		a.EmitAddRR(X16, rn, X16)
		a.emitWord(scaledBase | (uint32(X16&0x1f) << 5) | uint32(rt&0x1f))
	}
}

// EmitStp emits STP Xt1, Xt2, [Xn, #offset]! (pre-index), the prologue
// frame-push form.
func (a *Assembler) EmitStp(rt1, rt2, rn Reg, offset int) {
	imm7 := uint32(offset/8) & 0x7F
	a.emitWord(0xA9800000 | (imm7 << 15) | (uint32(rt2&0x1f) << 10) | (uint32(rn&0x1f) << 5) | uint32(rt1&0x1f))
}

// EmitLdp emits LDP Xt1, Xt2, [Xn], #offset (post-index), the epilogue
// frame-pop form.
func (a *Assembler) EmitLdp(rt1, rt2, rn Reg, offset int) {
	imm7 := uint32(offset/8) & 0x7F
	a.emitWord(0xA8C00000 | (imm7 << 15) | (uint32(rt2&0x1f) << 10) | (uint32(rn&0x1f) << 5) | uint32(rt1&0x1f))
}

// === Branch ===

// EmitB emits an unconditional branch to label, recording a fixup.
func (a *Assembler) EmitB(label *Label) {
	off := len(a.code)
	a.emitWord(0x14000000)
	a.fixups = append(a.fixups, fixup{codeOffset: off, label: label, kind: fixupB})
}

// EmitBL emits a branch-with-link to label, recording a fixup.
func (a *Assembler) EmitBL(label *Label) {
	off := len(a.code)
	a.emitWord(0x94000000)
	a.fixups = append(a.fixups, fixup{codeOffset: off, label: label, kind: fixupB})
}

// EmitBCond emits B.cond to label, recording a fixup.
func (a *Assembler) EmitBCond(cond Cond, label *Label) {
	off := len(a.code)
	a.emitWord(0x54000000 | uint32(cond&0xF))
	a.fixups = append(a.fixups, fixup{codeOffset: off, label: label, kind: fixupBCond})
}

// EmitBlr emits BLR Xn (branch to register with link).
func (a *Assembler) EmitBlr(rn Reg) {
	a.emitWord(0xD63F0000 | (uint32(rn&0x1f) << 5))
}

// EmitRet emits RET (RET X30).
func (a *Assembler) EmitRet() {
	a.emitWord(0xD65F0000 | (uint32(LR&0x1f) << 5))
}

// EmitSvc emits SVC #0, the AArch64 syscall trap.
func (a *Assembler) EmitSvc() {
	a.emitWord(0xD4000001)
}

// EmitAdrpAddPCRelative emits the ADRP+ADD load-address pseudo the
// spec singles out: two instructions, one fixup record. ResolveJumps
// patches the pair through that fixupAdrpAdd record: the ADRP receives
// the page delta to the label and the ADD's imm12 receives the label's
// low 12 bits unchanged.
func (a *Assembler) EmitAdrpAddPCRelative(rd Reg, label *Label) {
	off := len(a.code)
	a.emitWord(0x90000000 | uint32(rd&0x1f)) // ADRP rd, #0 (immlo/immhi left zero)
	a.EmitAddImm(rd, rd, 0)                  // ADD rd, rd, #0 (pageoff left zero)
	a.fixups = append(a.fixups, fixup{codeOffset: off, label: label, kind: fixupAdrpAdd})
}

// ResolveJumps patches every recorded branch fixup against its bound
// label, computing offset = label.position - pc_at_emit per
// instruction and folding it into the opcode's fixed bits. Adapted
// from patchArm64BAt/patchArm64BCondAt/patchAdrpAdd: those take an
// absolute target offset computed by the caller from a whole-binary
// function-offset table; here the target is simply the bound label's
// position in the same buffer.
func (a *Assembler) ResolveJumps() {
	for _, fix := range a.fixups {
		berrors.CheckFatal(fix.label.bound, "aarch64: resolve_jumps: unbound label")
		switch fix.kind {
		case fixupB:
			delta := (fix.label.pos - fix.codeOffset) / 4
			existing := getWord(a.code[fix.codeOffset : fix.codeOffset+4])
			opcode := existing & 0xFC000000
			imm26 := uint32(delta) & 0x03FFFFFF
			putWord(a.code[fix.codeOffset:], opcode|imm26)
		case fixupBCond:
			delta := (fix.label.pos - fix.codeOffset) / 4
			existing := getWord(a.code[fix.codeOffset : fix.codeOffset+4])
			cond := existing & 0xF
			imm19 := (uint32(delta) & 0x7FFFF) << 5
			putWord(a.code[fix.codeOffset:], 0x54000000|imm19|cond)
		case fixupAdrpAdd:
			a.patchAdrpAdd(fix.codeOffset, fix.label.pos)
		}
	}
}

// patchAdrpAdd splits the page-relative offset between the ADRP at
// codeOffset and the ADD immediately following it, given the target's
// position in the same buffer as the ADRP instruction's own position
// (both are buffer-relative, not virtual addresses, since the whole
// function moves together when the exec region places it).
func (a *Assembler) patchAdrpAdd(codeOffset, targetPos int) {
	pageDelta := int64(targetPos>>12) - int64(codeOffset>>12)
	pageOff := uint32(targetPos) & 0xFFF

	immlo := uint32(pageDelta) & 0x3
	immhi := (uint32(pageDelta) >> 2) & 0x7FFFF
	adrp := getWord(a.code[codeOffset:])
	adrp = (adrp & 0x9F00001F) | (immlo << 29) | (immhi << 5)
	putWord(a.code[codeOffset:], adrp)

	addOff := codeOffset + 4
	add := getWord(a.code[addOff:])
	add = (add & 0xFFC003FF) | (pageOff << 10)
	putWord(a.code[addOff:], add)
}
