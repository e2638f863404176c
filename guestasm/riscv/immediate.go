// Package riscv provides the RISC-V guest-ISA instruction encoders:
// one immediate type per RISC-V instruction-format immediate
// (B/I/J/P/S/U/shift/CSR), each storing its value pre-scattered into
// the opcode-ready bit positions so that emitting an instruction is a
// single bit-OR, plus an Assembler that emits whole instruction words
// built from them.
//
// Grounded directly on
// original_source/assembler/include/berberis/assembler/riscv.h's
// BImmediate/IImmediate/JImmediate/PImmediate/SImmediate/UImmediate/
// CsrImmediate/Shift32Immediate/Shift64Immediate: the AcceptableValue
// range checks and MakeRaw bit-scatter formulas below are transcribed
// from that header's templated C++ into width-polymorphic Go using
// intrinsics-style integer constraints, and the masks are the same
// literal constants (expressed here as the widened `0xFFFFFFFF_FFFF_...`
// forms rather than C++'s digit-separated hex).
//
// Every MakeX constructor here returns (X, bool) rather than aborting:
// the header's own MakeImmediate factories return
// std::optional<Immediate>, reserving the raw, unchecked constructor
// for internal use (RawImmediate) — out-of-range is an ordinary,
// recoverable "this value doesn't fit" result, not a programming
// error, since callers routinely probe whether an offset fits before
// falling back to a longer encoding sequence.
package riscv

// signedInt is any Go integer type these acceptance checks can be
// called with; RISC-V instruction operands arrive as both signed byte
// offsets and unsigned register/CSR indices.
type signedInt interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// RawImmediate is a value already scattered into its instruction's
// opcode-ready bit positions: ORing it into the base opcode word
// produces the encoded instruction.
type RawImmediate uint32

// === B-immediate: 13-bit signed, always even (branch offsets) ===

type BImmediate struct{ raw RawImmediate }

// bAcceptableValue reports whether value's low 13 bits (value itself
// for the unsigned case) fit the B-immediate's range: bit 0 must be
// zero and bits above 12 must all equal the sign bit.
func bAcceptableValue[T signedInt](value T) bool {
	v := int64(value)
	const mask = ^int64(0xFFF) // clears bits 0..11, keeps bit 0 constraint check below too
	masked := v & (mask | 1)
	return masked == 0 || masked == (mask|1)&^1
}

// MakeBImmediate pre-scatters value into the B-immediate bit layout:
// bit31=imm[12], bits30-25=imm[10:5], bits11-8=imm[4:1], bit7=imm[11].
// Reports false if value is out of range or odd.
func MakeBImmediate[T signedInt](value T) (BImmediate, bool) {
	if !bAcceptableValue(value) {
		return BImmediate{}, false
	}
	return BImmediate{raw: bImmediateRaw(value)}, true
}

func bImmediateRaw[T signedInt](value T) RawImmediate {
	v := int32(value)
	raw := (v & int32(-0x80000000)) |
		((v & 0x0800) >> 4) |
		((v & 0x001f) << 7) |
		((v & 0x07e0) << 20)
	return RawImmediate(uint32(raw))
}

func (b BImmediate) Raw() RawImmediate { return b.raw }

// Decode reverses the B-immediate bit scatter, reconstructing the
// signed byte offset the instruction encodes. The 13-bit value occupies
// bits 0-12 of imm (bit 12 is its sign bit), so sign-extension shifts
// by 32-13=19.
func (b BImmediate) Decode() int64 {
	v := uint32(b.raw)
	imm := ((v >> 7) & 0x1e) | ((v >> 20) & 0x7e0) | ((v << 4) & 0x800) | ((v >> 19) & 0x1000)
	return int64(int32(imm<<19) >> 19)
}

// === I-immediate: 12-bit signed (loads, ALU-immediate, JALR) ===

type IImmediate struct{ raw RawImmediate }

func iAcceptableValue[T signedInt](value T) bool {
	v := int64(value)
	const mask = ^int64(0x7FF)
	masked := v & mask
	return masked == 0 || masked == mask
}

// MakeIImmediate pre-scatters value into bits 31:20. Reports false if
// value does not fit in 12 signed bits.
func MakeIImmediate[T signedInt](value T) (IImmediate, bool) {
	if !iAcceptableValue(value) {
		return IImmediate{}, false
	}
	return IImmediate{raw: iImmediateRaw(value)}, true
}

func iImmediateRaw[T signedInt](value T) RawImmediate {
	return RawImmediate(uint32(int32(value) << 20))
}

func (i IImmediate) Raw() RawImmediate { return i.raw }

// Decode reverses the I-immediate bit scatter, reconstructing the
// signed 12-bit value the instruction encodes.
func (i IImmediate) Decode() int64 {
	return int64(int32(i.raw) >> 20)
}

// ToSImmediate converts an I-immediate into the S-immediate that
// encodes the same value, re-scattering the same bits into the store
// instruction's split layout. Mirrors
// original_source/assembler/include/berberis/assembler/riscv.h's
// SImmediate(Immediate) conversion constructor: I- and S-immediates
// share an acceptance range and differ only in where the 12 value bits
// land in the instruction word, so the conversion needs no range
// re-check.
func (i IImmediate) ToSImmediate() SImmediate {
	raw := uint32(i.raw)
	return SImmediate{raw: RawImmediate((raw & 0xFE000000) | ((raw & 0x01F00000) >> 13))}
}

// === J-immediate: 21-bit signed, always even (JAL offsets) ===

type JImmediate struct{ raw RawImmediate }

// kJMask is 0xffff_ffff_fff0_0001: accepts only values whose bit 0 is
// zero and whose bits 20-63 are either all zero or all one (a J-immediate
// encodes a signed, always-even, 21-bit offset).
const kJMask = uint64(0xFFFFFFFFFFF00001)

func jAcceptableValue[T signedInt](value T) bool {
	v := int64(value)
	mask := int64(kJMask)
	masked := v & mask
	return masked == 0 || masked == mask&^1
}

// MakeJImmediate pre-scatters value into bits 31 (imm[20]), 30:21
// (imm[10:1]), 20 (imm[11]), 19:12 (imm[19:12]). Reports false if value
// does not fit in 21 signed bits or is odd.
func MakeJImmediate[T signedInt](value T) (JImmediate, bool) {
	if !jAcceptableValue(value) {
		return JImmediate{}, false
	}
	return JImmediate{raw: jImmediateRaw(value)}, true
}

func jImmediateRaw[T signedInt](value T) RawImmediate {
	v := int32(value)
	raw := (v & int32(uint32(0x800FF000))) |
		((v & 0x0800) << 9) |
		((v & 0x07FE) << 20)
	return RawImmediate(uint32(raw))
}

func (j JImmediate) Raw() RawImmediate { return j.raw }

// Decode reverses the J-immediate bit scatter, reconstructing the
// signed byte offset the instruction encodes. The 21-bit value occupies
// bits 0-20 of imm (bit 20 is its sign bit), so sign-extension shifts
// by 32-21=11.
func (j JImmediate) Decode() int64 {
	v := uint32(j.raw)
	imm := (v & 0xFF000) | ((v >> 9) & 0x800) | ((v >> 20) & 0x7FE) | ((v >> 11) & 0x100000)
	return int64(int32(imm<<11) >> 11)
}

// === S-immediate: same value range as I-immediate, different scatter (stores) ===

type SImmediate struct{ raw RawImmediate }

func (s SImmediate) Raw() RawImmediate { return s.raw }

// MakeSImmediate pre-scatters value into bits 31:25 (imm[11:5]) and
// 11:7 (imm[4:0]). Reports false if value does not fit in 12 signed
// bits (the same range as MakeIImmediate).
func MakeSImmediate[T signedInt](value T) (SImmediate, bool) {
	if !iAcceptableValue(value) {
		return SImmediate{}, false
	}
	return SImmediate{raw: sImmediateRaw(value)}, true
}

func sImmediateRaw[T signedInt](value T) RawImmediate {
	v := int32(value)
	raw := ((v & int32(uint32(0xFFFFFFE0))) << 20) | ((v & 0x1F) << 7)
	return RawImmediate(uint32(raw))
}

// Decode reverses the S-immediate bit scatter, reconstructing the
// signed 12-bit value the instruction encodes.
func (s SImmediate) Decode() int64 {
	v := uint32(s.raw)
	imm := ((v >> 7) & 0x1F) | (v >> 20)
	return int64(int32(imm<<20) >> 20)
}

// ToIImmediate converts an S-immediate into the I-immediate that
// encodes the same value. Mirrors
// original_source/assembler/include/berberis/assembler/riscv.h's
// IImmediate(SImmediate) conversion constructor.
func (s SImmediate) ToIImmediate() IImmediate {
	raw := uint32(s.raw)
	return IImmediate{raw: RawImmediate((raw & 0xFE000000) | ((raw & 0x00000F80) << 13))}
}

// === U-immediate: 20-bit signed, always a multiple of 4096 (LUI/AUIPC) ===

type UImmediate struct{ raw RawImmediate }

func uAcceptableValue[T signedInt](value T) bool {
	v := int64(value)
	const kMask = int64(-0x80000000) | 0xFFF // 0xFFFFFFFF8000_0FFF widened
	masked := v & kMask
	return masked == 0 || masked == kMask&^0xFFF
}

// MakeUImmediate pre-scatters value: it already occupies bits 31:12, no
// further shifting needed. Reports false if value is not a multiple of
// 4096 or does not fit 32 bits.
func MakeUImmediate[T signedInt](value T) (UImmediate, bool) {
	if !uAcceptableValue(value) {
		return UImmediate{}, false
	}
	return UImmediate{raw: RawImmediate(uint32(int32(value)))}, true
}

func (u UImmediate) Raw() RawImmediate { return u.raw }

// Decode reverses the (identity) U-immediate scatter.
func (u UImmediate) Decode() int64 { return int64(int32(u.raw)) }

// === P-immediate: 7-bit, always a multiple of 32 (fence-like forms) ===

type PImmediate struct{ raw RawImmediate }

func pAcceptableValue[T signedInt](value T) bool {
	v := int64(value)
	const kMask = ^int64(0x7E0) // accepts bits 5..10
	masked := v & kMask
	return masked == 0 || masked == kMask&^0x1F
}

// MakePImmediate pre-scatters value into bits 31:20 (same position as
// I-immediate). Reports false if value is not a multiple of 32 or does
// not fit.
func MakePImmediate[T signedInt](value T) (PImmediate, bool) {
	if !pAcceptableValue(value) {
		return PImmediate{}, false
	}
	return PImmediate{raw: RawImmediate(uint32(int32(value) << 20))}, true
}

func (p PImmediate) Raw() RawImmediate { return p.raw }

// Decode reverses the P-immediate bit scatter.
func (p PImmediate) Decode() int64 { return int64(int32(p.raw) >> 20) }

// === CSR-immediate: 5-bit unsigned (CSRRWI/CSRRSI/CSRRCI rs1 field) ===

type CsrImmediate struct{ raw RawImmediate }

func csrAcceptableValue[T signedInt](value T) bool {
	return uint64(value) < 32
}

// MakeCsrImmediate pre-scatters value into bits 19:15. Reports false if
// value is not in [0, 32).
func MakeCsrImmediate[T signedInt](value T) (CsrImmediate, bool) {
	if !csrAcceptableValue(value) {
		return CsrImmediate{}, false
	}
	return CsrImmediate{raw: RawImmediate(uint32(int32(value) << 15))}, true
}

func (c CsrImmediate) Raw() RawImmediate { return c.raw }

// Decode reverses the CSR-immediate bit scatter.
func (c CsrImmediate) Decode() uint64 { return uint64(uint32(c.raw) >> 15) }

// === Shift-immediate: 5-bit (RV32 shift amount) or 6-bit (RV64) unsigned ===

type Shift5Immediate struct{ raw RawImmediate }
type Shift6Immediate struct{ raw RawImmediate }

// MakeShift5Immediate pre-scatters a 0..31 shift amount into bits 24:20.
// Reports false if value is not in [0, 32).
func MakeShift5Immediate[T signedInt](value T) (Shift5Immediate, bool) {
	if uint64(value) >= 32 {
		return Shift5Immediate{}, false
	}
	return Shift5Immediate{raw: RawImmediate(uint32(int32(value) << 20))}, true
}

func (s Shift5Immediate) Raw() RawImmediate { return s.raw }

// Decode reverses the 5-bit shift-immediate bit scatter.
func (s Shift5Immediate) Decode() uint64 { return uint64(uint32(s.raw) >> 20 & 0x1F) }

// MakeShift6Immediate pre-scatters a 0..63 shift amount into bits 25:20.
// Reports false if value is not in [0, 64).
func MakeShift6Immediate[T signedInt](value T) (Shift6Immediate, bool) {
	if uint64(value) >= 64 {
		return Shift6Immediate{}, false
	}
	return Shift6Immediate{raw: RawImmediate(uint32(int32(value) << 20))}, true
}

func (s Shift6Immediate) Raw() RawImmediate { return s.raw }

// Decode reverses the 6-bit shift-immediate bit scatter.
func (s Shift6Immediate) Decode() uint64 { return uint64(uint32(s.raw) >> 20 & 0x3F) }
