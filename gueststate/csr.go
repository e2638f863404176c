package gueststate

import "berberis/berrors"

// CsrName is a RISC-V control-and-status-register number. The top two
// bits of a real CSR address indicate its privilege/read-only class; the
// core treats any CSR number whose top two bits are 0b11 as read-only
// and rejects an explicit write to it with an illegal-instruction fault,
// regardless of whether the simulator itself maintains internal storage
// for it (vl/vtype are written internally by vset{i}vl{i} execution, not
// by the guest-facing CSR write instruction).
type CsrName uint16

const (
	CsrFFlags CsrName = 0b00_00_0000_0001
	CsrFrm    CsrName = 0b00_00_0000_0010
	CsrFCsr   CsrName = 0b00_00_0000_0011
	CsrVstart CsrName = 0b00_00_0000_1000
	CsrVxsat  CsrName = 0b00_00_0000_1001
	CsrVxrm   CsrName = 0b00_00_0000_1010
	CsrVcsr   CsrName = 0b00_00_0000_1111
	CsrCycle  CsrName = 0b11_00_0000_0000
	CsrVl     CsrName = 0b11_00_0010_0000
	CsrVtype  CsrName = 0b11_00_0010_0001
	CsrVlenb  CsrName = 0b11_00_0010_0010
)

// vlenbConst is the vector register length in bytes. Berberis's guest
// vector extension support models VLEN=128; this is not independently
// configurable here, matching the fixed 128-bit SIMD128 buffer used
// throughout package intrinsics.
const vlenbConst = 16

// Writable reports whether the guest-facing CSR write instruction may
// target this CSR. It does not gate internal writes package syscallabi
// or the interpreter perform directly (e.g. updating Vl/Vtype as part of
// executing vsetvli).
func (n CsrName) Writable() bool {
	return n&0b11_00_0000_0000 != 0b11_00_0000_0000
}

// ReadCSR returns the current value of a supported CSR, applying its
// mask where the CSR has dedicated storage and deriving the value where
// it does not.
func ReadCSR(cpu *CPUStateRISCV64, name CsrName) uint64 {
	switch name {
	case CsrFrm:
		return uint64(cpu.Frm)
	case CsrFFlags:
		return 0 // fflags has no dedicated storage; see WriteCSR doc.
	case CsrFCsr:
		return uint64(cpu.Frm)<<5 | ReadCSR(cpu, CsrFFlags)
	case CsrVstart:
		return uint64(cpu.Vstart)
	case CsrVxsat:
		return uint64(cpu.Vcsr) & 0b1
	case CsrVxrm:
		return uint64(cpu.Vcsr) >> 1 & 0b11
	case CsrVcsr:
		return uint64(cpu.Vcsr)
	case CsrVl:
		return cpu.Vl
	case CsrVtype:
		return cpu.Vtype
	case CsrVlenb:
		return vlenbConst
	case CsrCycle:
		return 0 // no cycle-accurate model; reads as a stopped counter.
	default:
		berrors.Fatalf("gueststate: unsupported csr read %#x", uint16(name))
		return 0
	}
}

// WriteCSR writes value (already the new bit pattern for the
// corresponding field, not a read-modify-write delta) to a supported
// CSR, masking reserved bits. Callers targeting Frm/FFlags should write
// FFlags before Frm when both are set together via CsrFCsr, so that an
// implementation that ever grows real fflags storage observes the same
// visible order as a real fcsr write (low bits committed first).
// vl and vtype are read-only to the guest but are accepted here so the
// runtime can update them (as vsetvli does); a write to cycle or vlenb
// is fatal.
func WriteCSR(cpu *CPUStateRISCV64, name CsrName, value uint64) {
	berrors.CheckFatal(name.Writable() || name == CsrVl || name == CsrVtype,
		"gueststate: write to read-only csr %#x", uint16(name))
	switch name {
	case CsrFrm:
		cpu.Frm = uint8(value) & 0b111
	case CsrFFlags:
		// fflags has no storage in CPUStateRISCV64: writes are discarded
		// and ReadCSR returns 0 for it.
	case CsrFCsr:
		WriteCSR(cpu, CsrFFlags, value&0b1_1111)
		WriteCSR(cpu, CsrFrm, value>>5&0b111)
	case CsrVstart:
		cpu.Vstart = uint16(value) & 0b0111_1111
	case CsrVxsat:
		cpu.Vcsr = cpu.Vcsr&^0b1 | uint8(value)&0b1
	case CsrVxrm:
		cpu.Vcsr = cpu.Vcsr&^0b110 | uint8(value)&0b11<<1
	case CsrVcsr:
		cpu.Vcsr = uint8(value) & 0b111
	case CsrVl:
		cpu.Vl = value & 0xFF
	case CsrVtype:
		// vill (bit 63) plus the low byte (vma, vta, vsew[2:0], vlmul[3:0]).
		cpu.Vtype = value & 0x80000000000000FF
	default:
		berrors.Fatalf("gueststate: unsupported csr write %#x", uint16(name))
	}
}
