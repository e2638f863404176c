package gueststate

import "berberis/berrors"

// CPUStateRISCV64 is the RISC-V 64 (LP64/LP64D) guest register file: 32
// integer registers (x0 is hard-wired to zero) and 32 FP registers,
// an instruction-address field, and the closed set of writable CSRs.
// Fields backing a CSR are named to match the CSR's field_name; CSRs
// with no storage (fflags/fcsr/vxsat/vxrm/cycle/vlenb) are
// derived in csr.go rather than stored here.
type CPUStateRISCV64 struct {
	X [32]uint64
	F [32]uint64 // FP regs hold the raw bit pattern of a float or double

	insnAddr uint64

	Frm    uint8  // rounding mode, 3 bits
	Vstart uint16 // 7 bits
	Vcsr   uint8  // 3 bits (vxsat | vxrm<<1)
	Vl     uint64 // 8 bits of meaningful range in practice
	Vtype  uint64 // wide field, see CSR write mask
}

func (c *CPUStateRISCV64) InsnAddr() uint64     { return c.insnAddr }
func (c *CPUStateRISCV64) SetInsnAddr(v uint64) { c.insnAddr = v }

// GetX returns integer register i; x0 always reads as zero.
func (c *CPUStateRISCV64) GetX(i int) uint64 {
	berrors.CheckFatal(i >= 0 && i < len(c.X), "gueststate: riscv64 register index %d out of range", i)
	if i == 0 {
		return 0
	}
	return c.X[i]
}

// SetX writes integer register i; writes to x0 are silently ignored.
func (c *CPUStateRISCV64) SetX(i int, v uint64) {
	berrors.CheckFatal(i >= 0 && i < len(c.X), "gueststate: riscv64 register index %d out of range", i)
	if i == 0 {
		return
	}
	c.X[i] = v
}

func (c *CPUStateRISCV64) GetF(i int) uint64 {
	berrors.CheckFatal(i >= 0 && i < len(c.F), "gueststate: riscv64 fp register index %d out of range", i)
	return c.F[i]
}

func (c *CPUStateRISCV64) SetF(i int, v uint64) {
	berrors.CheckFatal(i >= 0 && i < len(c.F), "gueststate: riscv64 fp register index %d out of range", i)
	c.F[i] = v
}
