package gueststate

import "berberis/berrors"

// CPUStateARM is the 32-bit ARM (AAPCS) guest register file: 16 general
// registers (r15 doubles as the program counter) and 32 single-precision
// FP registers, plus a CPSR-style condition-flags word.
type CPUStateARM struct {
	R    [16]uint32
	S    [32]uint32 // single-precision FP regs, raw bit pattern
	Cpsr uint32
}

const armPC = 15

func (c *CPUStateARM) InsnAddr() uint64    { return uint64(c.R[armPC]) }
func (c *CPUStateARM) SetInsnAddr(v uint64) { c.R[armPC] = uint32(v) }

// GetR returns general register i. r15 is the program counter; it may
// be read here but is conventionally updated through SetInsnAddr.
func (c *CPUStateARM) GetR(i int) uint32 {
	berrors.CheckFatal(i >= 0 && i < len(c.R), "gueststate: arm register index %d out of range", i)
	return c.R[i]
}

func (c *CPUStateARM) SetR(i int, v uint32) {
	berrors.CheckFatal(i >= 0 && i < len(c.R), "gueststate: arm register index %d out of range", i)
	c.R[i] = v
}

func (c *CPUStateARM) GetS(i int) uint32 {
	berrors.CheckFatal(i >= 0 && i < len(c.S), "gueststate: arm fp register index %d out of range", i)
	return c.S[i]
}

func (c *CPUStateARM) SetS(i int, v uint32) {
	berrors.CheckFatal(i >= 0 && i < len(c.S), "gueststate: arm fp register index %d out of range", i)
	c.S[i] = v
}
