package gueststate

import "berberis/berrors"

// CPUStateARM64 is the 64-bit ARM (AAPCS64) guest register file: 32
// general registers (x31 is conventionally sp/xzr depending on context,
// handled by the caller, not here) and 32 128-bit SIMD/FP registers, plus
// the NZCV condition-flags word. The program counter is tracked
// separately since AAPCS64 has no general register aliased to it.
type CPUStateARM64 struct {
	X        [32]uint64
	V        [32][16]byte // 128-bit SIMD/FP regs
	Nzcv     uint32
	insnAddr uint64
}

func (c *CPUStateARM64) InsnAddr() uint64     { return c.insnAddr }
func (c *CPUStateARM64) SetInsnAddr(v uint64) { c.insnAddr = v }

func (c *CPUStateARM64) GetX(i int) uint64 {
	berrors.CheckFatal(i >= 0 && i < len(c.X), "gueststate: arm64 register index %d out of range", i)
	return c.X[i]
}

func (c *CPUStateARM64) SetX(i int, v uint64) {
	berrors.CheckFatal(i >= 0 && i < len(c.X), "gueststate: arm64 register index %d out of range", i)
	c.X[i] = v
}

func (c *CPUStateARM64) GetV(i int) [16]byte {
	berrors.CheckFatal(i >= 0 && i < len(c.V), "gueststate: arm64 simd register index %d out of range", i)
	return c.V[i]
}

func (c *CPUStateARM64) SetV(i int, v [16]byte) {
	berrors.CheckFatal(i >= 0 && i < len(c.V), "gueststate: arm64 simd register index %d out of range", i)
	c.V[i] = v
}
