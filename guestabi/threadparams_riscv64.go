package guestabi

import (
	"encoding/binary"

	"berberis/berrors"
	"berberis/callconv"
	"berberis/gueststate"
)

// RISCV64ThreadParams is a typesafe-ish view over a live ThreadState for
// a guest→host trampoline: integer args/results sit directly in the
// integer register file starting at a0 (x10), FP args/results in the FP
// register file starting at fa0, and stack args are read through the
// guest stack pointer (x2) — mirroring the LP64/LP64D convention's
// register numbering relative to a0/fa0 rather than absolute indices.
type RISCV64ThreadParams struct {
	cpu   *gueststate.CPUStateRISCV64
	stack []byte // the guest stack, addressed from SP
}

const riscvA0 = 10
const riscvFA0 = 10
const riscvSP = 2

// NewRISCV64ThreadParams constructs a params view over state's current
// register file. readStack supplies the bytes backing the guest stack
// starting at SP, for stack-passed arguments — callers map it from the
// guest address space (package guestloader owns that mapping).
func NewRISCV64ThreadParams(state *gueststate.ThreadState, readStack []byte) *RISCV64ThreadParams {
	cpu, ok := gueststate.GetCPUState(state).(*gueststate.CPUStateRISCV64)
	berrors.CheckFatal(ok, "guestabi: RISCV64ThreadParams on non-riscv64 thread state")
	return &RISCV64ThreadParams{cpu: cpu, stack: readStack}
}

func (p *RISCV64ThreadParams) GetInt(loc callconv.ArgLocation) uint64 {
	switch loc.Kind {
	case callconv.KindIntReg:
		return p.cpu.GetX(riscvA0 + int(loc.Offset))
	case callconv.KindStack:
		return binary.LittleEndian.Uint64(p.stack[loc.Offset:])
	default:
		berrors.Fatalf("guestabi: GetInt on location kind %v", loc.Kind)
		return 0
	}
}

func (p *RISCV64ThreadParams) SetInt(loc callconv.ArgLocation, val uint64) {
	switch loc.Kind {
	case callconv.KindIntReg:
		p.cpu.SetX(riscvA0+int(loc.Offset), val)
	case callconv.KindStack:
		binary.LittleEndian.PutUint64(p.stack[loc.Offset:], val)
	default:
		berrors.Fatalf("guestabi: SetInt on location kind %v", loc.Kind)
	}
}

func (p *RISCV64ThreadParams) GetFP(loc callconv.ArgLocation) uint64 {
	switch loc.Kind {
	case callconv.KindFPReg:
		return p.cpu.GetF(riscvFA0 + int(loc.Offset))
	case callconv.KindIntReg:
		// FP-to-integer spillover under LP64D register exhaustion.
		return p.cpu.GetX(riscvA0 + int(loc.Offset))
	case callconv.KindStack:
		return binary.LittleEndian.Uint64(p.stack[loc.Offset:])
	default:
		berrors.Fatalf("guestabi: GetFP on location kind %v", loc.Kind)
		return 0
	}
}

func (p *RISCV64ThreadParams) SetFP(loc callconv.ArgLocation, val uint64) {
	switch loc.Kind {
	case callconv.KindFPReg:
		p.cpu.SetF(riscvFA0+int(loc.Offset), val)
	case callconv.KindIntReg:
		p.cpu.SetX(riscvA0+int(loc.Offset), val)
	case callconv.KindStack:
		binary.LittleEndian.PutUint64(p.stack[loc.Offset:], val)
	default:
		berrors.Fatalf("guestabi: SetFP on location kind %v", loc.Kind)
	}
}

// StackPointer returns the guest SP register (x2), the base address
// va_list_params and stack-passed arguments are read relative to.
func (p *RISCV64ThreadParams) StackPointer() uint64 {
	return p.cpu.GetX(riscvSP)
}
