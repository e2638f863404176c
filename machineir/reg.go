// Package machineir implements the translator's low-level machine
// intermediate representation: functions made of basic blocks linked by
// edges, instructions whose operands are (register, kind) pairs, and a
// small set of architecture-neutral pseudo-ops (branches, calls, copies,
// flag traffic) that each host backend lowers to real instructions.
package machineir

import "fmt"

// regKind distinguishes the three register namespaces a Reg can name.
type regKind uint8

const (
	regKindHard regKind = iota
	regKindVirtual
	regKindSpilled
)

// Reg is a lightweight value naming one of: a hard (physical) register
// identified by backend-specific number, a virtual register assigned by
// the IR builder before register allocation, or a spill slot assigned by
// the register allocator. It is comparable and intended to be passed by
// value, the way the source's MachineReg is a thin wrapper over an int.
type Reg struct {
	kind  regKind
	index int
}

// HardReg wraps a backend-specific physical register number.
func HardReg(number int) Reg { return Reg{kind: regKindHard, index: number} }

// VReg wraps a virtual register index.
func VReg(index int) Reg { return Reg{kind: regKindVirtual, index: index} }

// SpilledReg wraps a spill-slot index assigned by the register allocator.
func SpilledReg(index int) Reg { return Reg{kind: regKindSpilled, index: index} }

func (r Reg) IsHardReg() bool    { return r.kind == regKindHard }
func (r Reg) IsVReg() bool       { return r.kind == regKindVirtual }
func (r Reg) IsSpilledReg() bool { return r.kind == regKindSpilled }

// Index returns the raw index for whichever namespace Reg belongs to:
// the hard-register number, the virtual-register index, or the
// spill-slot index.
func (r Reg) Index() int { return r.index }

// HardRegName names a physical register for the debug printer. Each
// hostasm package supplies its own table (x86_64 register names,
// aarch64 register names); machineir has no opinion on physical
// register numbering.
type HardRegName func(number int) string

func (r Reg) DebugString(hardName HardRegName) string {
	switch r.kind {
	case regKindHard:
		if hardName != nil {
			return hardName(r.index)
		}
		return fmt.Sprintf("hw%d", r.index)
	case regKindVirtual:
		return fmt.Sprintf("v%d", r.index)
	case regKindSpilled:
		return fmt.Sprintf("s%d", r.index)
	default:
		return "?"
	}
}

// OperandUse is how an instruction reads or writes a register operand.
type OperandUse uint8

const (
	OperandUseUse OperandUse = iota
	OperandUseDef
	OperandUseDefEarlyClobber
	OperandUseUseDef
)

func (u OperandUse) String() string {
	switch u {
	case OperandUseUse:
		return "use"
	case OperandUseDef:
		return "def"
	case OperandUseDefEarlyClobber:
		return "def-early-clobber"
	case OperandUseUseDef:
		return "use-def"
	default:
		return "?"
	}
}

// Operand pairs a register with how the owning instruction uses it.
type Operand struct {
	Reg Reg
	Use OperandUse
}
