// Package callconv implements the calling-convention engine: one
// stateful cursor per guest ABI (AAPCS, AAPCS64, LP64, LP64D) that
// assigns each argument a location given its (class, size, alignment),
// in the same order the ABI marshaller (package guestabi) will ask for
// them. Every cursor is a pure algorithm over integers — it never
// touches guest state or memory.
package callconv

// ArgLocationKind is the location class an argument or return value is
// assigned to.
type ArgLocationKind int

const (
	KindNone ArgLocationKind = iota
	KindStack
	KindIntReg
	KindFPReg
	KindSimdReg
	// KindIntRegAndStack: the AAPCS-only case where an argument is split
	// across the last remaining integer register and the stack.
	KindIntRegAndStack
)

func (k ArgLocationKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindStack:
		return "stack"
	case KindIntReg:
		return "int_reg"
	case KindFPReg:
		return "fp_reg"
	case KindSimdReg:
		return "simd_reg"
	case KindIntRegAndStack:
		return "int_reg_and_stack"
	default:
		return "unknown"
	}
}

// ArgLocation names where an argument or return value lives. Offset's
// meaning depends on Kind: a register index for KindIntReg/KindFPReg/
// KindSimdReg, a byte offset into the outgoing stack area for
// KindStack, or (for KindIntRegAndStack) the index of the first integer
// register the split occupies — the remaining bytes
// land at stack offset 0 of the outgoing stack area.
type ArgLocation struct {
	Kind   ArgLocationKind
	Offset uint32
}

func alignUp(v, alignment uint32) uint32 {
	if alignment == 0 {
		return v
	}
	return (v + alignment - 1) &^ (alignment - 1)
}
