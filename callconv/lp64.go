package callconv

// LP64Cursor assigns argument locations for the RISC-V 64 LP64 (soft
// float) and LP64D (hardware float-and-double) calling conventions.
// Integer args consume 1 or 2 consecutive 64-bit slots in a0..a7. Under
// LP64D, FP args consume slots in fa0..fa7; once those are exhausted,
// subsequent FP args spill into the remaining integer registers (a0..a7)
// before finally spilling to stack — the one place RISC-V's convention
// differs from AAPCS64's "once exhausted, always stack" rule. Under
// LP64 there are no FP registers at all: HardFloat is false and
// NextFPArgLoc/FPResultLoc route every "FP" argument and result through
// the integer path (NextIntArgLoc/IntResultLoc).
//
// Ported from calling_conventions_riscv64.h's CallingConventions,
// extended with the FP-registers-exhausted-spills-to-int-registers rule
// from spec.md §4.4 / scenario 3, which the retrieved header (an earlier
// revision) does not yet show.
type LP64Cursor struct {
	HardFloat bool // true selects LP64D; false selects LP64

	intOffset   uint32
	fpOffset    uint32
	stackOffset uint32
}

const (
	lp64MaxIntOffset = 8 // a0..a7
	lp64MaxFPOffset  = 8 // fa0..fa7

	LP64StackAlignmentBeforeCall = 16
)

// NewLP64Cursor returns a cursor for the soft-float LP64 ABI.
func NewLP64Cursor() *LP64Cursor {
	return &LP64Cursor{HardFloat: false}
}

// NewLP64DCursor returns a cursor for the hardware float-and-double
// LP64D ABI.
func NewLP64DCursor() *LP64Cursor {
	return &LP64Cursor{HardFloat: true}
}

func (c *LP64Cursor) NextIntArgLoc(size, alignment uint32) ArgLocation {
	sizeInRegs := uint32(1)
	if size > 8 {
		sizeInRegs = 2
	}
	alignedIntOffset := alignUp(c.intOffset, sizeInRegs)

	if alignedIntOffset+sizeInRegs <= lp64MaxIntOffset {
		c.intOffset = alignedIntOffset + sizeInRegs
		return ArgLocation{KindIntReg, alignedIntOffset}
	}

	c.intOffset = lp64MaxIntOffset
	return c.nextStackArgLoc(size, alignment)
}

// NextFPArgLoc assigns the next floating-point argument. Under LP64
// (HardFloat==false) the FP argument class is integer, so this defers to
// NextIntArgLoc.
func (c *LP64Cursor) NextFPArgLoc(size, alignment uint32) ArgLocation {
	if !c.HardFloat {
		return c.NextIntArgLoc(size, alignment)
	}
	if c.fpOffset < lp64MaxFPOffset {
		loc := ArgLocation{KindFPReg, c.fpOffset}
		c.fpOffset++
		return loc
	}

	// FP registers exhausted: spill into the remaining integer
	// registers before falling back to stack.
	if c.intOffset < lp64MaxIntOffset {
		sizeInRegs := uint32(1)
		if size > 8 {
			sizeInRegs = 2
		}
		alignedIntOffset := alignUp(c.intOffset, sizeInRegs)
		if alignedIntOffset+sizeInRegs <= lp64MaxIntOffset {
			c.intOffset = alignedIntOffset + sizeInRegs
			return ArgLocation{KindIntReg, alignedIntOffset}
		}
		c.intOffset = lp64MaxIntOffset
	}

	return c.nextStackArgLoc(size, alignment)
}

func (c *LP64Cursor) nextStackArgLoc(size, alignment uint32) ArgLocation {
	alignmentInStack := alignment
	if alignmentInStack < 8 {
		alignmentInStack = 8
	}
	sizeInStack := alignUp(size, alignmentInStack)
	alignedStackOffset := alignUp(c.stackOffset, alignmentInStack)
	c.stackOffset = alignedStackOffset + sizeInStack
	return ArgLocation{KindStack, alignedStackOffset}
}

// IntResultLoc returns a0 (x10). Large-struct returns use a0 as a
// hidden pointer per spec.md §4.4; that indirection is handled by
// package guestabi.
func (c *LP64Cursor) IntResultLoc(size uint32) ArgLocation {
	return ArgLocation{KindIntReg, 0}
}

// FPResultLoc returns fa0 (f10). Under LP64 (soft float) FP results
// travel through IntResultLoc instead.
func (c *LP64Cursor) FPResultLoc(size uint32) ArgLocation {
	if !c.HardFloat {
		return c.IntResultLoc(size)
	}
	return ArgLocation{KindFPReg, 0}
}
