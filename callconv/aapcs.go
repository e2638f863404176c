package callconv

// AAPCSCursor assigns argument locations for the 32-bit ARM procedure
// call standard: integer args consume consecutive 32-bit slots in
// r0..r3, FP args consume slots in s0..s15, and once any FP arg spills
// to stack every subsequent FP arg also goes to stack.
//
// Ported from calling_conventions_arm.h's CallingConventions, which
// tracks progress as byte offsets (int_byte_offset_, up to
// kMaxIntByteOffset=16 i.e. 4 registers of 4 bytes) and a bitmask of
// free SIMD slots (simd_mask_, 16 bits for s0..s15) rather than a
// register index — that's what lets a split 8-byte argument skip an
// odd register directly from the arithmetic instead of a branch.
//
// DIVERGENT FROM THE PUBLISHED AAPCS: stack alignment for an
// over-aligned (>8 byte) parameter is capped at 8, not widened to the
// parameter's own alignment, exactly mirroring the source. This is
// documented in spec.md §9 as a deliberate compatibility choice with
// existing guest binaries; it is preserved here rather than "fixed".
type AAPCSCursor struct {
	intByteOffset   uint32
	simdMask        uint32
	initStackOffset uint32
	stackOffset     uint32
}

const (
	aapcsMaxIntByteOffset = 16 // r0..r3, 4 bytes each
	aapcsMaxSimdOffset    = 16 // s0..s15
	// AAPCSStackAlignmentBeforeCall is the ABI-mandated SP alignment on entry
	// to a callee.
	AAPCSStackAlignmentBeforeCall = 8
)

// NewAAPCSCursor returns a cursor starting at the beginning of the
// argument area.
func NewAAPCSCursor() *AAPCSCursor {
	return &AAPCSCursor{simdMask: (1 << aapcsMaxSimdOffset) - 1}
}

// NewAAPCSVarArgsCursor returns a cursor for va_list_params: the
// variadic scan resumes after stack bytes already consumed by named
// arguments, and (per AAPCS) no further FP registers are available —
// variadic FP arguments always travel through the integer path, so the
// simd mask starts fully consumed.
func NewAAPCSVarArgsCursor(stackBytesAlreadyUsed uint32) *AAPCSCursor {
	return &AAPCSCursor{
		intByteOffset:   aapcsMaxIntByteOffset,
		simdMask:        0,
		initStackOffset: stackBytesAlreadyUsed,
		stackOffset:     stackBytesAlreadyUsed,
	}
}

// NextIntArgLoc assigns the next integer (or pointer, or small-struct)
// argument of size/alignment bytes.
func (c *AAPCSCursor) NextIntArgLoc(size, alignment uint32) ArgLocation {
	var paramAlignment, paramSize uint32
	switch {
	case alignment < 4:
		paramAlignment = 4
		paramSize = alignUp(size, 4)
	case alignment > 8:
		paramAlignment = 8
		paramSize = size
	default:
		paramAlignment = alignment
		paramSize = size
	}

	paramOffset := alignUp(c.intByteOffset, paramAlignment)

	if paramOffset+paramSize <= aapcsMaxIntByteOffset {
		c.intByteOffset = paramOffset + paramSize
		return ArgLocation{KindIntReg, paramOffset / 4}
	}

	if paramOffset < aapcsMaxIntByteOffset && c.stackOffset == c.initStackOffset {
		c.intByteOffset = aapcsMaxIntByteOffset
		c.stackOffset = paramOffset + paramSize - aapcsMaxIntByteOffset
		return ArgLocation{KindIntRegAndStack, paramOffset / 4}
	}

	c.intByteOffset = aapcsMaxIntByteOffset

	paramOffset = alignUp(c.stackOffset, paramAlignment)
	c.stackOffset = paramOffset + paramSize
	return ArgLocation{KindStack, paramOffset}
}

// NextFPArgLoc assigns the next floating-point argument. A 128-bit
// (quad/NEON) argument needs 4 consecutive even-aligned s-registers.
func (c *AAPCSCursor) NextFPArgLoc(size, alignment uint32) ArgLocation {
	if c.simdMask != 0 {
		paramSizeMask := (uint32(1) << (size / 4)) - 1
		for index := uint32(0); index < aapcsMaxSimdOffset; index += alignment / 4 {
			paramMask := paramSizeMask << index
			if c.simdMask&paramMask == paramMask {
				c.simdMask &^= paramMask
				return ArgLocation{KindSimdReg, index}
			}
		}
		// No available SIMD registers: this and every later FP arg goes
		// to stack.
		c.simdMask = 0
	}

	paramOffset := alignUp(c.stackOffset, alignment)
	c.stackOffset = paramOffset + size
	return ArgLocation{KindStack, paramOffset}
}

// IntResultLoc returns the location of an integer/pointer return value
// up to 16 bytes (r0, or r0:r1/r0:r3 for the caller to interpret
// multi-register results from the declared size).
func (c *AAPCSCursor) IntResultLoc(size uint32) ArgLocation {
	return ArgLocation{KindIntReg, 0}
}

// FPResultLoc returns the location of a floating-point return value
// (s0, or s0-s3/d0 for the caller to interpret wider results).
func (c *AAPCSCursor) FPResultLoc(size uint32) ArgLocation {
	return ArgLocation{KindSimdReg, 0}
}
