// Package guestabi marshals guest function arguments and results between
// the wire formats each direction needs: a GuestArgumentBuffer for a
// host→guest call, or a live ThreadState's register file for a
// guest→host trampoline. It sits on top of package callconv, which
// supplies the per-ABI location assignment, and package gueststate,
// which supplies the register file a trampoline reads/writes directly.
package guestabi

import (
	"berberis/berrors"
	"berberis/callconv"
)

// ArgumentClass is how a single argument or result value is routed by
// the calling convention: as an integer, a floating-point value, or (for
// a struct too large to fit in registers) an implicit pointer passed
// through the integer class.
type ArgumentClass int

const (
	ArgumentClassInteger ArgumentClass = iota
	ArgumentClassFP
	ArgumentClassLargeStruct
)

// ArgumentInfo is everything the layout pass needs about one argument or
// a return value, independent of its Go type — callers derive it from
// the guest function signature they are marshalling.
type ArgumentInfo struct {
	Class     ArgumentClass
	Size      uint32
	Alignment uint32
}

// cursor is the subset of a callconv per-ABI cursor that layout needs.
// AAPCSCursor, AAPCS64Cursor, and LP64Cursor all satisfy it.
type cursor interface {
	NextIntArgLoc(size, alignment uint32) callconv.ArgLocation
	NextFPArgLoc(size, alignment uint32) callconv.ArgLocation
	IntResultLoc(size uint32) callconv.ArgLocation
	FPResultLoc(size uint32) callconv.ArgLocation
}

// LayoutCall assigns a location to the result and to every argument, in
// that order. The result is laid out first — even though it is read
// last — because a large-struct result reserves the leading integer
// register as an implicit pointer argument, and every visible argument
// must be assigned after that reservation takes effect.
func LayoutCall(conv cursor, result ArgumentInfo, args []ArgumentInfo) (callconv.ArgLocation, []callconv.ArgLocation) {
	resultLoc := resultLocFor(conv, result)
	argLocs := make([]callconv.ArgLocation, len(args))
	for i, a := range args {
		argLocs[i] = nextLocFor(conv, a)
	}
	return resultLoc, argLocs
}

func resultLocFor(conv cursor, info ArgumentInfo) callconv.ArgLocation {
	switch info.Class {
	case ArgumentClassInteger:
		return conv.IntResultLoc(info.Size)
	case ArgumentClassFP:
		return conv.FPResultLoc(info.Size)
	case ArgumentClassLargeStruct:
		// The caller allocates storage and passes its address as an
		// implicit leading integer argument.
		return implicitPointerLoc(conv)
	default:
		berrors.Fatalf("guestabi: unsupported argument class %v", info.Class)
		return callconv.ArgLocation{}
	}
}

func nextLocFor(conv cursor, info ArgumentInfo) callconv.ArgLocation {
	switch info.Class {
	case ArgumentClassInteger:
		return conv.NextIntArgLoc(info.Size, info.Alignment)
	case ArgumentClassLargeStruct:
		return implicitPointerLoc(conv)
	case ArgumentClassFP:
		return conv.NextFPArgLoc(info.Size, info.Alignment)
	default:
		berrors.Fatalf("guestabi: unsupported argument class %v", info.Class)
		return callconv.ArgLocation{}
	}
}

// implicitPointerLoc assigns the next integer location to a pointer-sized
// argument: 4 bytes under AAPCS, 8 bytes under the 64-bit ABIs.
func implicitPointerLoc(conv cursor) callconv.ArgLocation {
	if _, ok := conv.(*callconv.AAPCSCursor); ok {
		return conv.NextIntArgLoc(4, 4)
	}
	return conv.NextIntArgLoc(8, 8)
}
