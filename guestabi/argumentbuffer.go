package guestabi

import (
	"encoding/binary"

	"berberis/berrors"
	"berberis/callconv"
)

// GuestArgumentBuffer is the wire format every host→guest call
// marshaller fills in before handing control to a trampoline, per the
// external-interfaces layout: a fixed number of 8-byte integer slots, a
// fixed number of 16-byte SIMD/FP slots (arm64's v-registers; narrower
// ABIs use only the low bytes), and a variable-length stack area.
type GuestArgumentBuffer struct {
	Argc, Resc         int32
	SimdArgc, SimdResc int32
	StackArgc          int32

	Argv     [8]uint64
	SimdArgv [8][16]byte
	StackArgv []byte
}

// NewGuestArgumentBuffer allocates a buffer with stackBytes of scratch
// space for stack-passed arguments.
func NewGuestArgumentBuffer(stackBytes int) *GuestArgumentBuffer {
	return &GuestArgumentBuffer{StackArgc: int32(stackBytes), StackArgv: make([]byte, stackBytes)}
}

// PutIntArg writes a register-width integer argument or the register
// portion of an AAPCS IntRegAndStack split.
func PutIntArg(buf *GuestArgumentBuffer, loc callconv.ArgLocation, val uint64) {
	switch loc.Kind {
	case callconv.KindIntReg:
		buf.Argv[loc.Offset] = val
	case callconv.KindIntRegAndStack:
		putIntRegAndStack(buf, loc, val)
	case callconv.KindStack:
		binary.LittleEndian.PutUint64(buf.StackArgv[loc.Offset:], val)
	default:
		berrors.Fatalf("guestabi: PutIntArg on location kind %v", loc.Kind)
	}
}

// GetIntArg is the inverse of PutIntArg.
func GetIntArg(buf *GuestArgumentBuffer, loc callconv.ArgLocation) uint64 {
	switch loc.Kind {
	case callconv.KindIntReg:
		return buf.Argv[loc.Offset]
	case callconv.KindIntRegAndStack:
		return getIntRegAndStack(buf, loc)
	case callconv.KindStack:
		return binary.LittleEndian.Uint64(buf.StackArgv[loc.Offset:])
	default:
		berrors.Fatalf("guestabi: GetIntArg on location kind %v", loc.Kind)
		return 0
	}
}

// PutFPArg writes a floating-point or SIMD argument. size selects how
// many bytes of the 16-byte slot are meaningful (4 for a float, 8 for a
// double, 16 for a vector register).
func PutFPArg(buf *GuestArgumentBuffer, loc callconv.ArgLocation, size uint32, val [16]byte) {
	switch loc.Kind {
	case callconv.KindFPReg, callconv.KindSimdReg:
		buf.SimdArgv[loc.Offset] = val
	case callconv.KindStack:
		copy(buf.StackArgv[loc.Offset:], val[:size])
	default:
		berrors.Fatalf("guestabi: PutFPArg on location kind %v", loc.Kind)
	}
}

func GetFPArg(buf *GuestArgumentBuffer, loc callconv.ArgLocation, size uint32) [16]byte {
	switch loc.Kind {
	case callconv.KindFPReg, callconv.KindSimdReg:
		return buf.SimdArgv[loc.Offset]
	case callconv.KindStack:
		var out [16]byte
		copy(out[:size], buf.StackArgv[loc.Offset:])
		return out
	default:
		berrors.Fatalf("guestabi: GetFPArg on location kind %v", loc.Kind)
		return [16]byte{}
	}
}

// aapcsIntRegFileBytes is the byte width of the AAPCS integer register
// file (r0..r3, 4 bytes each) — the only ABI that ever produces
// KindIntRegAndStack.
const aapcsIntRegFileBytes = 16

func putIntRegAndStack(buf *GuestArgumentBuffer, loc callconv.ArgLocation, val uint64) {
	var bytes [8]byte
	binary.LittleEndian.PutUint64(bytes[:], val)

	registerBytes := aapcsIntRegFileBytes - loc.Offset*4
	var regWord [8]byte
	copy(regWord[:], bytes[:registerBytes])
	buf.Argv[loc.Offset] = binary.LittleEndian.Uint64(regWord[:])
	copy(buf.StackArgv, bytes[registerBytes:])
}

func getIntRegAndStack(buf *GuestArgumentBuffer, loc callconv.ArgLocation) uint64 {
	registerBytes := aapcsIntRegFileBytes - loc.Offset*4
	var bytes [8]byte
	var regWord [8]byte
	binary.LittleEndian.PutUint64(regWord[:], buf.Argv[loc.Offset])
	copy(bytes[:registerBytes], regWord[:registerBytes])
	copy(bytes[registerBytes:], buf.StackArgv)
	return binary.LittleEndian.Uint64(bytes[:])
}
