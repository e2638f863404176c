package gueststate

import "encoding/binary"

// HostArch and GuestArch enumerate the architectures named in the
// accessor header so an external debugger can decode which encoding the
// attached ThreadState uses, without reading any other process state.
type HostArch uint32

const (
	HostArchX86 HostArch = iota
	HostArchX86_64
	HostArchArm64
)

type accessorGuestArch uint32

const (
	accessorGuestArm accessorGuestArch = iota
	accessorGuestArm64
	accessorGuestRiscv64
)

func guestArchFor(isa GuestISA) accessorGuestArch {
	switch isa {
	case ISAArm32:
		return accessorGuestArm
	case ISAArm64:
		return accessorGuestArm64
	case ISARiscv64:
		return accessorGuestRiscv64
	default:
		return accessorGuestArch(^uint32(0))
	}
}

const accessorHeaderSignature uint32 = 0x4252_4253 // "SBRB", matched byte for byte by external readers.

// accessorHeaderSize is the published, bit-exact layout: 4-byte
// signature, 4-byte host-arch, 4-byte guest-arch, 8-byte data pointer at
// offset 12, 8-byte data size at offset 20 — deliberately unpadded, so it
// is serialized by hand with encoding/binary rather than through a
// naturally-aligned Go struct (which would insert padding before the
// 8-byte fields and shift them to offsets 16/24).
const accessorHeaderSize = 28

func writeAccessorHeader(buf []byte, hostArch HostArch, isa GuestISA, dataPointer, dataSize uint64) {
	_ = buf[accessorHeaderSize-1]
	binary.LittleEndian.PutUint32(buf[0:4], accessorHeaderSignature)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(hostArch))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(guestArchFor(isa)))
	binary.LittleEndian.PutUint64(buf[12:20], dataPointer)
	binary.LittleEndian.PutUint64(buf[20:28], dataSize)
}

// ReadAccessorHeader decodes a header written by writeAccessorHeader,
// for use by tests and any external-facing debug tooling that wants to
// validate the bytes this package publishes.
func ReadAccessorHeader(buf []byte) (signature uint32, hostArch HostArch, guestArch uint32, dataPointer, dataSize uint64) {
	_ = buf[accessorHeaderSize-1]
	signature = binary.LittleEndian.Uint32(buf[0:4])
	hostArch = HostArch(binary.LittleEndian.Uint32(buf[4:8]))
	guestArch = binary.LittleEndian.Uint32(buf[8:12])
	dataPointer = binary.LittleEndian.Uint64(buf[12:20])
	dataSize = binary.LittleEndian.Uint64(buf[20:28])
	return
}
