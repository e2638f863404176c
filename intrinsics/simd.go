package intrinsics

import "encoding/binary"

// SIMD128 is the 128-bit register type vector intrinsics operate on. It
// is element-type-agnostic storage; callers reinterpret it via the
// Get*/Set* accessors below, mirroring the source's SIMD128Register
// union-of-vectors layout (little-endian on every host/guest ISA this
// translator targets).
type SIMD128 [16]byte

func GetU8(r SIMD128, index int) uint8   { return r[index] }
func GetU16(r SIMD128, index int) uint16 { return binary.LittleEndian.Uint16(r[index*2:]) }
func GetU32(r SIMD128, index int) uint32 { return binary.LittleEndian.Uint32(r[index*4:]) }
func GetU64(r SIMD128, index int) uint64 { return binary.LittleEndian.Uint64(r[index*8:]) }

func GetI8(r SIMD128, index int) int8   { return int8(GetU8(r, index)) }
func GetI16(r SIMD128, index int) int16 { return int16(GetU16(r, index)) }
func GetI32(r SIMD128, index int) int32 { return int32(GetU32(r, index)) }
func GetI64(r SIMD128, index int) int64 { return int64(GetU64(r, index)) }

func SetU8(r *SIMD128, v uint8, index int)   { r[index] = v }
func SetU16(r *SIMD128, v uint16, index int) { binary.LittleEndian.PutUint16(r[index*2:], v) }
func SetU32(r *SIMD128, v uint32, index int) { binary.LittleEndian.PutUint32(r[index*4:], v) }
func SetU64(r *SIMD128, v uint64, index int) { binary.LittleEndian.PutUint64(r[index*8:], v) }

func SetI8(r *SIMD128, v int8, index int)   { SetU8(r, uint8(v), index) }
func SetI16(r *SIMD128, v int16, index int) { SetU16(r, uint16(v), index) }
func SetI32(r *SIMD128, v int32, index int) { SetU32(r, uint32(v), index) }
func SetI64(r *SIMD128, v int64, index int) { SetU64(r, uint64(v), index) }
