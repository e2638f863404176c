// Package execregion is the generated-host-code cache: a single memfd
// mapped twice, once read-execute for guest code to jump into and once
// read-write for codegen to fill in, so the cache never needs to flip a
// page between writable and executable.
//
// Grounded on original_source/runtime_primitives/exec_region_elf_backed.cc's
// ExecRegionElfBackedFactory::Create: a memfd sized to the region,
// ftruncate'd, then mmap'd twice with MAP_SHARED so both views alias the
// same physical pages.
package execregion

import (
	"unsafe"

	"berberis/berrors"

	"golang.org/x/sys/unix"
)

// Region is a dual-mapped code cache: Write is the view codegen fills
// in, Exec is the view generated code is reached through. Both slices
// alias the same underlying pages.
type Region struct {
	Write []byte
	Exec  []byte
}

func alignUpPageSize(n, pageSize int) int {
	return (n + pageSize - 1) &^ (pageSize - 1)
}

// Create reserves a code cache of at least size bytes, backed by a
// memfd so the write and execute mappings share physical pages.
func Create(size int) (*Region, error) {
	pageSize := unix.Getpagesize()
	size = alignUpPageSize(size, pageSize)

	fd, err := unix.MemfdCreate("berberis_exec_region", 0)
	if err != nil {
		return nil, berrors.WrapLoader("execregion.memfd_create", err)
	}
	defer unix.Close(fd)

	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		return nil, berrors.WrapLoader("execregion.ftruncate", err)
	}

	execView, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_EXEC, unix.MAP_SHARED)
	if err != nil {
		return nil, berrors.WrapLoader("execregion.mmap_exec", err)
	}

	writeView, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Munmap(execView)
		return nil, berrors.WrapLoader("execregion.mmap_write", err)
	}

	return &Region{Write: writeView, Exec: execView}, nil
}

// Close unmaps both views. r must not be used afterward.
func (r *Region) Close() error {
	if err := unix.Munmap(r.Write); err != nil {
		return berrors.WrapLoader("execregion.munmap_write", err)
	}
	if err := unix.Munmap(r.Exec); err != nil {
		return berrors.WrapLoader("execregion.munmap_exec", err)
	}
	return nil
}

// Size returns the region's capacity in bytes.
func (r *Region) Size() int { return len(r.Write) }

// ExecAddr returns the guest-reachable address of offset bytes into the
// region's execute view, for installing into a dispatch table entry.
func (r *Region) ExecAddr(offset int) uintptr {
	berrors.CheckFatal(offset >= 0 && offset <= len(r.Exec), "execregion: offset %d out of range [0,%d]", offset, len(r.Exec))
	return uintptr(offset) + firstByteAddr(r.Exec)
}

func firstByteAddr(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}
