package gueststate

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"

	"berberis/berrors"
)

// ThreadState is the per-guest-thread record: CPU register file plus the
// bookkeeping every trampoline and syscall wrapper touches. Only the
// owning thread writes its own register file; other threads (a debugger,
// a signal handler) may read it, which is why PendingSignalsStatus is
// atomic and CPU is reached through the opaque CPUState interface rather
// than a pointer callers could race on the concrete layout of.
//
// The accessor header published at storage[0:accessorHeaderSize] records
// this struct's address (DataPointer) so an external debugger attached
// to the host process can walk from the mapping to the live state
// without any other channel — mirroring how the source keeps ThreadState
// embedded in the same mmap region as its header. Go does not let us
// place a managed struct at a chosen address, so here the mmap region
// holds only the header and ThreadState itself lives on the Go heap;
// DataPointer records its runtime address instead of an in-region offset.
type ThreadState struct {
	ISA GuestISA
	CPU CPUState

	Thread         any // opaque back-reference to the owning guest thread
	InstrumentData any // opaque per-thread instrumentation pointer

	pendingSignalsStatus atomic.Uint32
	residence            Residence

	storage []byte // mmap'd region backing the published accessor header
}

func alignUpPageSize(n, pageSize int) int {
	return (n + pageSize - 1) &^ (pageSize - 1)
}

// CreateThreadState allocates a page-aligned accessor-header mapping,
// builds a zeroed CPU state for isa, sets residence to outside-code and
// pending signals to disabled, and publishes the header.
func CreateThreadState(isa GuestISA, hostArch HostArch) (*ThreadState, error) {
	pageSize := unix.Getpagesize()
	regionSize := alignUpPageSize(accessorHeaderSize, pageSize)

	region, err := unix.Mmap(-1, 0, regionSize,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, berrors.WrapLoader("gueststate.mmap", err)
	}

	state := &ThreadState{ISA: isa, storage: region}

	switch isa {
	case ISAArm32:
		state.CPU = &CPUStateARM{}
	case ISAArm64:
		state.CPU = &CPUStateARM64{}
	case ISARiscv64:
		state.CPU = &CPUStateRISCV64{}
	default:
		berrors.Fatalf("gueststate: unknown guest isa %v", isa)
	}

	state.residence = ResidenceOutsideGeneratedCode
	state.pendingSignalsStatus.Store(uint32(PendingSignalsDisabled))

	dataPointer := uint64(uintptr(unsafe.Pointer(state)))
	writeAccessorHeader(region, hostArch, isa, dataPointer, uint64(len(region)))

	return state, nil
}

// DestroyThreadState releases the mapping backing state's accessor
// header. state must not be used afterward.
func DestroyThreadState(state *ThreadState) error {
	berrors.CheckFatal(state != nil, "gueststate: destroy of nil thread state")
	return unix.Munmap(state.storage)
}

func (s *ThreadState) AccessorHeaderBytes() []byte { return s.storage }

func GetGuestThread(s *ThreadState) any       { return s.Thread }
func SetGuestThread(s *ThreadState, t any)    { s.Thread = t }

func GetResidence(s *ThreadState) Residence          { return s.residence }
func SetResidence(s *ThreadState, r Residence)        { s.residence = r }

func GetPendingSignalsStatus(s *ThreadState) PendingSignalsStatus {
	return PendingSignalsStatus(s.pendingSignalsStatus.Load())
}

func SetPendingSignalsStatus(s *ThreadState, status PendingSignalsStatus) {
	s.pendingSignalsStatus.Store(uint32(status))
}

func ArePendingSignalsPresent(s *ThreadState) bool {
	return GetPendingSignalsStatus(s) == PendingSignalsPresent
}

func GetCPUState(s *ThreadState) CPUState       { return s.CPU }
func SetCPUState(s *ThreadState, cpu CPUState)  { s.CPU = cpu }

func GetInsnAddr(s *ThreadState) uint64       { return s.CPU.InsnAddr() }
func SetInsnAddr(s *ThreadState, addr uint64) { s.CPU.SetInsnAddr(addr) }
