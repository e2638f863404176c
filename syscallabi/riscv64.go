// Package syscallabi translates guest syscall numbers to the host's
// syscall numbers and invokes the translated syscall. The mapping is a
// dense, per-guest-ISA table; a guest number with no host counterpart
// resolves to NoHostSyscall and the caller reports ENOSYS to the guest.
//
// Grounded on
// original_source/guest_os_primitives/include/berberis/guest_os_primitives/gen_syscall_numbers_riscv64.h
// for the guest-side GUEST_NR_* values (a generated dense enum) and
// golang.org/x/sys/unix's SYS_* constants for the host Linux/amd64
// numbers, the same dependency the gueststate package already uses
// for mmap/munmap.
package syscallabi

import "golang.org/x/sys/unix"

// GuestNR is a RISC-V64 Linux guest syscall number, as defined by the
// guest kernel's generic syscall table.
type GuestNR uint32

const (
	GuestNRIoctl          GuestNR = 29
	GuestNRUnlinkat       GuestNR = 35
	GuestNRMkdirat        GuestNR = 34
	GuestNROpenat         GuestNR = 56
	GuestNRClose          GuestNR = 57
	GuestNRLseek          GuestNR = 62
	GuestNRRead           GuestNR = 63
	GuestNRWrite          GuestNR = 64
	GuestNRReadv          GuestNR = 65
	GuestNRWritev         GuestNR = 66
	GuestNRPread64        GuestNR = 67
	GuestNRPwrite64       GuestNR = 68
	GuestNRPselect6       GuestNR = 72
	GuestNRPpoll          GuestNR = 73
	GuestNRNewfstatat     GuestNR = 79
	GuestNRFstat          GuestNR = 80
	GuestNRFstatfs        GuestNR = 44
	GuestNRNanosleep      GuestNR = 101
	GuestNRClockGettime   GuestNR = 113
	GuestNRSchedYield     GuestNR = 124
	GuestNRRtSigaction    GuestNR = 134
	GuestNRRtSigprocmask  GuestNR = 135
	GuestNRTgkill         GuestNR = 131
	GuestNRSetRobustList  GuestNR = 99
	GuestNRSetTidAddress  GuestNR = 96
	GuestNRFutex          GuestNR = 98
	GuestNRSocket         GuestNR = 198
	GuestNRConnect        GuestNR = 203
	GuestNRSendto         GuestNR = 206
	GuestNRRecvfrom       GuestNR = 207
	GuestNRGetpid         GuestNR = 172
	GuestNRGettid         GuestNR = 178
	GuestNRPrlimit64      GuestNR = 261
	GuestNRGetrandom      GuestNR = 278
	GuestNRStatx          GuestNR = 291
	GuestNRBrk            GuestNR = 214
	GuestNRMunmap         GuestNR = 215
	GuestNRClone          GuestNR = 220
	GuestNRExecve         GuestNR = 221
	GuestNRMmap           GuestNR = 222
	GuestNRMprotect       GuestNR = 226
	GuestNRMadvise        GuestNR = 233
	GuestNRExit           GuestNR = 93
	GuestNRExitGroup      GuestNR = 94
)

// NoHostSyscall is returned by ToHostSyscallNumber when the guest
// syscall has no host counterpart; the caller must report ENOSYS.
const NoHostSyscall = -1

// riscv64ToHost is the dense guest_nr -> host_nr table for the subset
// of the guest syscall surface this translator wires up to a host
// Linux/amd64 invocation. Syscalls absent from this table (guest
// numbers with no listed host number) fall through ToHostSyscallNumber
// to NoHostSyscall.
var riscv64ToHost = map[GuestNR]uintptr{
	GuestNRIoctl:         unix.SYS_IOCTL,
	GuestNRUnlinkat:      unix.SYS_UNLINKAT,
	GuestNRMkdirat:       unix.SYS_MKDIRAT,
	GuestNROpenat:        unix.SYS_OPENAT,
	GuestNRClose:         unix.SYS_CLOSE,
	GuestNRLseek:         unix.SYS_LSEEK,
	GuestNRRead:          unix.SYS_READ,
	GuestNRWrite:         unix.SYS_WRITE,
	GuestNRReadv:         unix.SYS_READV,
	GuestNRWritev:        unix.SYS_WRITEV,
	GuestNRPread64:       unix.SYS_PREAD64,
	GuestNRPwrite64:      unix.SYS_PWRITE64,
	GuestNRPselect6:      unix.SYS_PSELECT6,
	GuestNRPpoll:         unix.SYS_PPOLL,
	GuestNRNewfstatat:    unix.SYS_NEWFSTATAT,
	GuestNRFstat:         unix.SYS_FSTAT,
	GuestNRFstatfs:       unix.SYS_FSTATFS,
	GuestNRNanosleep:     unix.SYS_NANOSLEEP,
	GuestNRClockGettime:  unix.SYS_CLOCK_GETTIME,
	GuestNRSchedYield:    unix.SYS_SCHED_YIELD,
	GuestNRRtSigaction:   unix.SYS_RT_SIGACTION,
	GuestNRRtSigprocmask: unix.SYS_RT_SIGPROCMASK,
	GuestNRTgkill:        unix.SYS_TGKILL,
	GuestNRSetRobustList: unix.SYS_SET_ROBUST_LIST,
	GuestNRSetTidAddress: unix.SYS_SET_TID_ADDRESS,
	GuestNRFutex:         unix.SYS_FUTEX,
	GuestNRSocket:        unix.SYS_SOCKET,
	GuestNRConnect:       unix.SYS_CONNECT,
	GuestNRSendto:        unix.SYS_SENDTO,
	GuestNRRecvfrom:      unix.SYS_RECVFROM,
	GuestNRGetpid:        unix.SYS_GETPID,
	GuestNRGettid:        unix.SYS_GETTID,
	GuestNRPrlimit64:     unix.SYS_PRLIMIT64,
	GuestNRGetrandom:     unix.SYS_GETRANDOM,
	GuestNRStatx:         unix.SYS_STATX,
	GuestNRBrk:           unix.SYS_BRK,
	GuestNRMunmap:        unix.SYS_MUNMAP,
	GuestNRClone:         unix.SYS_CLONE,
	GuestNRExecve:        unix.SYS_EXECVE,
	GuestNRMmap:          unix.SYS_MMAP,
	GuestNRMprotect:      unix.SYS_MPROTECT,
	GuestNRMadvise:       unix.SYS_MADVISE,
	GuestNRExit:          unix.SYS_EXIT,
	GuestNRExitGroup:     unix.SYS_EXIT_GROUP,
}

var hostToRiscv64 = reverseTable(riscv64ToHost)

func reverseTable(m map[GuestNR]uintptr) map[uintptr]GuestNR {
	out := make(map[uintptr]GuestNR, len(m))
	for guest, host := range m {
		out[host] = guest
	}
	return out
}

// ToHostSyscallNumber translates a RISC-V64 guest syscall number to the
// host's syscall number, or NoHostSyscall if the guest syscall has no
// translated counterpart.
func ToHostSyscallNumber(guestNR GuestNR) int64 {
	host, ok := riscv64ToHost[guestNR]
	if !ok {
		return NoHostSyscall
	}
	return int64(host)
}

// FromHostSyscallNumber is ToHostSyscallNumber's inverse, used by the
// trace/intercept layer to name a syscall the host reports back.
func FromHostSyscallNumber(hostNR uintptr) (GuestNR, bool) {
	guest, ok := hostToRiscv64[hostNR]
	return guest, ok
}
