package syscallabi

import "golang.org/x/sys/unix"

// Result carries a host syscall's raw return value back to the guest
// in the RISC-V64 syscall-return convention: a single register holding
// either a non-negative result or -errno.
type Result struct {
	Value int64
	Errno unix.Errno
}

// ENOSYS reports a guest syscall with no host translation, matching
// what to_host_syscall_number's -1 case must return to the guest.
func ENOSYS() Result { return Result{Value: -int64(unix.ENOSYS), Errno: unix.ENOSYS} }

// Invoke translates guestNR and, if a host counterpart exists, issues
// it on the host with the six guest argument registers passed through
// unchanged. Per-syscall argument marshalling (pointer rebasing,
// struct layout translation) happens in the caller before args reach
// here; this function only performs the number translation and the
// raw six-register call.
func Invoke(guestNR GuestNR, a1, a2, a3, a4, a5, a6 uintptr) Result {
	hostNR := ToHostSyscallNumber(guestNR)
	if hostNR == NoHostSyscall {
		return ENOSYS()
	}

	r1, _, errno := unix.Syscall6(uintptr(hostNR), a1, a2, a3, a4, a5, a6)
	if errno != 0 {
		return Result{Value: -int64(errno), Errno: errno}
	}
	return Result{Value: int64(r1)}
}
