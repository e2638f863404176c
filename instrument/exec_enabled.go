//go:build instrument

package instrument

import "sync"

// ExecEnabled mirrors kInstrumentExec: true when this file is compiled
// in (build tag "instrument").
const ExecEnabled = true

var (
	execHooksMu sync.RWMutex
	execHooks   = map[uint64]OnExecFunc{}
)

// RegisterOnExecInsn installs fn to run before the guest instruction at
// pc executes, replacing any hook previously registered there.
func RegisterOnExecInsn(pc uint64, fn OnExecFunc) {
	execHooksMu.Lock()
	defer execHooksMu.Unlock()
	execHooks[pc] = fn
}

// GetOnExecInsn returns the hook registered at pc, if any.
func GetOnExecInsn(pc uint64) OnExecFunc {
	execHooksMu.RLock()
	defer execHooksMu.RUnlock()
	return execHooks[pc]
}
