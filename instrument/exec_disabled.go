//go:build !instrument

package instrument

// ExecEnabled mirrors kInstrumentExec: false in a normal build, so
// callers that gate on it compile the call to GetOnExecInsn away
// entirely under inlining.
const ExecEnabled = false

// GetOnExecInsn always returns nil in a normal build.
func GetOnExecInsn(pc uint64) OnExecFunc { return nil }
