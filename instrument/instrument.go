// Package instrument is the compile-time-gated instrumentation hook
// surface: a way to plant callbacks at instruction execution and
// trampoline entry/exit without paying for them in a normal build. There
// is no hook for loader events. Each hook category is backed by two files gated by the
// "instrument" build tag; the default (tag absent) build compiles to a
// constant false flag and a function that always returns nil, letting
// the compiler fold every call site away.
//
// Grounded on
// original_source/instrument/include/berberis/instrument/{exec,trampolines}.h:
// both declare a `kInstrumentXxx` compile-time constant next to the
// lookup function it guards, so a caller can `if constexpr` the whole
// hook path out. Go has no `if constexpr`, so the guard constant here
// exists for callers to branch on; build tags do the actual code
// elision.
package instrument

import "berberis/gueststate"

// OnExecFunc is called before a guest instruction at pc executes.
// thread carries the calling guest thread's register file; insn is the
// host's decoded form of that instruction (opaque to this package).
type OnExecFunc func(thread *gueststate.ThreadState, insn any)

// OnTrampolineFunc is called when a trampoline named name is entered or
// left.
type OnTrampolineFunc func(thread *gueststate.ThreadState, arg any)
