// Package trampoline is the mutex-guarded registry binding guest
// addresses to the host callbacks that service them. It backs both
// directions of translator/guest control transfer: a guest symbol
// intercepted by a proxy library resolves to a host thunk, and a
// well-known vDSO entry point resolves to a runtime callback. StubBytes
// supplies the guest-side half: the actual RISC-V instruction bytes
// (built with guestasm/riscv) a loader writes at the intercepted
// address so that executing it traps back into the registry.
//
// Grounded on
// original_source/proxy_loader/{proxy_loader.cc,proxy_library_builder.cc}:
// a single mutex-guarded map, populated once per intercepted library at
// load time and read on every subsequent guest call through that
// symbol, and on MakeTrampolineCallable
// (original_source/runtime_primitives/include/berberis/runtime_primitives/host_function_wrapper_impl.h)
// for the guest-stub half of the binding.
package trampoline

import (
	"sync"

	"berberis/berrors"
	"berberis/blog"
	"berberis/guestasm/riscv"
)

var log = blog.New("trampoline")

// GuestAddr is a guest virtual address, the key every registry entry is
// installed and looked up under.
type GuestAddr uint64

// Fn is a host callback a trampoline stub hands control to: thunk is the
// opaque payload the entry was registered with (typically a pointer to
// the original host function being proxied), and thread carries the
// calling guest thread's state.
type Fn func(thunk any, thread any)

// Entry is one binding installed in the registry.
type Entry struct {
	Trampoline Fn
	Thunk      any
	DebugName  string
	IsHostFunc bool
}

// Registry maps guest addresses to the host callback that services
// them. The zero value is ready to use.
type Registry struct {
	mu      sync.RWMutex
	entries map[GuestAddr]Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[GuestAddr]Entry)}
}

// Install binds addr to entry, overwriting any prior binding at addr.
// Called at library-load time, never from generated code.
func (r *Registry) Install(addr GuestAddr, entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[GuestAddr]Entry)
	}
	r.entries[addr] = entry
	log.Debugf("installed trampoline %q at %#x (host_func=%v)", entry.DebugName, addr, entry.IsHostFunc)
}

// StubBytes returns the guest instruction bytes a riscv64 proxy loader
// pokes into the intercepted symbol's address alongside Install: a
// single EBREAK. A guest thread that reaches addr executes it, traps,
// and the runtime's trap handler recovers addr from the faulting PC and
// calls Invoke — the guest-side half of "installs a stub at the guest
// symbol address that, when executed, hands control to the trampoline".
// Writing these bytes into the loaded guest image is the loader's job;
// this function only builds them.
func StubBytes() []byte {
	asm := riscv.New()
	asm.EmitEbreak()
	return asm.Bytes()
}

// Lookup returns the entry installed at addr, if any.
func (r *Registry) Lookup(addr GuestAddr) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[addr]
	return e, ok
}

// Invoke looks up addr and, if bound, calls its trampoline with thread.
// It aborts if addr has no binding: reaching an uninstalled trampoline
// stub from generated code is a loader bug, not a recoverable runtime
// condition.
func (r *Registry) Invoke(addr GuestAddr, thread any) {
	entry, ok := r.Lookup(addr)
	berrors.CheckFatal(ok, "trampoline: no entry installed at guest address %#x", addr)
	entry.Trampoline(entry.Thunk, thread)
}

// Remove drops the binding at addr, if any. Used when a proxy library is
// unloaded.
func (r *Registry) Remove(addr GuestAddr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, addr)
}
