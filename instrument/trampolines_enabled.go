//go:build instrument

package instrument

import "sync"

// TrampolinesEnabled mirrors kInstrumentTrampolines: true when this file
// is compiled in (build tag "instrument").
const TrampolinesEnabled = true

var (
	trampolineHooksMu     sync.RWMutex
	onTrampolineCall      = map[string]OnTrampolineFunc{}
	onTrampolineReturn    = map[string]OnTrampolineFunc{}
)

// RegisterOnTrampolineCall installs fn to run when the trampoline named
// name is entered.
func RegisterOnTrampolineCall(name string, fn OnTrampolineFunc) {
	trampolineHooksMu.Lock()
	defer trampolineHooksMu.Unlock()
	onTrampolineCall[name] = fn
}

// RegisterOnTrampolineReturn installs fn to run when the trampoline
// named name returns.
func RegisterOnTrampolineReturn(name string, fn OnTrampolineFunc) {
	trampolineHooksMu.Lock()
	defer trampolineHooksMu.Unlock()
	onTrampolineReturn[name] = fn
}

// GetOnTrampolineCall returns the registered call hook for name, if any.
func GetOnTrampolineCall(name string) OnTrampolineFunc {
	trampolineHooksMu.RLock()
	defer trampolineHooksMu.RUnlock()
	return onTrampolineCall[name]
}

// GetOnTrampolineReturn returns the registered return hook for name, if
// any.
func GetOnTrampolineReturn(name string) OnTrampolineFunc {
	trampolineHooksMu.RLock()
	defer trampolineHooksMu.RUnlock()
	return onTrampolineReturn[name]
}
