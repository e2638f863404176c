//go:build !instrument

package instrument

// TrampolinesEnabled mirrors kInstrumentTrampolines: false in a normal
// build.
const TrampolinesEnabled = false

// GetOnTrampolineCall always returns nil in a normal build.
func GetOnTrampolineCall(name string) OnTrampolineFunc { return nil }

// GetOnTrampolineReturn always returns nil in a normal build.
func GetOnTrampolineReturn(name string) OnTrampolineFunc { return nil }
