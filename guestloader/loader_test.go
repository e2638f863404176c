package guestloader

import (
	"testing"

	"berberis/trampoline"
)

func TestInstallVdsoTrampolinesBindsAllSymbols(t *testing.T) {
	vdso := newLoadedELFForTest(0, true, true, map[string]uint64{
		vdsoTraceSymbol:           0x100,
		vdsoInterceptSymbolSymbol: 0x110,
		vdsoPostInitSymbol:        0x120,
		vdsoCallGuestSymbol:       0x130,
		vdsoConfigStaticTlsSymbol: 0x140,
		vdsoGetHostPthreadSymbol:  0x150,
	})
	loader := &GuestLoader{VDSO: vdso}
	registry := trampoline.NewRegistry()

	if err := loader.installVdsoTrampolines(registry); err != nil {
		t.Fatalf("installVdsoTrampolines failed: %v", err)
	}

	if _, ok := registry.Lookup(0x100); !ok {
		t.Fatalf("expected trace trampoline installed at 0x100")
	}
	if loader.CallGuestAddr != 0x130 {
		t.Fatalf("CallGuestAddr = %#x, want 0x130", loader.CallGuestAddr)
	}
}

func TestInstallVdsoTrampolinesMissingSymbolFails(t *testing.T) {
	vdso := newLoadedELFForTest(0, true, true, map[string]uint64{})
	loader := &GuestLoader{VDSO: vdso}
	registry := trampoline.NewRegistry()

	if err := loader.installVdsoTrampolines(registry); err == nil {
		t.Fatalf("expected error with empty vdso symbol table")
	}
}

func TestEntryPointPrefersLinkerOverExecutable(t *testing.T) {
	loader := &GuestLoader{
		Executable: newLoadedELFForTest(0x2000, false, false, nil),
		Linker:     newLoadedELFForTest(0x5000, true, true, nil),
	}
	if got := loader.EntryPoint(); got != 0x5000 {
		t.Fatalf("EntryPoint() = %#x, want linker entry 0x5000", got)
	}
}

func TestEntryPointFallsBackToExecutableWhenStatic(t *testing.T) {
	loader := &GuestLoader{Executable: newLoadedELFForTest(0x2000, true, false, nil)}
	if got := loader.EntryPoint(); got != 0x2000 {
		t.Fatalf("EntryPoint() = %#x, want executable entry 0x2000", got)
	}
}
