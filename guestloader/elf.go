// Package guestloader loads a guest ELF binary, its vDSO, and (for
// dynamic executables) the guest dynamic linker, then wires the
// linker's exported callback symbols and the vDSO's well-known entry
// points into the trampoline registry so guest `dlopen`/`dlsym`/trace
// calls re-enter the runtime.
//
// Grounded on original_source/guest_loader/{guest_loader.cc,
// linker_callbacks.cc,guest_loader_impl.h}. The original loads guest
// ELFs with a bespoke TinyLoader (purpose-built for mapping a guest
// binary's segments at guest addresses); that address-space-remapping
// concern is out of scope here; this package uses the standard
// library's debug/elf purely to read headers and resolve symbol
// addresses, which is the subset guest_loader.cc itself needs from
// TinyLoader's LoadedElfFile (FindSymbol, entry_point, phdr_table).
package guestloader

import (
	"debug/elf"

	"berberis/berrors"
)

// LoadedELF is the subset of TinyLoader's LoadedElfFile that the linker
// bring-up sequence needs: an entry point and symbol-by-name lookup.
// Symbol tables are read once at load time rather than per lookup.
type LoadedELF struct {
	Path string

	entry            uint64
	staticExecutable bool
	sharedObject     bool
	symbols          map[string]uint64
}

// LoadELF opens, parses, and closes the ELF at path, retaining only the
// header fields and symbol table FindSymbol and the linker bring-up
// sequence need.
func LoadELF(path string) (*LoadedELF, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, berrors.WrapLoader("guestloader.elf_open:"+path, err)
	}
	defer f.Close()

	l := &LoadedELF{
		Path:         path,
		entry:        f.Entry,
		sharedObject: f.Type == elf.ET_DYN,
		symbols:      make(map[string]uint64),
	}

	l.staticExecutable = true
	for _, prog := range f.Progs {
		if prog.Type == elf.PT_INTERP {
			l.staticExecutable = false
			break
		}
	}

	collectSymbols(l.symbols, f.Symbols)
	collectSymbols(l.symbols, f.DynamicSymbols)

	return l, nil
}

func collectSymbols(into map[string]uint64, source func() ([]elf.Symbol, error)) {
	syms, err := source()
	if err != nil {
		return
	}
	for _, s := range syms {
		into[s.Name] = s.Value
	}
}

// newLoadedELFForTest builds a LoadedELF directly from header fields and
// a symbol table, bypassing the filesystem: used by this package's own
// tests, which exercise the linker bring-up logic against synthetic
// symbol tables rather than real guest binaries.
func newLoadedELFForTest(entry uint64, staticExecutable, sharedObject bool, symbols map[string]uint64) *LoadedELF {
	return &LoadedELF{entry: entry, staticExecutable: staticExecutable, sharedObject: sharedObject, symbols: symbols}
}

// EntryPoint returns the ELF's e_entry field.
func (l *LoadedELF) EntryPoint() uint64 { return l.entry }

// IsStaticExecutable reports whether the ELF carries no PT_INTERP
// segment. guest_loader.cc's FindPtInterp uses the same test to decide
// whether a guest dynamic linker needs to be loaded at all.
func (l *LoadedELF) IsStaticExecutable() bool { return l.staticExecutable }

// IsSharedObject reports whether the ELF is an ET_DYN image — used to
// detect the "ET_DYN executable without PT_INTERP, consider linker"
// special case guest_loader.cc's CreateInstance handles.
func (l *LoadedELF) IsSharedObject() bool { return l.sharedObject }

// FindSymbol returns the value (guest-relative address) of the named
// symbol, searched across both the regular and dynamic symbol tables
// collected at load time.
func (l *LoadedELF) FindSymbol(name string) (uint64, bool) {
	addr, ok := l.symbols[name]
	return addr, ok
}
