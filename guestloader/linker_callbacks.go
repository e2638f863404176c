package guestloader

import "berberis/trampoline"

// LinkerCallbacks is the guest dynamic linker's exported entry-point
// table: the nine symbols guest_loader.cc's InitializeLinkerCallbacks
// resolves by name from the guest linker's dynamic symbol table, one
// guest address per role. For a static executable that is not ET_DYN,
// CreateInstance leaves the table zeroed, mirroring the
// teacher's g_uninitialized_callbacks stub table (calling any of them
// unresolved is a loader bug, not a runtime condition to recover from).
// For an ET_DYN executable without PT_INTERP, CreateInstance tries to
// resolve the table from the executable itself.
type LinkerCallbacks struct {
	CreateNamespace             trampoline.GuestAddr
	DlOpenExt                   trampoline.GuestAddr
	GetExportedNamespace        trampoline.GuestAddr
	InitAnonymousNamespace      trampoline.GuestAddr
	LinkNamespaces              trampoline.GuestAddr
	SetApplicationTargetSdkVersion trampoline.GuestAddr
	DlAddr                      trampoline.GuestAddr
	DlError                     trampoline.GuestAddr
	DlSym                       trampoline.GuestAddr
}

// linkerCallbackSymbols pairs each LinkerCallbacks field with the
// mangled guest linker symbol InitializeLinkerCallbacks resolves it
// from, in the same order as linker_callbacks.cc's FindSymbol chain.
var linkerCallbackSymbols = []struct {
	name   string
	assign func(*LinkerCallbacks, trampoline.GuestAddr)
}{
	{"__loader_android_create_namespace", func(c *LinkerCallbacks, a trampoline.GuestAddr) { c.CreateNamespace = a }},
	{"__loader_android_dlopen_ext", func(c *LinkerCallbacks, a trampoline.GuestAddr) { c.DlOpenExt = a }},
	{"__loader_android_get_exported_namespace", func(c *LinkerCallbacks, a trampoline.GuestAddr) { c.GetExportedNamespace = a }},
	{"__loader_android_init_anonymous_namespace", func(c *LinkerCallbacks, a trampoline.GuestAddr) { c.InitAnonymousNamespace = a }},
	{"__loader_android_link_namespaces", func(c *LinkerCallbacks, a trampoline.GuestAddr) { c.LinkNamespaces = a }},
	{"__loader_android_set_application_target_sdk_version", func(c *LinkerCallbacks, a trampoline.GuestAddr) {
		c.SetApplicationTargetSdkVersion = a
	}},
	{"__loader_dladdr", func(c *LinkerCallbacks, a trampoline.GuestAddr) { c.DlAddr = a }},
	{"__loader_dlerror", func(c *LinkerCallbacks, a trampoline.GuestAddr) { c.DlError = a }},
	{"__loader_dlsym", func(c *LinkerCallbacks, a trampoline.GuestAddr) { c.DlSym = a }},
}

// InitializeLinkerCallbacks resolves every linker callback symbol from
// linkerELF and fills callbacks. It returns the name of the first
// symbol it could not find, matching FindSymbol's error-message
// contract in the original.
func InitializeLinkerCallbacks(callbacks *LinkerCallbacks, linkerELF *LoadedELF) (missingSymbol string, ok bool) {
	for _, entry := range linkerCallbackSymbols {
		addr, found := linkerELF.FindSymbol(entry.name)
		if !found {
			return entry.name, false
		}
		entry.assign(callbacks, trampoline.GuestAddr(addr))
	}
	return "", true
}
