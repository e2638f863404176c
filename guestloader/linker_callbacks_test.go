package guestloader

import "testing"

func TestInitializeLinkerCallbacksResolvesAllNine(t *testing.T) {
	symbols := map[string]uint64{
		"__loader_android_create_namespace":                  0x1000,
		"__loader_android_dlopen_ext":                        0x1010,
		"__loader_android_get_exported_namespace":            0x1020,
		"__loader_android_init_anonymous_namespace":          0x1030,
		"__loader_android_link_namespaces":                   0x1040,
		"__loader_android_set_application_target_sdk_version": 0x1050,
		"__loader_dladdr":                                    0x1060,
		"__loader_dlerror":                                   0x1070,
		"__loader_dlsym":                                     0x1080,
	}
	linkerELF := newLoadedELFForTest(0, false, true, symbols)

	var callbacks LinkerCallbacks
	missing, ok := InitializeLinkerCallbacks(&callbacks, linkerELF)
	if !ok {
		t.Fatalf("InitializeLinkerCallbacks failed, missing symbol %q", missing)
	}

	if callbacks.DlSym != 0x1080 {
		t.Fatalf("DlSym = %#x, want 0x1080", callbacks.DlSym)
	}
	if callbacks.CreateNamespace != 0x1000 {
		t.Fatalf("CreateNamespace = %#x, want 0x1000", callbacks.CreateNamespace)
	}
}

func TestInitializeLinkerCallbacksReportsFirstMissingSymbol(t *testing.T) {
	linkerELF := newLoadedELFForTest(0, false, true, map[string]uint64{})

	var callbacks LinkerCallbacks
	missing, ok := InitializeLinkerCallbacks(&callbacks, linkerELF)
	if ok {
		t.Fatalf("expected failure with empty symbol table")
	}
	if missing != "__loader_android_create_namespace" {
		t.Fatalf("missing = %q, want first symbol in resolution order", missing)
	}
}
