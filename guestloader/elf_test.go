package guestloader

import "testing"

func TestIsStaticExecutableAndEntryPoint(t *testing.T) {
	l := newLoadedELFForTest(0x4000, true, false, nil)
	if !l.IsStaticExecutable() {
		t.Fatalf("expected static executable")
	}
	if l.EntryPoint() != 0x4000 {
		t.Fatalf("EntryPoint() = %#x, want 0x4000", l.EntryPoint())
	}
}

func TestFindSymbolMissing(t *testing.T) {
	l := newLoadedELFForTest(0, true, false, map[string]uint64{"foo": 1})
	if _, ok := l.FindSymbol("bar"); ok {
		t.Fatalf("expected missing symbol lookup to fail")
	}
	if addr, ok := l.FindSymbol("foo"); !ok || addr != 1 {
		t.Fatalf("FindSymbol(foo) = (%d, %v), want (1, true)", addr, ok)
	}
}

func TestIsSharedObjectDetectsEtDyn(t *testing.T) {
	l := newLoadedELFForTest(0, true, true, nil)
	if !l.IsSharedObject() {
		t.Fatalf("expected ET_DYN detection")
	}
}
