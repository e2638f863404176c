//go:build !instrument

package instrument

import "testing"

func TestHooksDisabledByDefault(t *testing.T) {
	if ExecEnabled {
		t.Fatalf("ExecEnabled should be false without the instrument build tag")
	}
	if TrampolinesEnabled {
		t.Fatalf("TrampolinesEnabled should be false without the instrument build tag")
	}
	if GetOnExecInsn(0x1000) != nil {
		t.Fatalf("GetOnExecInsn should return nil without the instrument build tag")
	}
	if GetOnTrampolineCall("foo") != nil {
		t.Fatalf("GetOnTrampolineCall should return nil without the instrument build tag")
	}
	if GetOnTrampolineReturn("foo") != nil {
		t.Fatalf("GetOnTrampolineReturn should return nil without the instrument build tag")
	}
}
