package execregion

import "testing"

func TestCreateAliasesWriteAndExecViews(t *testing.T) {
	r, err := Create(1)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer r.Close()

	if len(r.Write) == 0 || len(r.Exec) == 0 {
		t.Fatalf("expected non-empty views, got write=%d exec=%d", len(r.Write), len(r.Exec))
	}
	if len(r.Write) != len(r.Exec) {
		t.Fatalf("write/exec view size mismatch: %d vs %d", len(r.Write), len(r.Exec))
	}

	r.Write[0] = 0xC3 // RET
	if r.Exec[0] != 0xC3 {
		t.Fatalf("write through r.Write not visible in r.Exec: got %#x", r.Exec[0])
	}
}

func TestCreateRoundsSizeUpToPage(t *testing.T) {
	r, err := Create(1)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer r.Close()
	if r.Size()%4096 != 0 {
		t.Fatalf("region size %d is not page-aligned", r.Size())
	}
}

func TestExecAddrWithinRange(t *testing.T) {
	r, err := Create(4096)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer r.Close()

	addr := r.ExecAddr(0)
	if addr == 0 {
		t.Fatalf("ExecAddr(0) returned 0")
	}
}
