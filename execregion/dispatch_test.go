package execregion

import "testing"

func TestPublishAndLookup(t *testing.T) {
	d := NewDispatchTable()
	d.Publish(0x1000, 0xDEAD0000)

	addr, ok := d.Lookup(0x1000)
	if !ok || addr != 0xDEAD0000 {
		t.Fatalf("Lookup(0x1000) = (%#x, %v), want (0xdead0000, true)", addr, ok)
	}
}

func TestLookupMissingEntry(t *testing.T) {
	d := NewDispatchTable()
	if _, ok := d.Lookup(0x9999); ok {
		t.Fatalf("expected no entry for unpublished address")
	}
}

func TestPublishPreservesPriorEntries(t *testing.T) {
	d := NewDispatchTable()
	d.Publish(0x1000, 0x1)
	d.Publish(0x2000, 0x2)

	if addr, ok := d.Lookup(0x1000); !ok || addr != 0x1 {
		t.Fatalf("first entry lost after second Publish: (%#x, %v)", addr, ok)
	}
	if d.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", d.Len())
	}
}

func TestUnpublishRemovesEntry(t *testing.T) {
	d := NewDispatchTable()
	d.Publish(0x1000, 0x1)
	d.Unpublish(0x1000)
	if _, ok := d.Lookup(0x1000); ok {
		t.Fatalf("expected entry removed after Unpublish")
	}
	if d.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", d.Len())
	}
}

func TestSnapshotIsolationAcrossPublish(t *testing.T) {
	d := NewDispatchTable()
	d.Publish(0x1000, 0x1)
	snapshot := *d.table.Load()
	d.Publish(0x2000, 0x2)

	if len(snapshot) != 1 {
		t.Fatalf("earlier snapshot mutated in place: len=%d, want 1", len(snapshot))
	}
}
