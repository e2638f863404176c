package execregion

import "sync/atomic"

// DispatchTable maps a guest instruction address to the host address of
// its translated code. Publishing a new entry swaps in a whole new
// immutable map rather than mutating one in place, so a reader always
// sees either the old table or the new one, never a partially updated
// one: the region is shared across threads and writers synchronize
// externally, but readers must never be blocked or torn.
type DispatchTable struct {
	table atomic.Pointer[map[uint64]uintptr]
}

// NewDispatchTable returns an empty table.
func NewDispatchTable() *DispatchTable {
	d := &DispatchTable{}
	empty := make(map[uint64]uintptr)
	d.table.Store(&empty)
	return d
}

// Lookup returns the host address translated code for guestPC lives at,
// if any.
func (d *DispatchTable) Lookup(guestPC uint64) (uintptr, bool) {
	m := *d.table.Load()
	addr, ok := m[guestPC]
	return addr, ok
}

// Publish installs a new guestPC -> hostAddr binding. Callers must
// serialize calls to Publish themselves (it is not safe to call
// concurrently from multiple writers); Lookup may run concurrently with
// Publish at any time.
func (d *DispatchTable) Publish(guestPC uint64, hostAddr uintptr) {
	old := *d.table.Load()
	next := make(map[uint64]uintptr, len(old)+1)
	for k, v := range old {
		next[k] = v
	}
	next[guestPC] = hostAddr
	d.table.Store(&next)
}

// Unpublish removes guestPC's binding, if any, following the same
// copy-and-swap discipline as Publish.
func (d *DispatchTable) Unpublish(guestPC uint64) {
	old := *d.table.Load()
	if _, ok := old[guestPC]; !ok {
		return
	}
	next := make(map[uint64]uintptr, len(old))
	for k, v := range old {
		if k != guestPC {
			next[k] = v
		}
	}
	d.table.Store(&next)
}

// Len reports the number of published entries.
func (d *DispatchTable) Len() int {
	return len(*d.table.Load())
}
