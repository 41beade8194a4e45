package gc

// GcRefMut is a scoped exclusive-mutation token for a cell, obtained via
// (*Gc[T]).BorrowMut. Its existence guarantees the cell's borrow flag is
// set; Go has no scope-based destructors, so callers release it
// explicitly — typically with a deferred call immediately after a
// successful BorrowMut, the same pattern used for any io.Closer-shaped
// resource in this ecosystem.
type GcRefMut[T Traceable] struct {
	n *node[T]
}

// Get returns the payload for mutation. It remains valid until Release is
// called.
func (r *GcRefMut[T]) Get() T {
	return r.n.payload
}

// Release deroots every Gc[_] the payload now holds (a handle stored into
// the payload through Get stops being a root, the same as one embedded by
// Allocate), then clears the cell's borrow flag, letting new Deref or
// BorrowMut calls through. Idempotent and nil-receiver-safe: releasing an
// already-released token, or a nil *GcRefMut[T], is a no-op, the same
// as releasing a nil arc.StrongPtr.
func (r *GcRefMut[T]) Release() {
	if r == nil || r.n == nil {
		return
	}
	r.n.payload.DerootChildren()
	r.n.borrow = false
	r.n = nil
}
