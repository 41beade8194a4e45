package gc

import "fmt"

// Gc is a smart handle to a collectable cell holding a value of type T.
// Outside any other traced payload it represents a root edge; embedded as
// a field inside another Traceable payload (after that payload has gone
// through Allocate, or after the embedding struct's DerootChildren has run)
// it represents a non-root edge, and the collector alone decides the
// cell's fate by tracing from whatever else is still rooted.
//
// Gc[T] must not be copied after it has been embedded into a payload or
// handed to Drop: Go has no move semantics, so — exactly like
// sync.Mutex or bytes.Buffer — a Gc[T] that has already been consumed by
// one of those operations must not go on being read from the original
// variable. See SPEC_FULL.md section 9 for the full rationale.
type Gc[T Traceable] struct {
	n      *node[T]
	rooted bool
}

// PtrEq reports whether g and other point at the same cell.
func (g *Gc[T]) PtrEq(other *Gc[T]) bool {
	if g == nil || other == nil {
		return g == other
	}
	return g.n == other.n
}

// IsRoot reports whether this particular handle currently contributes to
// its cell's root count.
func (g *Gc[T]) IsRoot() bool {
	return g.rooted
}

// Deref returns the payload for reading (T is ordinarily itself a pointer
// type, e.g. *Node, so no further indirection is needed to reach its
// fields). It panics with a *FatalBorrowError if a GcRefMut for the same
// cell is outstanding: this is a programmer error, not a recoverable
// condition.
func (g *Gc[T]) Deref() T {
	if g.n.borrow {
		panic(newFatalBorrowError())
	}
	return g.n.payload
}

// BorrowMut attempts to acquire the cell's exclusive-mutation token. It
// returns (nil, false) if a GcRefMut already exists for this cell; the
// caller is expected to retry or give up, never treat it as an error.
func (g *Gc[T]) BorrowMut() (*GcRefMut[T], bool) {
	if g.n.borrow {
		return nil, false
	}
	g.n.borrow = true
	return &GcRefMut[T]{n: g.n}, true
}

// Clone produces a new, independently rooted handle to the same cell. A
// clone is always rooted, even when cloning a non-rooted handle, because
// it is born outside any parent payload rather than embedded into one.
func (g *Gc[T]) Clone() *Gc[T] {
	c := &Gc[T]{n: g.n}
	c.Root()
	return c
}

// Drop releases this handle's contribution to its cell's root count, if
// it is currently holding one. It is idempotent, tolerates a nil
// receiver (dropping a zero-value or already-moved-out Gc[_] is a
// no-op, the same as releasing a nil arc.StrongPtr), and does not free
// the cell itself — only a sweep that finds zero roots does that.
func (g *Gc[T]) Drop() {
	if g == nil || !g.rooted {
		return
	}
	g.rooted = false
	g.n.header.SubRoot()
}

// Root flips this handle's local root flag on, incrementing the cell's
// root count, unless it is already rooted. Idempotent.
func (g *Gc[T]) Root() {
	if g.rooted {
		return
	}
	g.rooted = true
	g.n.header.AddRoot()
}

// Deroot flips this handle's local root flag off, decrementing the cell's
// root count, unless it is already non-root. Idempotent.
func (g *Gc[T]) Deroot() {
	if !g.rooted {
		return
	}
	g.rooted = false
	g.n.header.SubRoot()
}

// RootChildren is a no-op on a Gc[_] itself: re-rooting stops at the
// handle boundary. Propagating further is the job of whatever container
// holds this handle as one of its own elements.
func (g *Gc[T]) RootChildren() {}

// DerootChildren is a no-op on a Gc[_] itself, symmetric with
// RootChildren.
func (g *Gc[T]) DerootChildren() {}

// Trace sets the cell's mark bit and, the first time it does so, recurses
// into the payload's own Trace. Finding the mark already set means this
// node was already visited in this pass — the mechanism that turns an
// arbitrary, possibly cyclic, object graph into a terminating walk.
func (g *Gc[T]) Trace() {
	if g.n.header.IsMarked() {
		return
	}
	g.n.header.Mark()
	g.n.traceSelf()
}

// String implements fmt.Stringer by delegating to the payload's own
// String method when it has one, so a Gc[T] prints the same way its
// contents would. Payloads that don't implement fmt.Stringer fall back
// to the default %v rendering of the payload.
func (g *Gc[T]) String() string {
	if s, ok := any(g.n.payload).(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", g.n.payload)
}

// Equal reports whether g and other wrap payloads the caller's payload
// type considers equal. It delegates to an Equal(T) bool method on the
// payload when one exists; Go's comparable constraint cannot be applied
// to an arbitrary Traceable, so this is the duck-typed substitute, the
// same style destroy uses to duck-type an optional io.Closer. Payloads
// with no Equal method fall back to cell identity, matching PtrEq.
func (g *Gc[T]) Equal(other *Gc[T]) bool {
	if other == nil {
		return g == nil
	}
	if eq, ok := any(g.n.payload).(interface{ Equal(T) bool }); ok {
		return eq.Equal(other.n.payload)
	}
	return g.PtrEq(other)
}
