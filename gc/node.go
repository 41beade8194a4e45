package gc

import "github.com/loom-lang/gcrt/gc/internal/header"

// traceableNode is the type-erased view of a node the Collector's
// intrusive list manipulates. It is never exported: the node itself is
// reachable only through the collector's list head and through Gc[T]
// values.
type traceableNode interface {
	hdr() *header.Header
	nextNode() traceableNode
	setNext(traceableNode)
	traceSelf()
	destroy()
	isBorrowed() bool
}

// node is the heap cell backing every Gc[T]: the metadata word, the
// intrusive next-link used only by the collector, the exclusive-borrow
// flag shared by every Gc[T]/GcRefMut[T] pointing at it, and the user
// payload itself. Its address is stable for its entire lifetime: once
// allocated it is never moved, only unlinked and abandoned to the Go
// runtime's own collector during sweep.
type node[T Traceable] struct {
	header  header.Header
	next    traceableNode
	borrow  bool
	payload T
}

func newNode[T Traceable](value T) *node[T] {
	return &node[T]{header: header.New(), payload: value}
}

func (n *node[T]) hdr() *header.Header { return &n.header }

func (n *node[T]) nextNode() traceableNode { return n.next }

func (n *node[T]) setNext(next traceableNode) { n.next = next }

func (n *node[T]) isBorrowed() bool { return n.borrow }

// traceSelf invokes the payload's Trace directly, bypassing the
// borrow-flag check that gates external Deref access: the collector's own
// mark pass is the one caller permitted to see into a cell regardless of
// an outstanding GcRefMut.
func (n *node[T]) traceSelf() { n.payload.Trace() }

// destroy runs when a sweep determines the node is unreachable. The Go
// runtime reclaims the node's memory once nothing references it anymore;
// destroy's job is to let the payload release any non-memory resource it
// might hold (see DESIGN.md).
func (n *node[T]) destroy() {
	if closer, ok := any(n.payload).(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	var zero T
	n.payload = zero
	n.next = nil
}
