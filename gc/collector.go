package gc

import "time"

// DefaultCollectionInterval is the minimum time between two sweeps
// triggered by the allocation path.
const DefaultCollectionInterval = 2 * time.Second

// Stats is a point-in-time snapshot of a Collector's bookkeeping, exposed
// for host-program observability. It is never persisted anywhere.
type Stats struct {
	LiveNodes        uint64
	Sweeps           uint64
	NodesCollected   uint64
	LastSweep        time.Time
	CollectionWindow time.Duration
}

// Collector owns the intrusive list of every node allocated through it and
// the clock that paces sweeps. A *Collector must be confined to a single
// goroutine: there is no internal locking, and sharing one across
// goroutines without external synchronization breaks the root-accounting
// invariant the same way sharing a bytes.Buffer would corrupt its state.
type Collector struct {
	head      traceableNode
	liveNodes uint64

	lastSweep time.Time
	interval  time.Duration
	clock     func() time.Time

	log Logger

	sweeps    uint64
	collected uint64
}

// CollectorOption configures a Collector at construction time.
type CollectorOption func(*Collector)

// WithCollectionInterval overrides DefaultCollectionInterval. An interval
// of zero forces a sweep on every allocation.
func WithCollectionInterval(d time.Duration) CollectorOption {
	return func(c *Collector) { c.interval = d }
}

// WithLogger overrides the default, warn-level-only logrus logger with a
// caller-supplied one. Pass a logger at debug level to see per-sweep
// collected/live counts.
func WithLogger(l Logger) CollectorOption {
	return func(c *Collector) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock overrides the wall clock the Collector uses to pace sweeps.
// Intended for deterministic tests of the amortisation property (P7); host
// programs should not need it.
func WithClock(clock func() time.Time) CollectorOption {
	return func(c *Collector) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// New constructs a Collector ready to allocate into. Its list starts
// empty and its sweep clock starts now, so the first Allocate call does
// not pay for an eager sweep unless the collection interval is zero.
func New(opts ...CollectorOption) *Collector {
	c := &Collector{
		interval: DefaultCollectionInterval,
		clock:    time.Now,
		log:      defaultLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lastSweep = c.clock()
	return c
}

// SetCollectionInterval reconfigures the minimum time between two sweeps
// triggered by the allocation path.
func (c *Collector) SetCollectionInterval(d time.Duration) {
	c.interval = d
}

// Stats returns a snapshot of the collector's bookkeeping.
func (c *Collector) Stats() Stats {
	return Stats{
		LiveNodes:        c.liveNodes,
		Sweeps:           c.sweeps,
		NodesCollected:   c.collected,
		LastSweep:        c.lastSweep,
		CollectionWindow: c.interval,
	}
}

// Allocate boxes value into a fresh cell, links it at the head of c's
// intrusive list with a root count of one, runs the allocation path's
// collection trigger first, then deroots any Gc[_] that value carries as
// a direct or nested field — those handles were, until this call, rooted
// in the caller's own scope, and are now reachable only through the new
// cell. Allocate cannot be a method on Collector because Go does not
// allow a generic method on a non-generic receiver type.
func Allocate[T Traceable](c *Collector, value T) *Gc[T] {
	c.tryCollect()

	n := newNode(value)
	n.setNext(c.head)
	c.head = n
	c.liveNodes++

	n.payload.DerootChildren()

	return &Gc[T]{n: n, rooted: true}
}

func (c *Collector) tryCollect() {
	if c.clock().Sub(c.lastSweep) >= c.interval {
		c.ForceCollect()
	}
}

// ForceCollect runs a full mark-and-sweep pass immediately and resets the
// sweep clock, regardless of how much time has elapsed since the last
// one.
func (c *Collector) ForceCollect() {
	c.mark()
	collected := c.sweep()
	c.collected += collected
	c.sweeps++
	c.lastSweep = c.clock()
	c.log.Debugf("gc: sweep complete, collected=%d live=%d", collected, c.liveNodes)
}

// mark walks the whole list once, marking and tracing from every node
// that is currently rooted. It completes for the entire list before sweep
// examines a single node, so sweep never observes a node that was marked
// reachable and then freed within the same pass.
func (c *Collector) mark() {
	for n := c.head; n != nil; n = n.nextNode() {
		if n.hdr().IsRooted() {
			n.hdr().Mark()
			n.traceSelf()
		}
	}
}

// sweep walks the list a second time with a trailing pointer, unlinking
// and destroying every unmarked node in O(1) per removal, and clearing the
// mark bit on every node it keeps.
func (c *Collector) sweep() uint64 {
	var collected uint64
	var prev traceableNode
	n := c.head
	for n != nil {
		next := n.nextNode()
		if n.hdr().IsMarked() {
			n.hdr().Unmark()
			prev = n
		} else {
			if prev == nil {
				c.head = next
			} else {
				prev.setNext(next)
			}
			n.destroy()
			collected++
			c.liveNodes--
		}
		n = next
	}
	return collected
}

// Refresh destroys every node unconditionally and empties the list. It is
// reserved for process or test-suite shutdown and assumes no outstanding
// handle will be dereferenced afterward. It does not itself fail when a
// borrow flag is still set, but it logs a warning for each node where
// that happens, since teardown must still run to completion.
func (c *Collector) Refresh() {
	n := c.head
	for n != nil {
		next := n.nextNode()
		if n.isBorrowed() {
			c.log.Warnf("gc: refresh destroying a cell with an outstanding GcRefMut")
		}
		n.destroy()
		n = next
	}
	c.head = nil
	c.liveNodes = 0
}
