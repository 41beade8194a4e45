package gc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// leafPayload is a Traceable value carrying no Gc edges, standing in for
// what cmd/gctrace would generate for a struct made only of scalar fields.
type leafPayload struct {
	Leaf
	V int
}

// parentPayload holds a single direct Gc child field, standing in for what
// cmd/gctrace would generate for a one-field struct.
type parentPayload struct {
	Child *Gc[*leafPayload]
}

func (p *parentPayload) Trace() {
	if p.Child != nil {
		p.Child.Trace()
	}
}
func (p *parentPayload) Root()  {}
func (p *parentPayload) Deroot() {}
func (p *parentPayload) RootChildren() {
	if p.Child != nil {
		p.Child.Root()
		p.Child.RootChildren()
	}
}
func (p *parentPayload) DerootChildren() {
	if p.Child != nil {
		p.Child.Deroot()
		p.Child.DerootChildren()
	}
}

func TestAllocateIsRootedWithOneRoot(t *testing.T) {
	c := New()
	h := Allocate[*leafPayload](c, &leafPayload{V: 1})
	assert.True(t, h.IsRoot())
	assert.Equal(t, uint64(1), h.n.header.Roots())
}

func TestCloneIsIndependentlyRooted(t *testing.T) {
	c := New()
	h := Allocate[*leafPayload](c, &leafPayload{V: 1})
	clone := h.Clone()
	assert.True(t, clone.IsRoot())
	assert.Equal(t, uint64(2), h.n.header.Roots())
	assert.Same(t, h.n, clone.n)
}

func TestDropDecrementsRootAndIsIdempotent(t *testing.T) {
	c := New()
	h := Allocate[*leafPayload](c, &leafPayload{V: 1})
	h.Drop()
	assert.False(t, h.IsRoot())
	assert.Equal(t, uint64(0), h.n.header.Roots())
	h.Drop()
	assert.Equal(t, uint64(0), h.n.header.Roots())
}

func TestEmbeddingAChildDerootsIt(t *testing.T) {
	c := New()
	child := Allocate[*leafPayload](c, &leafPayload{V: 1})
	require.True(t, child.IsRoot())

	parent := Allocate[*parentPayload](c, &parentPayload{Child: child})

	assert.False(t, child.IsRoot(), "child must be deroot'd once embedded in the parent payload")
	assert.Equal(t, uint64(0), child.n.header.Roots())
	assert.Equal(t, uint64(1), parent.n.header.Roots())
}

func TestRootChildrenReRootsEmbeddedChild(t *testing.T) {
	c := New()
	child := Allocate[*leafPayload](c, &leafPayload{V: 1})
	parent := Allocate[*parentPayload](c, &parentPayload{Child: child})
	require.False(t, child.IsRoot())

	parent.Deref().RootChildren()

	assert.True(t, child.IsRoot())
	assert.Equal(t, uint64(1), child.n.header.Roots())
}

func TestMarkIsIdempotent(t *testing.T) {
	c := New()
	h := Allocate[*leafPayload](c, &leafPayload{V: 1})
	h.Trace()
	assert.True(t, h.n.header.IsMarked())
	// second Trace() must short-circuit rather than re-enter traceSelf
	h.Trace()
	assert.True(t, h.n.header.IsMarked())
}

func TestForceCollectFreesUnrootedNode(t *testing.T) {
	c := New()
	h := Allocate[*leafPayload](c, &leafPayload{V: 1})
	h.Drop()
	assert.Equal(t, uint64(1), c.liveNodes)
	c.ForceCollect()
	assert.Equal(t, uint64(0), c.liveNodes)
}

func TestForceCollectKeepsRootedNode(t *testing.T) {
	c := New()
	h := Allocate[*leafPayload](c, &leafPayload{V: 1})
	c.ForceCollect()
	assert.Equal(t, uint64(1), c.liveNodes)
	assert.False(t, h.n.header.IsMarked(), "sweep must clear the mark bit on kept nodes")
}

func TestWithLoggerAcceptsNoopLogger(t *testing.T) {
	c := New(WithLogger(NoopLogger{}))
	h := Allocate[*leafPayload](c, &leafPayload{V: 1})
	h.Drop()
	c.ForceCollect()
	assert.Equal(t, uint64(0), c.liveNodes)
}
