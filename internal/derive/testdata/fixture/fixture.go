// Package fixture is a small, self-contained package used only by
// internal/derive's tests: it gives the generator something real to load
// and type-check without depending on any larger part of this module.
package fixture

import "github.com/loom-lang/gcrt/gc"

// leaf carries no Gc edges; it satisfies Traceable via the embedded
// gc.Leaf no-op implementation.
type leaf struct {
	gc.Leaf
	V int
}

// node has hand-written Traceable methods, standing in for a type whose
// methods were generated in an earlier run.
type node struct {
	V int
}

func (n *node) Trace()          {}
func (n *node) Root()           {}
func (n *node) Deroot()         {}
func (n *node) RootChildren()   {}
func (n *node) DerootChildren() {}

// pair is marked for generation: A and B are exported Gc handles, next
// is an unexported one (an entirely ordinary Go pattern for a
// package-private field), and N carries no Gc edges at all.
//
//gctrace:generate
type pair struct {
	A    *gc.Gc[*leaf]
	B    *gc.Gc[*leaf]
	next *gc.Gc[*node]
	N    int
}
