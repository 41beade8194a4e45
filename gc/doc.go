// Package gc implements an embeddable, goroutine-confined tracing
// garbage collector. Application code allocates values through a
// Collector, gets back a Gc[T] smart handle, and the collector reclaims
// whatever becomes unreachable — including cycles — from the still-rooted
// handles on a periodic, amortised mark-and-sweep pass.
//
// A minimal walkthrough:
//
//	type Node struct {
//		Next *gc.Gc[*Node]
//	}
//
//	func (n *Node) Trace()          { if n.Next != nil { n.Next.Trace() } }
//	func (n *Node) Root()           {}
//	func (n *Node) Deroot()         {}
//	func (n *Node) RootChildren()   { if n.Next != nil { n.Next.Root(); n.Next.RootChildren() } }
//	func (n *Node) DerootChildren() { if n.Next != nil { n.Next.Deroot(); n.Next.DerootChildren() } }
//
//	c := gc.New()
//	a := gc.Allocate(c, &Node{})
//	b := gc.Allocate(c, &Node{})
//
//	refA, _ := a.BorrowMut()
//	refA.Get().Next = b
//	refA.Release()
//
//	refB, _ := b.BorrowMut()
//	refB.Get().Next = a // a cycle
//	refB.Release()
//
//	a.Drop()
//	b.Drop()
//	c.ForceCollect() // both cells are collected
//
// cmd/gctrace generates the five Traceable methods for ordinary structs so
// they rarely need to be hand-written, the way the snippet above is.
package gc
