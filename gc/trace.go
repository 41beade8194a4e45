package gc

// Traceable is the capability contract every type embedded (directly or
// transitively) inside a Gc[T] payload must satisfy so the collector can
// discover child references and so Gc handles can participate in the
// rooting dance when they move in and out of traced payloads.
//
// The five methods split into two families:
//
//   - Trace marks reachability. It is the only one of the five that ever
//     recurses transitively through an arbitrary number of levels in a
//     single call, and on a Gc[_] value it is the only one that recurses
//     into the cell's payload (see (*Gc[T]).Trace).
//   - Root, Deroot, RootChildren and DerootChildren drive the rooting
//     dance. Root/Deroot are meaningful only on a Gc[_] itself (flipping
//     its own local root flag); they are no-ops on every container type.
//     RootChildren/DerootChildren are meaningful only on containers
//     (structs, slices, maps, the adapters in this package): for each
//     element or field that is itself Traceable, they call Root/Deroot
//     once (which no-ops unless that element is a Gc[_]) and
//     RootChildren/DerootChildren once more (which no-ops unless that
//     element is itself a further container). Calling both unconditionally
//     on every traceable child is what lets a single generic container, or
//     a single generated struct method, handle both "my child is a handle"
//     and "my child is another container of handles" without needing to
//     know which case applies.
type Traceable interface {
	Trace()
	Root()
	Deroot()
	RootChildren()
	DerootChildren()
}

// Leaf is an embeddable, zero-size Traceable implementation for
// hand-written leaf types that carry no Gc edges at all. Go cannot attach
// methods to built-in scalar types (int, string, bool, ...), so there is
// no blanket Traceable implementation for them; a hand-written struct
// that is a pure data leaf embeds Leaf to satisfy Traceable with five
// no-ops. Types produced by cmd/gctrace never need this: the generator
// omits calls to fields that provably carry no Gc edges instead of
// dispatching through a no-op implementation.
type Leaf struct{}

func (Leaf) Trace()          {}
func (Leaf) Root()           {}
func (Leaf) Deroot()         {}
func (Leaf) RootChildren()   {}
func (Leaf) DerootChildren() {}
