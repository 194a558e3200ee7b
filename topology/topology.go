// SPDX-License-Identifier: MIT
// Package: relocate/topology
//
// topology.go - the immutable slot graph and token registry.
//
// Concurrency:
//   - No locks: a Topology is never mutated after Build, so any number of
//     boards and search workers may share one pointer.

package topology

import "fmt"

// Topology is the fixed slot graph plus the per-class registry.
type Topology struct {
	slots   []Slot
	adj     [][]SlotID
	byName  map[string]SlotID
	classes []classInfo
	byClass map[string]Class

	// offsets[i] is the first flat position of slot i; offsets[len(slots)] is the total.
	offsets []int
}

// Len returns the number of slots.
func (t *Topology) Len() int { return len(t.slots) }

// Valid reports whether id names a slot of t.
func (t *Topology) Valid(id SlotID) bool { return id >= 0 && int(id) < len(t.slots) }

// Slot returns the descriptor of id. It panics on an invalid id, like a slice index.
func (t *Topology) Slot(id SlotID) Slot { return t.slots[id] }

// Slots returns a copy of all slot descriptors in id order.
func (t *Topology) Slots() []Slot {
	out := make([]Slot, len(t.slots))
	copy(out, t.slots)

	return out
}

// Neighbors returns the adjacency row of id. The slice is shared; do not modify it.
func (t *Topology) Neighbors(id SlotID) []SlotID { return t.adj[id] }

// Adjacent reports whether a and b are connected.
func (t *Topology) Adjacent(a, b SlotID) bool {
	if !t.Valid(a) || !t.Valid(b) {
		return false
	}
	for _, n := range t.adj[a] {
		if n == b {
			return true
		}
	}

	return false
}

// Capacity returns the number of positions of id.
func (t *Topology) Capacity(id SlotID) int { return t.slots[id].Capacity }

// Kind returns the kind of id.
func (t *Topology) Kind(id SlotID) Kind { return t.slots[id].Kind }

// IsEnd reports whether id is a hallway end cell.
func (t *Topology) IsEnd(id SlotID) bool { return t.slots[id].End }

// Name returns the label of id.
func (t *Topology) Name(id SlotID) string {
	if !t.Valid(id) {
		return fmt.Sprintf("#%d", id)
	}

	return t.slots[id].Name
}

// Lookup resolves a slot name.
func (t *Topology) Lookup(name string) (SlotID, error) {
	id, ok := t.byName[name]
	if !ok {
		return None, fmt.Errorf("%w: %q", ErrUnknownSlot, name)
	}

	return id, nil
}

// Hallways returns the ids of all hallway slots in id order.
func (t *Topology) Hallways() []SlotID { return t.ofKind(Hallway) }

// Stacks returns the ids of all stack slots in id order.
func (t *Topology) Stacks() []SlotID { return t.ofKind(Stack) }

func (t *Topology) ofKind(k Kind) []SlotID {
	var out []SlotID
	for _, s := range t.slots {
		if s.Kind == k {
			out = append(out, s.ID)
		}
	}

	return out
}

// Offset returns the first flat position of id; Offset(Len()) is the total position count.
func (t *Topology) Offset(id SlotID) int { return t.offsets[id] }

// Positions returns the total number of positions over all slots.
func (t *Topology) Positions() int { return t.offsets[len(t.slots)] }

// Classes returns the number of registered classes.
func (t *Topology) Classes() int { return len(t.classes) }

// ValidClass reports whether c is registered.
func (t *Topology) ValidClass(c Class) bool { return int(c) < len(t.classes) }

// ClassByName resolves a class name.
func (t *Topology) ClassByName(name string) (Class, error) {
	c, ok := t.byClass[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownClass, name)
	}

	return c, nil
}

// ClassName returns the label of c.
func (t *Topology) ClassName(c Class) string {
	if !t.ValidClass(c) {
		return fmt.Sprintf("class#%d", c)
	}

	return t.classes[c].name
}

// Weight returns the per-distance-unit cost multiplier of c.
func (t *Topology) Weight(c Class) int64 { return t.classes[c].weight }

// Destination returns the stack designated for c.
func (t *Topology) Destination(c Class) SlotID { return t.classes[c].destination }

// CanEnter reports whether a token of class c may be inserted into id:
// always for hallways, only its own destination for stacks.
func (t *Topology) CanEnter(c Class, id SlotID) bool {
	return t.slots[id].Kind == Hallway || t.classes[c].destination == id
}
