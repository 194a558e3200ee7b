// SPDX-License-Identifier: MIT
// Package: relocate/topology
//
// builder.go - incremental construction of a Topology.
//
// Contract:
//   - Builder methods never panic on bad input; the first error is recorded
//     and every later call becomes a no-op. Build returns it wrapped as
//     "Build: %w" so callers branch with errors.Is.
//   - Adjacency is symmetric: Connect(a, b) also records b→a. Duplicate
//     connections are ignored, insertion order is preserved (it drives the
//     move enumeration order).

package topology

import "fmt"

// SlotOption customizes a hallway slot at registration time.
type SlotOption func(*Slot)

// WithEnd marks the hallway slot as an end cell (zero distance rule).
func WithEnd() SlotOption {
	return func(s *Slot) { s.End = true }
}

// Builder accumulates slots, edges and classes before freezing them into a Topology.
type Builder struct {
	slots   []Slot
	adj     [][]SlotID
	byName  map[string]SlotID
	classes []classInfo
	byClass map[string]Class
	err     error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		byName:  make(map[string]SlotID),
		byClass: make(map[string]Class),
	}
}

// Err returns the first recorded error, if any.
func (b *Builder) Err() error { return b.err }

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder) addSlot(s Slot) SlotID {
	if b.err != nil {
		return None
	}
	if s.Name == "" {
		b.fail(fmt.Errorf("%w: slot #%d", ErrEmptyName, len(b.slots)))
		return None
	}
	if _, dup := b.byName[s.Name]; dup {
		b.fail(fmt.Errorf("%w: slot %q", ErrDuplicateName, s.Name))
		return None
	}
	s.ID = SlotID(len(b.slots))
	b.slots = append(b.slots, s)
	b.adj = append(b.adj, nil)
	b.byName[s.Name] = s.ID

	return s.ID
}

// AddHallway registers a single-capacity hallway cell.
func (b *Builder) AddHallway(name string, opts ...SlotOption) SlotID {
	s := Slot{Name: name, Kind: Hallway, Capacity: 1}
	for _, opt := range opts {
		opt(&s)
	}

	return b.addSlot(s)
}

// AddStack registers a stack of the given depth. End-cell options do not apply to stacks.
func (b *Builder) AddStack(name string, depth int) SlotID {
	if b.err == nil && (depth < 1 || depth > MaxDepth) {
		b.fail(fmt.Errorf("%w: stack %q depth %d", ErrBadCapacity, name, depth))
		return None
	}

	return b.addSlot(Slot{Name: name, Kind: Stack, Capacity: depth})
}

// Connect links a and other in both directions.
func (b *Builder) Connect(a, other SlotID) *Builder {
	if b.err != nil {
		return b
	}
	if !b.valid(a) || !b.valid(other) {
		b.fail(fmt.Errorf("%w: connect %d-%d", ErrUnknownSlot, a, other))
		return b
	}
	if a == other {
		b.fail(fmt.Errorf("%w: %q", ErrSelfLoop, b.slots[a].Name))
		return b
	}
	b.link(a, other)
	b.link(other, a)

	return b
}

// Chain connects ids pairwise in order: ids[0]–ids[1]–…
func (b *Builder) Chain(ids ...SlotID) *Builder {
	for i := 0; i+1 < len(ids); i++ {
		b.Connect(ids[i], ids[i+1])
	}

	return b
}

func (b *Builder) link(from, to SlotID) {
	for _, n := range b.adj[from] {
		if n == to {
			return
		}
	}
	b.adj[from] = append(b.adj[from], to)
}

func (b *Builder) valid(id SlotID) bool { return id >= 0 && int(id) < len(b.slots) }

// AddClass registers a token class with its weight and destination stack.
func (b *Builder) AddClass(name string, weight int64, dest SlotID) Class {
	if b.err != nil {
		return 0
	}
	switch {
	case name == "":
		b.fail(fmt.Errorf("%w: class #%d", ErrEmptyName, len(b.classes)))
	case len(b.classes) >= MaxClasses:
		b.fail(fmt.Errorf("%w: %d", ErrTooManyClasses, MaxClasses))
	case weight <= 0:
		b.fail(fmt.Errorf("%w: class %q weight %d", ErrBadWeight, name, weight))
	case !b.valid(dest):
		b.fail(fmt.Errorf("%w: class %q destination %d", ErrUnknownSlot, name, dest))
	case b.slots[dest].Kind != Stack:
		b.fail(fmt.Errorf("%w: class %q -> %q", ErrNotAStack, name, b.slots[dest].Name))
	}
	if _, dup := b.byClass[name]; b.err == nil && dup {
		b.fail(fmt.Errorf("%w: class %q", ErrDuplicateName, name))
	}
	if b.err != nil {
		return 0
	}
	c := Class(len(b.classes))
	b.classes = append(b.classes, classInfo{name: name, weight: weight, destination: dest})
	b.byClass[name] = c

	return c
}

// Build freezes the accumulated definition. The Builder must not be reused afterwards.
func (b *Builder) Build() (*Topology, error) {
	if b.err != nil {
		return nil, fmt.Errorf("Build: %w", b.err)
	}
	if len(b.slots) == 0 {
		return nil, fmt.Errorf("Build: %w", ErrEmptyTopology)
	}

	t := &Topology{
		slots:   b.slots,
		adj:     b.adj,
		byName:  b.byName,
		classes: b.classes,
		byClass: b.byClass,
		offsets: make([]int, len(b.slots)+1),
	}
	for i, s := range t.slots {
		t.offsets[i+1] = t.offsets[i] + s.Capacity
	}

	return t, nil
}
