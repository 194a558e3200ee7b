// SPDX-License-Identifier: MIT
// Package: relocate/board
//
// board.go - mutable placement of tokens over a shared Topology.
//
// Storage:
//   - cells is one flat array; slot s owns cells[Offset(s) : Offset(s)+Capacity(s)].
//   - fill[s] counts the tokens of slot s; positions [0, fill[s]) are occupied,
//     position 0 is the innermost, fill[s]-1 the outer one.
//
// Contract:
//   - Capacity is never exceeded and only the outer token is ever removed.
//   - Clone copies the two small arrays and shares the Topology pointer.

package board

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/relocate/topology"
)

// Sentinel errors for board operations.
var (
	// ErrNilTopology indicates a board was requested over a nil Topology.
	ErrNilTopology = errors.New("board: topology is nil")

	// ErrInvalidOperation indicates a read or removal on an empty slot.
	ErrInvalidOperation = errors.New("board: invalid operation")

	// ErrCapacityExceeded indicates an insertion into a full slot.
	ErrCapacityExceeded = errors.New("board: capacity exceeded")
)

// Placement maps a slot name to the class names it holds, innermost first.
type Placement map[string][]string

// Board is the mutable occupancy of every slot plus the slot of the last arrival.
type Board struct {
	topo  *topology.Topology
	cells []Token
	fill  []uint8
	last  topology.SlotID
}

// New returns an empty board over t.
func New(t *topology.Topology) (*Board, error) {
	if t == nil {
		return nil, ErrNilTopology
	}

	return &Board{
		topo:  t,
		cells: make([]Token, t.Positions()),
		fill:  make([]uint8, t.Len()),
		last:  topology.None,
	}, nil
}

// FromPlacement builds a board over t from p. All tokens start NotStarted.
func FromPlacement(t *topology.Topology, p Placement) (*Board, error) {
	b, err := New(t)
	if err != nil {
		return nil, err
	}
	for name, classes := range p {
		id, err := t.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("FromPlacement: %w", err)
		}
		for _, cn := range classes {
			c, err := t.ClassByName(cn)
			if err != nil {
				return nil, fmt.Errorf("FromPlacement: slot %q: %w", name, err)
			}
			if err = b.Insert(id, Token{Class: c}); err != nil {
				return nil, fmt.Errorf("FromPlacement: %w", err)
			}
		}
	}
	// Insert moved the arrival marker; a fresh board has none.
	b.last = topology.None

	return b, nil
}

// Topology returns the shared immutable topology.
func (b *Board) Topology() *topology.Topology { return b.topo }

func (b *Board) check(id topology.SlotID) error {
	if !b.topo.Valid(id) {
		return fmt.Errorf("%w: %d", topology.ErrUnknownSlot, id)
	}

	return nil
}

// Len returns the number of tokens in id.
func (b *Board) Len(id topology.SlotID) int { return int(b.fill[id]) }

// Outer returns the index of the outer token of id, or false when id is empty.
func (b *Board) Outer(id topology.SlotID) (int, bool) {
	n := int(b.fill[id])
	if n == 0 {
		return 0, false
	}

	return n - 1, true
}

// Outermost returns the outer token of id, or false when id is empty.
func (b *Board) Outermost(id topology.SlotID) (Token, bool) {
	i, ok := b.Outer(id)
	if !ok {
		return Token{}, false
	}

	return b.cells[b.topo.Offset(id)+i], true
}

// At returns the token at position i of id; ok is false for a free position.
func (b *Board) At(id topology.SlotID, i int) (Token, bool) {
	if i < 0 || i >= int(b.fill[id]) {
		return Token{}, false
	}

	return b.cells[b.topo.Offset(id)+i], true
}

// Tokens returns a copy of the tokens of id, innermost first.
func (b *Board) Tokens(id topology.SlotID) []Token {
	off := b.topo.Offset(id)
	out := make([]Token, b.fill[id])
	copy(out, b.cells[off:off+int(b.fill[id])])

	return out
}

// HasSpace reports whether id can take one more token.
func (b *Board) HasSpace(id topology.SlotID) bool {
	return int(b.fill[id]) < b.topo.Capacity(id)
}

// Remove takes the outer token out of id.
func (b *Board) Remove(id topology.SlotID) (Token, error) {
	if err := b.check(id); err != nil {
		return Token{}, err
	}
	if b.fill[id] == 0 {
		return Token{}, fmt.Errorf("%w: remove from empty %s", ErrInvalidOperation, b.topo.Name(id))
	}
	b.fill[id]--
	i := b.topo.Offset(id) + int(b.fill[id])
	tok := b.cells[i]
	b.cells[i] = Token{}

	return tok, nil
}

// Insert places tok on top of id and records id as the last arrival.
func (b *Board) Insert(id topology.SlotID, tok Token) error {
	if err := b.check(id); err != nil {
		return err
	}
	if !b.HasSpace(id) {
		return fmt.Errorf("%w: %s holds %d", ErrCapacityExceeded, b.topo.Name(id), b.fill[id])
	}
	b.cells[b.topo.Offset(id)+int(b.fill[id])] = tok
	b.fill[id]++
	b.last = id

	return nil
}

// RemovalDistance is the distance units paid to take the outer token out of id:
// capacity minus the outer index, or zero for an end cell.
func (b *Board) RemovalDistance(id topology.SlotID) (int64, error) {
	if err := b.check(id); err != nil {
		return 0, err
	}
	outer, ok := b.Outer(id)
	if !ok {
		return 0, fmt.Errorf("%w: removal distance of empty %s", ErrInvalidOperation, b.topo.Name(id))
	}
	if b.topo.IsEnd(id) {
		return 0, nil
	}

	return int64(b.topo.Capacity(id) - outer), nil
}

// InsertionDistance is the distance units paid to put a token into id:
// capacity minus the next free index, or zero for an end cell.
func (b *Board) InsertionDistance(id topology.SlotID) (int64, error) {
	if err := b.check(id); err != nil {
		return 0, err
	}
	if !b.HasSpace(id) {
		return 0, fmt.Errorf("%w: insertion distance of full %s", ErrCapacityExceeded, b.topo.Name(id))
	}
	if b.topo.IsEnd(id) {
		return 0, nil
	}

	return int64(b.topo.Capacity(id) - int(b.fill[id])), nil
}

// IsDirty reports whether id holds a token that belongs elsewhere.
// Only stacks can be dirty.
func (b *Board) IsDirty(id topology.SlotID) bool {
	if b.topo.Kind(id) != topology.Stack {
		return false
	}
	off := b.topo.Offset(id)
	for i := 0; i < int(b.fill[id]); i++ {
		if b.topo.Destination(b.cells[off+i].Class) != id {
			return true
		}
	}

	return false
}

// IsSolved reports whether every hallway is empty and every stack holds only
// its own class.
func (b *Board) IsSolved() bool {
	for id := topology.SlotID(0); int(id) < b.topo.Len(); id++ {
		if b.topo.Kind(id) == topology.Hallway {
			if b.fill[id] != 0 {
				return false
			}
			continue
		}
		if b.IsDirty(id) {
			return false
		}
	}

	return true
}

// Count returns the total number of tokens on the board.
func (b *Board) Count() int {
	n := 0
	for _, f := range b.fill {
		n += int(f)
	}

	return n
}

// SetOuterState overwrites the state of the outer token of id.
func (b *Board) SetOuterState(id topology.SlotID, s State) error {
	if err := b.check(id); err != nil {
		return err
	}
	i, ok := b.Outer(id)
	if !ok {
		return fmt.Errorf("%w: no token in %s", ErrInvalidOperation, b.topo.Name(id))
	}
	b.cells[b.topo.Offset(id)+i].State = s

	return nil
}

// LastArrival returns the slot of the most recent insertion, or topology.None.
func (b *Board) LastArrival() topology.SlotID { return b.last }

// Clone returns an independent copy sharing the Topology.
func (b *Board) Clone() *Board {
	c := &Board{
		topo:  b.topo,
		cells: make([]Token, len(b.cells)),
		fill:  make([]uint8, len(b.fill)),
		last:  b.last,
	}
	copy(c.cells, b.cells)
	copy(c.fill, b.fill)

	return c
}
