// Package movegen enumerates legal atomic moves on a board.
//
// A move takes the outer token of one slot to an adjacent slot. It is legal
// when all of these hold:
//
//  1. the source holds a token and that token is not Done;
//  2. source and destination are adjacent;
//  3. the token may enter the destination (any hallway, or its own stack);
//  4. the destination has space;
//  5. the destination is not the token's own stack while that stack is dirty.
//
// Enumeration order is deterministic: sources by ascending slot id, then
// destinations in adjacency insertion order.
package movegen

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/relocate/board"
	"github.com/katalvlaran/relocate/topology"
)

// ErrInvalidMove is returned by Legal, wrapped with the violated rule.
var ErrInvalidMove = errors.New("movegen: invalid move")

// Move is one atomic hop of an outer token between adjacent slots.
type Move struct {
	Src topology.SlotID
	Dst topology.SlotID
}

// String renders the move with slot ids.
func (m Move) String() string { return fmt.Sprintf("%d->%d", m.Src, m.Dst) }

// Generate returns every legal move of b.
func Generate(b *board.Board) []Move {
	return Append(nil, b)
}

// Append appends every legal move of b to dst and returns the extended slice.
func Append(dst []Move, b *board.Board) []Move {
	t := b.Topology()
	for src := topology.SlotID(0); int(src) < t.Len(); src++ {
		tok, ok := b.Outermost(src)
		if !ok || tok.State == board.Done {
			continue
		}
		for _, n := range t.Neighbors(src) {
			if enterable(b, tok, n) {
				dst = append(dst, Move{Src: src, Dst: n})
			}
		}
	}

	return dst
}

func enterable(b *board.Board, tok board.Token, n topology.SlotID) bool {
	t := b.Topology()
	if !t.CanEnter(tok.Class, n) || !b.HasSpace(n) {
		return false
	}

	return !(n == t.Destination(tok.Class) && b.IsDirty(n))
}

// Legal checks m against b and reports the first violated rule.
func Legal(b *board.Board, m Move) error {
	t := b.Topology()
	if !t.Valid(m.Src) || !t.Valid(m.Dst) {
		return fmt.Errorf("%w: %v: %w", ErrInvalidMove, m, topology.ErrUnknownSlot)
	}
	tok, ok := b.Outermost(m.Src)
	switch {
	case !ok:
		return fmt.Errorf("%w: %s is empty", ErrInvalidMove, t.Name(m.Src))
	case tok.State == board.Done:
		return fmt.Errorf("%w: token in %s is done", ErrInvalidMove, t.Name(m.Src))
	case !t.Adjacent(m.Src, m.Dst):
		return fmt.Errorf("%w: %s and %s are not adjacent", ErrInvalidMove, t.Name(m.Src), t.Name(m.Dst))
	case !t.CanEnter(tok.Class, m.Dst):
		return fmt.Errorf("%w: class %s may not enter %s", ErrInvalidMove, t.ClassName(tok.Class), t.Name(m.Dst))
	case !b.HasSpace(m.Dst):
		return fmt.Errorf("%w: %s is full", ErrInvalidMove, t.Name(m.Dst))
	case m.Dst == t.Destination(tok.Class) && b.IsDirty(m.Dst):
		return fmt.Errorf("%w: destination %s is dirty", ErrInvalidMove, t.Name(m.Dst))
	}

	return nil
}
