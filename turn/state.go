package turn

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/relocate/board"
	"github.com/katalvlaran/relocate/movegen"
	"github.com/katalvlaran/relocate/topology"
)

// Sentinel errors for the turn discipline.
var (
	// ErrTerminal indicates an attempt to activate a Done token.
	ErrTerminal = errors.New("turn: token is done")

	// ErrInvalidTurn indicates a move sequence that breaks the two-turn rule.
	ErrInvalidTurn = errors.New("turn: invalid turn")
)

// Activate returns the state a token enters when its turn begins.
// NotStarted and Active become Active; Locked and Final become Final.
func Activate(s board.State) (board.State, error) {
	switch s {
	case board.NotStarted, board.Active:
		return board.Active, nil
	case board.Locked, board.Final:
		return board.Final, nil
	default:
		return s, fmt.Errorf("%w: state %s", ErrTerminal, s)
	}
}

// Deactivate returns the state a token enters when its turn ends at slot at.
// Ending in the destination stack always yields Done; an Active token ending
// in a hallway becomes Locked. Any other ending is invalid and ok is false.
func Deactivate(t *topology.Topology, tok board.Token, at topology.SlotID) (board.State, bool) {
	if at == t.Destination(tok.Class) {
		return board.Done, true
	}
	if tok.State == board.Active && t.Kind(at) == topology.Hallway {
		return board.Locked, true
	}

	return tok.State, false
}

// Begin prepares b for move m. When m starts where the previous move ended it
// continues the current turn and reports continued. Otherwise it closes the
// previous turn (deactivating the token at the last arrival) and opens a new
// one for the token at m.Src.
func Begin(b *board.Board, m movegen.Move) (continued bool, err error) {
	last := b.LastArrival()
	if last == m.Src {
		return true, nil
	}
	t := b.Topology()
	if last != topology.None {
		tok, ok := b.Outermost(last)
		if !ok {
			return false, fmt.Errorf("%w: no token at last arrival %s", ErrInvalidTurn, t.Name(last))
		}
		st, ok := Deactivate(t, tok, last)
		if !ok {
			return false, fmt.Errorf("%w: %s token cannot stop in %s", ErrInvalidTurn, tok.State, t.Name(last))
		}
		if err = b.SetOuterState(last, st); err != nil {
			return false, err
		}
	}

	tok, ok := b.Outermost(m.Src)
	if !ok {
		return false, fmt.Errorf("%w: %s is empty", ErrInvalidTurn, t.Name(m.Src))
	}
	st, err := Activate(tok.State)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidTurn, err)
	}

	return false, b.SetOuterState(m.Src, st)
}

// Apply executes m on b without legality checks and returns its cost:
// (removal distance at Src + insertion distance at Dst) times the token weight.
// The arrival marker moves to m.Dst.
func Apply(b *board.Board, m movegen.Move) (int64, error) {
	rem, err := b.RemovalDistance(m.Src)
	if err != nil {
		return 0, err
	}
	ins, err := b.InsertionDistance(m.Dst)
	if err != nil {
		return 0, err
	}
	tok, err := b.Remove(m.Src)
	if err != nil {
		return 0, err
	}
	if err = b.Insert(m.Dst, tok); err != nil {
		return 0, err
	}

	return (rem + ins) * b.Topology().Weight(tok.Class), nil
}
