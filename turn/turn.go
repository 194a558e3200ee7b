package turn

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/relocate/board"
	"github.com/katalvlaran/relocate/movegen"
	"github.com/katalvlaran/relocate/topology"
)

// Step is one priced atomic move.
type Step struct {
	Move  movegen.Move
	Class topology.Class
	Cost  int64
}

// Turn is a maximal run of consecutive moves by one token.
// Path lists the visited slots, starting slot first.
type Turn struct {
	Class topology.Class
	Path  []topology.SlotID
	Cost  int64
}

// From returns the starting slot of the turn.
func (tr Turn) From() topology.SlotID { return tr.Path[0] }

// To returns the slot where the turn ends.
func (tr Turn) To() topology.SlotID { return tr.Path[len(tr.Path)-1] }

// Format renders the turn with slot and class names, e.g. "B: C->M->ML (40)".
func (tr Turn) Format(t *topology.Topology) string {
	names := make([]string, len(tr.Path))
	for i, id := range tr.Path {
		names[i] = t.Name(id)
	}

	return fmt.Sprintf("%s: %s (%d)", t.ClassName(tr.Class), strings.Join(names, "->"), tr.Cost)
}

// Compose groups steps into turns: a step whose source is the destination of
// the previous step extends the current turn.
func Compose(steps []Step) []Turn {
	var turns []Turn
	for i, s := range steps {
		if i > 0 && s.Move.Src == steps[i-1].Move.Dst {
			cur := &turns[len(turns)-1]
			cur.Path = append(cur.Path, s.Move.Dst)
			cur.Cost += s.Cost
			continue
		}
		turns = append(turns, Turn{
			Class: s.Class,
			Path:  []topology.SlotID{s.Move.Src, s.Move.Dst},
			Cost:  s.Cost,
		})
	}

	return turns
}

// Cost sums the cost of turns.
func Cost(turns []Turn) int64 {
	var total int64
	for _, tr := range turns {
		total += tr.Cost
	}

	return total
}

// Replay executes turns on a clone of b and returns the total cost.
func Replay(b *board.Board, turns []Turn) (int64, error) {
	return Play(b.Clone(), turns)
}

// Play executes turns on b in place. Each turn activates the token at its
// first slot, checks and applies every hop and deactivates the token at its
// last slot. Any violation returns ErrInvalidTurn (wrapping the cause) and
// leaves b partially played.
func Play(b *board.Board, turns []Turn) (int64, error) {
	t := b.Topology()
	var total int64
	for i, tr := range turns {
		if len(tr.Path) < 2 {
			return total, fmt.Errorf("%w: turn %d has %d slots", ErrInvalidTurn, i, len(tr.Path))
		}
		tok, ok := b.Outermost(tr.From())
		if !ok {
			return total, fmt.Errorf("%w: turn %d: %s is empty", ErrInvalidTurn, i, t.Name(tr.From()))
		}
		if tok.Class != tr.Class {
			return total, fmt.Errorf("%w: turn %d: expected class %s in %s, found %s",
				ErrInvalidTurn, i, t.ClassName(tr.Class), t.Name(tr.From()), t.ClassName(tok.Class))
		}
		st, err := Activate(tok.State)
		if err != nil {
			return total, fmt.Errorf("%w: turn %d: %w", ErrInvalidTurn, i, err)
		}
		if err = b.SetOuterState(tr.From(), st); err != nil {
			return total, err
		}

		for j := 1; j < len(tr.Path); j++ {
			m := movegen.Move{Src: tr.Path[j-1], Dst: tr.Path[j]}
			if err = movegen.Legal(b, m); err != nil {
				return total, fmt.Errorf("%w: turn %d hop %d: %w", ErrInvalidTurn, i, j, err)
			}
			c, err := Apply(b, m)
			if err != nil {
				return total, err
			}
			total += c
		}

		tok, _ = b.Outermost(tr.To())
		st, ok = Deactivate(t, tok, tr.To())
		if !ok {
			return total, fmt.Errorf("%w: turn %d: %s token cannot stop in %s", ErrInvalidTurn, i, tok.State, t.Name(tr.To()))
		}
		if err = b.SetOuterState(tr.To(), st); err != nil {
			return total, err
		}
	}

	return total, nil
}
