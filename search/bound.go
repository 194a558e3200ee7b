package search

import (
	"github.com/katalvlaran/relocate/board"
	"github.com/katalvlaran/relocate/topology"
)

// remaining is the SimpleBound estimate for b. Every token that is not
// settled still pays at least one distance unit per slot boundary it must
// cross:
//
//   - in a hallway: 1 (insertion into its stack costs at least 1);
//   - in a foreign stack: 2 (removal from a stack and insertion into one);
//   - in its own stack above a foreign token: 2 (it must leave and return).
//
// Done tokens and tokens resting on a clean prefix of their own stack add 0.
// Each unit is multiplied by the class weight, so the sum never exceeds the
// true remaining cost.
func remaining(b *board.Board) int64 {
	t := b.Topology()
	var est int64
	for id := topology.SlotID(0); int(id) < t.Len(); id++ {
		n := b.Len(id)
		if n == 0 {
			continue
		}
		if t.Kind(id) == topology.Hallway {
			tok, _ := b.At(id, 0)
			est += t.Weight(tok.Class)
			continue
		}
		foreignBelow := false
		for i := 0; i < n; i++ {
			tok, _ := b.At(id, i)
			switch {
			case t.Destination(tok.Class) != id:
				foreignBelow = true
				est += 2 * t.Weight(tok.Class)
			case foreignBelow:
				est += 2 * t.Weight(tok.Class)
			}
		}
	}

	return est
}
