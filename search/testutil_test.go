package search_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/relocate/board"
	"github.com/katalvlaran/relocate/topology"
)

// burrowExample is the well-known four-stack example, innermost first.
func burrowExample(t testing.TB, depth int) *board.Board {
	t.Helper()
	topo, err := topology.Burrow(depth)
	require.NoError(t, err)
	p := board.Placement{
		"A": {"A", "B"},
		"B": {"D", "C"},
		"C": {"C", "B"},
		"D": {"A", "D"},
	}
	if depth == 4 {
		p = board.Placement{
			"A": {"A", "D", "D", "B"},
			"B": {"D", "B", "C", "C"},
			"C": {"C", "A", "B", "B"},
			"D": {"A", "C", "A", "D"},
		}
	}
	b, err := board.FromPlacement(topo, p)
	require.NoError(t, err)

	return b
}

// swapBoard is a four-cell corridor with stack A under H1 and stack B under
// H2, each holding the other's token; A weighs 1, B weighs 10. The cheapest
// schedule parks A aside, sends B home, then brings A home: 70.
func swapBoard(t testing.TB) *board.Board {
	t.Helper()
	topo, err := topology.Line(4, 1, []int{1, 2}, []int64{1, 10})
	require.NoError(t, err)
	b, err := board.FromPlacement(topo, board.Placement{"A": {"B"}, "B": {"A"}})
	require.NoError(t, err)

	return b
}

// deadlockBoard shares a single hallway cell between two swapped stacks:
// whichever token leaves first blocks the cell for good.
func deadlockBoard(t testing.TB) *board.Board {
	t.Helper()
	topo, err := topology.Line(1, 1, []int{0, 0}, []int64{1, 1})
	require.NoError(t, err)
	b, err := board.FromPlacement(topo, board.Placement{"A": {"B"}, "B": {"A"}})
	require.NoError(t, err)

	return b
}

// swapDeepBoard is swapBoard with depth-2 stacks, each full of the other
// class. Every move pays removal plus insertion; a hallway cell costs 1 each
// way, a stack costs 1 at the top slot and 2 at the bottom slot.
//
//	A out of B (top)    B->H2->H3        (1+1)+2        = 4
//	A out of B (bottom) B->H2->H1->H0    (2+1)+2+2      = 7
//	B out of A (top)    A->H1->H2->B     (1+1)+2+(1+2)  = 7  x10 = 70
//	B out of A (bottom) A->H1->H2->B     (2+1)+2+(1+1)  = 7  x10 = 70
//	A home from H0      H0->H1->A        2+(1+2)        = 5
//	A home from H3      H3->H2->H1->A    2+2+(1+1)      = 6
//	                                                    total 162
//
// H1 and H2 are the doors and must stay clear, so H0 and H3 are the only
// parking cells. Any B detour costs at least 20 while the A tokens can save
// at most 8 over this schedule.
func swapDeepBoard(t testing.TB) *board.Board {
	t.Helper()
	topo, err := topology.Line(4, 2, []int{1, 2}, []int64{1, 10})
	require.NoError(t, err)
	b, err := board.FromPlacement(topo, board.Placement{"A": {"B", "B"}, "B": {"A", "A"}})
	require.NoError(t, err)

	return b
}

// foreignWallBoard is H0 - SB - H1 - SA with an A token parked in H0: the
// only way to A runs through B's stack.
func foreignWallBoard(t testing.TB) *board.Board {
	t.Helper()
	bld := topology.NewBuilder()
	h0 := bld.AddHallway("H0")
	sb := bld.AddStack("SB", 1)
	h1 := bld.AddHallway("H1")
	sa := bld.AddStack("SA", 1)
	bld.Chain(h0, sb, h1, sa)
	bld.AddClass("A", 1, sa)
	bld.AddClass("B", 1, sb)
	topo, err := bld.Build()
	require.NoError(t, err)
	b, err := board.FromPlacement(topo, board.Placement{"H0": {"A"}})
	require.NoError(t, err)

	return b
}
