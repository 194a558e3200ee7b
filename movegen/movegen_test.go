package movegen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/relocate/board"
	"github.com/katalvlaran/relocate/movegen"
	"github.com/katalvlaran/relocate/topology"
)

func place(t *testing.T, p board.Placement) *board.Board {
	t.Helper()
	topo, err := topology.Burrow(2)
	require.NoError(t, err)
	b, err := board.FromPlacement(topo, p)
	require.NoError(t, err)

	return b
}

func id(t *testing.T, b *board.Board, name string) topology.SlotID {
	t.Helper()
	s, err := b.Topology().Lookup(name)
	require.NoError(t, err)

	return s
}

func mv(t *testing.T, b *board.Board, src, dst string) movegen.Move {
	return movegen.Move{Src: id(t, b, src), Dst: id(t, b, dst)}
}

func TestGenerate_Initial(t *testing.T) {
	b := place(t, board.Placement{
		"A": {"A", "B"}, "B": {"D", "C"}, "C": {"C", "B"}, "D": {"A", "D"},
	})
	want := []movegen.Move{
		mv(t, b, "A", "L"), mv(t, b, "A", "ML"),
		mv(t, b, "B", "ML"), mv(t, b, "B", "M"),
		mv(t, b, "C", "M"), mv(t, b, "C", "MR"),
		mv(t, b, "D", "MR"), mv(t, b, "D", "R"),
	}
	assert.Equal(t, want, movegen.Generate(b))
	for _, m := range want {
		assert.NoError(t, movegen.Legal(b, m), m.String())
	}
}

func TestGenerate_DirtyDestination(t *testing.T) {
	dirty := place(t, board.Placement{"A": {"B"}, "L": {"A"}})
	assert.NotContains(t, movegen.Generate(dirty), mv(t, dirty, "L", "A"))
	assert.ErrorIs(t, movegen.Legal(dirty, mv(t, dirty, "L", "A")), movegen.ErrInvalidMove)

	clean := place(t, board.Placement{"A": {"A"}, "L": {"A"}})
	moves := movegen.Generate(clean)
	assert.Contains(t, moves, mv(t, clean, "L", "A"))
	assert.Contains(t, moves, mv(t, clean, "L", "LL"))
	assert.Contains(t, moves, mv(t, clean, "L", "ML"))
}

func TestGenerate_ForeignStackClosed(t *testing.T) {
	b := place(t, board.Placement{"ML": {"C"}})
	moves := movegen.Generate(b)
	assert.ElementsMatch(t, []movegen.Move{mv(t, b, "ML", "L"), mv(t, b, "ML", "M")}, moves)
}

func TestGenerate_DoneNeverMoves(t *testing.T) {
	b := place(t, board.Placement{"A": {"A"}})
	a := id(t, b, "A")
	require.NotEmpty(t, movegen.Generate(b))

	require.NoError(t, b.SetOuterState(a, board.Done))
	assert.Empty(t, movegen.Generate(b))
	assert.ErrorIs(t, movegen.Legal(b, mv(t, b, "A", "L")), movegen.ErrInvalidMove)
}

func TestGenerate_FullNeighbor(t *testing.T) {
	b := place(t, board.Placement{"L": {"B"}, "ML": {"C"}, "A": {"D"}})
	assert.Empty(t, filterSrc(movegen.Generate(b), id(t, b, "A")))
}

func TestLegal_Rules(t *testing.T) {
	b := place(t, board.Placement{"A": {"B"}, "M": {"C"}, "L": {"D"}})
	cases := map[string]movegen.Move{
		"empty source":  mv(t, b, "R", "RR"),
		"not adjacent":  mv(t, b, "A", "M"),
		"class barred":  mv(t, b, "M", "B"),
		"full":          mv(t, b, "A", "L"),
		"unknown slot":  {Src: 42, Dst: 0},
		"self neighbor": mv(t, b, "M", "M"),
	}
	for name, m := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, movegen.Legal(b, m), movegen.ErrInvalidMove)
		})
	}
	assert.ErrorIs(t, movegen.Legal(b, movegen.Move{Src: 42, Dst: 0}), topology.ErrUnknownSlot)
	assert.NoError(t, movegen.Legal(b, mv(t, b, "M", "MR")))
}

func TestAppend_ReusesBuffer(t *testing.T) {
	b := place(t, board.Placement{"M": {"C"}})
	buf := make([]movegen.Move, 0, 8)
	out := movegen.Append(buf[:0], b)
	assert.Equal(t, []movegen.Move{mv(t, b, "M", "ML"), mv(t, b, "M", "MR"), mv(t, b, "M", "C")}, out)
	assert.Equal(t, cap(buf), cap(out))

	prefix := []movegen.Move{{Src: 1, Dst: 2}}
	out = movegen.Append(prefix, b)
	assert.Len(t, out, 4)
	assert.Equal(t, prefix[0], out[0])
}

func filterSrc(ms []movegen.Move, src topology.SlotID) []movegen.Move {
	var out []movegen.Move
	for _, m := range ms {
		if m.Src == src {
			out = append(out, m)
		}
	}

	return out
}
