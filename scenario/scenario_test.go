package scenario_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/relocate/board"
	"github.com/katalvlaran/relocate/scenario"
	"github.com/katalvlaran/relocate/search"
	"github.com/katalvlaran/relocate/topology"
)

func TestLoadFile_Burrow(t *testing.T) {
	s, err := scenario.LoadFile("testdata/burrow2.yaml")
	require.NoError(t, err)

	want := &scenario.Scenario{
		Name:     "burrow-example",
		Topology: scenario.TopologySpec{Preset: scenario.PresetBurrow, Depth: 2},
		Placement: map[string][]string{
			"A": {"A", "B"}, "B": {"D", "C"}, "C": {"C", "B"}, "D": {"A", "D"},
		},
		Solver: scenario.SolverSpec{Bound: "simple", TimeLimit: 30 * time.Second},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Fatalf("scenario mismatch (-want +got):\n%s", diff)
	}

	b, err := s.Board()
	require.NoError(t, err)
	assert.Equal(t, 8, b.Count())
	assert.Equal(t, 11, b.Topology().Len())

	opts, err := s.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 2)
}

func TestLoadFile_CustomMatchesLine(t *testing.T) {
	s, err := scenario.LoadFile("testdata/swap.yaml")
	require.NoError(t, err)
	custom, err := s.Board()
	require.NoError(t, err)

	topo, err := topology.Line(4, 1, []int{1, 2}, []int64{1, 10})
	require.NoError(t, err)
	line, err := board.FromPlacement(topo, board.Placement{"A": {"B"}, "B": {"A"}})
	require.NoError(t, err)

	assert.Equal(t, scenario.Fingerprint(line), scenario.Fingerprint(custom))

	opts, err := s.Options()
	require.NoError(t, err)
	res, err := search.Solve(context.Background(), custom, opts...)
	require.NoError(t, err)
	assert.Equal(t, int64(70), res.Cost)
}

func TestFingerprint(t *testing.T) {
	a, err := scenario.Parse([]byte(`
name: one
topology: {preset: burrow, depth: 2}
placement: {A: [A, B], B: [B, A]}
`))
	require.NoError(t, err)
	b, err := scenario.Parse([]byte(`
name: two
topology: {preset: burrow, depth: 2}
placement: {B: [B, A], A: [A, B]}
`))
	require.NoError(t, err)
	c, err := scenario.Parse([]byte(`
topology: {preset: burrow, depth: 2}
placement: {A: [B, A], B: [B, A]}
`))
	require.NoError(t, err)
	d, err := scenario.Parse([]byte(`
topology: {preset: burrow, depth: 3}
placement: {A: [A, B], B: [B, A]}
`))
	require.NoError(t, err)

	fa, err := a.Fingerprint()
	require.NoError(t, err)
	fb, _ := b.Fingerprint()
	fc, _ := c.Fingerprint()
	fd, _ := d.Fingerprint()

	assert.Len(t, fa, 16)
	assert.Equal(t, fa, fb, "name and key order do not matter")
	assert.NotEqual(t, fa, fc, "placement order matters")
	assert.NotEqual(t, fa, fd, "topology matters")
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":           ``,
		"unknown field":   "name: x\ncolour: red\n",
		"two documents":   "name: a\n---\nname: b\n",
		"bad yaml":        "name: [\n",
		"unknown preset":  "topology: {preset: torus}\n",
		"bad depth":       "topology: {preset: burrow, depth: 0}\n",
		"bad kind":        "topology: {slots: [{name: X, kind: tunnel}]}\n",
		"end stack":       "topology: {slots: [{name: X, kind: stack, depth: 1, end: true}]}\n",
		"bad edge":        "topology: {slots: [{name: X, kind: hallway}], edges: [[X]]}\n",
		"edge to nowhere": "topology: {slots: [{name: X, kind: hallway}], edges: [[X, Y]]}\n",
		"bad class dest":  "topology: {slots: [{name: X, kind: hallway}], classes: [{name: a, weight: 1, destination: Q}]}\n",
		"overfull":        "topology: {preset: burrow, depth: 1}\nplacement: {A: [A, B]}\n",
		"unknown class":   "topology: {preset: burrow, depth: 1}\nplacement: {A: [Z]}\n",
		"bad bound":       "topology: {preset: burrow, depth: 1}\nsolver: {bound: magic}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			s, err := scenario.Load(strings.NewReader(doc))
			if err == nil {
				_, err = s.Board()
			}
			if err == nil {
				_, err = s.Options()
			}
			assert.ErrorIs(t, err, scenario.ErrInvalidScenario)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := scenario.LoadFile("testdata/nope.yaml")
	assert.Error(t, err)
}
