// SPDX-License-Identifier: MIT
// Package: relocate/topology
//
// presets.go - ready-made topologies.
//
// Burrow is the seven-stop hallway over four stacks: the two outermost
// stops are end cells, every other stop sits between two stack doors.
//
//	LL L . ML . M . MR . R RR
//	     A     B    C     D
//
// Line is the generic shape: N hallway cells in a row, each stack hanging
// off exactly one cell.

package topology

import "fmt"

// BurrowHallway lists the burrow hallway stops, left to right.
var BurrowHallway = []string{"LL", "L", "ML", "M", "MR", "R", "RR"}

// BurrowStacks and BurrowWeights name the burrow stacks (and their classes) and the class weights.
var (
	BurrowStacks  = []string{"A", "B", "C", "D"}
	BurrowWeights = []int64{1, 10, 100, 1000}
)

// Burrow builds the four-stack burrow with stacks of the given depth.
// Stack k is adjacent to hallway stops k+1 and k+2.
func Burrow(depth int) (*Topology, error) {
	b := NewBuilder()
	hall := make([]SlotID, len(BurrowHallway))
	for i, name := range BurrowHallway {
		if i == 0 || i == len(BurrowHallway)-1 {
			hall[i] = b.AddHallway(name, WithEnd())
		} else {
			hall[i] = b.AddHallway(name)
		}
	}
	b.Chain(hall...)

	for k, name := range BurrowStacks {
		s := b.AddStack(name, depth)
		b.Connect(hall[k+1], s)
		b.Connect(hall[k+2], s)
		b.AddClass(name, BurrowWeights[k], s)
	}

	return b.Build()
}

// LineOption customizes Line.
type LineOption func(*lineConfig)

type lineConfig struct {
	endCells bool
}

// WithEndCells marks both hallway extremes as end cells.
func WithEndCells() LineOption {
	return func(c *lineConfig) { c.endCells = true }
}

// Line builds hallway cells H0..H{n-1} in a row and one stack per attach
// entry, connected to hallway cell attach[i]. Stack i and its class are
// both named with the i-th capital letter and the class weighs weights[i].
func Line(hallway, depth int, attach []int, weights []int64, opts ...LineOption) (*Topology, error) {
	var cfg lineConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if hallway < 1 {
		return nil, fmt.Errorf("Line: %w: hallway length %d", ErrBadCapacity, hallway)
	}
	if len(weights) != len(attach) {
		return nil, fmt.Errorf("Line: %w: %d weights for %d stacks", ErrBadWeight, len(weights), len(attach))
	}
	if len(attach) > MaxClasses {
		return nil, fmt.Errorf("Line: %w: %d", ErrTooManyClasses, len(attach))
	}

	b := NewBuilder()
	hall := make([]SlotID, hallway)
	for i := range hall {
		var opts []SlotOption
		if cfg.endCells && (i == 0 || i == hallway-1) {
			opts = append(opts, WithEnd())
		}
		hall[i] = b.AddHallway(fmt.Sprintf("H%d", i), opts...)
	}
	b.Chain(hall...)

	for i, at := range attach {
		if at < 0 || at >= hallway {
			return nil, fmt.Errorf("Line: %w: stack %d attached to H%d", ErrUnknownSlot, i, at)
		}
		name := string(rune('A' + i))
		s := b.AddStack(name, depth)
		b.Connect(hall[at], s)
		b.AddClass(name, weights[i], s)
	}

	return b.Build()
}
