// Package scenario loads relocation problems from YAML documents.
//
// A scenario names a topology (a preset or an explicit slot list), the
// initial placement and optional solver settings:
//
//	name: burrow-example
//	topology:
//	  preset: burrow
//	  depth: 2
//	placement:
//	  A: [A, B]      # innermost first
//	  B: [D, C]
//	solver:
//	  bound: simple
//	  time_limit: 30s
//
// Unknown fields are rejected. Fingerprint identifies the topology and the
// initial board so solve results can be cached.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/relocate/board"
	"github.com/katalvlaran/relocate/search"
	"github.com/katalvlaran/relocate/topology"
)

// ErrInvalidScenario wraps every structural problem of a scenario document.
var ErrInvalidScenario = errors.New("scenario: invalid scenario")

// Preset names accepted in topology.preset.
const (
	PresetBurrow = "burrow"
	PresetLine   = "line"
	PresetCustom = "custom"
)

// Scenario is one decoded document.
type Scenario struct {
	Name      string              `yaml:"name" json:"name"`
	Topology  TopologySpec        `yaml:"topology" json:"topology"`
	Placement map[string][]string `yaml:"placement" json:"placement"`
	Solver    SolverSpec          `yaml:"solver" json:"solver"`
}

// TopologySpec describes the slot graph.
type TopologySpec struct {
	Preset string `yaml:"preset" json:"preset"`

	// burrow and line
	Depth int `yaml:"depth,omitempty" json:"depth,omitempty"`

	// line
	Hallway  int     `yaml:"hallway,omitempty" json:"hallway,omitempty"`
	Attach   []int   `yaml:"attach,omitempty" json:"attach,omitempty"`
	Weights  []int64 `yaml:"weights,omitempty" json:"weights,omitempty"`
	EndCells bool    `yaml:"end_cells,omitempty" json:"end_cells,omitempty"`

	// custom
	Slots   []SlotSpec  `yaml:"slots,omitempty" json:"slots,omitempty"`
	Edges   [][]string  `yaml:"edges,omitempty" json:"edges,omitempty"`
	Classes []ClassSpec `yaml:"classes,omitempty" json:"classes,omitempty"`
}

// SlotSpec is one custom slot.
type SlotSpec struct {
	Name  string `yaml:"name" json:"name"`
	Kind  string `yaml:"kind" json:"kind"`
	Depth int    `yaml:"depth,omitempty" json:"depth,omitempty"`
	End   bool   `yaml:"end,omitempty" json:"end,omitempty"`
}

// ClassSpec is one custom class.
type ClassSpec struct {
	Name        string `yaml:"name" json:"name"`
	Weight      int64  `yaml:"weight" json:"weight"`
	Destination string `yaml:"destination" json:"destination"`
}

// SolverSpec carries optional solver settings.
type SolverSpec struct {
	Bound        string        `yaml:"bound,omitempty" json:"bound,omitempty"`
	TimeLimit    time.Duration `yaml:"time_limit,omitempty" json:"time_limit,omitempty"`
	InitialBound int64         `yaml:"initial_bound,omitempty" json:"initial_bound,omitempty"`
	Workers      int           `yaml:"workers,omitempty" json:"workers,omitempty"`
	SharedMemo   bool          `yaml:"shared_memo,omitempty" json:"shared_memo,omitempty"`
}

// Parse decodes one YAML document.
func Parse(data []byte) (*Scenario, error) {
	return Load(bytes.NewReader(data))
}

// Load decodes one YAML document from r.
func Load(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Scenario
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidScenario)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: multiple documents", ErrInvalidScenario)
	}

	return &s, nil
}

// LoadFile reads and decodes path.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// Build returns the topology described by the scenario.
func (s *Scenario) Build() (*topology.Topology, error) {
	ts := s.Topology
	var (
		t   *topology.Topology
		err error
	)
	switch ts.Preset {
	case PresetBurrow:
		t, err = topology.Burrow(ts.Depth)
	case PresetLine:
		var opts []topology.LineOption
		if ts.EndCells {
			opts = append(opts, topology.WithEndCells())
		}
		t, err = topology.Line(ts.Hallway, ts.Depth, ts.Attach, ts.Weights, opts...)
	case PresetCustom, "":
		t, err = ts.custom()
	default:
		return nil, fmt.Errorf("%w: unknown preset %q", ErrInvalidScenario, ts.Preset)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	return t, nil
}

func (ts TopologySpec) custom() (*topology.Topology, error) {
	b := topology.NewBuilder()
	for _, sl := range ts.Slots {
		switch sl.Kind {
		case "hallway":
			var opts []topology.SlotOption
			if sl.End {
				opts = append(opts, topology.WithEnd())
			}
			b.AddHallway(sl.Name, opts...)
		case "stack":
			if sl.End {
				return nil, fmt.Errorf("slot %q: only hallways can be end cells", sl.Name)
			}
			b.AddStack(sl.Name, sl.Depth)
		default:
			return nil, fmt.Errorf("slot %q: unknown kind %q", sl.Name, sl.Kind)
		}
	}
	if err := b.Err(); err != nil {
		return nil, err
	}

	// The builder assigns ids in registration order.
	ids := make(map[string]topology.SlotID, len(ts.Slots))
	for i, sl := range ts.Slots {
		ids[sl.Name] = topology.SlotID(i)
	}
	resolve := func(name string) (topology.SlotID, error) {
		id, ok := ids[name]
		if !ok {
			return topology.None, fmt.Errorf("%w: %q", topology.ErrUnknownSlot, name)
		}
		return id, nil
	}
	for _, e := range ts.Edges {
		if len(e) != 2 {
			return nil, fmt.Errorf("edge %v: want two slot names", e)
		}
		a, err := resolve(e[0])
		if err != nil {
			return nil, err
		}
		c, err := resolve(e[1])
		if err != nil {
			return nil, err
		}
		b.Connect(a, c)
	}
	for _, c := range ts.Classes {
		dest, err := resolve(c.Destination)
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", c.Name, err)
		}
		b.AddClass(c.Name, c.Weight, dest)
	}

	return b.Build()
}

// Board builds the topology and places the initial tokens.
func (s *Scenario) Board() (*board.Board, error) {
	t, err := s.Build()
	if err != nil {
		return nil, err
	}
	b, err := board.FromPlacement(t, board.Placement(s.Placement))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	return b, nil
}

// Options translates the solver section into search options.
func (s *Scenario) Options() ([]search.Option, error) {
	ss := s.Solver
	var opts []search.Option
	if ss.Bound != "" {
		algo, err := search.ParseBound(ss.Bound)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
		}
		opts = append(opts, search.WithBound(algo))
	}
	if ss.TimeLimit != 0 {
		opts = append(opts, search.WithTimeLimit(ss.TimeLimit))
	}
	if ss.InitialBound != 0 {
		opts = append(opts, search.WithInitialBound(ss.InitialBound))
	}
	if ss.Workers != 0 {
		opts = append(opts, search.WithWorkers(ss.Workers))
	}
	if ss.SharedMemo {
		opts = append(opts, search.WithSharedMemo(true))
	}

	return opts, nil
}
