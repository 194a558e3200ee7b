// SPDX-License-Identifier: MIT
// Package: relocate/topology
//
// types.go - slot, class and registry types plus sentinel errors.
//
// Contract:
//   - SlotID and Class are small dense integers; every table in the solver is
//     indexed by them, never by names or pointers.
//   - A Topology is immutable once Build returns; all lookups are pure.

package topology

import "errors"

// Sentinel errors for topology construction and lookups.
var (
	// ErrEmptyName indicates a slot or class was registered without a name.
	ErrEmptyName = errors.New("topology: empty name")

	// ErrDuplicateName indicates a slot or class name was registered twice.
	ErrDuplicateName = errors.New("topology: duplicate name")

	// ErrUnknownSlot indicates a reference to a slot id or name that does not exist.
	ErrUnknownSlot = errors.New("topology: unknown slot")

	// ErrUnknownClass indicates a reference to a class that was never registered.
	ErrUnknownClass = errors.New("topology: unknown class")

	// ErrSelfLoop indicates an attempt to connect a slot to itself.
	ErrSelfLoop = errors.New("topology: slot cannot neighbor itself")

	// ErrBadCapacity indicates a stack depth below 1 or above MaxDepth.
	ErrBadCapacity = errors.New("topology: bad capacity")

	// ErrBadWeight indicates a non-positive class weight.
	ErrBadWeight = errors.New("topology: class weight must be positive")

	// ErrNotAStack indicates a class destination or end-cell flag on the wrong slot kind.
	ErrNotAStack = errors.New("topology: destination must be a stack slot")

	// ErrTooManyClasses indicates more than MaxClasses classes were registered.
	ErrTooManyClasses = errors.New("topology: too many classes")

	// ErrEmptyTopology indicates Build was called without any slot.
	ErrEmptyTopology = errors.New("topology: no slots")
)

const (
	// MaxClasses bounds the class enumeration so a token fits in one signature byte.
	MaxClasses = 16

	// MaxDepth bounds stack capacity so positions fit in the board's uint8 counters.
	MaxDepth = 64
)

// SlotID identifies a slot inside one Topology.
type SlotID int

// None is the SlotID used where no slot applies (e.g. no previous arrival).
const None SlotID = -1

// Kind distinguishes single-cell hallway slots from ordered stacks.
type Kind uint8

const (
	// Hallway is a single-capacity cell any token may pass through or park in.
	Hallway Kind = iota

	// Stack is an ordered slot of capacity D; only its class's tokens may enter.
	Stack
)

// String returns a readable kind name.
func (k Kind) String() string {
	switch k {
	case Hallway:
		return "hallway"
	case Stack:
		return "stack"
	default:
		return "unknown"
	}
}

// Slot describes one location of the topology.
type Slot struct {
	// ID is the dense index of the slot.
	ID SlotID

	// Name is the unique human label ("LL", "A", "H3"...).
	Name string

	// Kind is Hallway or Stack.
	Kind Kind

	// Capacity is 1 for hallways and the stack depth otherwise.
	Capacity int

	// End marks one of the two outermost hallway cells. End cells contribute
	// zero removal and insertion distance.
	End bool
}

// Class is a token class. Values are assigned by the Builder in registration order.
type Class uint8

// classInfo is the registry row for one Class.
type classInfo struct {
	name        string
	weight      int64
	destination SlotID
}
