// Package topology defines the fixed slot graph of the relocation solver and
// the token registry that rides on it.
//
// A Topology is a set of slots with small integer ids:
//
//   - Hallway slots hold one token. Any token may enter one.
//   - Stack slots hold up to D tokens in order; only the outer (top) token can
//     leave, and only tokens whose class designates that stack may enter.
//
// Adjacency is an explicit symmetric table keyed by SlotID, built once by a
// Builder and never mutated. The registry maps every Class to its weight (the
// cost multiplier per distance unit) and its destination stack.
//
// End cells
//
//	A hallway slot flagged End contributes zero removal and insertion distance.
//	Presets mark the two outermost hallway cells this way. The rule is kept as
//	observed in the reference layout; it changes computed costs and is not a
//	symmetric distance model.
//
// Presets
//
//   - Burrow(depth): seven hallway stops over four stacks A..D, weights 1/10/100/1000.
//   - Line(n, depth, attach, weights): n hallway cells in a row, one stack per attach entry.
//
// Errors
//
//	All construction errors are sentinels (ErrDuplicateName, ErrUnknownSlot,
//	ErrSelfLoop, ErrBadCapacity, ErrBadWeight, ErrNotAStack, ErrTooManyClasses,
//	ErrEmptyName, ErrEmptyTopology) wrapped with context; use errors.Is.
package topology
