// SPDX-License-Identifier: MIT
// Package: relocate/board
//
// token.go - token states and the Token value.

package board

import "github.com/katalvlaran/relocate/topology"

// State is the turn lifecycle of a token.
//
//	NotStarted ─activate→ Active ─deactivate(hallway)→ Locked ─activate→ Final
//	     Active|Final ─deactivate(destination)→ Done
type State uint8

const (
	// NotStarted tokens have never moved.
	NotStarted State = iota

	// Active tokens are moving in their first turn.
	Active

	// Locked tokens finished their first turn parked in a hallway.
	Locked

	// Final tokens are moving in their second (and last) turn.
	Final

	// Done tokens rest in their destination and never move again.
	Done
)

// String returns a readable state name.
func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Active:
		return "active"
	case Locked:
		return "locked"
	case Final:
		return "final"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Token is one classified item on the board. Tokens are values; the board
// owns the only copy.
type Token struct {
	Class topology.Class
	State State
}
