// Package board holds the mutable placement of tokens over a topology.
//
// A Board pairs a shared, immutable *topology.Topology with two small arrays:
// the flat token cells and a per-slot fill count. Every search branch clones
// the board before mutating it, so clones must stay cheap; nothing else is
// copied.
//
// # Distances
//
//	RemovalDistance(s)   = Capacity(s) - outer index
//	InsertionDistance(s) = Capacity(s) - next free index
//
// Both are zero for hallway end cells. A move from s to d of a token of
// weight w costs (RemovalDistance(s) + InsertionDistance(d)) * w, priced
// before the token leaves s.
//
// # Predicates
//
//   - IsDirty(s): s is a stack holding a token whose destination is not s.
//   - IsSolved(): all hallways empty and no stack dirty.
//
// # Signatures
//
// Signature() is a comparable string with one byte per position encoding the
// class and the turn State of the token there. It is the dominance-memo key
// of package search.
package board
