// Package bfs provides breadth-first search over an integer-indexed Graph,
// returning unweighted hop distances, parent links, and visit order.
//
// What
//
//   - Explore vertices in non-decreasing distance (edge count) from a start vertex.
//   - Returns a BFSResult containing:
//   - Order: visit sequence
//   - Depth: per-vertex distance from start (-1 if unreached)
//   - OnVisit hook, which may abort the walk with an error (e.g. once a target is found).
//   - Neighbor filtering via WithFilterNeighbor.
//
// Why
//
//	The relocation solver asks one question of its slot graph before searching:
//	can every token still reach its destination stack, passing only through
//	slots it may enter? A filtered BFS per occupied slot answers it in O(V + E).
//
// Determinism
//
//	Neighbors are enqueued in the order the Graph returns them, so the visit
//	sequence is fully reproducible for a stable adjacency table.
//
// Complexity (V = vertices, E = edges)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Errors
//
//   - ErrGraphNil             if the graph is nil.
//   - ErrStartVertexNotFound  if the start index is out of range.
//   - ErrOptionViolation      if an Option is invalid (e.g. a nil context).
//   - context errors on cancellation, wrapped OnVisit errors.
package bfs
