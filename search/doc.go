// Package search finds the minimum-cost move sequence that sorts a board.
//
// Solve runs a depth-first branch and bound over board states:
//
//  1. Prechecks: an already solved board costs 0; a token whose destination
//     is not connected to its slot makes the board unsolvable.
//  2. Branching: movegen enumerates atomic moves in a fixed order; turn.Begin
//     opens or continues the mover's turn and drops moves that break the
//     two-turn rule.
//  3. Pricing: (removal + insertion distance) × class weight, added to the
//     accumulated cost.
//  4. Bound cut: the branch is dropped when cost (+ the SimpleBound estimate)
//     is not strictly below the incumbent.
//  5. Dominance cut: a board signature already reached at a cost not above
//     the current one is not expanded again.
//
// Options
//
//   - WithTimeLimit: soft deadline; the best solution so far is returned with
//     Complete=false, or ErrTimeLimit if there is none.
//   - WithInitialBound: seed the incumbent with a known cost.
//   - WithBound(NoBound|SimpleBound): lower bound policy.
//   - WithWorkers / WithSharedMemo: shard the first-level moves over an
//     errgroup; the incumbent is always shared, the memo optionally.
//   - WithLogger, WithMetrics, WithOnImprove: observability hooks.
//   - WithPath(false): skip turn reconstruction.
//
// The optimal cost does not depend on the worker count or memo sharing; the
// returned path may differ between configurations when several optima exist.
package search
