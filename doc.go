// Package relocate finds the cheapest way to move weighted tokens from a
// scrambled arrangement into their destination stacks.
//
// A puzzle is a small graph of slots. Hallway slots hold one token and act as
// parking cells; stack slots are last-in-first-out containers with a fixed
// depth, and every token class owns exactly one destination stack. A turn
// moves a single token along adjacent slots, and its cost is the class weight
// times the number of cells travelled.
//
// The code is organised bottom-up:
//
//	bfs/          breadth-first traversal used for reachability checks
//	topology/     slots, adjacency, classes, the Burrow and Line presets
//	board/        token placement, per-token state and state signatures
//	movegen/      legal single-step moves
//	turn/         the token state machine and turn composition and replay
//	search/       branch-and-bound DFS with dominance memo and lower bounds
//	scenario/     YAML scenario documents and fingerprints
//	store/        result records in memory, SQLite or Redis
//	cmd/relocate  the CLI: solve, serve, version
//
// The classic burrow:
//
//	#############
//	#...........#
//	###B#C#B#D###
//	  #A#D#C#A#
//	  #########
//
// costs 12521 to sort with weights 1, 10, 100 and 1000.
//
//	go install github.com/katalvlaran/relocate/cmd/relocate@latest
package relocate
