package bfs_test

import (
	"fmt"

	"github.com/katalvlaran/relocate/bfs"
)

// ExampleBFS walks a small corridor with a side room hanging off vertex 2,
// refusing to step from 2 into the room.
func ExampleBFS() {
	//   0 - 1 - 2 - 3
	//           |
	//           4
	g := bfs.Adjacency{
		{1},
		{0, 2},
		{1, 3, 4},
		{2},
		{2},
	}
	res, err := bfs.BFS(g, 0, bfs.WithFilterNeighbor(func(curr, nbr int) bool {
		return !(curr == 2 && nbr == 4)
	}))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(res.Order)
	fmt.Println(res.Depth)
	fmt.Println(res.Reached(4))
	// Output:
	// [0 1 2 3]
	// [0 1 2 3 -1]
	// false
}
