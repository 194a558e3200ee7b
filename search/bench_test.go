package search_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/relocate/search"
)

func BenchmarkSolve_Swap(b *testing.B) {
	bd := swapBoard(b)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := search.Solve(context.Background(), bd); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSolve_Burrow2(b *testing.B) {
	bd := burrowExample(b, 2)
	for _, tc := range []struct {
		name string
		algo search.BoundAlgo
	}{
		{"NoBound", search.NoBound},
		{"SimpleBound", search.SimpleBound},
	} {
		b.Run(tc.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := search.Solve(context.Background(), bd, search.WithBound(tc.algo)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
