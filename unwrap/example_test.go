package unwrap_test

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/phaseflow/grid"
	"github.com/katalvlaran/phaseflow/unwrap"
)

// ExampleUnwrap recovers a ramp whose right column wrapped around.
func ExampleUnwrap() {
	truth := [][]float64{{0, 2, 4}, {1, 3, 5}}
	wrapped := make([][]float64, len(truth))
	for i, row := range truth {
		for _, v := range row {
			wrapped[i] = append(wrapped[i], grid.Wrap(v))
		}
	}
	fmt.Printf("%.2f\n", wrapped[0])

	u, err := unwrap.Unwrap(context.Background(), wrapped)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, row := range u {
		fmt.Printf("%.2f\n", row)
	}
	// Output:
	// [0.00 2.00 -2.28]
	// [0.00 2.00 4.00]
	// [1.00 3.00 5.00]
}

// ExampleEngine_Solve unwraps a single phase vortex: the loop winds once,
// so one border edge carries a full cycle.
func ExampleEngine_Solve() {
	eng, err := unwrap.New()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	res, err := eng.Solve(context.Background(), [][]float64{
		{0, math.Pi / 2},
		{-math.Pi / 2, math.Pi},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("residues=%d jumps=%d objective=%.2f backend=%s\n",
		res.Residues, res.Jumps.Count(), res.Objective, res.Backend)
	// Output:
	// residues=1 jumps=1 objective=0.50 backend=min-cost-flow
}
