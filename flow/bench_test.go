package flow_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/phaseflow/flow"
)

// buildRandomNetwork constructs a network with n nodes, a ring that keeps
// it strongly connected, and extra arcs u→v with probability p. Costs are
// uniform in [1, maxCost]; k random pairs exchange one unit of supply.
func buildRandomNetwork(n int, p, maxCost float64, k int, seed int64) *flow.Graph {
	r := rand.New(rand.NewSource(seed)) // deterministic seed for reproducibility
	g, _ := flow.NewGraph(n)
	for u := 0; u < n; u++ {
		_, _ = g.AddArc(u, (u+1)%n, float64(n), r.Float64()*maxCost+1)
	}
	for u := 0; u < n; u++ {
		for v := 0; v < n; v++ {
			if u != v && r.Float64() < p {
				_, _ = g.AddArc(u, v, float64(n), r.Float64()*maxCost+1)
			}
		}
	}
	supply := make([]float64, n)
	for i := 0; i < k; i++ {
		u, v := r.Intn(n), r.Intn(n)
		supply[u]++
		supply[v]--
	}
	for v, s := range supply {
		_ = g.SetSupply(v, s)
	}

	return g
}

// BenchmarkMinCostFlow measures successive shortest paths on networks of
// increasing size and density.
func BenchmarkMinCostFlow(b *testing.B) {
	cases := []struct {
		n int
		p float64
		k int
	}{
		{50, 0.1, 20},
		{200, 0.05, 80},
		{1000, 0.01, 200},
	}
	for _, tc := range cases {
		g := buildRandomNetwork(tc.n, tc.p, 10, tc.k, 42)
		b.Run(fmt.Sprintf("V=%d/p=%.2f/k=%d", tc.n, tc.p, tc.k), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := flow.MinCostFlow(context.Background(), g, flow.Options{}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
