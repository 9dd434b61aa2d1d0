// Package flow implements minimum-cost flow on integer-supply networks
// addressed by dense node indices.
//
// The key algorithm offered is:
//
//   - Successive shortest paths (SSP)
//
//   - Method: repeatedly route flow from a super source to a super sink
//     along a cheapest residual path, found by Dijkstra over reduced costs
//     (node potentials keep every residual arc non-negative).
//
//   - Time:   O(F · (V + E) log V), F = number of augmentations.
//
//   - Memory: O(V + E) for residual arcs, potentials and the heap.
//
//   - Integrality: with integral supplies and capacities every augmentation
//     carries an integral amount, so the optimum is integral.
//
// # Graph Model
//
// A Graph has nodes 0..n−1, directed arcs with capacity ≥ 0 and cost ≥ 0, and
// a supply per node (positive = source of flow, negative = demand). Supplies
// must balance to zero. Arc IDs are assigned in insertion order and index the
// flow vector of the Result.
//
// # API
//
//	g, _ := flow.NewGraph(3)
//	a, _ := g.AddArc(0, 1, 5, 1)
//	_ = g.SetSupply(0, 2)
//	_ = g.SetSupply(1, -2)
//	res, err := flow.MinCostFlow(ctx, g, flow.DefaultOptions())
//	// res.Flow[a] == 2, res.Cost == 2
//
// # Errors
//
//	ErrNodeOutOfRange  - a node index outside 0..n−1.
//	ErrUnbalanced      - supplies do not sum to zero.
//	ErrInfeasible      - the supply cannot be routed within the capacities.
//	ErrIterationLimit  - more augmentations than Options.MaxAugmentations.
//	ArcError           - negative/non-finite capacity or cost.
//	context.Canceled / context.DeadlineExceeded - if ctx is canceled.
package flow
