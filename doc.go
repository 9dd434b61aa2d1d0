// Package phaseflow recovers absolute phase from wrapped interferometric
// (InSAR) phase grids with the Costantini minimum-cost-flow formulation.
//
// 🚀 What is phaseflow?
//
//	A small, dependency-light library and CLI that brings together:
//		• Phase grids: validated R×C rasters, wrapping, gradients, residue clusters
//		• Sparse storage: COO builder, CSR matrices usable as gonum mat.Matrix
//		• Network flow: min-cost flow by successive shortest paths
//		• LP backends: flow relaxation or gonum simplex (continuous), min-cost flow (integer)
//		• Unwrapping: constraint assembly, cost model, jump decoding, integration
//
// ✨ Why phaseflow?
//
//   - Exact integer solutions: the Costantini matrix is a network matrix
//   - Sparse end to end: no dense N×N storage in the builder
//   - Stateless engine: safe for concurrent calls, call-scoped workspaces
//   - Pluggable solver: lp.Solver interface, selected at construction
//
// Packages:
//
//	grid/          Grid type, Wrap, Gradients, 4-connected components
//	sparse/        COO → CSR compression, mat.Matrix interop
//	flow/          Graph with supplies, MinCostFlow
//	lp/            Problem, Solver, Relaxation, Simplex, Network, Verify
//	unwrap/        BuildConstraints, CostVector, DecodeJumps, Integrate, Engine
//	internal/cli/  cobra commands: unwrap, wrap
//	cmd/phaseflow/ the CLI binary
//
// Quick ASCII example (one elementary loop, a residue of +1):
//
//	 0 ───π/2──▶ π/2
//	 ▲             │
//	π/2           π/2
//	 │             ▼
//	−π/2 ◀──π/2── π
//
//	the wrapped gradients sum to 2π around the loop, so one edge must carry
//	a full cycle; the engine picks the cheapest one.
//
//	go install github.com/katalvlaran/phaseflow/cmd/phaseflow@latest
package phaseflow
