// Package digraph builds and filters dependency-injection graphs.
//
// The package turns a flat list of class declarations (see [Class], the
// contract produced by the declaration extractor) into a validated,
// deterministically ordered [Graph], detects every cycle in it, and can
// compute reachability-scoped sub-graphs from chosen entry points.
//
// # Building
//
//	g, err := digraph.Build(classes)
//
// [Build] validates the declarations, materializes nodes and edges
// (inventing "unknown"-kind nodes for tokens nothing declared), sorts both
// lists, and records circular dependencies. Same input, byte-identical
// output.
//
// # Filtering
//
//	sub, err := digraph.Filter(g, digraph.DirectionDownstream, []string{"AppComponent"})
//
// [Filter] keeps the nodes reachable from the entries in the requested
// [Direction], the edges between them, and the cycles that remain fully
// contained and structurally valid. It never mutates its input.
//
// Both operations are pure, synchronous, and safe to run concurrently with
// distinct inputs; all working state (adjacency index, visited sets, DFS
// path) is per-call. Traversals use explicit stacks, not recursion.
package digraph
