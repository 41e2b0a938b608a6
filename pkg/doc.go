// Package pkg provides the core libraries for injectograph dependency
// graph construction and filtering.
//
// # Overview
//
// Injectograph turns class declarations extracted from a dependency
// injection framework into a directed graph, detects circular dependency
// chains, and filters directional sub-graphs from chosen entry points.
// The pkg directory is organized as follows:
//
//   - [decl] - Decoding of extracted class declarations
//   - [digraph] - Graph construction, cycle detection, and filtering
//   - [render] - Output formats (JSON, DOT, SVG, PNG, Mermaid)
//   - [pipeline] - Orchestration (decode → build → filter → render)
//   - [cache] - Content-addressed caching of graphs and artifacts
//   - [store] - Named graph snapshots (memory, MongoDB)
//   - [api] - HTTP API over the pipeline and snapshot store
//   - [errors] - Structured errors with machine-readable codes
//   - [observability] - Hook points for build, filter, and cache events
//
// # Architecture
//
// The typical data flow:
//
//	Class Declarations (JSON)
//	         ↓
//	    [decl] package (decode the extractor contract)
//	         ↓
//	    [digraph] package (build graph + detect cycles + filter)
//	         ↓
//	    [render] package (diagram output)
//	         ↓
//	    JSON/DOT/SVG/PNG/Mermaid output
//
// # Quick Start
//
// Build a graph and filter it to one component's dependencies:
//
//	classes, _ := decl.ReadFile("declarations.json")
//	g, _ := digraph.Build(classes)
//	sub, _ := digraph.Filter(g, digraph.DirectionDownstream, []string{"AppComponent"})
//	dot := render.ToDOT(sub, render.DOTOptions{})
//
// [decl]: https://pkg.go.dev/github.com/injectograph/injectograph/pkg/decl
// [digraph]: https://pkg.go.dev/github.com/injectograph/injectograph/pkg/digraph
// [render]: https://pkg.go.dev/github.com/injectograph/injectograph/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/injectograph/injectograph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/injectograph/injectograph/pkg/cache
// [store]: https://pkg.go.dev/github.com/injectograph/injectograph/pkg/store
// [api]: https://pkg.go.dev/github.com/injectograph/injectograph/pkg/api
// [errors]: https://pkg.go.dev/github.com/injectograph/injectograph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/injectograph/injectograph/pkg/observability
package pkg
