// Package render produces the downstream artifacts of the injection graph:
// canonical JSON, Graphviz DOT (with SVG/PNG rasterization), and Mermaid
// flowchart syntax.
//
// All renderers are pure functions over a [digraph.Graph]; the graph engine
// itself never performs I/O, so this package is the single place where the
// serialized wire shape is written and read.
package render
