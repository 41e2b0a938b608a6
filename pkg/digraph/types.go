package digraph

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Node kinds as produced by the declaration extractor.
// KindUnknown marks nodes that exist only because another declaration
// depends on them; they were never declared themselves.
const (
	KindService   = "service"
	KindComponent = "component"
	KindDirective = "directive"
	KindUnknown   = "unknown"
)

// Traversal directions for filtering.
const (
	DirectionDownstream Direction = "downstream"
	DirectionUpstream   Direction = "upstream"
	DirectionBoth       Direction = "both"
)

// Direction selects how edges are followed from the entry points during
// filtering: downstream follows declared edges (what an entry depends on),
// upstream follows them in reverse (what depends on the entry), and both
// unions two independent one-directional traversals.
type Direction string

// Valid reports whether d is one of the recognized directions.
func (d Direction) Valid() bool {
	switch d {
	case DirectionDownstream, DirectionUpstream, DirectionBoth:
		return true
	}
	return false
}

// =============================================================================
// Graph - Dependency Graph Serialization
// =============================================================================

// Graph is the canonical serialization format for injection graphs.
// Used for CLI output, API responses, and snapshot storage.
//
// Invariants maintained by Build:
//   - Nodes are sorted ascending by ID and IDs are unique.
//   - Edges are sorted ascending by (From, To).
//   - Every edge endpoint and every cycle member references a node.
//   - An edge has IsCircular set exactly when its (From, To) pair is a
//     consecutive step of at least one entry in CircularDependencies.
type Graph struct {
	Nodes                []Node  `json:"nodes" bson:"nodes"`
	Edges                []Edge  `json:"edges" bson:"edges"`
	CircularDependencies []Cycle `json:"circularDependencies" bson:"circularDependencies"`
}

// Node is a vertex in the injection graph: a declared class or an inferred
// (never declared) dependency target.
type Node struct {
	ID   string `json:"id" bson:"id"`
	Kind string `json:"kind" bson:"kind"`
}

// EdgeFlags is the bag of injection modifiers attached to a dependency.
// The graph engine never interprets these; it only carries them through
// from the extractor's output to the serialized graph.
type EdgeFlags struct {
	Optional bool `json:"optional,omitempty" bson:"optional,omitempty"`
	Self     bool `json:"self,omitempty" bson:"self,omitempty"`
	SkipSelf bool `json:"skipSelf,omitempty" bson:"skipSelf,omitempty"`
	Host     bool `json:"host,omitempty" bson:"host,omitempty"`
}

// Edge represents a directed dependency: From depends on To.
//
// Flags is nil when the dependency carried no flags bag at all and non-nil
// (possibly zero-valued) when a bag was present. The two states serialize
// differently (field omitted vs. "{}") and must stay distinct.
//
// IsCircular is computed by Build, never supplied by input.
type Edge struct {
	From       string     `json:"from" bson:"from"`
	To         string     `json:"to" bson:"to"`
	Flags      *EdgeFlags `json:"flags,omitempty" bson:"flags,omitempty"`
	IsCircular bool       `json:"isCircular,omitempty" bson:"isCircular,omitempty"`
}

// Cycle is an ordered walk through node IDs describing a circular
// dependency. Two shapes occur: closed form, where the first and last IDs
// are equal ([A B C A], or [A A] for a self-loop), and open form, where
// consecutive pairs including the wrap-around from last to first are all
// real edges but the first and last IDs differ. Build always emits closed
// form; Filter accepts both.
type Cycle []string

// edgeKey identifies an edge by its endpoints for set membership checks.
type edgeKey struct {
	from, to string
}

// edgeSet builds a membership set over the (From, To) pairs of edges.
func edgeSet(edges []Edge) map[edgeKey]struct{} {
	set := make(map[edgeKey]struct{}, len(edges))
	for _, e := range edges {
		set[edgeKey{e.From, e.To}] = struct{}{}
	}
	return set
}
