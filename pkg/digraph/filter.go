package digraph

import (
	"github.com/injectograph/injectograph/pkg/errors"
	"github.com/injectograph/injectograph/pkg/observability"
)

// Filter computes the sub-graph of g reachable from the entry node IDs in
// the given direction. The input graph is never mutated; a new Graph value
// is returned.
//
// With no entries the input graph is returned unchanged. An unrecognized
// direction is an ErrCodeInvalidDirection error rather than a silently
// empty result. Entries naming nodes absent from the graph are skipped
// (reported through the filter hooks), not errors: extracted graphs from
// partially-malformed sources routinely contain such references.
//
// Node and edge order in the result equals the relative order of the
// corresponding elements in the input; no additional sorting happens, so
// filtering an already-built graph preserves its canonical ordering and
// filtering twice with the same arguments is idempotent.
func Filter(g Graph, direction Direction, entries []string) (Graph, error) {
	if len(entries) == 0 {
		return g, nil
	}
	if !direction.Valid() {
		return Graph{}, errors.New(errors.ErrCodeInvalidDirection, "unknown filter direction %q", direction)
	}

	idx := NewAdjacencyIndex(g.Nodes, g.Edges)
	for _, id := range entries {
		if _, ok := idx.Index(id); !ok {
			observability.Filter().OnEntrySkipped(id)
		}
	}

	reachable := make([]bool, idx.Len())
	switch direction {
	case DirectionDownstream:
		flood(idx, entries, idx.Outgoing, reachable)
	case DirectionUpstream:
		flood(idx, entries, idx.Incoming, reachable)
	case DirectionBoth:
		// Two independent one-directional traversals, unioned. This is not
		// a single bidirectional search: a node counts only if it is an
		// ancestor or a descendant of an entry, not a relative via some
		// mixed-direction walk.
		flood(idx, entries, idx.Outgoing, reachable)
		flood(idx, entries, idx.Incoming, reachable)
	}

	keep := make(map[string]struct{})
	nodes := make([]Node, 0, len(g.Nodes))
	for i, n := range g.Nodes {
		if reachable[i] {
			keep[n.ID] = struct{}{}
			nodes = append(nodes, n)
		}
	}

	edges := make([]Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if _, okF := keep[e.From]; !okF {
			continue
		}
		if _, okT := keep[e.To]; !okT {
			continue
		}
		edges = append(edges, e)
	}

	// Cycle entries are validated against the original, unfiltered edge
	// set: a cycle list produced by other tooling may reference steps that
	// never existed, and those must not survive into the result.
	original := edgeSet(g.Edges)
	cycles := make([]Cycle, 0, len(g.CircularDependencies))
	for _, c := range g.CircularDependencies {
		contained := cycleContained(c, keep)
		if contained && cycleValid(c, original) {
			cycles = append(cycles, c)
			continue
		}
		if contained {
			observability.Filter().OnCycleDropped([]string(c))
		}
	}

	out := Graph{Nodes: nodes, Edges: edges, CircularDependencies: cycles}
	observability.Filter().OnFilterComplete(string(direction), len(entries), len(out.Nodes), len(out.Edges))
	return out, nil
}

// flood marks every node reachable from the entries into visited, using an
// explicit stack rather than recursion so pathological dependency chains
// cannot overflow the call stack. Entries not present in the index are
// skipped.
func flood(idx *AdjacencyIndex, entries []string, neighbors func(int) []int, visited []bool) {
	stack := make([]int, 0, len(entries))
	for _, id := range entries {
		start, ok := idx.Index(id)
		if !ok {
			continue
		}
		seen := make([]bool, idx.Len())
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if seen[v] {
				continue
			}
			seen[v] = true
			visited[v] = true
			stack = append(stack, neighbors(v)...)
		}
	}
}

// =============================================================================
// Cycle Shape Validation
// =============================================================================

// cycleShape tags the two accepted textual shapes of a cycle entry.
type cycleShape int

const (
	shapeInvalid cycleShape = iota
	shapeSelfLoop
	shapeClosed
	shapeOpen
)

// classifyCycle determines which accepted shape a cycle entry has:
// a two-element self-loop [X X], a closed walk of length >= 3 whose first
// and last IDs match, or an open walk of length >= 3 validated by
// wrap-around. Anything else is invalid.
func classifyCycle(c Cycle) cycleShape {
	switch {
	case len(c) == 2 && c[0] == c[1]:
		return shapeSelfLoop
	case len(c) >= 3 && c[0] == c[len(c)-1]:
		return shapeClosed
	case len(c) >= 3:
		return shapeOpen
	default:
		return shapeInvalid
	}
}

// cycleSteps expands a cycle entry into the (from, to) steps its shape
// implies. Open-form cycles include the wrap-around step from the last ID
// back to the first. Returns nil for invalid shapes.
func cycleSteps(c Cycle) []edgeKey {
	switch classifyCycle(c) {
	case shapeSelfLoop:
		return []edgeKey{{c[0], c[0]}}
	case shapeClosed:
		steps := make([]edgeKey, 0, len(c)-1)
		for i := 0; i+1 < len(c); i++ {
			steps = append(steps, edgeKey{c[i], c[i+1]})
		}
		return steps
	case shapeOpen:
		steps := make([]edgeKey, 0, len(c))
		for i := 0; i+1 < len(c); i++ {
			steps = append(steps, edgeKey{c[i], c[i+1]})
		}
		return append(steps, edgeKey{c[len(c)-1], c[0]})
	default:
		return nil
	}
}

// cycleContained reports whether every ID in the cycle survives filtering.
func cycleContained(c Cycle, keep map[string]struct{}) bool {
	for _, id := range c {
		if _, ok := keep[id]; !ok {
			return false
		}
	}
	return true
}

// cycleValid reports whether the cycle has an accepted shape and every
// implied step exists as a real edge.
func cycleValid(c Cycle, edges map[edgeKey]struct{}) bool {
	steps := cycleSteps(c)
	if steps == nil {
		return false
	}
	for _, s := range steps {
		if _, ok := edges[s]; !ok {
			return false
		}
	}
	return true
}
