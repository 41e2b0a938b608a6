package digraph

import (
	"slices"
	"strings"

	"github.com/injectograph/injectograph/pkg/errors"
	"github.com/injectograph/injectograph/pkg/observability"
)

// =============================================================================
// Input Contract - Declaration Extractor Output
// =============================================================================

// Class is one class declaration as produced by the declaration extractor:
// a named, kinded class plus the dependency tokens it injects. Build treats
// Kind as an opaque string; values other than the Kind* constants pass
// through unchanged.
type Class struct {
	Name         string       `json:"name" bson:"name"`
	Kind         string       `json:"kind" bson:"kind"`
	Dependencies []Dependency `json:"dependencies" bson:"dependencies"`
}

// Dependency is a single injected token with its optional flags bag.
// A nil Flags means the extractor emitted no bag for this dependency,
// which is distinct from an empty bag.
type Dependency struct {
	Token string     `json:"token" bson:"token"`
	Flags *EdgeFlags `json:"flags,omitempty" bson:"flags,omitempty"`
}

// =============================================================================
// GraphBuilder
// =============================================================================

// Build materializes a validated, deterministically ordered Graph from a
// list of class declarations.
//
// Validation is fail-fast: the whole call is rejected with a distinct
// ErrCodeInvalidDeclaration error per violated constraint, and no partial
// graph is ever returned. Duplicate declaration names collapse silently
// into the first occurrence (later kinds do not overwrite). Dependency
// tokens with no matching declaration become nodes of kind "unknown".
//
// The returned graph has nodes sorted ascending by ID, edges sorted
// ascending by (From, To), every discovered cycle listed in
// CircularDependencies, and IsCircular stamped on exactly the edges whose
// (From, To) pair is a step of at least one cycle. Build is a pure
// function: identical input yields identical output.
func Build(classes []Class) (Graph, error) {
	if err := validate(classes); err != nil {
		return Graph{}, err
	}

	nodes := make([]Node, 0, len(classes))
	seen := make(map[string]struct{}, len(classes))

	// First pass: declared classes. First occurrence wins.
	for _, c := range classes {
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}
		nodes = append(nodes, Node{ID: c.Name, Kind: c.Kind})
	}

	// Second pass: placeholder nodes for undeclared tokens, then edges.
	edges := make([]Edge, 0)
	for _, c := range classes {
		for _, dep := range c.Dependencies {
			if _, ok := seen[dep.Token]; !ok {
				seen[dep.Token] = struct{}{}
				nodes = append(nodes, Node{ID: dep.Token, Kind: KindUnknown})
			}
			e := Edge{From: c.Name, To: dep.Token}
			if dep.Flags != nil {
				flags := *dep.Flags
				e.Flags = &flags
			}
			edges = append(edges, e)
		}
	}

	slices.SortFunc(nodes, func(a, b Node) int {
		return strings.Compare(a.ID, b.ID)
	})
	slices.SortFunc(edges, func(a, b Edge) int {
		if c := strings.Compare(a.From, b.From); c != 0 {
			return c
		}
		return strings.Compare(a.To, b.To)
	})

	report := detectCycles(NewAdjacencyIndex(nodes, edges))
	for i := range edges {
		if _, ok := report.circular[edgeKey{edges[i].From, edges[i].To}]; ok {
			edges[i].IsCircular = true
		}
	}

	cycles := report.cycles
	if cycles == nil {
		cycles = []Cycle{}
	}

	g := Graph{Nodes: nodes, Edges: edges, CircularDependencies: cycles}
	observability.Build().OnBuildComplete(len(g.Nodes), len(g.Edges), len(g.CircularDependencies))
	return g, nil
}

// validate rejects structurally malformed input before any graph state is
// built. Each constraint has its own message so upstream callers can tell
// exactly which part of the contract was violated.
func validate(classes []Class) error {
	if classes == nil {
		return errors.New(errors.ErrCodeInvalidDeclaration, "class declarations must not be nil")
	}
	for i, c := range classes {
		if strings.TrimSpace(c.Name) == "" {
			return errors.New(errors.ErrCodeInvalidDeclaration,
				"class declaration at index %d: name must be a non-empty string", i)
		}
		if c.Kind == "" {
			return errors.New(errors.ErrCodeInvalidDeclaration,
				"class declaration %q: kind must be a string", c.Name)
		}
		if c.Dependencies == nil {
			return errors.New(errors.ErrCodeInvalidDeclaration,
				"class declaration %q: dependencies must be an array", c.Name)
		}
		for j, dep := range c.Dependencies {
			if dep.Token == "" {
				return errors.New(errors.ErrCodeInvalidDeclaration,
					"class declaration %q: dependency at index %d: token must be a string", c.Name, j)
			}
		}
	}
	return nil
}
