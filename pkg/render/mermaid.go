package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/injectograph/injectograph/pkg/digraph"
)

// ToMermaid converts a graph to Mermaid flowchart syntax ("graph TD").
// Unknown nodes get dashed borders via a class definition, and circular
// edges are listed in a linkStyle directive colored red.
//
// Mermaid has no quoting for arbitrary IDs, so each node gets a stable
// positional identifier (n0, n1, ...) with the real ID as its label.
func ToMermaid(g digraph.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("graph TD\n")

	alias := make(map[string]string, len(g.Nodes))
	var unknown []string
	for i, n := range g.Nodes {
		id := fmt.Sprintf("n%d", i)
		alias[n.ID] = id
		fmt.Fprintf(&buf, "  %s[%q]\n", id, n.ID)
		if n.Kind == digraph.KindUnknown {
			unknown = append(unknown, id)
		}
	}

	// linkStyle indexes links in emission order, so count only edges
	// actually written.
	var circular []string
	link := 0
	for _, e := range g.Edges {
		from, okF := alias[e.From]
		to, okT := alias[e.To]
		if !okF || !okT {
			continue
		}
		fmt.Fprintf(&buf, "  %s --> %s\n", from, to)
		if e.IsCircular {
			circular = append(circular, fmt.Sprintf("%d", link))
		}
		link++
	}

	if len(unknown) > 0 {
		buf.WriteString("  classDef unknown stroke-dasharray: 5 5,fill:#eee\n")
		fmt.Fprintf(&buf, "  class %s unknown\n", strings.Join(unknown, ","))
	}
	if len(circular) > 0 {
		fmt.Fprintf(&buf, "  linkStyle %s stroke:#c0392b,stroke-width:2px\n", strings.Join(circular, ","))
	}

	return buf.String()
}
