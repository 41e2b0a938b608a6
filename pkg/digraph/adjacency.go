package digraph

// AdjacencyIndex is a neighbor-lookup structure built once per traversal.
// Node IDs are translated to integer indices at construction so the cycle
// detector and the filter traverse over small int slices instead of string
// maps. Both forward (From→To) and reverse (To→From) neighbor lists are
// available; edges whose endpoints are not in the node set are skipped.
type AdjacencyIndex struct {
	ids      []string       // index -> node ID, in node order
	index    map[string]int // node ID -> index
	outgoing [][]int        // index -> neighbor indices following From→To
	incoming [][]int        // index -> neighbor indices following To→From
}

// NewAdjacencyIndex builds an index over the given nodes and edges.
// Neighbor lists preserve edge order, including duplicate edges.
func NewAdjacencyIndex(nodes []Node, edges []Edge) *AdjacencyIndex {
	idx := &AdjacencyIndex{
		ids:      make([]string, len(nodes)),
		index:    make(map[string]int, len(nodes)),
		outgoing: make([][]int, len(nodes)),
		incoming: make([][]int, len(nodes)),
	}
	for i, n := range nodes {
		idx.ids[i] = n.ID
		idx.index[n.ID] = i
	}
	for _, e := range edges {
		from, okF := idx.index[e.From]
		to, okT := idx.index[e.To]
		if !okF || !okT {
			continue
		}
		idx.outgoing[from] = append(idx.outgoing[from], to)
		idx.incoming[to] = append(idx.incoming[to], from)
	}
	return idx
}

// Len returns the number of indexed nodes.
func (a *AdjacencyIndex) Len() int { return len(a.ids) }

// ID returns the node ID for an internal index.
func (a *AdjacencyIndex) ID(i int) string { return a.ids[i] }

// Index returns the internal index for a node ID and whether it exists.
func (a *AdjacencyIndex) Index(id string) (int, bool) {
	i, ok := a.index[id]
	return i, ok
}

// Outgoing returns the neighbor indices reached by following edges in
// their declared direction (From→To). The slice is a read-only view.
func (a *AdjacencyIndex) Outgoing(i int) []int { return a.outgoing[i] }

// Incoming returns the neighbor indices reached by following edges in
// reverse (To→From). The slice is a read-only view.
func (a *AdjacencyIndex) Incoming(i int) []int { return a.incoming[i] }
