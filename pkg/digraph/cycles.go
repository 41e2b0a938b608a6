package digraph

// cycleReport collects every cycle found by detectCycles along with the set
// of edges that participate in at least one of them.
type cycleReport struct {
	cycles   []Cycle
	circular map[edgeKey]struct{}
}

// detectCycles enumerates all cycles reachable in the indexed graph using
// depth-first search with white/gray/black coloring. The traversal is
// driven by an explicit frame stack plus an ordered path, never by Go
// recursion, so long dependency chains cannot exhaust the call stack.
//
// When a gray node is revisited, the slice of the current path starting at
// that node's first occurrence, with the revisited ID appended to close the
// walk, is recorded as a cycle. The revisited node's own neighbors are not
// re-explored through that edge. A self-loop yields the two-element cycle
// [X X].
//
// The same cycle can be reported more than once when distinct edges lead
// back into it. That duplication is part of the output contract and is
// deliberately not collapsed here; consumers wanting unique cycles must
// deduplicate themselves.
func detectCycles(idx *AdjacencyIndex) cycleReport {
	const (
		white = iota
		gray
		black
	)

	n := idx.Len()
	report := cycleReport{circular: make(map[edgeKey]struct{})}

	color := make([]int, n)
	path := make([]int, 0, n)
	pathPos := make([]int, n) // position of a gray node on the current path

	type frame struct {
		node int
		next int // next neighbor to visit
	}
	stack := make([]frame, 0, n)

	for root := 0; root < n; root++ {
		if color[root] != white {
			continue
		}

		color[root] = gray
		pathPos[root] = len(path)
		path = append(path, root)
		stack = append(stack, frame{node: root})

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			neighbors := idx.Outgoing(f.node)

			if f.next < len(neighbors) {
				w := neighbors[f.next]
				f.next++
				switch color[w] {
				case black:
					// Fully processed, nothing new reachable.
				case gray:
					report.record(idx, path[pathPos[w]:], w)
				default:
					color[w] = gray
					pathPos[w] = len(path)
					path = append(path, w)
					stack = append(stack, frame{node: w})
				}
				continue
			}

			color[f.node] = black
			path = path[:len(path)-1]
			stack = stack[:len(stack)-1]
		}
	}

	return report
}

// record converts a path slice plus the closing node into a closed-form
// cycle and marks every consecutive step as a circular edge.
func (r *cycleReport) record(idx *AdjacencyIndex, tail []int, closing int) {
	cycle := make(Cycle, 0, len(tail)+1)
	for _, v := range tail {
		cycle = append(cycle, idx.ID(v))
	}
	cycle = append(cycle, idx.ID(closing))

	r.cycles = append(r.cycles, cycle)
	for i := 0; i+1 < len(cycle); i++ {
		r.circular[edgeKey{cycle[i], cycle[i+1]}] = struct{}{}
	}
}
