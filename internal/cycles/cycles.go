// Package cycles implements strongly connected component detection,
// condensation of the symbol graph into a DAG, and the weakest-edge
// heuristic used to suggest a cycle break.
package cycles

import (
	"sort"

	"github.com/chuckjewell/roam-code/internal/graph"
)

// Find returns strongly connected components with at least minSize
// members. Components are sorted by size descending (ties by smallest
// member id) and each member list ascending, for deterministic output.
func Find(g *graph.Graph, minSize int) [][]int64 {
	if g == nil || g.Len() == 0 {
		return nil
	}
	if minSize < 1 {
		minSize = 1
	}

	var out [][]int64
	for _, comp := range stronglyConnected(g) {
		if len(comp) >= minSize {
			out = append(out, comp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i][0] < out[j][0]
	})
	return out
}

// stronglyConnected runs an iterative Tarjan SCC over the graph. The
// explicit frame stack keeps recursion depth independent of graph size.
// Each returned component's members are sorted ascending.
func stronglyConnected(g *graph.Graph) [][]int64 {
	index := make(map[int64]int, g.Len())
	lowlink := make(map[int64]int, g.Len())
	onStack := make(map[int64]bool, g.Len())
	var stack []int64
	var comps [][]int64
	counter := 0

	type frame struct {
		node int64
		succ []int64
		next int
	}

	push := func(frames []frame, node int64) []frame {
		index[node] = counter
		lowlink[node] = counter
		counter++
		stack = append(stack, node)
		onStack[node] = true
		return append(frames, frame{node: node, succ: g.Successors(node)})
	}

	for _, start := range g.NodeIDs() {
		if _, seen := index[start]; seen {
			continue
		}
		frames := push(nil, start)

		for len(frames) > 0 {
			f := &frames[len(frames)-1]
			advanced := false
			for f.next < len(f.succ) {
				w := f.succ[f.next]
				f.next++
				if _, seen := index[w]; !seen {
					frames = push(frames, w)
					advanced = true
					break
				}
				if onStack[w] && index[w] < lowlink[f.node] {
					lowlink[f.node] = index[w]
				}
			}
			if advanced {
				continue
			}

			if lowlink[f.node] == index[f.node] {
				var comp []int64
				for {
					n := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[n] = false
					comp = append(comp, n)
					if n == f.node {
						break
					}
				}
				sort.Slice(comp, func(i, j int) bool { return comp[i] < comp[j] })
				comps = append(comps, comp)
			}

			done := f.node
			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := &frames[len(frames)-1]
				if lowlink[done] < lowlink[parent.node] {
					lowlink[parent.node] = lowlink[done]
				}
			}
		}
	}

	return comps
}
