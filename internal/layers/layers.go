// Package layers assigns architectural layer indices over the
// condensation DAG and flags edges that point against the expected
// dependency direction.
package layers

import (
	"github.com/chuckjewell/roam-code/internal/cycles"
	"github.com/chuckjewell/roam-code/internal/graph"
	"github.com/chuckjewell/roam-code/internal/model"
)

// Detect assigns each symbol a layer index over the condensation DAG:
// foundations (components with no outgoing dependencies) sit at layer
// 0, and every other component's layer is the longest dependency chain
// beneath it. Dependencies therefore flow from higher layers down to
// lower ones, and members of one cycle always share a layer. An empty
// graph yields an empty map, which callers read as "no layers
// detected" rather than a one-layer result.
func Detect(g *graph.Graph) map[int64]int {
	layerOf := make(map[int64]int)
	if g == nil || g.Len() == 0 {
		return layerOf
	}

	dag := cycles.Condensation(g)
	compLayer := condensationLayers(dag)

	for _, cid := range dag.NodeIDs() {
		node, _ := dag.Node(cid)
		for _, m := range node.Members {
			layerOf[m] = compLayer[cid]
		}
	}
	return layerOf
}

// condensationLayers runs a Kahn sweep from the DAG's sinks upward,
// propagating longest-chain depth: layer(n) = longest path from n to
// any dependency-free component.
func condensationLayers(dag *cycles.DAG) map[int64]int {
	layer := make(map[int64]int, dag.Len())
	outdeg := make(map[int64]int, dag.Len())
	var queue []int64
	for _, id := range dag.NodeIDs() {
		outdeg[id] = len(dag.Successors(id))
		if outdeg[id] == 0 {
			layer[id] = 0
			queue = append(queue, id)
		}
	}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range dag.Predecessors(u) {
			if layer[u]+1 > layer[v] {
				layer[v] = layer[u] + 1
			}
			outdeg[v]--
			if outdeg[v] == 0 {
				queue = append(queue, v)
			}
		}
	}
	return layer
}

// Violation is an edge pointing from a lower layer to a strictly
// higher one: a foundation depending on something built on top of it.
type Violation struct {
	SourceID    int64  `json:"sourceId"`
	Source      string `json:"source"`
	SourceLayer int    `json:"sourceLayer"`
	TargetID    int64  `json:"targetId"`
	Target      string `json:"target"`
	TargetLayer int    `json:"targetLayer"`
}

// Violations reports every distinct edge whose target layer is strictly
// greater than its source layer. Same-layer edges are allowed. The
// result order is fixed for a given graph: by source id, then target id.
func Violations(g *graph.Graph, layerOf map[int64]int) []Violation {
	if g == nil || len(layerOf) == 0 {
		return nil
	}
	var out []Violation
	for _, pair := range g.EdgePairs() {
		src, dst := pair[0], pair[1]
		sl, okS := layerOf[src]
		tl, okT := layerOf[dst]
		if !okS || !okT || tl <= sl {
			continue
		}
		sn, _ := g.Node(src)
		tn, _ := g.Node(dst)
		out = append(out, Violation{
			SourceID:    src,
			Source:      sn.Name,
			SourceLayer: sl,
			TargetID:    dst,
			Target:      tn.Name,
			TargetLayer: tl,
		})
	}
	return out
}

// Chain is the deepest dependency chain through the condensation, one
// representative symbol per component. Diagnostic only.
type Chain struct {
	SymbolIDs []int64  `json:"symbolIds"`
	Names     []string `json:"names"`
	Length    int      `json:"length"`
}

// DeepestChain finds the longest path through the condensation DAG,
// listed from the topmost component down to its deepest foundation,
// representing each component by its highest-total-degree member
// (precomputed metrics preferred, graph degree as fallback). Best
// effort: returns nil when the graph is empty or every component is
// isolated.
func DeepestChain(g *graph.Graph, metrics map[int64]model.GraphMetrics) *Chain {
	if g == nil || g.Len() == 0 {
		return nil
	}
	dag := cycles.Condensation(g)
	if dag.Len() == 0 {
		return nil
	}

	depth := condensationLayers(dag)

	var top int64 = -1
	for _, id := range dag.NodeIDs() {
		if top == -1 || depth[id] > depth[top] {
			top = id
		}
	}
	if top == -1 || depth[top] == 0 {
		return nil
	}

	// Walk downward: from a node at depth d some successor sits at
	// depth d-1 by construction; ties break on smallest id.
	comps := []int64{top}
	for cur := top; depth[cur] > 0; {
		var next int64 = -1
		for _, s := range dag.Successors(cur) {
			if depth[s] == depth[cur]-1 && (next == -1 || s < next) {
				next = s
			}
		}
		if next == -1 {
			break
		}
		comps = append(comps, next)
		cur = next
	}

	chain := &Chain{Length: len(comps)}
	for _, cid := range comps {
		node, _ := dag.Node(cid)
		rep := representative(g, node.Members, metrics)
		chain.SymbolIDs = append(chain.SymbolIDs, rep)
		if n, ok := g.Node(rep); ok {
			chain.Names = append(chain.Names, n.Name)
		} else {
			chain.Names = append(chain.Names, "")
		}
	}
	return chain
}

func representative(g *graph.Graph, members []int64, metrics map[int64]model.GraphMetrics) int64 {
	best := members[0]
	bestDeg := -1
	for _, id := range members {
		deg := g.Degree(id)
		if m, ok := metrics[id]; ok {
			deg = m.InDegree + m.OutDegree
		}
		if deg > bestDeg {
			best, bestDeg = id, deg
		}
	}
	return best
}
