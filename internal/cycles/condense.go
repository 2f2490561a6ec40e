package cycles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chuckjewell/roam-code/internal/graph"
)

// CondNode is one component of the condensation. Members are original
// symbol ids, sorted ascending. Label is a human hint derived from the
// most common name prefix among the members.
type CondNode struct {
	ID          int64   `json:"id"`
	Members     []int64 `json:"members"`
	MemberCount int     `json:"memberCount"`
	Label       string  `json:"label"`
}

// DAG is the condensation of the symbol graph: every SCC collapsed to a
// single node, edges deduplicated, self-loops dropped. It is acyclic by
// construction.
type DAG struct {
	nodes  map[int64]CondNode
	out    map[int64][]int64
	in     map[int64][]int64
	compOf map[int64]int64
}

// Len returns the component count.
func (d *DAG) Len() int { return len(d.nodes) }

// NodeIDs returns component ids ascending.
func (d *DAG) NodeIDs() []int64 {
	ids := make([]int64, 0, len(d.nodes))
	for id := range d.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Node returns the component for id and whether it exists.
func (d *DAG) Node(id int64) (CondNode, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Successors returns distinct downstream components, ascending.
func (d *DAG) Successors(id int64) []int64 { return d.out[id] }

// Predecessors returns distinct upstream components, ascending.
func (d *DAG) Predecessors(id int64) []int64 { return d.in[id] }

// InDegree returns the number of distinct upstream components.
func (d *DAG) InDegree(id int64) int { return len(d.in[id]) }

// CompOf maps an original symbol id to its component id.
func (d *DAG) CompOf(symbol int64) (int64, bool) {
	c, ok := d.compOf[symbol]
	return c, ok
}

// Condensation collapses every SCC of g (including singletons) into one
// DAG node. Component ids are assigned in ascending order of each
// component's smallest member, so ids are stable for a given graph.
func Condensation(g *graph.Graph) *DAG {
	d := &DAG{
		nodes:  make(map[int64]CondNode),
		out:    make(map[int64][]int64),
		in:     make(map[int64][]int64),
		compOf: make(map[int64]int64),
	}
	if g == nil || g.Len() == 0 {
		return d
	}

	comps := stronglyConnected(g)
	sort.Slice(comps, func(i, j int) bool { return comps[i][0] < comps[j][0] })

	for i, comp := range comps {
		id := int64(i)
		d.nodes[id] = CondNode{
			ID:          id,
			Members:     comp,
			MemberCount: len(comp),
			Label:       componentLabel(g, comp),
		}
		for _, m := range comp {
			d.compOf[m] = id
		}
	}

	outSeen := make(map[[2]int64]bool)
	for _, pair := range g.EdgePairs() {
		cu, cv := d.compOf[pair[0]], d.compOf[pair[1]]
		if cu == cv {
			continue
		}
		key := [2]int64{cu, cv}
		if outSeen[key] {
			continue
		}
		outSeen[key] = true
		d.out[cu] = append(d.out[cu], cv)
		d.in[cv] = append(d.in[cv], cu)
	}
	for _, adj := range []map[int64][]int64{d.out, d.in} {
		for id := range adj {
			sort.Slice(adj[id], func(i, j int) bool { return adj[id][i] < adj[id][j] })
		}
	}
	return d
}

// Condense builds the condensation for reporting on detected cycles.
// With no nodes or no cycles it returns an empty DAG rather than a
// trivial one-node-per-symbol structure nobody would read.
func Condense(g *graph.Graph, cycleComponents [][]int64) *DAG {
	if g == nil || g.Len() == 0 || len(cycleComponents) == 0 {
		return &DAG{
			nodes:  make(map[int64]CondNode),
			out:    make(map[int64][]int64),
			in:     make(map[int64][]int64),
			compOf: make(map[int64]int64),
		}
	}
	return Condensation(g)
}

// componentLabel picks the most common name prefix among members,
// splitting each name at its last "." (or "_" when no dot is present).
// First-seen prefix wins count ties; components with no usable names
// fall back to a synthetic scc_<id> label.
func componentLabel(g *graph.Graph, members []int64) string {
	counts := make(map[string]int)
	var order []string
	for _, id := range members {
		n, ok := g.Node(id)
		if !ok || n.Name == "" {
			continue
		}
		prefix := n.Name
		for _, sep := range []string{".", "_"} {
			if idx := strings.LastIndex(n.Name, sep); idx > 0 {
				prefix = n.Name[:idx]
				break
			}
		}
		if counts[prefix] == 0 {
			order = append(order, prefix)
		}
		counts[prefix]++
	}
	best, bestCount := "", 0
	for _, p := range order {
		if counts[p] > bestCount {
			best, bestCount = p, counts[p]
		}
	}
	if best == "" {
		return fmt.Sprintf("scc_%d", members[0])
	}
	return best
}

// BreakSuggestion names one intra-cycle edge whose removal is the
// cheapest structural change that could open the cycle.
type BreakSuggestion struct {
	SourceID int64  `json:"sourceId"`
	TargetID int64  `json:"targetId"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Reason   string `json:"reason"`
}

// WeakestEdge scores every edge internal to the component by the pair
// (intra-component out-degree of the source, intra-component in-degree
// of the target) and returns the lexicographic maximum: the edge whose
// source already talks to many members and whose target is already
// widely depended on inside the cycle. Returns nil for components with
// fewer than two members or no internal edges.
func WeakestEdge(g *graph.Graph, members []int64) *BreakSuggestion {
	if len(members) < 2 {
		return nil
	}
	inComp := make(map[int64]bool, len(members))
	for _, id := range members {
		inComp[id] = true
	}

	outDeg := make(map[int64]int, len(members))
	inDeg := make(map[int64]int, len(members))
	for _, u := range members {
		for _, v := range g.Successors(u) {
			if inComp[v] {
				outDeg[u]++
				inDeg[v]++
			}
		}
	}

	var best *BreakSuggestion
	bestScore := [2]int{-1, -1}
	for _, u := range members {
		for _, v := range g.Successors(u) {
			if !inComp[v] {
				continue
			}
			score := [2]int{outDeg[u], inDeg[v]}
			if score[0] > bestScore[0] ||
				(score[0] == bestScore[0] && score[1] > bestScore[1]) {
				bestScore = score
				su, _ := g.Node(u)
				sv, _ := g.Node(v)
				best = &BreakSuggestion{
					SourceID: u,
					TargetID: v,
					Source:   su.Name,
					Target:   sv.Name,
					Reason: fmt.Sprintf(
						"source reaches %d cycle members, target is needed by %d",
						outDeg[u], inDeg[v]),
				}
			}
		}
	}
	return best
}
