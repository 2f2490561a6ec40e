package traversal

import (
	"sort"

	"github.com/chuckjewell/roam-code/internal/graph"
	"github.com/chuckjewell/roam-code/internal/model"
)

// MaxEntryCandidates bounds the entry-point candidate pool so total
// search work stays proportional to a constant number of BFS runs.
const MaxEntryCandidates = 50

var entryKinds = map[string]bool{
	"function": true,
	"method":   true,
	"class":    true,
}

// EntryPoint is a dependency-free symbol from which the target is
// reachable, with the forward hop distance.
type EntryPoint struct {
	SymbolID int64  `json:"symbolId"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Hops     int    `json:"hops"`
}

// EntryPointsReaching finds up to limit entry points that can reach the
// target. Candidates are in-degree-0 functions, methods and classes,
// tried in out-degree-descending order (an entry that fans out widely
// is the likeliest real entry point) and capped at MaxEntryCandidates.
func EntryPointsReaching(g *graph.Graph, metrics map[int64]model.GraphMetrics, targetID int64, limit int) []EntryPoint {
	if g == nil || !g.Has(targetID) || limit <= 0 {
		return nil
	}

	type candidate struct {
		id     int64
		outDeg int
	}
	var candidates []candidate
	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		if !entryKinds[n.Kind] {
			continue
		}
		inDeg, outDeg := len(g.Predecessors(id)), len(g.Successors(id))
		if m, ok := metrics[id]; ok {
			inDeg, outDeg = m.InDegree, m.OutDegree
		}
		if inDeg != 0 {
			continue
		}
		candidates = append(candidates, candidate{id: id, outDeg: outDeg})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].outDeg != candidates[j].outDeg {
			return candidates[i].outDeg > candidates[j].outDeg
		}
		return candidates[i].id < candidates[j].id
	})
	if len(candidates) > MaxEntryCandidates {
		candidates = candidates[:MaxEntryCandidates]
	}

	var out []EntryPoint
	for _, c := range candidates {
		if len(out) >= limit {
			break
		}
		hops, found := forwardDistance(g, c.id, targetID)
		if !found {
			continue
		}
		n, _ := g.Node(c.id)
		out = append(out, EntryPoint{SymbolID: c.id, Name: n.Name, Kind: n.Kind, Hops: hops})
	}
	return out
}

// forwardDistance returns the shortest forward hop count from start to
// target over any edge kind.
func forwardDistance(g *graph.Graph, start, target int64) (int, bool) {
	if start == target {
		return 0, true
	}
	type item struct {
		id   int64
		hops int
	}
	visited := map[int64]bool{start: true}
	queue := []item{{id: start}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, s := range g.Successors(cur.id) {
			if visited[s] {
				continue
			}
			if s == target {
				return cur.hops + 1, true
			}
			visited[s] = true
			queue = append(queue, item{id: s, hops: cur.hops + 1})
		}
	}
	return 0, false
}
