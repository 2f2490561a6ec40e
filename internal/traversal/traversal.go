// Package traversal implements the bounded breadth-first searches:
// blast radius, test impact, entry-point reachability and gate
// coverage. Every walk is iterative with an explicit visited set, so
// cyclic graphs terminate and results are shortest-hop.
package traversal

import (
	"fmt"
	"sort"

	roamerrors "github.com/chuckjewell/roam-code/internal/errors"
	"github.com/chuckjewell/roam-code/internal/graph"
	"github.com/chuckjewell/roam-code/internal/model"
)

// DefaultMaxHops bounds the gate-coverage and test-impact searches.
const DefaultMaxHops = 8

// callUseKinds are the edge kinds that represent runtime reachability.
var callUseKinds = map[string]bool{
	model.EdgeCall: true,
	model.EdgeUse:  true,
}

func checkHops(maxHops int) error {
	if maxHops < 0 {
		return roamerrors.New(roamerrors.InvalidArgument,
			fmt.Sprintf("max hops must be non-negative, got %d", maxHops), nil)
	}
	return nil
}

// BlastRadiusResult summarizes everything transitively depending on a
// symbol.
type BlastRadiusResult struct {
	SymbolID     int64   `json:"symbolId"`
	Dependents   int     `json:"dependents"`
	Files        int     `json:"files"`
	DependentIDs []int64 `json:"dependentIds,omitempty"`
}

// BlastRadius walks reverse edges of every kind from the symbol and
// reports the full transitive dependent set and the distinct files it
// spans. A symbol nobody depends on yields zero counts.
func BlastRadius(g *graph.Graph, symbolID int64) BlastRadiusResult {
	res := BlastRadiusResult{SymbolID: symbolID}
	if g == nil || !g.Has(symbolID) {
		return res
	}

	visited := map[int64]bool{symbolID: true}
	queue := []int64{symbolID}
	files := make(map[int64]bool)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, p := range g.Predecessors(cur) {
			if visited[p] {
				continue
			}
			visited[p] = true
			queue = append(queue, p)
			res.DependentIDs = append(res.DependentIDs, p)
			if n, ok := g.Node(p); ok && n.FileID != 0 {
				files[n.FileID] = true
			}
		}
	}

	sort.Slice(res.DependentIDs, func(i, j int) bool {
		return res.DependentIDs[i] < res.DependentIDs[j]
	})
	res.Dependents = len(res.DependentIDs)
	res.Files = len(files)
	return res
}
