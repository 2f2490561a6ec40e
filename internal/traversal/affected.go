package traversal

import (
	"sort"

	"github.com/chuckjewell/roam-code/internal/graph"
	"github.com/chuckjewell/roam-code/internal/model"
	"github.com/chuckjewell/roam-code/internal/paths"
)

// Relationship classifications for affected tests.
const (
	RelDirect     = "DIRECT"
	RelTransitive = "TRANSITIVE"
)

// AffectedTest is one test symbol that transitively exercises the
// changed symbol. Via names the first intermediate hop on the shortest
// path for transitive hits.
type AffectedTest struct {
	SymbolID     int64  `json:"symbolId"`
	Name         string `json:"name"`
	File         string `json:"file"`
	Hops         int    `json:"hops"`
	Relationship string `json:"relationship"`
	Via          string `json:"via,omitempty"`
}

// AffectedTests walks reverse call/use edges from the symbol up to
// maxHops and keeps the callers living in test files. Results are
// deduplicated by (file, name) and ordered direct-first, then by hop
// count, then by file path.
func AffectedTests(g *graph.Graph, files map[int64]model.File, symbolID int64, maxHops int) ([]AffectedTest, error) {
	if err := checkHops(maxHops); err != nil {
		return nil, err
	}
	if g == nil || !g.Has(symbolID) || maxHops == 0 {
		return nil, nil
	}

	type item struct {
		id   int64
		hops int
		via  string
	}
	visited := map[int64]bool{symbolID: true}
	queue := []item{{id: symbolID}}
	seen := make(map[[2]string]bool)
	var out []AffectedTest

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.hops >= maxHops {
			continue
		}
		curNode, _ := g.Node(cur.id)
		for _, p := range g.PredecessorsByKind(cur.id, callUseKinds) {
			if visited[p] {
				continue
			}
			visited[p] = true

			// The via of a caller at hop h+1 is the first node on the
			// path after the changed symbol itself.
			via := cur.via
			if via == "" && cur.hops >= 1 {
				via = curNode.Name
			}
			next := item{id: p, hops: cur.hops + 1, via: via}
			queue = append(queue, next)

			n, ok := g.Node(p)
			if !ok {
				continue
			}
			path := files[n.FileID].Path
			if !paths.IsTestFile(path) {
				continue
			}
			key := [2]string{path, n.Name}
			if seen[key] {
				continue
			}
			seen[key] = true

			rel := RelTransitive
			hitVia := via
			if next.hops == 1 {
				rel = RelDirect
				hitVia = ""
			}
			out = append(out, AffectedTest{
				SymbolID:     p,
				Name:         n.Name,
				File:         path,
				Hops:         next.hops,
				Relationship: rel,
				Via:          hitVia,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Relationship != b.Relationship {
			return a.Relationship == RelDirect
		}
		if a.Hops != b.Hops {
			return a.Hops < b.Hops
		}
		return a.File < b.File
	})
	return out, nil
}
