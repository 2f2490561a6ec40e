package traversal

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/chuckjewell/roam-code/internal/graph"
	"github.com/chuckjewell/roam-code/internal/model"
	"github.com/chuckjewell/roam-code/internal/paths"
)

// CoverageOptions selects the entry points and gates for a coverage
// search. Gates match by exact name or, when GatePattern is set, by
// regexp. EntryFilter narrows entries by name substring; Scope narrows
// by file glob.
type CoverageOptions struct {
	GateNames   []string
	GatePattern *regexp.Regexp
	EntryFilter string
	Scope       []string
	MaxHops     int
}

// CoveredEntry is an entry point with a call path to a gate. Path holds
// the symbol-name chain from entry to gate inclusive; Depth is the edge
// count (0 when the entry itself is a gate).
type CoveredEntry struct {
	SymbolID int64    `json:"symbolId"`
	Name     string   `json:"name"`
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Gate     string   `json:"gate"`
	Depth    int      `json:"depth"`
	Path     []string `json:"path"`
}

// UncoveredEntry is an entry point with no call path to any gate within
// the hop budget.
type UncoveredEntry struct {
	SymbolID int64  `json:"symbolId"`
	Name     string `json:"name"`
	File     string `json:"file"`
	Line     int    `json:"line"`
	Reason   string `json:"reason"`
}

// CoverageResult partitions entry points into covered and uncovered.
type CoverageResult struct {
	Covered     []CoveredEntry   `json:"covered"`
	Uncovered   []UncoveredEntry `json:"uncovered"`
	Total       int              `json:"total"`
	CoveragePct float64          `json:"coveragePct"`
	Gates       int              `json:"gates"`
}

// CoverageGaps finds entry points (exported top-level functions and
// methods, optionally filtered) that never reach a required gate within
// the hop cap. Each entry gets a hop-capped forward BFS over call/use
// edges; the first gate reached wins, so reported paths are shortest.
func CoverageGaps(g *graph.Graph, symbols []model.Symbol, files map[int64]model.File, opts CoverageOptions) (*CoverageResult, error) {
	if err := checkHops(opts.MaxHops); err != nil {
		return nil, err
	}
	maxHops := opts.MaxHops
	if maxHops == 0 {
		maxHops = DefaultMaxHops
	}

	res := &CoverageResult{}
	if g == nil || g.Len() == 0 {
		return res, nil
	}

	gates := make(map[int64]bool)
	for _, sym := range symbols {
		if matchesGate(sym.Name, opts) {
			gates[sym.ID] = true
		}
	}
	res.Gates = len(gates)

	var entries []model.Symbol
	for _, sym := range symbols {
		if !sym.Exported || sym.ParentID != 0 {
			continue
		}
		if sym.Kind != "function" && sym.Kind != "method" {
			continue
		}
		if opts.EntryFilter != "" && !strings.Contains(sym.Name, opts.EntryFilter) {
			continue
		}
		if !paths.InScope(files[sym.FileID].Path, opts.Scope) {
			continue
		}
		entries = append(entries, sym)
	}
	res.Total = len(entries)
	if len(entries) == 0 {
		return res, nil
	}

	for _, entry := range entries {
		path, gateID, found := gateSearch(g, entry.ID, gates, maxHops)
		file := files[entry.FileID].Path
		if !found {
			res.Uncovered = append(res.Uncovered, UncoveredEntry{
				SymbolID: entry.ID,
				Name:     entry.Name,
				File:     file,
				Line:     entry.LineStart,
				Reason:   fmt.Sprintf("no gate reachable within %d hops", maxHops),
			})
			continue
		}
		names := make([]string, len(path))
		for i, id := range path {
			if n, ok := g.Node(id); ok {
				names[i] = n.Name
			}
		}
		gateName := ""
		if n, ok := g.Node(gateID); ok {
			gateName = n.Name
		}
		res.Covered = append(res.Covered, CoveredEntry{
			SymbolID: entry.ID,
			Name:     entry.Name,
			File:     file,
			Line:     entry.LineStart,
			Gate:     gateName,
			Depth:    len(path) - 1,
			Path:     names,
		})
	}

	sort.Slice(res.Covered, func(i, j int) bool {
		a, b := res.Covered[i], res.Covered[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Name < b.Name
	})
	sort.Slice(res.Uncovered, func(i, j int) bool {
		a, b := res.Uncovered[i], res.Uncovered[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Name < b.Name
	})
	if res.Total > 0 {
		res.CoveragePct = float64(len(res.Covered)) * 100 / float64(res.Total)
	}
	return res, nil
}

func matchesGate(name string, opts CoverageOptions) bool {
	for _, g := range opts.GateNames {
		if name == g {
			return true
		}
	}
	if opts.GatePattern != nil && opts.GatePattern.MatchString(name) {
		return true
	}
	return false
}

// gateSearch runs a hop-capped forward BFS over call/use edges from
// entry, returning the id path to the first gate reached.
func gateSearch(g *graph.Graph, entry int64, gates map[int64]bool, maxHops int) ([]int64, int64, bool) {
	if gates[entry] {
		return []int64{entry}, entry, true
	}
	type item struct {
		id   int64
		path []int64
	}
	visited := map[int64]bool{entry: true}
	queue := []item{{id: entry, path: []int64{entry}}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if len(cur.path)-1 >= maxHops {
			continue
		}
		for _, s := range g.SuccessorsByKind(cur.id, callUseKinds) {
			if visited[s] {
				continue
			}
			visited[s] = true
			next := append(append([]int64{}, cur.path...), s)
			if gates[s] {
				return next, s, true
			}
			queue = append(queue, item{id: s, path: next})
		}
	}
	return nil, 0, false
}
