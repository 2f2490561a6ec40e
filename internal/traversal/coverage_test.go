package traversal

import (
	"regexp"
	"strings"
	"testing"

	roamerrors "github.com/chuckjewell/roam-code/internal/errors"
	"github.com/chuckjewell/roam-code/internal/graph"
	"github.com/chuckjewell/roam-code/internal/model"
)

// gateFixture: loader calls require_user directly; orphan calls
// nothing; require_user itself is an exported entry and a gate.
func gateFixture() (*graph.Graph, []model.Symbol, map[int64]model.File) {
	symbols := []model.Symbol{
		{ID: 1, Name: "loader", Kind: "function", FileID: 1, Exported: true, LineStart: 10},
		{ID: 2, Name: "require_user", Kind: "function", FileID: 2, Exported: true, LineStart: 5},
		{ID: 3, Name: "orphan", Kind: "function", FileID: 1, Exported: true, LineStart: 40},
		{ID: 4, Name: "internalHelper", Kind: "function", FileID: 2, Exported: false, LineStart: 20},
	}
	g := graph.Build(symbols, []model.Edge{
		{SourceID: 1, TargetID: 2, Kind: model.EdgeCall},
		{SourceID: 3, TargetID: 4, Kind: model.EdgeCall},
	})
	files := map[int64]model.File{
		1: {ID: 1, Path: "api/routes.py"},
		2: {ID: 2, Path: "api/auth.py"},
	}
	return g, symbols, files
}

func TestCoverageGapsDirectCall(t *testing.T) {
	g, symbols, files := gateFixture()
	res, err := CoverageGaps(g, symbols, files, CoverageOptions{
		GateNames: []string{"require_user"},
	})
	if err != nil {
		t.Fatalf("CoverageGaps() error = %v", err)
	}

	var loader *CoveredEntry
	for i := range res.Covered {
		if res.Covered[i].Name == "loader" {
			loader = &res.Covered[i]
		}
	}
	if loader == nil {
		t.Fatalf("loader not covered: %+v", res)
	}
	if loader.Depth != 1 {
		t.Errorf("loader depth = %d, want 1", loader.Depth)
	}
	if got := strings.Join(loader.Path, ","); got != "loader,require_user" {
		t.Errorf("loader path = %q, want %q", got, "loader,require_user")
	}
}

func TestCoverageGapsEntryIsGate(t *testing.T) {
	g, symbols, files := gateFixture()
	res, err := CoverageGaps(g, symbols, files, CoverageOptions{
		GateNames: []string{"require_user"},
	})
	if err != nil {
		t.Fatalf("CoverageGaps() error = %v", err)
	}
	for _, c := range res.Covered {
		if c.Name == "require_user" && c.Depth != 0 {
			t.Errorf("gate-as-entry depth = %d, want 0", c.Depth)
		}
	}
}

func TestCoverageGapsUncovered(t *testing.T) {
	g, symbols, files := gateFixture()
	res, err := CoverageGaps(g, symbols, files, CoverageOptions{
		GateNames: []string{"require_user"},
		MaxHops:   4,
	})
	if err != nil {
		t.Fatalf("CoverageGaps() error = %v", err)
	}
	if len(res.Uncovered) != 1 || res.Uncovered[0].Name != "orphan" {
		t.Fatalf("uncovered = %+v, want only orphan", res.Uncovered)
	}
	if !strings.Contains(res.Uncovered[0].Reason, "4 hops") {
		t.Errorf("reason = %q, want hop budget mentioned", res.Uncovered[0].Reason)
	}
}

func TestCoverageGapsPercentage(t *testing.T) {
	g, symbols, files := gateFixture()
	res, err := CoverageGaps(g, symbols, files, CoverageOptions{
		GateNames: []string{"require_user"},
	})
	if err != nil {
		t.Fatalf("CoverageGaps() error = %v", err)
	}
	// Entries: loader, require_user, orphan (internalHelper is not
	// exported). Two covered.
	if res.Total != 3 {
		t.Errorf("Total = %d, want 3", res.Total)
	}
	wantPct := float64(2) * 100 / 3
	if res.CoveragePct != wantPct {
		t.Errorf("CoveragePct = %v, want %v", res.CoveragePct, wantPct)
	}
}

func TestCoverageGapsGatePattern(t *testing.T) {
	g, symbols, files := gateFixture()
	res, err := CoverageGaps(g, symbols, files, CoverageOptions{
		GatePattern: regexp.MustCompile(`^require_`),
	})
	if err != nil {
		t.Fatalf("CoverageGaps() error = %v", err)
	}
	if res.Gates != 1 {
		t.Errorf("Gates = %d, want 1", res.Gates)
	}
}

func TestCoverageGapsScopeFilter(t *testing.T) {
	g, symbols, files := gateFixture()
	res, err := CoverageGaps(g, symbols, files, CoverageOptions{
		GateNames: []string{"require_user"},
		Scope:     []string{"api/routes.py"},
	})
	if err != nil {
		t.Fatalf("CoverageGaps() error = %v", err)
	}
	if res.Total != 2 {
		t.Errorf("Total = %d, want 2 (loader and orphan)", res.Total)
	}
}

func TestCoverageGapsHopBudgetStopsSearch(t *testing.T) {
	// chain: e -> a -> b -> gate needs 3 hops.
	symbols := []model.Symbol{
		{ID: 1, Name: "e", Kind: "function", FileID: 1, Exported: true, LineStart: 1},
		{ID: 2, Name: "a", Kind: "function", FileID: 1, LineStart: 5},
		{ID: 3, Name: "b", Kind: "function", FileID: 1, LineStart: 9},
		{ID: 4, Name: "gate", Kind: "function", FileID: 1, LineStart: 13},
	}
	g := graph.Build(symbols, []model.Edge{
		{SourceID: 1, TargetID: 2, Kind: model.EdgeCall},
		{SourceID: 2, TargetID: 3, Kind: model.EdgeCall},
		{SourceID: 3, TargetID: 4, Kind: model.EdgeCall},
	})
	files := map[int64]model.File{1: {ID: 1, Path: "svc/main.py"}}

	tests := []struct {
		name        string
		maxHops     int
		wantCovered bool
	}{
		{"budget exactly reaches", 3, true},
		{"budget one short", 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := CoverageGaps(g, symbols, files, CoverageOptions{
				GateNames: []string{"gate"},
				MaxHops:   tt.maxHops,
			})
			if err != nil {
				t.Fatalf("CoverageGaps() error = %v", err)
			}
			covered := len(res.Covered) == 1
			if covered != tt.wantCovered {
				t.Errorf("covered = %v, want %v (%+v)", covered, tt.wantCovered, res)
			}
		})
	}
}

func TestCoverageGapsNegativeHops(t *testing.T) {
	g, symbols, files := gateFixture()
	_, err := CoverageGaps(g, symbols, files, CoverageOptions{MaxHops: -2})
	if err == nil {
		t.Fatal("CoverageGaps(-2) error = nil, want INVALID_ARGUMENT")
	}
	if roamerrors.CodeOf(err) != roamerrors.InvalidArgument {
		t.Errorf("error code = %s, want %s", roamerrors.CodeOf(err), roamerrors.InvalidArgument)
	}
}

func TestCoverageGapsEmptyGraph(t *testing.T) {
	res, err := CoverageGaps(graph.New(), nil, nil, CoverageOptions{GateNames: []string{"x"}})
	if err != nil {
		t.Fatalf("CoverageGaps() error = %v", err)
	}
	if res.Total != 0 || res.CoveragePct != 0 {
		t.Errorf("empty graph yields %+v, want zeroes", res)
	}
}
