package traversal

import (
	"reflect"
	"testing"

	"github.com/chuckjewell/roam-code/internal/graph"
	"github.com/chuckjewell/roam-code/internal/model"
)

// callGraph: handler -> service -> store, helper -> service, and a
// mutual recursion pair ping <-> pong calling store.
func callGraph() *graph.Graph {
	return graph.Build(
		[]model.Symbol{
			{ID: 1, Name: "handler", Kind: "function", FileID: 1},
			{ID: 2, Name: "service", Kind: "function", FileID: 2},
			{ID: 3, Name: "store", Kind: "function", FileID: 3},
			{ID: 4, Name: "helper", Kind: "function", FileID: 1},
			{ID: 5, Name: "ping", Kind: "function", FileID: 4},
			{ID: 6, Name: "pong", Kind: "function", FileID: 4},
		},
		[]model.Edge{
			{SourceID: 1, TargetID: 2, Kind: model.EdgeCall},
			{SourceID: 2, TargetID: 3, Kind: model.EdgeCall},
			{SourceID: 4, TargetID: 2, Kind: model.EdgeCall},
			{SourceID: 5, TargetID: 6, Kind: model.EdgeCall},
			{SourceID: 6, TargetID: 5, Kind: model.EdgeCall},
			{SourceID: 5, TargetID: 3, Kind: model.EdgeCall},
		},
	)
}

func TestBlastRadius(t *testing.T) {
	g := callGraph()
	tests := []struct {
		name           string
		symbol         int64
		wantDependents int
		wantFiles      int
	}{
		{"store has every caller upstream", 3, 5, 3},
		{"service has three dependents", 2, 2, 1},
		{"leaf has none", 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BlastRadius(g, tt.symbol)
			if got.Dependents != tt.wantDependents {
				t.Errorf("Dependents = %d, want %d", got.Dependents, tt.wantDependents)
			}
			if got.Files != tt.wantFiles {
				t.Errorf("Files = %d, want %d", got.Files, tt.wantFiles)
			}
		})
	}
}

func TestBlastRadiusTerminatesOnCycles(t *testing.T) {
	g := callGraph()
	got := BlastRadius(g, 5)
	// 6 depends on 5; the cycle must not loop forever or count twice.
	if !reflect.DeepEqual(got.DependentIDs, []int64{6}) {
		t.Errorf("DependentIDs = %v, want [6]", got.DependentIDs)
	}
}

func TestBlastRadiusUnknownSymbol(t *testing.T) {
	got := BlastRadius(callGraph(), 99)
	if got.Dependents != 0 || got.Files != 0 {
		t.Errorf("unknown symbol yields %d/%d, want 0/0", got.Dependents, got.Files)
	}
}
