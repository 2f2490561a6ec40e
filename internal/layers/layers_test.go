package layers

import (
	"testing"

	"github.com/chuckjewell/roam-code/internal/graph"
	"github.com/chuckjewell/roam-code/internal/model"
)

// chainGraph: app -> service -> store, app -> store, plus an isolated
// util. Expected layers: store=0, util=0, service=1, app=2.
func chainGraph() *graph.Graph {
	return graph.Build(
		[]model.Symbol{
			{ID: 1, Name: "app", Kind: "function", FileID: 1},
			{ID: 2, Name: "service", Kind: "function", FileID: 2},
			{ID: 3, Name: "store", Kind: "function", FileID: 3},
			{ID: 4, Name: "util", Kind: "function", FileID: 4},
		},
		[]model.Edge{
			{SourceID: 1, TargetID: 2, Kind: model.EdgeCall},
			{SourceID: 2, TargetID: 3, Kind: model.EdgeCall},
			{SourceID: 1, TargetID: 3, Kind: model.EdgeCall},
		},
	)
}

func TestDetectEmptyGraph(t *testing.T) {
	if got := Detect(graph.New()); len(got) != 0 {
		t.Errorf("Detect(empty) = %v, want empty map", got)
	}
}

func TestDetectLongestChainLayers(t *testing.T) {
	layerOf := Detect(chainGraph())
	want := map[int64]int{1: 2, 2: 1, 3: 0, 4: 0}
	for id, layer := range want {
		if layerOf[id] != layer {
			t.Errorf("layer of %d = %d, want %d", id, layerOf[id], layer)
		}
	}
}

func TestDetectCycleMembersShareLayer(t *testing.T) {
	g := graph.Build(
		[]model.Symbol{
			{ID: 1, Name: "a", Kind: "function", FileID: 1},
			{ID: 2, Name: "b", Kind: "function", FileID: 1},
			{ID: 3, Name: "c", Kind: "function", FileID: 1},
		},
		[]model.Edge{
			{SourceID: 1, TargetID: 2, Kind: model.EdgeCall},
			{SourceID: 2, TargetID: 1, Kind: model.EdgeCall},
			{SourceID: 2, TargetID: 3, Kind: model.EdgeCall},
		},
	)
	layerOf := Detect(g)
	if layerOf[1] != layerOf[2] {
		t.Errorf("cycle members have layers %d and %d, want equal", layerOf[1], layerOf[2])
	}
	if layerOf[1] != layerOf[3]+1 {
		t.Errorf("cycle sits at layer %d over foundation layer %d, want one above",
			layerOf[1], layerOf[3])
	}
}

func TestDetectNormalEdgesFlowDownward(t *testing.T) {
	g := chainGraph()
	layerOf := Detect(g)
	// Self-consistent layering: every dependency points at an equal or
	// lower layer, so Violations on Detect's own output is empty.
	for _, pair := range g.EdgePairs() {
		if layerOf[pair[0]] < layerOf[pair[1]] {
			t.Errorf("edge %d -> %d climbs from layer %d to %d",
				pair[0], pair[1], layerOf[pair[0]], layerOf[pair[1]])
		}
	}
	if v := Violations(g, layerOf); len(v) != 0 {
		t.Errorf("Violations on self-consistent layers = %v, want none", v)
	}
}

func TestViolationsAgainstDeclaredLayers(t *testing.T) {
	g := chainGraph()
	// Declared architecture puts util at the foundation with store, but
	// someone made store depend on app.
	g.AddEdge(3, 1, model.EdgeUse)
	declared := map[int64]int{1: 2, 2: 1, 3: 0, 4: 0}

	violations := Violations(g, declared)
	if len(violations) != 1 {
		t.Fatalf("got %d violations, want 1: %v", len(violations), violations)
	}
	v := violations[0]
	if v.SourceID != 3 || v.TargetID != 1 {
		t.Errorf("violation = %d -> %d, want 3 -> 1", v.SourceID, v.TargetID)
	}
	if v.SourceLayer != 0 || v.TargetLayer != 2 {
		t.Errorf("violation layers = %d -> %d, want 0 -> 2", v.SourceLayer, v.TargetLayer)
	}
	if v.Source != "store" || v.Target != "app" {
		t.Errorf("violation names = %s -> %s, want store -> app", v.Source, v.Target)
	}
}

func TestViolationsStableOrder(t *testing.T) {
	g := chainGraph()
	g.AddEdge(3, 1, model.EdgeUse)
	g.AddEdge(4, 2, model.EdgeUse)
	declared := map[int64]int{1: 2, 2: 1, 3: 0, 4: 0}

	first := Violations(g, declared)
	second := Violations(g, declared)
	if len(first) != 2 {
		t.Fatalf("got %d violations, want 2: %v", len(first), first)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("violation order unstable at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
	if first[0].SourceID > first[1].SourceID {
		t.Errorf("violations not ordered by source id: %v", first)
	}
}

func TestDeepestChain(t *testing.T) {
	g := chainGraph()
	chain := DeepestChain(g, map[int64]model.GraphMetrics{})
	if chain == nil {
		t.Fatal("DeepestChain = nil, want a chain")
	}
	if chain.Length != 3 {
		t.Errorf("chain length = %d, want 3", chain.Length)
	}
	if chain.Names[0] != "app" || chain.Names[len(chain.Names)-1] != "store" {
		t.Errorf("chain = %v, want app ... store", chain.Names)
	}
}

func TestDeepestChainUsesMetricsRepresentative(t *testing.T) {
	g := graph.Build(
		[]model.Symbol{
			{ID: 1, Name: "hub", Kind: "function", FileID: 1},
			{ID: 2, Name: "spoke", Kind: "function", FileID: 1},
			{ID: 3, Name: "base", Kind: "function", FileID: 2},
		},
		[]model.Edge{
			{SourceID: 1, TargetID: 2, Kind: model.EdgeCall},
			{SourceID: 2, TargetID: 1, Kind: model.EdgeCall},
			{SourceID: 1, TargetID: 3, Kind: model.EdgeCall},
		},
	)
	metrics := map[int64]model.GraphMetrics{
		1: {SymbolID: 1, InDegree: 30, OutDegree: 10},
		2: {SymbolID: 2, InDegree: 1, OutDegree: 1},
	}
	chain := DeepestChain(g, metrics)
	if chain == nil {
		t.Fatal("DeepestChain = nil, want a chain")
	}
	if chain.Names[0] != "hub" {
		t.Errorf("cycle representative = %q, want %q (highest degree)", chain.Names[0], "hub")
	}
}

func TestDeepestChainNilOnEmpty(t *testing.T) {
	if got := DeepestChain(graph.New(), nil); got != nil {
		t.Errorf("DeepestChain(empty) = %+v, want nil", got)
	}
	// All-isolated graph has no chain either.
	g := graph.Build([]model.Symbol{{ID: 1, Name: "solo", Kind: "function", FileID: 1}}, nil)
	if got := DeepestChain(g, nil); got != nil {
		t.Errorf("DeepestChain(isolated) = %+v, want nil", got)
	}
}
