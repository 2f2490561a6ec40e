package health

import (
	"testing"

	"github.com/chuckjewell/roam-code/internal/model"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		in   ScoreInput
		want int
	}{
		{"empty codebase is perfect", ScoreInput{}, 100},
		{"clean codebase is perfect", ScoreInput{Symbols: 500}, 100},
		{"one cycle costs three", ScoreInput{Symbols: 500, Cycles: 1}, 97},
		{"cycle penalty caps at twenty", ScoreInput{Symbols: 500, Cycles: 50}, 100 - 20 - 10},
		{"god component penalty caps", ScoreInput{Symbols: 500, GodComponents: 40}, 100 - 15 - 10},
		{"bottleneck penalty caps", ScoreInput{Symbols: 500, Bottlenecks: 40}, 100 - 15 - 10},
		{"dead exports scale with size", ScoreInput{Symbols: 100, DeadExports: 10}, 90},
		{"dead export penalty caps at 25", ScoreInput{Symbols: 100, DeadExports: 80}, 75},
		{"violations cost three each", ScoreInput{Symbols: 500, LayerViolations: 2}, 94},
		{"combined surcharge kicks in past five", ScoreInput{Symbols: 500, Cycles: 3, Bottlenecks: 4}, 100 - 9 - 8 - 2},
		{
			"everything wrong floors at zero",
			ScoreInput{Symbols: 10, Cycles: 50, GodComponents: 50, Bottlenecks: 50, DeadExports: 10, LayerViolations: 50},
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.in); got != tt.want {
				t.Errorf("Score(%+v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestScoreMonotonicInEachDimension(t *testing.T) {
	base := ScoreInput{Symbols: 200}
	baseline := Score(base)
	worse := []ScoreInput{
		{Symbols: 200, Cycles: 2},
		{Symbols: 200, GodComponents: 2},
		{Symbols: 200, Bottlenecks: 2},
		{Symbols: 200, DeadExports: 20},
		{Symbols: 200, LayerViolations: 2},
	}
	for _, in := range worse {
		if got := Score(in); got >= baseline {
			t.Errorf("Score(%+v) = %d, want below clean baseline %d", in, got, baseline)
		}
	}
}

type fakeStore struct {
	files, symbolCount, edgeCount int

	symbols []model.Symbol
	edges   []model.Edge
	metrics map[int64]model.GraphMetrics

	unreferenced []model.Symbol
	fileEdges    []model.FileEdge
	importers    map[int64][]int64
	refs         map[int64]map[string]bool
	fileRecords  map[int64]model.File
}

func (f *fakeStore) Symbols() ([]model.Symbol, error) { return f.symbols, nil }
func (f *fakeStore) Edges() ([]model.Edge, error)     { return f.edges, nil }
func (f *fakeStore) Counts() (int, int, int, error) {
	return f.files, f.symbolCount, f.edgeCount, nil
}
func (f *fakeStore) GraphMetrics() (map[int64]model.GraphMetrics, error) {
	if f.metrics == nil {
		return map[int64]model.GraphMetrics{}, nil
	}
	return f.metrics, nil
}
func (f *fakeStore) UnreferencedExports() ([]model.Symbol, error) { return f.unreferenced, nil }
func (f *fakeStore) FileEdges() ([]model.FileEdge, error)         { return f.fileEdges, nil }
func (f *fakeStore) ImporterAdjacency() (map[int64][]int64, error) {
	return f.importers, nil
}
func (f *fakeStore) ReferencedNamesByFile() (map[int64]map[string]bool, error) {
	return f.refs, nil
}
func (f *fakeStore) FilesByIDs(ids []int64) (map[int64]model.File, error) {
	out := make(map[int64]model.File, len(ids))
	for _, id := range ids {
		if file, ok := f.fileRecords[id]; ok {
			out[id] = file
		}
	}
	return out, nil
}

func TestCollect(t *testing.T) {
	store := &fakeStore{
		files:       2,
		symbolCount: 4,
		edgeCount:   4,
		symbols: []model.Symbol{
			{ID: 1, Name: "a", Kind: "function", FileID: 1},
			{ID: 2, Name: "b", Kind: "function", FileID: 1},
			{ID: 3, Name: "c", Kind: "function", FileID: 2},
			{ID: 4, Name: "Unused", Kind: "function", FileID: 2, Exported: true, LineStart: 7},
		},
		edges: []model.Edge{
			{SourceID: 1, TargetID: 2, Kind: model.EdgeCall},
			{SourceID: 2, TargetID: 1, Kind: model.EdgeCall},
			{SourceID: 1, TargetID: 3, Kind: model.EdgeCall},
		},
		metrics: map[int64]model.GraphMetrics{
			1: {SymbolID: 1, InDegree: 15, OutDegree: 10, Betweenness: 0.8},
		},
		unreferenced: []model.Symbol{
			{ID: 4, Name: "Unused", Kind: "function", FileID: 2, Exported: true, LineStart: 7},
		},
		fileRecords: map[int64]model.File{
			2: {ID: 2, Path: "lib/util.py"},
		},
	}

	m, err := Collect(store)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if m.Files != 2 || m.Symbols != 4 || m.Edges != 4 {
		t.Errorf("counts = %d/%d/%d, want 2/4/4", m.Files, m.Symbols, m.Edges)
	}
	if m.Cycles != 1 || m.CycleSymbols != 2 {
		t.Errorf("cycles = %d with %d symbols, want 1 with 2", m.Cycles, m.CycleSymbols)
	}
	if m.TangleRatio != 50 {
		t.Errorf("TangleRatio = %v, want 50", m.TangleRatio)
	}
	if m.GodComponents != 1 {
		t.Errorf("GodComponents = %d, want 1 (degree 25 > %d)", m.GodComponents, GodDegreeThreshold)
	}
	if m.Bottlenecks != 1 {
		t.Errorf("Bottlenecks = %d, want 1 (betweenness 0.8)", m.Bottlenecks)
	}
	if m.DeadExports != 1 {
		t.Errorf("DeadExports = %d, want 1", m.DeadExports)
	}
	if m.LayerViolations != 0 {
		t.Errorf("LayerViolations = %d, want 0 on detected layers", m.LayerViolations)
	}

	want := Score(ScoreInput{
		Symbols:       4,
		Cycles:        1,
		GodComponents: 1,
		Bottlenecks:   1,
		DeadExports:   1,
	})
	if m.Score != want {
		t.Errorf("Score = %d, want %d", m.Score, want)
	}
}

func TestCollectEmptyIndex(t *testing.T) {
	m, err := Collect(&fakeStore{})
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if m.Score != 100 {
		t.Errorf("empty index Score = %d, want 100", m.Score)
	}
	if m.Cycles != 0 || m.TangleRatio != 0 {
		t.Errorf("empty index metrics = %+v, want zeroes", m)
	}
}
