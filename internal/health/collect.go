package health

import (
	"github.com/chuckjewell/roam-code/internal/cycles"
	"github.com/chuckjewell/roam-code/internal/graph"
	"github.com/chuckjewell/roam-code/internal/layers"
	"github.com/chuckjewell/roam-code/internal/liveness"
	"github.com/chuckjewell/roam-code/internal/model"
)

// Store is the read surface Collect needs: the graph inputs plus
// everything the liveness resolver consumes.
type Store interface {
	liveness.Store
	Symbols() ([]model.Symbol, error)
	Edges() ([]model.Edge, error)
	Counts() (files, symbols, edges int, err error)
	GraphMetrics() (map[int64]model.GraphMetrics, error)
}

// Metrics is one full health measurement of the index.
type Metrics struct {
	Files           int     `json:"files"`
	Symbols         int     `json:"symbols"`
	Edges           int     `json:"edges"`
	Cycles          int     `json:"cycles"`
	CycleSymbols    int     `json:"cycleSymbols"`
	GodComponents   int     `json:"godComponents"`
	Bottlenecks     int     `json:"bottlenecks"`
	DeadExports     int     `json:"deadExports"`
	LayerViolations int     `json:"layerViolations"`
	TangleRatio     float64 `json:"tangleRatio"`
	Score           int     `json:"score"`
}

// Collect runs the full measurement: graph construction, cycle
// detection, layering, liveness and centrality classification, then
// scores the result. Missing centrality rows count as zero, so a store
// without precomputed metrics still produces a score.
func Collect(store Store) (*Metrics, error) {
	m := &Metrics{}
	var err error
	if m.Files, m.Symbols, m.Edges, err = store.Counts(); err != nil {
		return nil, err
	}

	g, err := graph.BuildFromStore(store)
	if err != nil {
		return nil, err
	}

	comps := cycles.Find(g, 2)
	m.Cycles = len(comps)
	for _, comp := range comps {
		m.CycleSymbols += len(comp)
	}
	if m.Symbols > 0 {
		m.TangleRatio = float64(m.CycleSymbols) * 100 / float64(m.Symbols)
	}

	metrics, err := store.GraphMetrics()
	if err != nil {
		return nil, err
	}
	for _, id := range g.NodeIDs() {
		cm := metrics[id]
		if cm.InDegree+cm.OutDegree > GodDegreeThreshold {
			m.GodComponents++
		}
		if cm.Betweenness > BottleneckBetweenness {
			m.Bottlenecks++
		}
	}

	layerOf := layers.Detect(g)
	m.LayerViolations = len(layers.Violations(g, layerOf))

	dead, err := liveness.Resolve(store)
	if err != nil {
		return nil, err
	}
	m.DeadExports = len(dead.Dead)

	m.Score = Score(ScoreInput{
		Symbols:         m.Symbols,
		Cycles:          m.Cycles,
		GodComponents:   m.GodComponents,
		Bottlenecks:     m.Bottlenecks,
		DeadExports:     m.DeadExports,
		LayerViolations: m.LayerViolations,
	})
	return m, nil
}
