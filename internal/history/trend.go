package history

import "github.com/chuckjewell/roam-code/internal/model"

// metricDefs lists the tracked metrics. higherIsWorse controls delta
// interpretation: cycles rising is a regression, score rising is not.
var metricDefs = []struct {
	name          string
	higherIsWorse bool
	value         func(model.Snapshot) float64
}{
	{"health_score", false, func(s model.Snapshot) float64 { return float64(s.HealthScore) }},
	{"cycles", true, func(s model.Snapshot) float64 { return float64(s.Cycles) }},
	{"god_components", true, func(s model.Snapshot) float64 { return float64(s.GodComponents) }},
	{"bottlenecks", true, func(s model.Snapshot) float64 { return float64(s.Bottlenecks) }},
	{"dead_exports", true, func(s model.Snapshot) float64 { return float64(s.DeadExports) }},
	{"layer_violations", true, func(s model.Snapshot) float64 { return float64(s.LayerViolations) }},
	{"tangle_ratio", true, func(s model.Snapshot) float64 { return s.TangleRatio }},
}

// Delta is one metric's movement across the trend window.
type Delta struct {
	Metric    string  `json:"metric"`
	From      float64 `json:"from"`
	To        float64 `json:"to"`
	Change    float64 `json:"change"`
	Worsening bool    `json:"worsening"`
}

// Trend compares the oldest and newest snapshot of a window.
type Trend struct {
	Snapshots int            `json:"snapshots"`
	Oldest    model.Snapshot `json:"oldest"`
	Latest    model.Snapshot `json:"latest"`
	Deltas    []Delta        `json:"deltas"`
}

// ComputeTrend reports per-metric movement across the given snapshots
// (newest first, as Snapshots returns them). Fewer than two snapshots
// yields no deltas.
func ComputeTrend(snaps []model.Snapshot) *Trend {
	t := &Trend{Snapshots: len(snaps)}
	if len(snaps) == 0 {
		return t
	}
	t.Latest = snaps[0]
	t.Oldest = snaps[len(snaps)-1]
	if len(snaps) < 2 {
		return t
	}

	for _, def := range metricDefs {
		from, to := def.value(t.Oldest), def.value(t.Latest)
		change := to - from
		if change == 0 {
			continue
		}
		worsening := change > 0 == def.higherIsWorse
		t.Deltas = append(t.Deltas, Delta{
			Metric:    def.name,
			From:      from,
			To:        to,
			Change:    change,
			Worsening: worsening,
		})
	}
	return t
}
