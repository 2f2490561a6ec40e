// Package health computes the aggregate 0-100 structural health score
// and collects the metric inputs that feed it.
package health

import "math"

// Fixed classification thresholds. Not configurable: scores must stay
// comparable across runs and projects.
const (
	GodDegreeThreshold    = 20
	BottleneckBetweenness = 0.5
)

// ScoreInput is the penalty input set for one scoring run.
type ScoreInput struct {
	Symbols         int `json:"symbols"`
	Cycles          int `json:"cycles"`
	GodComponents   int `json:"godComponents"`
	Bottlenecks     int `json:"bottlenecks"`
	DeadExports     int `json:"deadExports"`
	LayerViolations int `json:"layerViolations"`
}

// Score applies the capped-penalty formula. An empty codebase scores a
// perfect 100: no penalty can apply and the dead-export ratio would
// divide by zero. Each penalty term saturates so a single pathological
// dimension cannot zero the score alone; the final term adds up to 10
// points when problems pile up across dimensions.
func Score(in ScoreInput) int {
	if in.Symbols == 0 {
		return 100
	}

	penalty := math.Min(20, float64(in.Cycles)*3)
	penalty += math.Min(15, float64(in.GodComponents)*2)
	penalty += math.Min(15, float64(in.Bottlenecks)*2)
	penalty += math.Min(25, float64(in.DeadExports)*100/float64(in.Symbols))
	penalty += math.Min(15, float64(in.LayerViolations)*3)

	combined := in.Cycles + in.GodComponents + in.Bottlenecks + in.LayerViolations
	penalty += math.Min(10, math.Max(0, float64(combined-5)))

	score := 100 - int(penalty)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
