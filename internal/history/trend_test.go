package history

import (
	"testing"

	"github.com/chuckjewell/roam-code/internal/model"
)

// snaps builds a newest-first window, matching the order the store
// returns.
func snapsNewestFirst(ss ...model.Snapshot) []model.Snapshot { return ss }

func TestComputeTrendEmpty(t *testing.T) {
	tr := ComputeTrend(nil)
	if tr.Snapshots != 0 || len(tr.Deltas) != 0 {
		t.Errorf("ComputeTrend(nil) = %+v, want empty trend", tr)
	}
}

func TestComputeTrendSingleSnapshot(t *testing.T) {
	tr := ComputeTrend(snapsNewestFirst(model.Snapshot{ID: "a", HealthScore: 80}))
	if tr.Snapshots != 1 {
		t.Errorf("Snapshots = %d, want 1", tr.Snapshots)
	}
	if tr.Latest.ID != "a" || tr.Oldest.ID != "a" {
		t.Errorf("latest/oldest = %s/%s, want a/a", tr.Latest.ID, tr.Oldest.ID)
	}
	if len(tr.Deltas) != 0 {
		t.Errorf("Deltas = %v, want none for a single snapshot", tr.Deltas)
	}
}

func TestComputeTrendDeltas(t *testing.T) {
	newest := model.Snapshot{ID: "new", HealthScore: 70, Cycles: 5, TangleRatio: 12.5}
	middle := model.Snapshot{ID: "mid", HealthScore: 75, Cycles: 4, TangleRatio: 12.5}
	oldest := model.Snapshot{ID: "old", HealthScore: 82, Cycles: 2, TangleRatio: 12.5}

	tr := ComputeTrend(snapsNewestFirst(newest, middle, oldest))
	if tr.Oldest.ID != "old" || tr.Latest.ID != "new" {
		t.Fatalf("window endpoints = %s..%s, want old..new", tr.Oldest.ID, tr.Latest.ID)
	}

	byMetric := map[string]Delta{}
	for _, d := range tr.Deltas {
		byMetric[d.Metric] = d
	}

	score, ok := byMetric["health_score"]
	if !ok {
		t.Fatal("no health_score delta")
	}
	if score.From != 82 || score.To != 70 || score.Change != -12 || !score.Worsening {
		t.Errorf("health_score delta = %+v, want 82->70 worsening", score)
	}

	cyc, ok := byMetric["cycles"]
	if !ok {
		t.Fatal("no cycles delta")
	}
	if cyc.Change != 3 || !cyc.Worsening {
		t.Errorf("cycles delta = %+v, want +3 worsening", cyc)
	}

	// Unchanged metrics produce no delta at all.
	if _, ok := byMetric["tangle_ratio"]; ok {
		t.Error("tangle_ratio delta present for unchanged metric")
	}
}

func TestComputeTrendImprovementIsNotWorsening(t *testing.T) {
	tr := ComputeTrend(snapsNewestFirst(
		model.Snapshot{ID: "new", HealthScore: 90, DeadExports: 1},
		model.Snapshot{ID: "old", HealthScore: 60, DeadExports: 9},
	))
	for _, d := range tr.Deltas {
		if d.Worsening {
			t.Errorf("delta %+v flagged worsening on an improving window", d)
		}
	}
}
