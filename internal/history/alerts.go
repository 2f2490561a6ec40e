package history

import (
	"fmt"
	"math"

	"github.com/chuckjewell/roam-code/internal/model"
)

// Alert severities.
const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// AlertOptions sets the alert thresholds. Zero values take the
// defaults: score floor 60, tangle ceiling 20%, spike at 25% change.
type AlertOptions struct {
	MinScore  int
	MaxTangle float64
	SpikePct  float64
}

// Alert is one triggered rule.
type Alert struct {
	Severity string `json:"severity"`
	Metric   string `json:"metric"`
	Message  string `json:"message"`
}

// Alerts evaluates three rule families over the snapshot window
// (newest first): absolute threshold breaches on the latest snapshot,
// monotonic worsening across three or more consecutive snapshots, and
// rate-of-change spikes between the two most recent samples.
func Alerts(snaps []model.Snapshot, opts AlertOptions) []Alert {
	if len(snaps) == 0 {
		return nil
	}
	minScore := opts.MinScore
	if minScore <= 0 {
		minScore = 60
	}
	maxTangle := opts.MaxTangle
	if maxTangle <= 0 {
		maxTangle = 20
	}
	spikePct := opts.SpikePct
	if spikePct <= 0 {
		spikePct = 25
	}

	var alerts []Alert
	latest := snaps[0]

	if latest.HealthScore < minScore {
		severity := SeverityWarning
		if latest.HealthScore < minScore/2 {
			severity = SeverityCritical
		}
		alerts = append(alerts, Alert{
			Severity: severity,
			Metric:   "health_score",
			Message:  fmt.Sprintf("health score %d is below threshold %d", latest.HealthScore, minScore),
		})
	}
	if latest.TangleRatio > maxTangle {
		alerts = append(alerts, Alert{
			Severity: SeverityWarning,
			Metric:   "tangle_ratio",
			Message:  fmt.Sprintf("%.1f%% of symbols are in cycles (threshold %.1f%%)", latest.TangleRatio, maxTangle),
		})
	}

	if len(snaps) >= 3 {
		for _, def := range metricDefs {
			if run := worseningRun(snaps, def.value, def.higherIsWorse); run >= 3 {
				alerts = append(alerts, Alert{
					Severity: SeverityWarning,
					Metric:   def.name,
					Message:  fmt.Sprintf("%s has worsened across the last %d snapshots", def.name, run),
				})
			}
		}
	}

	if len(snaps) >= 2 {
		prev := snaps[1]
		for _, def := range metricDefs {
			from, to := def.value(prev), def.value(latest)
			if from == 0 {
				continue
			}
			pct := (to - from) / math.Abs(from) * 100
			worsening := pct > 0 == def.higherIsWorse
			if worsening && math.Abs(pct) >= spikePct {
				alerts = append(alerts, Alert{
					Severity: SeverityCritical,
					Metric:   def.name,
					Message: fmt.Sprintf("%s changed %.1f%% since the previous snapshot",
						def.name, pct),
				})
			}
		}
	}

	return alerts
}

// worseningRun counts how many consecutive snapshots, starting from the
// newest, form a strictly worsening sequence.
func worseningRun(snaps []model.Snapshot, value func(model.Snapshot) float64, higherIsWorse bool) int {
	run := 1
	for i := 0; i+1 < len(snaps); i++ {
		newer, older := value(snaps[i]), value(snaps[i+1])
		var worse bool
		if higherIsWorse {
			worse = newer > older
		} else {
			worse = newer < older
		}
		if !worse {
			break
		}
		run++
	}
	return run
}
