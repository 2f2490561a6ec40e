package main

import (
	"github.com/spf13/cobra"

	"github.com/chuckjewell/roam-code/internal/history"
)

var (
	alertsFormat   string
	alertsWindow   int
	alertsMinScore int
	alertsTangle   float64
	alertsSpike    float64
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Evaluate alert rules over snapshot history",
	Long: `Check the snapshot history for threshold breaches, sustained
worsening and sudden regressions.

Examples:
  roam alerts
  roam alerts --min-score 70 --format human`,
	Run: runAlerts,
}

func init() {
	alertsCmd.Flags().StringVar(&alertsFormat, "format", "json", "Output format (json, human)")
	alertsCmd.Flags().IntVar(&alertsWindow, "window", 10, "Snapshots to evaluate")
	alertsCmd.Flags().IntVar(&alertsMinScore, "min-score", 0, "Health score floor")
	alertsCmd.Flags().Float64Var(&alertsTangle, "max-tangle", 0, "Tangle ratio ceiling (percent)")
	alertsCmd.Flags().Float64Var(&alertsSpike, "spike-pct", 0, "Rate-of-change alert threshold (percent)")
	rootCmd.AddCommand(alertsCmd)
}

// AlertsResponse is the alerts command output.
type AlertsResponse struct {
	Alerts []history.Alert `json:"alerts"`
}

func runAlerts(cmd *cobra.Command, args []string) {
	logger := newLogger(alertsFormat)
	cfg := loadConfig()

	minScore := alertsMinScore
	if minScore == 0 {
		minScore = cfg.Alerts.MinScore
	}
	maxTangle := alertsTangle
	if maxTangle == 0 {
		maxTangle = cfg.Alerts.MaxTangle
	}
	spikePct := alertsSpike
	if spikePct == 0 {
		spikePct = cfg.Alerts.SpikePct
	}

	store, err := openStoreRO(logger)
	if err != nil {
		fail(err)
	}
	defer store.Close()

	snaps, err := store.Snapshots(alertsWindow)
	if err != nil {
		fail(err)
	}
	alerts := history.Alerts(snaps, history.AlertOptions{
		MinScore:  minScore,
		MaxTangle: maxTangle,
		SpikePct:  spikePct,
	})
	printResponse(&AlertsResponse{Alerts: alerts}, alertsFormat)
}
