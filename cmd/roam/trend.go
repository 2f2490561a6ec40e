package main

import (
	"github.com/spf13/cobra"

	"github.com/chuckjewell/roam-code/internal/history"
)

var (
	trendFormat string
	trendWindow int
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Compare recent health snapshots",
	Long: `Report per-metric movement across the most recent snapshots.

Examples:
  roam trend
  roam trend --window 10 --format human`,
	Run: runTrend,
}

func init() {
	trendCmd.Flags().StringVar(&trendFormat, "format", "json", "Output format (json, human)")
	trendCmd.Flags().IntVar(&trendWindow, "window", 5, "Snapshots to compare")
	rootCmd.AddCommand(trendCmd)
}

func runTrend(cmd *cobra.Command, args []string) {
	logger := newLogger(trendFormat)
	store, err := openStoreRO(logger)
	if err != nil {
		fail(err)
	}
	defer store.Close()

	snaps, err := store.Snapshots(trendWindow)
	if err != nil {
		fail(err)
	}
	printResponse(history.ComputeTrend(snaps), trendFormat)
}
