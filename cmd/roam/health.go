package main

import (
	"github.com/spf13/cobra"

	"github.com/chuckjewell/roam-code/internal/health"
)

var healthFormat string

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Compute the structural health score",
	Long: `Compute the aggregate 0-100 health score from cycles, god
components, bottlenecks, dead exports and layer violations.

Examples:
  roam health
  roam health --format human`,
	Run: runHealth,
}

func init() {
	healthCmd.Flags().StringVar(&healthFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(healthCmd)
}

// HealthResponse is the health command output.
type HealthResponse struct {
	*health.Metrics
}

func runHealth(cmd *cobra.Command, args []string) {
	logger := newLogger(healthFormat)
	store, err := openStoreRO(logger)
	if err != nil {
		fail(err)
	}
	defer store.Close()

	metrics, err := health.Collect(store)
	if err != nil {
		fail(err)
	}
	printResponse(&HealthResponse{Metrics: metrics}, healthFormat)
}
