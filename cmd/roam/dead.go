package main

import (
	"github.com/spf13/cobra"

	"github.com/chuckjewell/roam-code/internal/liveness"
)

var deadFormat string

var deadCmd = &cobra.Command{
	Use:   "dead",
	Short: "Find dead exported symbols",
	Long: `Find exported symbols with no incoming references, classified by
confidence. Symbols consumed transitively through re-export barrels are
excluded.

Examples:
  roam dead
  roam dead --format human`,
	Run: runDead,
}

func init() {
	deadCmd.Flags().StringVar(&deadFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(deadCmd)
}

func runDead(cmd *cobra.Command, args []string) {
	logger := newLogger(deadFormat)
	store, err := openStoreRO(logger)
	if err != nil {
		fail(err)
	}
	defer store.Close()

	result, err := liveness.Resolve(store)
	if err != nil {
		fail(err)
	}
	printResponse(result, deadFormat)
}
