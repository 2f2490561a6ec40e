package main

import (
	"github.com/spf13/cobra"

	"github.com/chuckjewell/roam-code/internal/graph"
	"github.com/chuckjewell/roam-code/internal/traversal"
)

var (
	affectedFormat  string
	affectedMaxHops int
)

var affectedCmd = &cobra.Command{
	Use:   "affected <symbol>",
	Short: "Find tests affected by a symbol change",
	Long: `Walk reverse call/use edges from a changed symbol and report the
tests that exercise it, directly or transitively.

Examples:
  roam affected parseConfig
  roam affected parseConfig --max-hops 4 --format human`,
	Args: cobra.ExactArgs(1),
	Run:  runAffected,
}

func init() {
	affectedCmd.Flags().StringVar(&affectedFormat, "format", "json", "Output format (json, human)")
	affectedCmd.Flags().IntVar(&affectedMaxHops, "max-hops", traversal.DefaultMaxHops, "Reverse traversal hop cap")
	rootCmd.AddCommand(affectedCmd)
}

// AffectedResponse is the affected command output.
type AffectedResponse struct {
	Symbol string                   `json:"symbol"`
	Tests  []traversal.AffectedTest `json:"tests"`
}

func runAffected(cmd *cobra.Command, args []string) {
	logger := newLogger(affectedFormat)
	store, err := openStoreRO(logger)
	if err != nil {
		fail(err)
	}
	defer store.Close()

	sym, err := store.ResolveSymbol(args[0])
	if err != nil {
		fail(err)
	}
	g, err := graph.BuildFromStore(store)
	if err != nil {
		fail(err)
	}
	files, err := fileMap(store)
	if err != nil {
		fail(err)
	}

	tests, err := traversal.AffectedTests(g, files, sym.ID, affectedMaxHops)
	if err != nil {
		fail(err)
	}
	printResponse(&AffectedResponse{Symbol: sym.Name, Tests: tests}, affectedFormat)
}
