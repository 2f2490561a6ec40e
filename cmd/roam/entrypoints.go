package main

import (
	"github.com/spf13/cobra"

	"github.com/chuckjewell/roam-code/internal/graph"
	"github.com/chuckjewell/roam-code/internal/traversal"
)

var (
	entrypointsFormat string
	entrypointsLimit  int
)

var entrypointsCmd = &cobra.Command{
	Use:   "entrypoints <symbol>",
	Short: "Find entry points that reach a symbol",
	Long: `Search from dependency-free functions, methods and classes for
forward paths to the given symbol.

Examples:
  roam entrypoints validateToken
  roam entrypoints validateToken --limit 3 --format human`,
	Args: cobra.ExactArgs(1),
	Run:  runEntrypoints,
}

func init() {
	entrypointsCmd.Flags().StringVar(&entrypointsFormat, "format", "json", "Output format (json, human)")
	entrypointsCmd.Flags().IntVar(&entrypointsLimit, "limit", 5, "Maximum entry points to return")
	rootCmd.AddCommand(entrypointsCmd)
}

// EntrypointsResponse is the entrypoints command output.
type EntrypointsResponse struct {
	Target  string                 `json:"target"`
	Entries []traversal.EntryPoint `json:"entries"`
}

func runEntrypoints(cmd *cobra.Command, args []string) {
	logger := newLogger(entrypointsFormat)
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
	metrics, err := store.GraphMetrics()
	if err != nil {
		fail(err)
	}

	printResponse(&EntrypointsResponse{
		Target:  sym.Name,
		Entries: traversal.EntryPointsReaching(g, metrics, sym.ID, entrypointsLimit),
	}, entrypointsFormat)
}
