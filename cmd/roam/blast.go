package main

import (
	"github.com/spf13/cobra"

	"github.com/chuckjewell/roam-code/internal/graph"
	"github.com/chuckjewell/roam-code/internal/traversal"
)

var blastFormat string

var blastCmd = &cobra.Command{
	Use:   "blast <symbol>",
	Short: "Compute the blast radius of a symbol",
	Long: `Walk reverse edges from a symbol and report everything that
transitively depends on it.

Examples:
  roam blast parseConfig
  roam blast UserService --format human`,
	Args: cobra.ExactArgs(1),
	Run:  runBlast,
}

func init() {
	blastCmd.Flags().StringVar(&blastFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(blastCmd)
}

// BlastResponse is the blast command output.
type BlastResponse struct {
	Symbol string `json:"symbol"`
	traversal.BlastRadiusResult
}

func runBlast(cmd *cobra.Command, args []string) {
	logger := newLogger(blastFormat)
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

	printResponse(&BlastResponse{
		Symbol:            sym.Name,
		BlastRadiusResult: traversal.BlastRadius(g, sym.ID),
	}, blastFormat)
}
