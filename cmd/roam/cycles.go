package main

import (
	"github.com/spf13/cobra"

	"github.com/chuckjewell/roam-code/internal/cycles"
	"github.com/chuckjewell/roam-code/internal/graph"
)

var (
	cyclesFormat  string
	cyclesMinSize int
	cyclesLimit   int
)

var cyclesCmd = &cobra.Command{
	Use:   "cycles",
	Short: "Find dependency cycles",
	Long: `Find strongly connected components in the symbol graph and
suggest the cheapest edge to break for each.

Examples:
  roam cycles
  roam cycles --min-size 3
  roam cycles --format human`,
	Run: runCycles,
}

func init() {
	cyclesCmd.Flags().StringVar(&cyclesFormat, "format", "json", "Output format (json, human)")
	cyclesCmd.Flags().IntVar(&cyclesMinSize, "min-size", 2, "Minimum cycle size")
	cyclesCmd.Flags().IntVar(&cyclesLimit, "limit", 20, "Maximum cycles to report")
	rootCmd.AddCommand(cyclesCmd)
}

// CycleInfo is one reported cycle.
type CycleInfo struct {
	Label      string                  `json:"label"`
	Size       int                     `json:"size"`
	Members    []string                `json:"members"`
	Suggestion *cycles.BreakSuggestion `json:"suggestion,omitempty"`
}

// CyclesResponse is the cycles command output.
type CyclesResponse struct {
	Total  int         `json:"total"`
	Cycles []CycleInfo `json:"cycles"`
}

func runCycles(cmd *cobra.Command, args []string) {
	logger := newLogger(cyclesFormat)
	store, err := openStoreRO(logger)
	if err != nil {
		fail(err)
	}
	defer store.Close()

	g, err := graph.BuildFromStore(store)
	if err != nil {
		fail(err)
	}

	comps := cycles.Find(g, cyclesMinSize)
	dag := cycles.Condense(g, comps)

	resp := &CyclesResponse{Total: len(comps)}
	for i, comp := range comps {
		if i >= cyclesLimit {
			break
		}
		info := CycleInfo{Size: len(comp), Suggestion: cycles.WeakestEdge(g, comp)}
		for _, id := range comp {
			if n, ok := g.Node(id); ok {
				info.Members = append(info.Members, n.Name)
			}
		}
		if cid, ok := dag.CompOf(comp[0]); ok {
			if node, ok := dag.Node(cid); ok {
				info.Label = node.Label
			}
		}
		resp.Cycles = append(resp.Cycles, info)
	}
	printResponse(resp, cyclesFormat)
}
