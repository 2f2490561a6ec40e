package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/chuckjewell/roam-code/internal/graph"
	"github.com/chuckjewell/roam-code/internal/layers"
)

var (
	layersFormat   string
	layersExamples int
)

var layersCmd = &cobra.Command{
	Use:   "layers",
	Short: "Detect architectural layers and violations",
	Long: `Assign each symbol a layer index from the condensation DAG and
report edges that point from a lower layer to a higher one.

Examples:
  roam layers
  roam layers --format human`,
	Run: runLayers,
}

func init() {
	layersCmd.Flags().StringVar(&layersFormat, "format", "json", "Output format (json, human)")
	layersCmd.Flags().IntVar(&layersExamples, "examples", 5, "Example symbols shown per layer")
	rootCmd.AddCommand(layersCmd)
}

// LayerInfo summarizes one layer.
type LayerInfo struct {
	Index    int      `json:"index"`
	Symbols  int      `json:"symbols"`
	Examples []string `json:"examples"`
}

// LayersResponse is the layers command output.
type LayersResponse struct {
	Layers     []LayerInfo        `json:"layers"`
	Violations []layers.Violation `json:"violations"`
	Chain      *layers.Chain      `json:"deepestChain,omitempty"`
}

func runLayers(cmd *cobra.Command, args []string) {
	logger := newLogger(layersFormat)
	store, err := openStoreRO(logger)
	if err != nil {
		fail(err)
	}
	defer store.Close()

	g, err := graph.BuildFromStore(store)
	if err != nil {
		fail(err)
	}
	metrics, err := store.GraphMetrics()
	if err != nil {
		fail(err)
	}

	layerOf := layers.Detect(g)
	resp := &LayersResponse{
		Violations: layers.Violations(g, layerOf),
		Chain:      layers.DeepestChain(g, metrics),
	}

	byLayer := make(map[int][]int64)
	for _, id := range g.NodeIDs() {
		byLayer[layerOf[id]] = append(byLayer[layerOf[id]], id)
	}
	indices := make([]int, 0, len(byLayer))
	for idx := range byLayer {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	for _, idx := range indices {
		ids := byLayer[idx]
		info := LayerInfo{Index: idx, Symbols: len(ids)}
		for _, id := range ids {
			if len(info.Examples) >= layersExamples {
				break
			}
			if n, ok := g.Node(id); ok && n.Name != "" {
				info.Examples = append(info.Examples, n.Name)
			}
		}
		resp.Layers = append(resp.Layers, info)
	}
	printResponse(resp, layersFormat)
}
