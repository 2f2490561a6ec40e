package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"

	"github.com/chuckjewell/roam-code/internal/coupling"
	"github.com/chuckjewell/roam-code/internal/cycles"
	"github.com/chuckjewell/roam-code/internal/graph"
	"github.com/chuckjewell/roam-code/internal/health"
	"github.com/chuckjewell/roam-code/internal/layers"
	"github.com/chuckjewell/roam-code/internal/liveness"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all analysis results as compressed JSON",
	Long: `Run every analysis and write a gzip-compressed JSON dump for
offline consumption.

Examples:
  roam export
  roam export --output analysis.json.gz`,
	Run: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOutput, "output", "roam-export.json.gz", "Output file")
	rootCmd.AddCommand(exportCmd)
}

// ExportDump is the full export payload.
type ExportDump struct {
	GeneratedAt string               `json:"generatedAt"`
	Version     string               `json:"version"`
	Health      *health.Metrics      `json:"health"`
	Cycles      [][]int64            `json:"cycles"`
	Violations  []layers.Violation   `json:"violations"`
	Dead        *liveness.Result     `json:"dead"`
	Coupling    []coupling.Pair      `json:"coupling"`
	ChangeSets  []coupling.ChangeSet `json:"changeSets"`
}

func runExport(cmd *cobra.Command, args []string) {
	logger := newLogger(string(FormatJSON))
	store, err := openStoreRO(logger)
	if err != nil {
		fail(err)
	}
	defer store.Close()

	g, err := graph.BuildFromStore(store)
	if err != nil {
		fail(err)
	}
	metrics, err := health.Collect(store)
	if err != nil {
		fail(err)
	}
	dead, err := liveness.Resolve(store)
	if err != nil {
		fail(err)
	}
	pairs, err := coupling.Pairs(store, 50, 0, 0)
	if err != nil {
		fail(err)
	}
	sets, err := coupling.MineChangeSets(store, coupling.MineOptions{})
	if err != nil {
		fail(err)
	}
	layerOf := layers.Detect(g)

	dump := &ExportDump{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Version:     version,
		Health:      metrics,
		Cycles:      cycles.Find(g, 2),
		Violations:  layers.Violations(g, layerOf),
		Dead:        dead,
		Coupling:    pairs,
		ChangeSets:  sets,
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		fail(err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	enc := json.NewEncoder(gz)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dump); err != nil {
		fail(err)
	}
	if err := gz.Close(); err != nil {
		fail(err)
	}
	fmt.Printf("Exported analysis to %s\n", exportOutput)
}
