package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chuckjewell/roam-code/internal/coupling"
	"github.com/chuckjewell/roam-code/internal/cycles"
	"github.com/chuckjewell/roam-code/internal/graph"
	"github.com/chuckjewell/roam-code/internal/health"
	"github.com/chuckjewell/roam-code/internal/layers"
	"github.com/chuckjewell/roam-code/internal/liveness"
	"github.com/chuckjewell/roam-code/internal/storage"
)

var (
	reportFormat  string
	reportPreset  string
	reportPresets string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run a preset bundle of analyses",
	Long: `Run a named preset of report sections. Built-in presets:
summary (health), full (health, cycles, layers, dead, coupling).
Custom presets load from a YAML file mapping preset names to section
lists.

Examples:
  roam report
  roam report --preset full
  roam report --preset release --presets ci/presets.yaml`,
	Run: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "json", "Output format (json, human)")
	reportCmd.Flags().StringVar(&reportPreset, "preset", "summary", "Preset name")
	reportCmd.Flags().StringVar(&reportPresets, "presets", "", "Custom preset YAML file")
	rootCmd.AddCommand(reportCmd)
}

var builtinPresets = map[string][]string{
	"summary": {"health"},
	"full":    {"health", "cycles", "layers", "dead", "coupling"},
}

// ReportSection is one named block of a report.
type ReportSection struct {
	Name string      `json:"name"`
	Data interface{} `json:"data"`
}

// ReportResponse is the report command output.
type ReportResponse struct {
	Preset   string          `json:"preset"`
	Sections []ReportSection `json:"sections"`
}

func runReport(cmd *cobra.Command, args []string) {
	logger := newLogger(reportFormat)
	cfg := loadConfig()

	presetFile := reportPresets
	if presetFile == "" {
		presetFile = cfg.Report.Presets
	}
	sections, err := resolvePreset(reportPreset, presetFile)
	if err != nil {
		fail(err)
	}

	store, err := openStoreRO(logger)
	if err != nil {
		fail(err)
	}
	defer store.Close()

	resp := &ReportResponse{Preset: reportPreset}
	for _, section := range sections {
		data, err := buildSection(store, section, cfg.Coupling.MinCochanges, cfg.Coupling.MinStrength)
		if err != nil {
			fail(err)
		}
		resp.Sections = append(resp.Sections, ReportSection{Name: section, Data: data})
	}
	printResponse(resp, reportFormat)
}

// resolvePreset looks the preset up in the custom file first, then the
// built-ins.
func resolvePreset(name, presetFile string) ([]string, error) {
	if presetFile != "" {
		data, err := os.ReadFile(presetFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read presets file: %w", err)
		}
		var custom map[string][]string
		if err := yaml.Unmarshal(data, &custom); err != nil {
			return nil, fmt.Errorf("failed to parse presets file: %w", err)
		}
		if sections, ok := custom[name]; ok {
			return sections, nil
		}
	}
	if sections, ok := builtinPresets[name]; ok {
		return sections, nil
	}
	return nil, fmt.Errorf("unknown preset %q", name)
}

func buildSection(store *storage.Store, name string, minCochanges int, minStrength float64) (interface{}, error) {
	switch name {
	case "health":
		return health.Collect(store)

	case "cycles":
		g, err := graph.BuildFromStore(store)
		if err != nil {
			return nil, err
		}
		comps := cycles.Find(g, 2)
		resp := &CyclesResponse{Total: len(comps)}
		for i, comp := range comps {
			if i >= 10 {
				break
			}
			info := CycleInfo{Size: len(comp), Suggestion: cycles.WeakestEdge(g, comp)}
			for _, id := range comp {
				if n, ok := g.Node(id); ok {
					info.Members = append(info.Members, n.Name)
				}
			}
			resp.Cycles = append(resp.Cycles, info)
		}
		return resp, nil

	case "layers":
		g, err := graph.BuildFromStore(store)
		if err != nil {
			return nil, err
		}
		layerOf := layers.Detect(g)
		return &LayersResponse{Violations: layers.Violations(g, layerOf)}, nil

	case "dead":
		return liveness.Resolve(store)

	case "coupling":
		pairs, err := coupling.Pairs(store, 10, minCochanges, minStrength)
		if err != nil {
			return nil, err
		}
		return &CouplingPairsResponse{Pairs: pairs}, nil

	default:
		return nil, fmt.Errorf("unknown report section %q", name)
	}
}
