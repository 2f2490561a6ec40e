package main

import (
	"regexp"

	"github.com/spf13/cobra"

	"github.com/chuckjewell/roam-code/internal/graph"
	"github.com/chuckjewell/roam-code/internal/traversal"
)

var (
	coverageFormat      string
	coverageGates       []string
	coverageGatePattern string
	coverageEntryFilter string
	coverageScope       []string
	coverageMaxHops     int
)

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Find entry points that never reach a required gate",
	Long: `Check every exported top-level entry point for a call path to a
gate function (auth check, validation, audit log). Entries with no path
within the hop budget are coverage gaps.

Examples:
  roam coverage --gate requireAuth
  roam coverage --gate-pattern '^(check|require)' --scope 'api/**'
  roam coverage --gate requireAuth --max-hops 4 --format human`,
	Run: runCoverage,
}

func init() {
	coverageCmd.Flags().StringVar(&coverageFormat, "format", "json", "Output format (json, human)")
	coverageCmd.Flags().StringSliceVar(&coverageGates, "gate", nil, "Gate symbol name (can be repeated)")
	coverageCmd.Flags().StringVar(&coverageGatePattern, "gate-pattern", "", "Gate name regexp")
	coverageCmd.Flags().StringVar(&coverageEntryFilter, "entry-filter", "", "Entry name substring filter")
	coverageCmd.Flags().StringSliceVar(&coverageScope, "scope", nil, "Entry file glob (can be repeated)")
	coverageCmd.Flags().IntVar(&coverageMaxHops, "max-hops", traversal.DefaultMaxHops, "Forward traversal hop cap")
	rootCmd.AddCommand(coverageCmd)
}

func runCoverage(cmd *cobra.Command, args []string) {
	logger := newLogger(coverageFormat)

	var pattern *regexp.Regexp
	if coverageGatePattern != "" {
		var err error
		pattern, err = regexp.Compile(coverageGatePattern)
		if err != nil {
			fail(err)
		}
	}

	store, err := openStoreRO(logger)
	if err != nil {
		fail(err)
	}
	defer store.Close()

	symbols, err := store.Symbols()
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

	result, err := traversal.CoverageGaps(g, symbols, files, traversal.CoverageOptions{
		GateNames:   coverageGates,
		GatePattern: pattern,
		EntryFilter: coverageEntryFilter,
		Scope:       coverageScope,
		MaxHops:     coverageMaxHops,
	})
	if err != nil {
		fail(err)
	}
	printResponse(result, coverageFormat)
}
