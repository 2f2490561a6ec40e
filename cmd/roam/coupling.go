package main

import (
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chuckjewell/roam-code/internal/coupling"
)

var (
	couplingFormat         string
	couplingSets           bool
	couplingAgainst        []string
	couplingAgainstGit     bool
	couplingLimit          int
	couplingTopN           int
	couplingMinCochanges   int
	couplingMinStrength    float64
	couplingMinSetFiles    int
	couplingMinOccurrences int
)

var couplingCmd = &cobra.Command{
	Use:   "coupling",
	Short: "Analyze temporal coupling from git history",
	Long: `Analyze which files change together. Default mode reports the
strongest pairs; --sets mines recurring multi-file change-sets;
--against diffs a proposed change set against history.

Examples:
  roam coupling
  roam coupling --sets --min-occurrences 3
  roam coupling --against src/auth.go --against src/session.go
  roam coupling --against-git
  roam coupling --format human`,
	Run: runCoupling,
}

func init() {
	couplingCmd.Flags().StringVar(&couplingFormat, "format", "json", "Output format (json, human)")
	couplingCmd.Flags().BoolVar(&couplingSets, "sets", false, "Mine recurring change-sets")
	couplingCmd.Flags().StringSliceVar(&couplingAgainst, "against", nil, "Changed file path (can be repeated)")
	couplingCmd.Flags().BoolVar(&couplingAgainstGit, "against-git", false, "Use files changed in the working tree")
	couplingCmd.Flags().IntVar(&couplingLimit, "limit", 20, "Maximum pairs to report")
	couplingCmd.Flags().IntVar(&couplingTopN, "top-n", 0, "Partners examined per changed file")
	couplingCmd.Flags().IntVar(&couplingMinCochanges, "min-cochanges", 0, "Minimum raw co-change count")
	couplingCmd.Flags().Float64Var(&couplingMinStrength, "min-strength", 0, "Minimum normalized strength")
	couplingCmd.Flags().IntVar(&couplingMinSetFiles, "min-files", 0, "Minimum files per change-set")
	couplingCmd.Flags().IntVar(&couplingMinOccurrences, "min-occurrences", 0, "Minimum change-set recurrences")
	rootCmd.AddCommand(couplingCmd)
}

// CouplingPairsResponse is the default coupling output.
type CouplingPairsResponse struct {
	Pairs []coupling.Pair `json:"pairs"`
}

// CouplingSetsResponse is the --sets output.
type CouplingSetsResponse struct {
	Sets []coupling.ChangeSet `json:"sets"`
}

func runCoupling(cmd *cobra.Command, args []string) {
	logger := newLogger(couplingFormat)
	cfg := loadConfig()

	topN := couplingTopN
	if topN == 0 {
		topN = cfg.Coupling.TopN
	}
	minCochanges := couplingMinCochanges
	if minCochanges == 0 {
		minCochanges = cfg.Coupling.MinCochanges
	}
	minStrength := couplingMinStrength
	if minStrength == 0 {
		minStrength = cfg.Coupling.MinStrength
	}

	store, err := openStoreRO(logger)
	if err != nil {
		fail(err)
	}
	defer store.Close()

	changed := couplingAgainst
	if couplingAgainstGit {
		gitChanged, err := changedFilesFromGit(repoRootFlag)
		if err != nil {
			fail(err)
		}
		changed = append(changed, gitChanged...)
	}

	switch {
	case len(changed) > 0:
		result, err := coupling.Against(store, changed, coupling.AgainstOptions{
			TopN:         topN,
			MinCochanges: minCochanges,
			MinStrength:  minStrength,
		})
		if err != nil {
			fail(err)
		}
		printResponse(result, couplingFormat)

	case couplingSets:
		minFiles := couplingMinSetFiles
		if minFiles == 0 {
			minFiles = cfg.Coupling.MinSetFiles
		}
		minOccurrences := couplingMinOccurrences
		if minOccurrences == 0 {
			minOccurrences = cfg.Coupling.MinOccurrences
		}
		sets, err := coupling.MineChangeSets(store, coupling.MineOptions{
			MinFiles:       minFiles,
			MinOccurrences: minOccurrences,
		})
		if err != nil {
			fail(err)
		}
		printResponse(&CouplingSetsResponse{Sets: sets}, couplingFormat)

	default:
		pairs, err := coupling.Pairs(store, couplingLimit, minCochanges, minStrength)
		if err != nil {
			fail(err)
		}
		printResponse(&CouplingPairsResponse{Pairs: pairs}, couplingFormat)
	}
}

// changedFilesFromGit lists files modified in the working tree plus the
// index, relative to HEAD.
func changedFilesFromGit(repoRoot string) ([]string, error) {
	cmd := exec.Command("git", "diff", "--name-only", "HEAD")
	cmd.Dir = repoRoot
	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}
	var files []string
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}
