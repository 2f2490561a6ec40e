// Package coupling derives temporal coupling signals from git
// co-change history: normalized pair strength, recurring change-set
// mining over commit hyperedges, and expected-vs-actual diffing
// against a caller-supplied change set.
package coupling

import (
	"sort"

	"github.com/chuckjewell/roam-code/internal/model"
)

// Store is the read surface the coupling analyses need.
type Store interface {
	TopCochanges(limit int) ([]model.Cochange, error)
	CochangePartners(fileID int64, limit int) ([]model.Cochange, error)
	FileEdges() ([]model.FileEdge, error)
	FileStats() (map[int64]model.FileStats, error)
	HyperedgeMembers(minFiles int) ([]model.HyperedgeMember, error)
	FilesByIDs(ids []int64) (map[int64]model.File, error)
	ResolveFile(path string) (*model.File, error)
}

// Strength normalizes a raw co-change count by the average commit
// frequency of the two files, so a pair that always changes together
// scores near 1.0 regardless of churn volume. Unknown commit counts
// default to 1.
func Strength(cochanges, commitsA, commitsB int) float64 {
	if commitsA <= 0 {
		commitsA = 1
	}
	if commitsB <= 0 {
		commitsB = 1
	}
	return float64(cochanges) / (float64(commitsA+commitsB) / 2)
}

// pairKey is an undirected file-pair key.
type pairKey struct{ lo, hi int64 }

func makePairKey(a, b int64) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// structuralPairs returns the undirected file pairs connected by a
// file-level edge involving at least two symbols. A single-symbol edge
// is too weak to count as structural evidence.
func structuralPairs(edges []model.FileEdge) map[pairKey]bool {
	out := make(map[pairKey]bool, len(edges))
	for _, e := range edges {
		if e.SymbolCount >= 2 {
			out[makePairKey(e.SourceFileID, e.TargetFileID)] = true
		}
	}
	return out
}

// Pair is one temporally coupled file pair. Hidden marks pairs with no
// structural import edge backing the temporal signal.
type Pair struct {
	FileA      string  `json:"fileA"`
	FileB      string  `json:"fileB"`
	Cochanges  int     `json:"cochanges"`
	Strength   float64 `json:"strength"`
	Structural bool    `json:"structural"`
	Hidden     bool    `json:"hidden"`
}

// Pairs returns the strongest co-change pairs above the thresholds,
// flagged with structural evidence. Sorted by strength descending,
// then count descending, then path pair ascending.
func Pairs(store Store, limit, minCochanges int, minStrength float64) ([]Pair, error) {
	if limit <= 0 {
		limit = 20
	}
	cochanges, err := store.TopCochanges(limit)
	if err != nil {
		return nil, err
	}
	if len(cochanges) == 0 {
		return nil, nil
	}

	fileEdges, err := store.FileEdges()
	if err != nil {
		return nil, err
	}
	structural := structuralPairs(fileEdges)

	stats, err := store.FileStats()
	if err != nil {
		return nil, err
	}

	var ids []int64
	for _, c := range cochanges {
		ids = append(ids, c.FileIDA, c.FileIDB)
	}
	files, err := store.FilesByIDs(ids)
	if err != nil {
		return nil, err
	}

	var out []Pair
	for _, c := range cochanges {
		if c.CochangeCount < minCochanges {
			continue
		}
		strength := Strength(c.CochangeCount,
			stats[c.FileIDA].CommitCount, stats[c.FileIDB].CommitCount)
		if strength < minStrength {
			continue
		}
		isStructural := structural[makePairKey(c.FileIDA, c.FileIDB)]
		a, b := files[c.FileIDA].Path, files[c.FileIDB].Path
		if a > b {
			a, b = b, a
		}
		out = append(out, Pair{
			FileA:      a,
			FileB:      b,
			Cochanges:  c.CochangeCount,
			Strength:   strength,
			Structural: isStructural,
			Hidden:     !isStructural,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Strength != b.Strength {
			return a.Strength > b.Strength
		}
		if a.Cochanges != b.Cochanges {
			return a.Cochanges > b.Cochanges
		}
		if a.FileA != b.FileA {
			return a.FileA < b.FileA
		}
		return a.FileB < b.FileB
	})
	return out, nil
}
