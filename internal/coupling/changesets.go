package coupling

import (
	"fmt"
	"sort"
	"strings"
)

// MineOptions controls change-set mining. Zero values take the
// defaults: sets of at least 3 files recurring at least twice.
type MineOptions struct {
	MinFiles       int
	MinOccurrences int
}

// ChangeSet is a recurring group of files changed together in multiple
// commits. StructuralPct is the share of file pairs within the set that
// have a structural import edge; a low value on a recurring set means
// the coupling is invisible in the import graph.
type ChangeSet struct {
	Files         []string `json:"files"`
	Size          int      `json:"size"`
	Occurrences   int      `json:"occurrences"`
	StructuralPct float64  `json:"structuralPct"`
}

// MineChangeSets groups commit hyperedges into normalized file-set
// tuples and keeps the ones that recur. Sorted by occurrences
// descending, then size descending, then structural percentage
// descending, then file-path tuple ascending.
func MineChangeSets(store Store, opts MineOptions) ([]ChangeSet, error) {
	minFiles := opts.MinFiles
	if minFiles <= 0 {
		minFiles = 3
	}
	minOccurrences := opts.MinOccurrences
	if minOccurrences <= 0 {
		minOccurrences = 2
	}

	members, err := store.HyperedgeMembers(minFiles)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, nil
	}

	byHyperedge := make(map[int64][]int64)
	for _, m := range members {
		byHyperedge[m.HyperedgeID] = append(byHyperedge[m.HyperedgeID], m.FileID)
	}

	type group struct {
		fileIDs     []int64
		occurrences int
	}
	groups := make(map[string]*group)
	for _, fileIDs := range byHyperedge {
		ids := append([]int64{}, fileIDs...)
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		key := tupleKey(ids)
		if g, ok := groups[key]; ok {
			g.occurrences++
		} else {
			groups[key] = &group{fileIDs: ids, occurrences: 1}
		}
	}

	fileEdges, err := store.FileEdges()
	if err != nil {
		return nil, err
	}
	structural := structuralPairs(fileEdges)

	var allIDs []int64
	for _, g := range groups {
		if g.occurrences >= minOccurrences {
			allIDs = append(allIDs, g.fileIDs...)
		}
	}
	files, err := store.FilesByIDs(allIDs)
	if err != nil {
		return nil, err
	}

	var out []ChangeSet
	for _, g := range groups {
		if g.occurrences < minOccurrences {
			continue
		}
		paths := make([]string, len(g.fileIDs))
		for i, id := range g.fileIDs {
			paths[i] = files[id].Path
		}
		sort.Strings(paths)
		out = append(out, ChangeSet{
			Files:         paths,
			Size:          len(g.fileIDs),
			Occurrences:   g.occurrences,
			StructuralPct: structuralPct(g.fileIDs, structural),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Occurrences != b.Occurrences {
			return a.Occurrences > b.Occurrences
		}
		if a.Size != b.Size {
			return a.Size > b.Size
		}
		if a.StructuralPct != b.StructuralPct {
			return a.StructuralPct > b.StructuralPct
		}
		return strings.Join(a.Files, "\x00") < strings.Join(b.Files, "\x00")
	})
	return out, nil
}

// structuralPct is the percentage of pairs within the set backed by a
// structural edge.
func structuralPct(fileIDs []int64, structural map[pairKey]bool) float64 {
	total, connected := 0, 0
	for i := 0; i < len(fileIDs); i++ {
		for j := i + 1; j < len(fileIDs); j++ {
			total++
			if structural[makePairKey(fileIDs[i], fileIDs[j])] {
				connected++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(connected) * 100 / float64(total)
}

func tupleKey(ids []int64) string {
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", id)
	}
	return b.String()
}
