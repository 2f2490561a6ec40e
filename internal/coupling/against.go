package coupling

import (
	"sort"

	roamerrors "github.com/chuckjewell/roam-code/internal/errors"
)

// AgainstOptions controls against-mode diffing. TopN defaults to 5;
// zero thresholds disable the corresponding filter.
type AgainstOptions struct {
	TopN         int
	MinCochanges int
	MinStrength  float64
}

// Partner is one historical co-change partner of the changed set. Via
// lists the changed files that produced the evidence.
type Partner struct {
	File      string   `json:"file"`
	Cochanges int      `json:"cochanges"`
	Strength  float64  `json:"strength"`
	Via       []string `json:"via"`
}

// AgainstResult partitions historical partners of a change set into
// those included in it and those missing from it. Unresolved holds
// input paths with no match in the index; they are reported, not
// silently dropped.
type AgainstResult struct {
	Included   []Partner `json:"included"`
	Missing    []Partner `json:"missing"`
	Unresolved []string  `json:"unresolved"`
}

// Against looks up each changed file's strongest historical co-change
// partners and asks: which of them are also in this change, and which
// are conspicuously absent? Evidence from multiple changed files for
// the same partner merges: maximum strength and count win, via lists
// accumulate.
func Against(store Store, changedPaths []string, opts AgainstOptions) (*AgainstResult, error) {
	topN := opts.TopN
	if topN <= 0 {
		topN = 5
	}

	res := &AgainstResult{}
	changedIDs := make(map[int64]string)
	var changed []int64
	for _, p := range changedPaths {
		f, err := store.ResolveFile(p)
		if err != nil {
			if roamerrors.CodeOf(err) == roamerrors.FileNotFound {
				res.Unresolved = append(res.Unresolved, p)
				continue
			}
			return nil, err
		}
		if _, dup := changedIDs[f.ID]; dup {
			continue
		}
		changedIDs[f.ID] = f.Path
		changed = append(changed, f.ID)
	}
	if len(changed) == 0 {
		return res, nil
	}

	stats, err := store.FileStats()
	if err != nil {
		return nil, err
	}

	merged := make(map[int64]*Partner)
	viaSeen := make(map[int64]map[string]bool)
	for _, fid := range changed {
		cochanges, err := store.CochangePartners(fid, topN)
		if err != nil {
			return nil, err
		}
		for _, c := range cochanges {
			partnerID := c.FileIDA
			if partnerID == fid {
				partnerID = c.FileIDB
			}
			if partnerID == fid {
				continue
			}
			strength := Strength(c.CochangeCount,
				stats[fid].CommitCount, stats[partnerID].CommitCount)
			if c.CochangeCount < opts.MinCochanges || strength < opts.MinStrength {
				continue
			}

			p, ok := merged[partnerID]
			if !ok {
				p = &Partner{}
				merged[partnerID] = p
				viaSeen[partnerID] = make(map[string]bool)
			}
			if c.CochangeCount > p.Cochanges {
				p.Cochanges = c.CochangeCount
			}
			if strength > p.Strength {
				p.Strength = strength
			}
			via := changedIDs[fid]
			if !viaSeen[partnerID][via] {
				viaSeen[partnerID][via] = true
				p.Via = append(p.Via, via)
			}
		}
	}
	if len(merged) == 0 {
		return res, nil
	}

	partnerIDs := make([]int64, 0, len(merged))
	for id := range merged {
		partnerIDs = append(partnerIDs, id)
	}
	files, err := store.FilesByIDs(partnerIDs)
	if err != nil {
		return nil, err
	}

	for id, p := range merged {
		p.File = files[id].Path
		sort.Strings(p.Via)
		if _, inChange := changedIDs[id]; inChange {
			res.Included = append(res.Included, *p)
		} else {
			res.Missing = append(res.Missing, *p)
		}
	}

	for _, list := range [][]Partner{res.Included, res.Missing} {
		sort.Slice(list, func(i, j int) bool {
			a, b := list[i], list[j]
			if a.Strength != b.Strength {
				return a.Strength > b.Strength
			}
			if a.Cochanges != b.Cochanges {
				return a.Cochanges > b.Cochanges
			}
			return a.File < b.File
		})
	}
	sort.Strings(res.Unresolved)
	return res, nil
}
