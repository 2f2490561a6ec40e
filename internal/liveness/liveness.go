// Package liveness classifies unreferenced exported symbols as dead or
// transitively alive through re-export chains in the file import graph.
package liveness

import (
	"sort"

	"github.com/chuckjewell/roam-code/internal/model"
)

// importHops is the propagation ceiling over the importer graph. Three
// hops covers the common barrel/re-export chain (symbol file -> barrel
// -> consumer) with one hop to spare; deeper chains stay classified
// dead, trading recall for bounded work.
const importHops = 3

// Confidence levels for a dead-export finding.
const (
	ConfidenceHigh = "high"
	ConfidenceLow  = "low"
)

// Store is the read surface the resolver needs.
type Store interface {
	UnreferencedExports() ([]model.Symbol, error)
	FileEdges() ([]model.FileEdge, error)
	ImporterAdjacency() (map[int64][]int64, error)
	ReferencedNamesByFile() (map[int64]map[string]bool, error)
	FilesByIDs(ids []int64) (map[int64]model.File, error)
}

// DeadExport is one exported symbol believed to be unused.
type DeadExport struct {
	SymbolID   int64  `json:"symbolId"`
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	File       string `json:"file"`
	Line       int    `json:"line"`
	Confidence string `json:"confidence"`
}

// Result is the dead-export report. Rescued counts candidates that
// looked dead but were consumed transitively under a different binding.
type Result struct {
	Dead       []DeadExport `json:"dead"`
	Candidates int          `json:"candidates"`
	Rescued    int          `json:"rescued"`
}

// Resolve classifies every exported symbol with zero incoming edges.
// Confidence is high when the owning file is imported somewhere (the
// export is visible but unused), low otherwise (the whole file may
// just be an un-indexed entry point). High-confidence candidates are
// then checked for transitive liveness: if any file within importHops
// of the owning file references a symbol with the same name, the
// candidate is assumed re-exported and dropped from the dead set.
func Resolve(store Store) (*Result, error) {
	candidates, err := store.UnreferencedExports()
	if err != nil {
		return nil, err
	}
	res := &Result{Candidates: len(candidates)}
	if len(candidates) == 0 {
		return res, nil
	}

	fileEdges, err := store.FileEdges()
	if err != nil {
		return nil, err
	}
	imported := make(map[int64]bool)
	for _, e := range fileEdges {
		imported[e.TargetFileID] = true
	}

	importers, err := store.ImporterAdjacency()
	if err != nil {
		return nil, err
	}
	refsByFile, err := store.ReferencedNamesByFile()
	if err != nil {
		return nil, err
	}

	fileIDs := make([]int64, 0, len(candidates))
	for _, c := range candidates {
		fileIDs = append(fileIDs, c.FileID)
	}
	files, err := store.FilesByIDs(fileIDs)
	if err != nil {
		return nil, err
	}

	for _, c := range candidates {
		confidence := ConfidenceLow
		if imported[c.FileID] {
			confidence = ConfidenceHigh
			if referencedDownstream(c, importers, refsByFile) {
				res.Rescued++
				continue
			}
		}
		res.Dead = append(res.Dead, DeadExport{
			SymbolID:   c.ID,
			Name:       c.Name,
			Kind:       c.Kind,
			File:       files[c.FileID].Path,
			Line:       c.LineStart,
			Confidence: confidence,
		})
	}

	sort.Slice(res.Dead, func(i, j int) bool {
		a, b := res.Dead[i], res.Dead[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Name < b.Name
	})
	return res, nil
}

// referencedDownstream walks the importer graph outward from the
// candidate's file, exactly importHops levels (stopping early only when
// a frontier comes up empty), and reports whether any visited file has
// an edge targeting a symbol with the candidate's name.
func referencedDownstream(c model.Symbol, importers map[int64][]int64, refsByFile map[int64]map[string]bool) bool {
	visited := map[int64]bool{c.FileID: true}
	frontier := []int64{c.FileID}

	for hop := 0; hop < importHops && len(frontier) > 0; hop++ {
		var next []int64
		for _, fid := range frontier {
			for _, importer := range importers[fid] {
				if visited[importer] {
					continue
				}
				visited[importer] = true
				if refsByFile[importer][c.Name] {
					return true
				}
				next = append(next, importer)
			}
		}
		frontier = next
	}
	return false
}
