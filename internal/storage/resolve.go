package storage

import (
	"fmt"

	roamerrors "github.com/chuckjewell/roam-code/internal/errors"
	"github.com/chuckjewell/roam-code/internal/model"
)

// Candidate describes one possible match for an ambiguous symbol name.
type Candidate struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	FilePath string `json:"file"`
	RefCount int    `json:"refCount"`
}

// ResolveSymbol resolves a name to a single symbol. When several symbols
// share the name, the most-referenced one wins; if no candidate has any
// references the ambiguity is surfaced as a SYMBOL_AMBIGUOUS error whose
// details carry the candidate list.
func (s *Store) ResolveSymbol(name string) (*model.Symbol, error) {
	matches, err := s.SymbolsByName(name)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, roamerrors.New(roamerrors.SymbolNotFound,
			fmt.Sprintf("no symbol named %q", name), nil)
	}
	if len(matches) == 1 {
		return &matches[0], nil
	}

	ids := make([]int64, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}
	refCounts, err := s.IncomingEdgeCounts(ids)
	if err != nil {
		return nil, err
	}

	best := -1
	bestRefs := 0
	for i, m := range matches {
		if n := refCounts[m.ID]; n > bestRefs {
			bestRefs = n
			best = i
		}
	}
	if best >= 0 {
		return &matches[best], nil
	}

	// No candidate is referenced anywhere; don't guess.
	fileIDs := make([]int64, len(matches))
	for i, m := range matches {
		fileIDs[i] = m.FileID
	}
	files, err := s.FilesByIDs(fileIDs)
	if err != nil {
		return nil, err
	}
	candidates := make([]Candidate, len(matches))
	for i, m := range matches {
		candidates[i] = Candidate{
			ID:       m.ID,
			Name:     m.Name,
			Kind:     m.Kind,
			FilePath: files[m.FileID].Path,
			RefCount: refCounts[m.ID],
		}
	}
	return nil, roamerrors.New(roamerrors.SymbolAmbiguous,
		fmt.Sprintf("%d symbols named %q, none referenced", len(matches), name), nil).
		WithDetails(candidates)
}

// ResolveFile resolves a path to a file record, trying an exact match
// first and then a unique suffix match. Misses return a FILE_NOT_FOUND
// error so callers can report unresolved inputs without aborting.
func (s *Store) ResolveFile(path string) (*model.File, error) {
	f, err := s.FileByPath(path)
	if err != nil {
		return nil, err
	}
	if f != nil {
		return f, nil
	}
	f, err = s.FileBySuffix(path)
	if err != nil {
		return nil, err
	}
	if f != nil {
		return f, nil
	}
	return nil, roamerrors.New(roamerrors.FileNotFound,
		fmt.Sprintf("no indexed file matches %q", path), nil)
}
