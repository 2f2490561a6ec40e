package storage

import (
	"fmt"
)

// SymbolFan is one symbol ranked by combined degree.
type SymbolFan struct {
	SymbolID  int64  `json:"symbolId"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	File      string `json:"file"`
	InDegree  int    `json:"inDegree"`
	OutDegree int    `json:"outDegree"`
}

// TopFanSymbols returns the symbols with the highest in+out degree from
// the precomputed metrics, descending.
func (s *Store) TopFanSymbols(limit int) ([]SymbolFan, error) {
	rows, err := s.conn.Query(
		"SELECT gm.symbol_id, sy.name, sy.kind, f.path, "+
			"COALESCE(gm.in_degree, 0), COALESCE(gm.out_degree, 0) "+
			"FROM graph_metrics gm "+
			"JOIN symbols sy ON gm.symbol_id = sy.id "+
			"JOIN files f ON sy.file_id = f.id "+
			"ORDER BY COALESCE(gm.in_degree, 0) + COALESCE(gm.out_degree, 0) DESC, gm.symbol_id "+
			"LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query symbol fan: %w", err)
	}
	defer rows.Close()

	var out []SymbolFan
	for rows.Next() {
		var sf SymbolFan
		if err := rows.Scan(&sf.SymbolID, &sf.Name, &sf.Kind, &sf.File,
			&sf.InDegree, &sf.OutDegree); err != nil {
			return nil, err
		}
		out = append(out, sf)
	}
	return out, rows.Err()
}

// FileFan is one file ranked by import fan-in/out.
type FileFan struct {
	FileID int64  `json:"fileId"`
	Path   string `json:"path"`
	FanIn  int    `json:"fanIn"`
	FanOut int    `json:"fanOut"`
}

// TopFanFiles returns the files with the most file-level edges in
// either direction, descending.
func (s *Store) TopFanFiles(limit int) ([]FileFan, error) {
	rows, err := s.conn.Query(
		"SELECT f.id, f.path, "+
			"(SELECT COUNT(*) FROM file_edges fe WHERE fe.target_file_id = f.id), "+
			"(SELECT COUNT(*) FROM file_edges fe WHERE fe.source_file_id = f.id) "+
			"FROM files f "+
			"ORDER BY "+
			"(SELECT COUNT(*) FROM file_edges fe WHERE fe.target_file_id = f.id) + "+
			"(SELECT COUNT(*) FROM file_edges fe WHERE fe.source_file_id = f.id) DESC, f.path "+
			"LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query file fan: %w", err)
	}
	defer rows.Close()

	var out []FileFan
	for rows.Next() {
		var ff FileFan
		if err := rows.Scan(&ff.FileID, &ff.Path, &ff.FanIn, &ff.FanOut); err != nil {
			return nil, err
		}
		out = append(out, ff)
	}
	return out, rows.Err()
}
