package storage

import (
	"database/sql"
	"fmt"

	"github.com/chuckjewell/roam-code/internal/model"
)

// Files returns all file records ordered by path.
func (s *Store) Files() ([]model.File, error) {
	rows, err := s.conn.Query(
		"SELECT id, path, COALESCE(language, ''), COALESCE(line_count, 0) FROM files ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	var files []model.File
	for rows.Next() {
		var f model.File
		if err := rows.Scan(&f.ID, &f.Path, &f.Language, &f.LineCount); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// FileByPath returns the file with an exact path match, or nil.
func (s *Store) FileByPath(path string) (*model.File, error) {
	var f model.File
	err := s.conn.QueryRow(
		"SELECT id, path, COALESCE(language, ''), COALESCE(line_count, 0) FROM files WHERE path = ?",
		path,
	).Scan(&f.ID, &f.Path, &f.Language, &f.LineCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// FileBySuffix returns the unique file whose path ends with the given
// suffix, or nil when there is no match or more than one.
func (s *Store) FileBySuffix(suffix string) (*model.File, error) {
	rows, err := s.conn.Query(
		"SELECT id, path, COALESCE(language, ''), COALESCE(line_count, 0) "+
			"FROM files WHERE path = ? OR path LIKE ? ORDER BY path",
		suffix, "%/"+suffix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []model.File
	for rows.Next() {
		var f model.File
		if err := rows.Scan(&f.ID, &f.Path, &f.Language, &f.LineCount); err != nil {
			return nil, err
		}
		matches = append(matches, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(matches) != 1 {
		return nil, nil
	}
	return &matches[0], nil
}

// FilesByIDs returns file records for the given ids, batched.
func (s *Store) FilesByIDs(ids []int64) (map[int64]model.File, error) {
	out := make(map[int64]model.File, len(ids))
	err := s.queryBatched(
		"SELECT id, path, COALESCE(language, ''), COALESCE(line_count, 0) FROM files WHERE id IN ({ph})",
		ids,
		func(rows *sql.Rows) error {
			var f model.File
			if err := rows.Scan(&f.ID, &f.Path, &f.Language, &f.LineCount); err != nil {
				return err
			}
			out[f.ID] = f
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to query files by id: %w", err)
	}
	return out, nil
}

// Symbols returns all symbol records ordered by id.
func (s *Store) Symbols() ([]model.Symbol, error) {
	rows, err := s.conn.Query(
		"SELECT id, name, COALESCE(qualified_name, ''), kind, file_id, " +
			"COALESCE(parent_id, 0), COALESCE(line_start, 0), COALESCE(line_end, 0), " +
			"is_exported, COALESCE(signature, ''), COALESCE(docstring, '') " +
			"FROM symbols ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query symbols: %w", err)
	}
	defer rows.Close()

	var symbols []model.Symbol
	for rows.Next() {
		sym, err := scanSymbol(rows)
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, sym)
	}
	return symbols, rows.Err()
}

// SymbolsByIDs returns symbol records for the given ids, batched.
func (s *Store) SymbolsByIDs(ids []int64) (map[int64]model.Symbol, error) {
	out := make(map[int64]model.Symbol, len(ids))
	err := s.queryBatched(
		"SELECT id, name, COALESCE(qualified_name, ''), kind, file_id, "+
			"COALESCE(parent_id, 0), COALESCE(line_start, 0), COALESCE(line_end, 0), "+
			"is_exported, COALESCE(signature, ''), COALESCE(docstring, '') "+
			"FROM symbols WHERE id IN ({ph})",
		ids,
		func(rows *sql.Rows) error {
			sym, err := scanSymbol(rows)
			if err != nil {
				return err
			}
			out[sym.ID] = sym
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to query symbols by id: %w", err)
	}
	return out, nil
}

// SymbolsByName returns all symbols with the exact name, ordered by id.
func (s *Store) SymbolsByName(name string) ([]model.Symbol, error) {
	rows, err := s.conn.Query(
		"SELECT id, name, COALESCE(qualified_name, ''), kind, file_id, "+
			"COALESCE(parent_id, 0), COALESCE(line_start, 0), COALESCE(line_end, 0), "+
			"is_exported, COALESCE(signature, ''), COALESCE(docstring, '') "+
			"FROM symbols WHERE name = ? ORDER BY id",
		name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var symbols []model.Symbol
	for rows.Next() {
		sym, err := scanSymbol(rows)
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, sym)
	}
	return symbols, rows.Err()
}

func scanSymbol(rows *sql.Rows) (model.Symbol, error) {
	var sym model.Symbol
	var exported int
	err := rows.Scan(&sym.ID, &sym.Name, &sym.QualifiedName, &sym.Kind, &sym.FileID,
		&sym.ParentID, &sym.LineStart, &sym.LineEnd, &exported, &sym.Signature, &sym.Docstring)
	sym.Exported = exported != 0
	return sym, err
}

// Edges returns all symbol-level edges ordered by source then target.
func (s *Store) Edges() ([]model.Edge, error) {
	rows, err := s.conn.Query(
		"SELECT source_id, target_id, kind, COALESCE(line, 0) FROM edges ORDER BY source_id, target_id, kind")
	if err != nil {
		return nil, fmt.Errorf("failed to query edges: %w", err)
	}
	defer rows.Close()

	var edges []model.Edge
	for rows.Next() {
		var e model.Edge
		if err := rows.Scan(&e.SourceID, &e.TargetID, &e.Kind, &e.Line); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// IncomingEdgeCounts returns the number of incoming edges per symbol id
// for the given ids, batched. Missing ids have zero incoming edges.
func (s *Store) IncomingEdgeCounts(ids []int64) (map[int64]int, error) {
	out := make(map[int64]int, len(ids))
	err := s.queryBatched(
		"SELECT target_id, COUNT(*) FROM edges WHERE target_id IN ({ph}) GROUP BY target_id",
		ids,
		func(rows *sql.Rows) error {
			var id int64
			var n int
			if err := rows.Scan(&id, &n); err != nil {
				return err
			}
			out[id] = n
			return nil
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FileEdges returns all file-level aggregate edges.
func (s *Store) FileEdges() ([]model.FileEdge, error) {
	rows, err := s.conn.Query(
		"SELECT source_file_id, target_file_id, COALESCE(symbol_count, 1) " +
			"FROM file_edges ORDER BY source_file_id, target_file_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query file edges: %w", err)
	}
	defer rows.Close()

	var edges []model.FileEdge
	for rows.Next() {
		var e model.FileEdge
		if err := rows.Scan(&e.SourceFileID, &e.TargetFileID, &e.SymbolCount); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// ImporterAdjacency returns, for every imported file, the list of files
// that import it (file_edges reversed).
func (s *Store) ImporterAdjacency() (map[int64][]int64, error) {
	edges, err := s.FileEdges()
	if err != nil {
		return nil, err
	}
	adj := make(map[int64][]int64)
	for _, e := range edges {
		adj[e.TargetFileID] = append(adj[e.TargetFileID], e.SourceFileID)
	}
	return adj, nil
}

// FileStats returns per-file commit statistics keyed by file id.
func (s *Store) FileStats() (map[int64]model.FileStats, error) {
	rows, err := s.conn.Query(
		"SELECT file_id, COALESCE(commit_count, 0), COALESCE(total_churn, 0), COALESCE(distinct_authors, 0) FROM file_stats")
	if err != nil {
		return nil, fmt.Errorf("failed to query file stats: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]model.FileStats)
	for rows.Next() {
		var fs model.FileStats
		if err := rows.Scan(&fs.FileID, &fs.CommitCount, &fs.TotalChurn, &fs.DistinctAuthors); err != nil {
			return nil, err
		}
		out[fs.FileID] = fs
	}
	return out, rows.Err()
}

// TopCochanges returns the highest co-change pairs, count-descending.
func (s *Store) TopCochanges(limit int) ([]model.Cochange, error) {
	rows, err := s.conn.Query(
		"SELECT file_id_a, file_id_b, cochange_count FROM git_cochange "+
			"ORDER BY cochange_count DESC, file_id_a, file_id_b LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query cochange pairs: %w", err)
	}
	defer rows.Close()

	var pairs []model.Cochange
	for rows.Next() {
		var c model.Cochange
		if err := rows.Scan(&c.FileIDA, &c.FileIDB, &c.CochangeCount); err != nil {
			return nil, err
		}
		pairs = append(pairs, c)
	}
	return pairs, rows.Err()
}

// CochangePartners returns the top-N co-change partners of one file,
// count-descending.
func (s *Store) CochangePartners(fileID int64, limit int) ([]model.Cochange, error) {
	rows, err := s.conn.Query(
		"SELECT file_id_a, file_id_b, cochange_count FROM git_cochange "+
			"WHERE file_id_a = ? OR file_id_b = ? "+
			"ORDER BY cochange_count DESC, file_id_a, file_id_b LIMIT ?",
		fileID, fileID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairs []model.Cochange
	for rows.Next() {
		var c model.Cochange
		if err := rows.Scan(&c.FileIDA, &c.FileIDB, &c.CochangeCount); err != nil {
			return nil, err
		}
		pairs = append(pairs, c)
	}
	return pairs, rows.Err()
}

// HyperedgeMembers returns members of every hyperedge with at least
// minFiles changed files, ordered by hyperedge then ordinal.
func (s *Store) HyperedgeMembers(minFiles int) ([]model.HyperedgeMember, error) {
	rows, err := s.conn.Query(
		"SELECT gm.hyperedge_id, gm.file_id, COALESCE(gm.ordinal, 0) "+
			"FROM git_hyperedges gh "+
			"JOIN git_hyperedge_members gm ON gh.id = gm.hyperedge_id "+
			"WHERE gh.file_count >= ? "+
			"ORDER BY gm.hyperedge_id, gm.ordinal, gm.file_id",
		minFiles)
	if err != nil {
		return nil, fmt.Errorf("failed to query hyperedge members: %w", err)
	}
	defer rows.Close()

	var members []model.HyperedgeMember
	for rows.Next() {
		var m model.HyperedgeMember
		if err := rows.Scan(&m.HyperedgeID, &m.FileID, &m.Ordinal); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// GraphMetrics returns precomputed centrality metrics keyed by symbol id.
// Symbols without a row simply have no entry; consumers treat that as
// all-zero.
func (s *Store) GraphMetrics() (map[int64]model.GraphMetrics, error) {
	rows, err := s.conn.Query(
		"SELECT symbol_id, COALESCE(pagerank, 0), COALESCE(betweenness, 0), " +
			"COALESCE(in_degree, 0), COALESCE(out_degree, 0) FROM graph_metrics")
	if err != nil {
		return nil, fmt.Errorf("failed to query graph metrics: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]model.GraphMetrics)
	for rows.Next() {
		var m model.GraphMetrics
		if err := rows.Scan(&m.SymbolID, &m.PageRank, &m.Betweenness, &m.InDegree, &m.OutDegree); err != nil {
			return nil, err
		}
		out[m.SymbolID] = m
	}
	return out, rows.Err()
}

// UnreferencedExports returns exported symbols with zero incoming edges,
// the base candidate set for dead-export analysis.
func (s *Store) UnreferencedExports() ([]model.Symbol, error) {
	rows, err := s.conn.Query(
		"SELECT s.id, s.name, COALESCE(s.qualified_name, ''), s.kind, s.file_id, " +
			"COALESCE(s.parent_id, 0), COALESCE(s.line_start, 0), COALESCE(s.line_end, 0), " +
			"s.is_exported, COALESCE(s.signature, ''), COALESCE(s.docstring, '') " +
			"FROM symbols s " +
			"WHERE s.is_exported = 1 " +
			"AND NOT EXISTS (SELECT 1 FROM edges e WHERE e.target_id = s.id) " +
			"ORDER BY s.id")
	if err != nil {
		return nil, fmt.Errorf("failed to query unreferenced exports: %w", err)
	}
	defer rows.Close()

	var symbols []model.Symbol
	for rows.Next() {
		sym, err := scanSymbol(rows)
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, sym)
	}
	return symbols, rows.Err()
}

// ReferencedNamesByFile returns, per file, the set of symbol names that
// edges originating in that file point at. Used by the liveness resolver
// to detect re-export consumption.
func (s *Store) ReferencedNamesByFile() (map[int64]map[string]bool, error) {
	rows, err := s.conn.Query(
		"SELECT src.file_id, tgt.name FROM edges e " +
			"JOIN symbols src ON e.source_id = src.id " +
			"JOIN symbols tgt ON e.target_id = tgt.id")
	if err != nil {
		return nil, fmt.Errorf("failed to query referenced names: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]map[string]bool)
	for rows.Next() {
		var fileID int64
		var name string
		if err := rows.Scan(&fileID, &name); err != nil {
			return nil, err
		}
		set := out[fileID]
		if set == nil {
			set = make(map[string]bool)
			out[fileID] = set
		}
		set[name] = true
	}
	return out, rows.Err()
}

// Counts returns the total number of files, symbols and edges.
func (s *Store) Counts() (files, symbols, edges int, err error) {
	if err = s.conn.QueryRow("SELECT COUNT(*) FROM files").Scan(&files); err != nil {
		return
	}
	if err = s.conn.QueryRow("SELECT COUNT(*) FROM symbols").Scan(&symbols); err != nil {
		return
	}
	err = s.conn.QueryRow("SELECT COUNT(*) FROM edges").Scan(&edges)
	return
}
