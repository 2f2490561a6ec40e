package storage

import "fmt"

// The indexer owns every table except snapshots. The schema is created
// here so fixtures and fresh checkouts get a usable database; analysis
// commands never alter it.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS files (
		id INTEGER PRIMARY KEY,
		path TEXT NOT NULL UNIQUE,
		language TEXT,
		line_count INTEGER DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS symbols (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		qualified_name TEXT,
		kind TEXT NOT NULL,
		file_id INTEGER NOT NULL REFERENCES files(id),
		parent_id INTEGER REFERENCES symbols(id),
		line_start INTEGER DEFAULT 0,
		line_end INTEGER DEFAULT 0,
		is_exported INTEGER DEFAULT 0,
		signature TEXT,
		docstring TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_symbols_name ON symbols(name)`,
	`CREATE INDEX IF NOT EXISTS idx_symbols_file ON symbols(file_id)`,
	`CREATE TABLE IF NOT EXISTS edges (
		source_id INTEGER NOT NULL REFERENCES symbols(id),
		target_id INTEGER NOT NULL REFERENCES symbols(id),
		kind TEXT NOT NULL,
		line INTEGER DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source_id)`,
	`CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target_id)`,
	`CREATE TABLE IF NOT EXISTS file_edges (
		source_file_id INTEGER NOT NULL REFERENCES files(id),
		target_file_id INTEGER NOT NULL REFERENCES files(id),
		symbol_count INTEGER DEFAULT 1
	)`,
	`CREATE INDEX IF NOT EXISTS idx_file_edges_target ON file_edges(target_file_id)`,
	`CREATE TABLE IF NOT EXISTS file_stats (
		file_id INTEGER PRIMARY KEY REFERENCES files(id),
		commit_count INTEGER DEFAULT 0,
		total_churn INTEGER DEFAULT 0,
		distinct_authors INTEGER DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS git_cochange (
		file_id_a INTEGER NOT NULL REFERENCES files(id),
		file_id_b INTEGER NOT NULL REFERENCES files(id),
		cochange_count INTEGER DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS git_hyperedges (
		id INTEGER PRIMARY KEY,
		commit_hash TEXT,
		file_count INTEGER DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS git_hyperedge_members (
		hyperedge_id INTEGER NOT NULL REFERENCES git_hyperedges(id),
		file_id INTEGER NOT NULL REFERENCES files(id),
		ordinal INTEGER DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS graph_metrics (
		symbol_id INTEGER PRIMARY KEY REFERENCES symbols(id),
		pagerank REAL DEFAULT 0,
		betweenness REAL DEFAULT 0,
		in_degree INTEGER DEFAULT 0,
		out_degree INTEGER DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		timestamp INTEGER NOT NULL,
		tag TEXT,
		source TEXT,
		git_branch TEXT,
		git_commit TEXT,
		files INTEGER DEFAULT 0,
		symbols INTEGER DEFAULT 0,
		edges INTEGER DEFAULT 0,
		cycles INTEGER DEFAULT 0,
		god_components INTEGER DEFAULT 0,
		bottlenecks INTEGER DEFAULT 0,
		dead_exports INTEGER DEFAULT 0,
		layer_violations INTEGER DEFAULT 0,
		health_score INTEGER DEFAULT 100,
		tangle_ratio REAL DEFAULT 0
	)`,
}

func (s *Store) initializeSchema() error {
	for _, stmt := range schemaStatements {
		if _, err := s.conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
