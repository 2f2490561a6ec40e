package storage

import (
	"fmt"

	"github.com/chuckjewell/roam-code/internal/model"
)

// AppendSnapshot inserts a health-metric snapshot. This is the only
// write the analytics side performs; it requires a store opened with
// Open rather than OpenReadOnly.
func (s *Store) AppendSnapshot(snap model.Snapshot) error {
	_, err := s.conn.Exec(
		`INSERT INTO snapshots
		 (id, timestamp, tag, source, git_branch, git_commit,
		  files, symbols, edges, cycles, god_components, bottlenecks,
		  dead_exports, layer_violations, health_score, tangle_ratio)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.Timestamp, snap.Tag, snap.Source, snap.GitBranch, snap.GitCommit,
		snap.Files, snap.Symbols, snap.Edges, snap.Cycles, snap.GodComponents,
		snap.Bottlenecks, snap.DeadExports, snap.LayerViolations, snap.HealthScore,
		snap.TangleRatio)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return nil
}

// Snapshots returns snapshot history, newest first. limit <= 0 returns
// everything.
func (s *Store) Snapshots(limit int) ([]model.Snapshot, error) {
	query := "SELECT id, timestamp, COALESCE(tag, ''), COALESCE(source, ''), " +
		"COALESCE(git_branch, ''), COALESCE(git_commit, ''), " +
		"files, symbols, edges, cycles, god_components, bottlenecks, " +
		"dead_exports, layer_violations, health_score, tangle_ratio " +
		"FROM snapshots ORDER BY timestamp DESC"
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []model.Snapshot
	for rows.Next() {
		var snap model.Snapshot
		if err := rows.Scan(&snap.ID, &snap.Timestamp, &snap.Tag, &snap.Source,
			&snap.GitBranch, &snap.GitCommit,
			&snap.Files, &snap.Symbols, &snap.Edges, &snap.Cycles,
			&snap.GodComponents, &snap.Bottlenecks, &snap.DeadExports,
			&snap.LayerViolations, &snap.HealthScore, &snap.TangleRatio); err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}
