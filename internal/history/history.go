// Package history persists health-metric snapshots and analyzes them
// for trends and alerts.
package history

import (
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chuckjewell/roam-code/internal/health"
	"github.com/chuckjewell/roam-code/internal/model"
)

// Store is the snapshot persistence surface.
type Store interface {
	AppendSnapshot(model.Snapshot) error
	Snapshots(limit int) ([]model.Snapshot, error)
}

// Capture turns a health measurement into a snapshot and appends it.
// Git branch and commit are recorded best-effort; a missing git binary
// or repository just leaves them empty.
func Capture(store Store, m *health.Metrics, tag, source, repoDir string) (*model.Snapshot, error) {
	branch, commit := gitInfo(repoDir)
	snap := model.Snapshot{
		ID:              uuid.NewString(),
		Timestamp:       time.Now().Unix(),
		Tag:             tag,
		Source:          source,
		GitBranch:       branch,
		GitCommit:       commit,
		Files:           m.Files,
		Symbols:         m.Symbols,
		Edges:           m.Edges,
		Cycles:          m.Cycles,
		GodComponents:   m.GodComponents,
		Bottlenecks:     m.Bottlenecks,
		DeadExports:     m.DeadExports,
		LayerViolations: m.LayerViolations,
		HealthScore:     m.Score,
		TangleRatio:     m.TangleRatio,
	}
	if err := store.AppendSnapshot(snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func gitInfo(dir string) (branch, commit string) {
	branch = gitOutput(dir, "rev-parse", "--abbrev-ref", "HEAD")
	commit = gitOutput(dir, "rev-parse", "--short", "HEAD")
	return
}

func gitOutput(dir string, args ...string) string {
	cmd := exec.Command("git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
