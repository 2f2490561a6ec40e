package storage

import (
	"fmt"
	"path/filepath"
	"testing"

	roamerrors "github.com/chuckjewell/roam-code/internal/errors"
	"github.com/chuckjewell/roam-code/internal/model"
	"github.com/chuckjewell/roam-code/internal/slogutil"
)

func openFixture(t *testing.T) *Store {
	t.Helper()
	store, err := OpenMemory(slogutil.NewDiscardLogger())
	if err != nil {
		t.Fatalf("OpenMemory() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedFile(t *testing.T, s *Store, id int64, path string) {
	t.Helper()
	if _, err := s.Exec("INSERT INTO files (id, path) VALUES (?, ?)", id, path); err != nil {
		t.Fatalf("seed file: %v", err)
	}
}

func seedSymbol(t *testing.T, s *Store, id int64, name, kind string, fileID int64, exported bool) {
	t.Helper()
	exp := 0
	if exported {
		exp = 1
	}
	_, err := s.Exec(
		"INSERT INTO symbols (id, name, kind, file_id, is_exported, line_start) VALUES (?, ?, ?, ?, ?, ?)",
		id, name, kind, fileID, exp, id*10)
	if err != nil {
		t.Fatalf("seed symbol: %v", err)
	}
}

func seedEdge(t *testing.T, s *Store, source, target int64, kind string) {
	t.Helper()
	if _, err := s.Exec(
		"INSERT INTO edges (source_id, target_id, kind) VALUES (?, ?, ?)",
		source, target, kind); err != nil {
		t.Fatalf("seed edge: %v", err)
	}
}

func TestOpenReadOnlyMissingIndex(t *testing.T) {
	missing := filepath.Join(t.TempDir(), ".roam", DefaultDBName)
	_, err := OpenReadOnly(missing, slogutil.NewDiscardLogger())
	if err == nil {
		t.Fatal("OpenReadOnly(missing) error = nil, want INDEX_MISSING")
	}
	if roamerrors.CodeOf(err) != roamerrors.IndexMissing {
		t.Errorf("error code = %s, want %s", roamerrors.CodeOf(err), roamerrors.IndexMissing)
	}
}

func TestOpenCreatesSchemaAndReopens(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), ".roam", DefaultDBName)
	store, err := Open(dbPath, slogutil.NewDiscardLogger())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	seedFile(t, store, 1, "a.py")
	store.Close()

	ro, err := OpenReadOnly(dbPath, slogutil.NewDiscardLogger())
	if err != nil {
		t.Fatalf("OpenReadOnly() error = %v", err)
	}
	defer ro.Close()
	files, err := ro.Files()
	if err != nil {
		t.Fatalf("Files() error = %v", err)
	}
	if len(files) != 1 || files[0].Path != "a.py" {
		t.Errorf("files = %+v, want the seeded record", files)
	}
}

func TestCounts(t *testing.T) {
	store := openFixture(t)
	seedFile(t, store, 1, "a.py")
	seedSymbol(t, store, 1, "f", "function", 1, false)
	seedSymbol(t, store, 2, "g", "function", 1, false)
	seedEdge(t, store, 1, 2, model.EdgeCall)

	files, symbols, edges, err := store.Counts()
	if err != nil {
		t.Fatalf("Counts() error = %v", err)
	}
	if files != 1 || symbols != 2 || edges != 1 {
		t.Errorf("Counts() = %d/%d/%d, want 1/2/1", files, symbols, edges)
	}
}

func TestResolveSymbol(t *testing.T) {
	store := openFixture(t)
	seedFile(t, store, 1, "api/a.py")
	seedFile(t, store, 2, "db/a.py")
	seedSymbol(t, store, 1, "save", "function", 1, true)
	seedSymbol(t, store, 2, "save", "function", 2, true)
	seedSymbol(t, store, 3, "caller", "function", 1, false)
	seedEdge(t, store, 3, 2, model.EdgeCall)

	t.Run("most referenced wins", func(t *testing.T) {
		sym, err := store.ResolveSymbol("save")
		if err != nil {
			t.Fatalf("ResolveSymbol() error = %v", err)
		}
		if sym.ID != 2 {
			t.Errorf("resolved id = %d, want 2 (the referenced one)", sym.ID)
		}
	})

	t.Run("unique name", func(t *testing.T) {
		sym, err := store.ResolveSymbol("caller")
		if err != nil {
			t.Fatalf("ResolveSymbol() error = %v", err)
		}
		if sym.ID != 3 {
			t.Errorf("resolved id = %d, want 3", sym.ID)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := store.ResolveSymbol("nope")
		if roamerrors.CodeOf(err) != roamerrors.SymbolNotFound {
			t.Errorf("error = %v, want SYMBOL_NOT_FOUND", err)
		}
	})
}

func TestResolveSymbolAmbiguous(t *testing.T) {
	store := openFixture(t)
	seedFile(t, store, 1, "api/a.py")
	seedFile(t, store, 2, "db/a.py")
	seedSymbol(t, store, 1, "helper", "function", 1, true)
	seedSymbol(t, store, 2, "helper", "function", 2, true)

	_, err := store.ResolveSymbol("helper")
	if err == nil {
		t.Fatal("ResolveSymbol() error = nil, want SYMBOL_AMBIGUOUS")
	}
	re, ok := err.(*roamerrors.RoamError)
	if !ok || re.Code != roamerrors.SymbolAmbiguous {
		t.Fatalf("error = %v, want SYMBOL_AMBIGUOUS", err)
	}
	cands, ok := re.Details.([]Candidate)
	if !ok || len(cands) != 2 {
		t.Errorf("details = %#v, want two candidates", re.Details)
	}
}

func TestResolveFile(t *testing.T) {
	store := openFixture(t)
	seedFile(t, store, 1, "src/api/handlers.py")
	seedFile(t, store, 2, "src/db/handlers.py")
	seedFile(t, store, 3, "src/api/schemas.py")

	tests := []struct {
		name     string
		path     string
		wantID   int64
		wantCode roamerrors.Code
	}{
		{"exact path", "src/api/handlers.py", 1, ""},
		{"unique suffix", "schemas.py", 3, ""},
		{"ambiguous suffix misses", "handlers.py", 0, roamerrors.FileNotFound},
		{"unknown path", "nope.py", 0, roamerrors.FileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := store.ResolveFile(tt.path)
			if tt.wantCode != "" {
				if roamerrors.CodeOf(err) != tt.wantCode {
					t.Errorf("error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveFile(%q) error = %v", tt.path, err)
			}
			if f.ID != tt.wantID {
				t.Errorf("resolved id = %d, want %d", f.ID, tt.wantID)
			}
		})
	}
}

func TestUnreferencedExports(t *testing.T) {
	store := openFixture(t)
	seedFile(t, store, 1, "lib/a.py")
	seedSymbol(t, store, 1, "Used", "function", 1, true)
	seedSymbol(t, store, 2, "Unused", "function", 1, true)
	seedSymbol(t, store, 3, "private", "function", 1, false)
	seedEdge(t, store, 3, 1, model.EdgeCall)

	syms, err := store.UnreferencedExports()
	if err != nil {
		t.Fatalf("UnreferencedExports() error = %v", err)
	}
	if len(syms) != 1 || syms[0].Name != "Unused" {
		t.Errorf("candidates = %+v, want only Unused", syms)
	}
}

func TestReferencedNamesByFile(t *testing.T) {
	store := openFixture(t)
	seedFile(t, store, 1, "a.py")
	seedFile(t, store, 2, "b.py")
	seedSymbol(t, store, 1, "target", "function", 1, true)
	seedSymbol(t, store, 2, "consumer", "function", 2, false)
	seedEdge(t, store, 2, 1, model.EdgeUse)

	refs, err := store.ReferencedNamesByFile()
	if err != nil {
		t.Fatalf("ReferencedNamesByFile() error = %v", err)
	}
	if !refs[2]["target"] {
		t.Errorf("refs = %+v, want file 2 referencing %q", refs, "target")
	}
	if len(refs[1]) != 0 {
		t.Errorf("file 1 references = %v, want none", refs[1])
	}
}

func TestImporterAdjacency(t *testing.T) {
	store := openFixture(t)
	seedFile(t, store, 1, "core.py")
	seedFile(t, store, 2, "app.py")
	if _, err := store.Exec(
		"INSERT INTO file_edges (source_file_id, target_file_id, symbol_count) VALUES (2, 1, 3)"); err != nil {
		t.Fatalf("seed file edge: %v", err)
	}

	adj, err := store.ImporterAdjacency()
	if err != nil {
		t.Fatalf("ImporterAdjacency() error = %v", err)
	}
	if len(adj[1]) != 1 || adj[1][0] != 2 {
		t.Errorf("importers of 1 = %v, want [2]", adj[1])
	}
}

func TestIncomingEdgeCountsBatching(t *testing.T) {
	store := openFixture(t)
	seedFile(t, store, 1, "a.py")
	// Enough symbols to force multiple placeholder batches.
	n := int64(2*batchSize + 7)
	for i := int64(1); i <= n; i++ {
		seedSymbol(t, store, i, fmt.Sprintf("s%d", i), "function", 1, false)
	}
	for i := int64(2); i <= n; i++ {
		seedEdge(t, store, i, 1, model.EdgeCall)
	}

	ids := make([]int64, 0, n)
	for i := int64(1); i <= n; i++ {
		ids = append(ids, i)
	}
	counts, err := store.IncomingEdgeCounts(ids)
	if err != nil {
		t.Fatalf("IncomingEdgeCounts() error = %v", err)
	}
	if counts[1] != int(n-1) {
		t.Errorf("counts[1] = %d, want %d", counts[1], n-1)
	}
	if counts[2] != 0 {
		t.Errorf("counts[2] = %d, want 0", counts[2])
	}
}

func TestSnapshotsNewestFirst(t *testing.T) {
	store := openFixture(t)
	for i, ts := range []int64{100, 300, 200} {
		err := store.AppendSnapshot(model.Snapshot{
			ID:          fmt.Sprintf("snap-%d", i),
			Timestamp:   ts,
			Source:      "test",
			HealthScore: 80 + i,
		})
		if err != nil {
			t.Fatalf("AppendSnapshot() error = %v", err)
		}
	}

	snaps, err := store.Snapshots(0)
	if err != nil {
		t.Fatalf("Snapshots() error = %v", err)
	}
	if len(snaps) != 3 {
		t.Fatalf("got %d snapshots, want 3", len(snaps))
	}
	if snaps[0].Timestamp != 300 || snaps[2].Timestamp != 100 {
		t.Errorf("order = [%d %d %d], want newest first",
			snaps[0].Timestamp, snaps[1].Timestamp, snaps[2].Timestamp)
	}

	limited, err := store.Snapshots(2)
	if err != nil {
		t.Fatalf("Snapshots(2) error = %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("got %d snapshots with limit 2", len(limited))
	}
}

func TestTopFanSymbols(t *testing.T) {
	store := openFixture(t)
	seedFile(t, store, 1, "hub.py")
	seedSymbol(t, store, 1, "hub", "function", 1, true)
	seedSymbol(t, store, 2, "leaf", "function", 1, false)
	for _, row := range []struct {
		id      int64
		in, out int
	}{{1, 12, 8}, {2, 1, 0}} {
		_, err := store.Exec(
			"INSERT INTO graph_metrics (symbol_id, in_degree, out_degree) VALUES (?, ?, ?)",
			row.id, row.in, row.out)
		if err != nil {
			t.Fatalf("seed metrics: %v", err)
		}
	}

	fans, err := store.TopFanSymbols(10)
	if err != nil {
		t.Fatalf("TopFanSymbols() error = %v", err)
	}
	if len(fans) != 2 || fans[0].Name != "hub" {
		t.Fatalf("fans = %+v, want hub first", fans)
	}
	if fans[0].InDegree != 12 || fans[0].OutDegree != 8 {
		t.Errorf("hub degrees = %d/%d, want 12/8", fans[0].InDegree, fans[0].OutDegree)
	}
}
