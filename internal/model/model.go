// Package model defines the persisted entities produced by the indexer
// and consumed by the analysis engines. The analysis core never mutates
// these records during a run.
package model

// File is one indexed source file. Path is forward-slash normalized and
// unique within the index.
type File struct {
	ID        int64  `json:"id"`
	Path      string `json:"path"`
	Language  string `json:"language,omitempty"`
	LineCount int    `json:"lineCount,omitempty"`
}

// FileStats holds per-file git history statistics.
type FileStats struct {
	FileID          int64 `json:"fileId"`
	CommitCount     int   `json:"commitCount"`
	TotalChurn      int   `json:"totalChurn"`
	DistinctAuthors int   `json:"distinctAuthors"`
}

// Symbol is a named code entity. Every symbol belongs to exactly one file;
// ParentID is non-zero when the symbol is nested inside another.
type Symbol struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	QualifiedName string `json:"qualifiedName,omitempty"`
	Kind          string `json:"kind"`
	FileID        int64  `json:"fileId"`
	ParentID      int64  `json:"parentId,omitempty"`
	LineStart     int    `json:"lineStart"`
	LineEnd       int    `json:"lineEnd,omitempty"`
	Exported      bool   `json:"exported"`
	Signature     string `json:"signature,omitempty"`
	Docstring     string `json:"docstring,omitempty"`
}

// Edge kinds extracted by the indexer. Multiple edges between the same
// symbol pair with different kinds are permitted.
const (
	EdgeCall       = "call"
	EdgeUse        = "use"
	EdgeInherits   = "inherits"
	EdgeImplements = "implements"
	EdgeImport     = "import"
	EdgeTemplate   = "template"
)

// Edge is a directed symbol-level relationship.
type Edge struct {
	SourceID int64  `json:"sourceId"`
	TargetID int64  `json:"targetId"`
	Kind     string `json:"kind"`
	Line     int    `json:"line,omitempty"`
}

// FileEdge is a file-level aggregate of symbol edges: SymbolCount is the
// number of distinct symbols involved in the source->target import.
type FileEdge struct {
	SourceFileID int64 `json:"sourceFileId"`
	TargetFileID int64 `json:"targetFileId"`
	SymbolCount  int   `json:"symbolCount"`
}

// Cochange is an unordered file pair with the number of commits that
// touched both files.
type Cochange struct {
	FileIDA       int64 `json:"fileIdA"`
	FileIDB       int64 `json:"fileIdB"`
	CochangeCount int   `json:"cochangeCount"`
}

// Hyperedge is one commit that changed three or more files.
type Hyperedge struct {
	ID         int64  `json:"id"`
	CommitHash string `json:"commitHash,omitempty"`
	FileCount  int    `json:"fileCount"`
}

// HyperedgeMember associates a file with a hyperedge.
type HyperedgeMember struct {
	HyperedgeID int64 `json:"hyperedgeId"`
	FileID      int64 `json:"fileId"`
	Ordinal     int   `json:"ordinal"`
}

// GraphMetrics are precomputed centrality facts for one symbol. Missing
// rows are treated as all-zero by every consumer.
type GraphMetrics struct {
	SymbolID    int64   `json:"symbolId"`
	PageRank    float64 `json:"pagerank"`
	Betweenness float64 `json:"betweenness"`
	InDegree    int     `json:"inDegree"`
	OutDegree   int     `json:"outDegree"`
}

// Snapshot is one persisted health-metric sample, written by the
// snapshot/trend subsystem.
type Snapshot struct {
	ID              string  `json:"id"`
	Timestamp       int64   `json:"timestamp"`
	Tag             string  `json:"tag,omitempty"`
	Source          string  `json:"source"`
	GitBranch       string  `json:"gitBranch,omitempty"`
	GitCommit       string  `json:"gitCommit,omitempty"`
	Files           int     `json:"files"`
	Symbols         int     `json:"symbols"`
	Edges           int     `json:"edges"`
	Cycles          int     `json:"cycles"`
	GodComponents   int     `json:"godComponents"`
	Bottlenecks     int     `json:"bottlenecks"`
	DeadExports     int     `json:"deadExports"`
	LayerViolations int     `json:"layerViolations"`
	HealthScore     int     `json:"healthScore"`
	TangleRatio     float64 `json:"tangleRatio"`
}
