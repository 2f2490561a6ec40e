package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chuckjewell/roam-code/internal/config"
	"github.com/chuckjewell/roam-code/internal/model"
	"github.com/chuckjewell/roam-code/internal/slogutil"
	"github.com/chuckjewell/roam-code/internal/storage"
)

var (
	repoRootFlag string
	dbPathFlag   string
	verboseFlag  int
)

var rootCmd = &cobra.Command{
	Use:   "roam",
	Short: "roam - code-relationship analytics",
	Long: `roam analyzes the relationship index built by the roam indexer:
dependency cycles, architectural layers, dead exports, blast radius,
test impact, temporal coupling and an aggregate health score.`,
	Version: version,
}

const version = "0.4.0"

func init() {
	rootCmd.SetVersionTemplate("roam version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&repoRootFlag, "repo", ".", "Repository root")
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "Index database path (default: <repo>/.roam/roam.db)")
	rootCmd.PersistentFlags().CountVarP(&verboseFlag, "verbose", "v", "Increase log verbosity")
}

// newLogger builds the command logger. JSON output keeps stdout clean,
// so logs always go to stderr.
func newLogger(format string) *slog.Logger {
	if format == string(FormatJSON) && verboseFlag == 0 {
		return slogutil.NewDiscardLogger()
	}
	return slogutil.NewLogger(os.Stderr, slogutil.LevelFromVerbosity(verboseFlag, false))
}

func dbPath() string {
	if dbPathFlag != "" {
		return dbPathFlag
	}
	return filepath.Join(repoRootFlag, ".roam", storage.DefaultDBName)
}

// openStoreRO opens the index read-only for analysis commands.
func openStoreRO(logger *slog.Logger) (*storage.Store, error) {
	return storage.OpenReadOnly(dbPath(), logger)
}

// openStore opens the index writable; only the snapshot command needs it.
func openStore(logger *slog.Logger) (*storage.Store, error) {
	return storage.Open(dbPath(), logger)
}

func loadConfig() *config.Config {
	cfg, err := config.Load(repoRootFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config, using defaults: %v\n", err)
		return config.Default()
	}
	return cfg
}

// fileMap loads every file record keyed by id.
func fileMap(store *storage.Store) (map[int64]model.File, error) {
	files, err := store.Files()
	if err != nil {
		return nil, err
	}
	out := make(map[int64]model.File, len(files))
	for _, f := range files {
		out[f.ID] = f
	}
	return out, nil
}

// fail prints the error and exits. Structured errors already carry
// their code in the message.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// printResponse formats and prints a command response.
func printResponse(resp interface{}, format string) {
	output, err := FormatResponse(resp, OutputFormat(format))
	if err != nil {
		fail(err)
	}
	fmt.Println(output)
}
