package main

import (
	"github.com/spf13/cobra"

	"github.com/chuckjewell/roam-code/internal/storage"
)

var (
	fanFormat string
	fanLimit  int
)

var fanCmd = &cobra.Command{
	Use:   "fan",
	Short: "Show the highest fan-in/fan-out symbols and files",
	Long: `Rank symbols by combined in+out degree and files by file-level
import fan. High-fan nodes are change amplifiers.

Examples:
  roam fan
  roam fan --limit 10 --format human`,
	Run: runFan,
}

func init() {
	fanCmd.Flags().StringVar(&fanFormat, "format", "json", "Output format (json, human)")
	fanCmd.Flags().IntVar(&fanLimit, "limit", 15, "Entries per ranking")
	rootCmd.AddCommand(fanCmd)
}

// FanResponse is the fan command output.
type FanResponse struct {
	Symbols []storage.SymbolFan `json:"symbols"`
	Files   []storage.FileFan   `json:"files"`
}

func runFan(cmd *cobra.Command, args []string) {
	logger := newLogger(fanFormat)
	store, err := openStoreRO(logger)
	if err != nil {
		fail(err)
	}
	defer store.Close()

	symbols, err := store.TopFanSymbols(fanLimit)
	if err != nil {
		fail(err)
	}
	files, err := store.TopFanFiles(fanLimit)
	if err != nil {
		fail(err)
	}
	printResponse(&FanResponse{Symbols: symbols, Files: files}, fanFormat)
}
