package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chuckjewell/roam-code/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the .roam directory",
	Long: `Create the .roam directory with a default config.toml and an
empty index database ready for the indexer.

Examples:
  roam init
  roam init --force`,
	Run: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) {
	logger := newLogger(string(FormatHuman))

	configPath := filepath.Join(repoRootFlag, ".roam", "config.toml")
	if _, err := os.Stat(configPath); err == nil && !initForce {
		fail(fmt.Errorf("%s already exists (use --force to overwrite)", configPath))
	}

	cfg := config.Default()
	if err := cfg.Save(repoRootFlag); err != nil {
		fail(err)
	}

	store, err := openStore(logger)
	if err != nil {
		fail(err)
	}
	defer store.Close()

	fmt.Printf("Initialized .roam (config.toml, %s)\n", store.Path())
	fmt.Println("Run the indexer to populate the relationship index.")
}
