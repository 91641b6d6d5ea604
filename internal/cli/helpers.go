package cli

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/m-gris/atomyst/internal/atomize"
	"github.com/m-gris/atomyst/internal/config"
	"github.com/m-gris/atomyst/internal/history"
	"github.com/m-gris/atomyst/internal/parser"
)

// loadConfig loads .atomyst.yml relative to the working directory.
func loadConfig() (*config.Config, error) {
	rootDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.NewLoader(rootDir).Load()
}

// newExtractor wires an extractor from configuration plus command flags.
func newExtractor(cfg *config.Config, kindPrefix, keepPragmas bool) *atomize.Extractor {
	return atomize.NewExtractor(parser.New(), atomize.Options{
		KindPrefix:  kindPrefix || cfg.Output.KindPrefix,
		KeepPragmas: keepPragmas || cfg.Output.KeepPragmas,
	})
}

// recordRun appends one run to the history ledger. History failures are
// logged, never fatal: the refactoring already happened.
func recordRun(cfg *config.Config, run history.Run) {
	if !cfg.History.Enabled {
		return
	}

	path := cfg.History.Path
	if path == "" {
		rootDir, err := os.Getwd()
		if err != nil {
			return
		}
		dir := filepath.Join(rootDir, ".atomyst")
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Printf("Warning: failed to create history directory: %v", err)
			return
		}
		path = filepath.Join(dir, "history.db")
	}

	store, err := history.Open(path)
	if err != nil {
		log.Printf("Warning: failed to open history: %v", err)
		return
	}
	defer store.Close()

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	if err := store.Record(run); err != nil {
		log.Printf("Warning: failed to record run: %v", err)
	}
}
