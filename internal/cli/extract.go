package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/m-gris/atomyst/internal/atomize"
	"github.com/m-gris/atomyst/internal/files"
	"github.com/m-gris/atomyst/internal/history"
)

var (
	extractOutputDir  string
	extractDryRun     bool
	extractDepthDelta int
)

// extractCmd represents the extract command.
var extractCmd = &cobra.Command{
	Use:   "extract <source.py> <name>",
	Short: "Extract a single definition into its own file",
	Long: `Extract carves one named top-level definition out of a Python file.
The definition (with its immediately preceding comments) moves to a new
file carrying the source's import header; the original shrinks by exactly
the extracted span.

Examples:
  # Move class Foo into foo.py next to the source
  atomyst extract models.py Foo

  # The extracted file will live one directory deeper
  atomyst extract models.py Foo -o models/ --depth-delta 1
`,
	Args: cobra.ExactArgs(2),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&extractOutputDir, "output", "o", "", "directory for the extracted file (default: alongside the source)")
	extractCmd.Flags().BoolVar(&extractDryRun, "dry-run", false, "show the result without writing files")
	extractCmd.Flags().IntVar(&extractDepthDelta, "depth-delta", 0, "extra leading dots for relative imports in the extracted file")
}

func runExtract(cmd *cobra.Command, args []string) error {
	sourcePath, name := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", sourcePath, err)
	}

	extractor := newExtractor(cfg, false, false)
	result, err := extractor.ExtractOne(string(source), name, extractDepthDelta)
	if err != nil {
		if errors.Is(err, atomize.ErrDefinitionNotFound) {
			return fmt.Errorf("no top-level definition named %q in %s", name, sourcePath)
		}
		return err
	}

	outputDir := extractOutputDir
	if outputDir == "" {
		outputDir = filepath.Dir(sourcePath)
	}
	extractedPath := filepath.Join(outputDir, result.Extracted.RelativePath)

	if !quietFlag {
		fmt.Printf("Extracting %s -> %s (%d lines)\n", name, extractedPath, result.Extracted.LineCount())
	}

	if extractDryRun {
		if !quietFlag {
			fmt.Println("[DRY RUN] No files written.")
		}
		return nil
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := files.WriteFileAtomic(extractedPath, []byte(result.Extracted.Content)); err != nil {
		return err
	}
	if err := files.WriteFileAtomic(sourcePath, []byte(result.Remainder)); err != nil {
		return err
	}
	if !quietFlag {
		fmt.Printf("Updated %s\n", sourcePath)
	}

	recordRun(cfg, history.Run{
		ID:          uuid.NewString(),
		Operation:   "extract",
		Source:      sourcePath,
		Definitions: 1,
		FilesOut:    1,
		DryRun:      false,
	})

	return nil
}
