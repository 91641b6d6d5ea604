package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/m-gris/atomyst/internal/files"
	"github.com/m-gris/atomyst/internal/git"
	"github.com/m-gris/atomyst/internal/history"
	"github.com/m-gris/atomyst/internal/output"
)

var (
	atomizeOutputDir      string
	atomizeDryRun         bool
	atomizeFormat         string
	atomizeKindPrefix     bool
	atomizeKeepPragmas    bool
	atomizeDeleteOriginal bool
)

// atomizeCmd represents the atomize command.
var atomizeCmd = &cobra.Command{
	Use:   "atomize <source.py>",
	Short: "Split a Python file into one definition per file",
	Long: `Atomize parses a Python source file and writes one file per top-level
definition, plus an __init__.py that re-exports every extracted name so
existing "from module import X" consumers keep working.

Each extracted file gets the original header region (docstring summary,
pragmas, imports, TYPE_CHECKING block) plus synthesized imports for any
sibling definitions or shared constants it references.

Examples:
  # Atomize into domain_models/ next to the source
  atomyst atomize domain_models.py

  # Preview without writing anything
  atomyst atomize domain_models.py --dry-run --format json

  # Delete the original when git says it is tracked and clean
  atomyst atomize domain_models.py --delete-original
`,
	Args: cobra.ExactArgs(1),
	RunE: runAtomize,
}

func init() {
	rootCmd.AddCommand(atomizeCmd)
	atomizeCmd.Flags().StringVarP(&atomizeOutputDir, "output", "o", "", "output directory (default: <source stem>/)")
	atomizeCmd.Flags().BoolVar(&atomizeDryRun, "dry-run", false, "show what would be created without writing files")
	atomizeCmd.Flags().StringVar(&atomizeFormat, "format", "", "output format: text, json, yaml, markdown")
	atomizeCmd.Flags().BoolVar(&atomizeKindPrefix, "kind-prefix", false, "prefix filenames with the definition kind (class_, def_, ...)")
	atomizeCmd.Flags().BoolVar(&atomizeKeepPragmas, "keep-pragmas", false, "keep tool pragma comments in replicated headers")
	atomizeCmd.Flags().BoolVar(&atomizeDeleteOriginal, "delete-original", false, "delete the source file if git reports it tracked and clean")
}

func runAtomize(cmd *cobra.Command, args []string) error {
	sourcePath := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", sourcePath, err)
	}

	extractor := newExtractor(cfg, atomizeKindPrefix, atomizeKeepPragmas)
	plan, err := extractor.Plan(string(source), filepath.Base(sourcePath))
	if err != nil {
		return err
	}

	if len(plan.Definitions) == 0 {
		fmt.Printf("No definitions found in %s\n", sourcePath)
		return nil
	}

	format, err := resolveFormat(cfg.Output.Format, atomizeFormat)
	if err != nil {
		return err
	}
	rendered, err := output.RenderPlan(plan, format)
	if err != nil {
		return err
	}
	fmt.Println(rendered)

	if atomizeDryRun {
		if !quietFlag {
			fmt.Println("\n[DRY RUN] No files written.")
		}
		return nil
	}

	outputDir := atomizeOutputDir
	if outputDir == "" {
		stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
		outputDir = filepath.Join(filepath.Dir(sourcePath), stem)
	}

	outputs := make([]files.Output, 0, len(plan.OutputFiles))
	for _, f := range plan.OutputFiles {
		outputs = append(outputs, files.Output{RelativePath: f.RelativePath, Content: f.Content})
	}
	written, err := files.WriteOutputFiles(outputDir, outputs)
	if err != nil {
		return fmt.Errorf("failed to write output files: %w", err)
	}
	if !quietFlag {
		fmt.Printf("\nCreated %d files in %s/\n", len(written), outputDir)
	}

	if atomizeDeleteOriginal {
		deleteOriginal(sourcePath)
	}

	recordRun(cfg, history.Run{
		ID:          plan.PlanID,
		Operation:   "atomize",
		Source:      sourcePath,
		Definitions: len(plan.Definitions),
		FilesOut:    len(written),
		DryRun:      false,
	})

	return nil
}

// deleteOriginal removes the atomized source only when git reports it
// tracked and clean; anything else degrades to keeping it.
func deleteOriginal(sourcePath string) {
	ops := git.NewOperations()
	switch ops.CheckDeleteSafety(sourcePath) {
	case git.SafeToDelete:
		if err := os.Remove(sourcePath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to delete %s: %v\n", sourcePath, err)
			return
		}
		if !quietFlag {
			fmt.Printf("Deleted %s (tracked and clean)\n", sourcePath)
		}
	default:
		fmt.Fprintf(os.Stderr, "Keeping %s: not tracked and clean in git\n", sourcePath)
	}
}

// resolveFormat applies flag-over-config precedence.
func resolveFormat(configured, flag string) (output.Format, error) {
	value := configured
	if flag != "" {
		value = flag
	}
	if value == "" {
		value = string(output.FormatText)
	}
	return output.ParseFormat(value)
}
