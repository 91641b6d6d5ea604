package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/m-gris/atomyst/internal/config"
	"github.com/m-gris/atomyst/internal/files"
	"github.com/m-gris/atomyst/internal/git"
	"github.com/m-gris/atomyst/internal/history"
	"github.com/m-gris/atomyst/internal/output"
	"github.com/m-gris/atomyst/internal/parser"
	"github.com/m-gris/atomyst/internal/rewrite"

	"github.com/google/uuid"
)

var (
	fixDefined   []string
	fixReexports []string
	fixDryRun    bool
	fixFormat    string
	fixFiles     []string
)

// fixImportsCmd represents the fix-imports command.
var fixImportsCmd = &cobra.Command{
	Use:   "fix-imports <atomized_module.py>",
	Short: "Repair consumer imports after atomizing a module",
	Long: `Fix-imports scans the repository for files importing from an atomized
module and redirects each imported name to its true origin.

Names genuinely defined in the module keep importing from it (the
generated __init__.py re-exports them). Names the module itself only
re-exported are rewritten to import from their origin, given with
--reexport. Names that are neither are left alone and flagged for review.

Wildcard imports abort the whole operation: their effective name set is
unknowable, and guessing risks silently breaking code.

Examples:
  atomyst fix-imports src/domain_models.py \
    --defined Query,Mutation \
    --reexport Field=pydantic --reexport StrictBaseModel=.common
`,
	Args: cobra.ExactArgs(1),
	RunE: runFixImports,
}

func init() {
	rootCmd.AddCommand(fixImportsCmd)
	fixImportsCmd.Flags().StringSliceVar(&fixDefined, "defined", nil, "comma-separated names genuinely defined in the module")
	fixImportsCmd.Flags().StringArrayVar(&fixReexports, "reexport", nil, "re-exported name and its origin, as name=origin (repeatable)")
	fixImportsCmd.Flags().BoolVar(&fixDryRun, "dry-run", false, "report rewrites without applying them")
	fixImportsCmd.Flags().StringVar(&fixFormat, "format", "", "output format: text, json, yaml, markdown")
	fixImportsCmd.Flags().StringSliceVar(&fixFiles, "files", nil, "explicit candidate files (default: git tracked *.py, else a glob scan)")
}

func runFixImports(cmd *cobra.Command, args []string) error {
	modulePath := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	defined := map[string]struct{}{}
	for _, name := range fixDefined {
		if name = strings.TrimSpace(name); name != "" {
			defined[name] = struct{}{}
		}
	}

	reexports := map[string]string{}
	for _, pair := range fixReexports {
		name, origin, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid --reexport %q (want name=origin)", pair)
		}
		reexports[name] = origin
	}

	candidates, err := candidateFiles(cfg, modulePath)
	if err != nil {
		return err
	}

	rewriter := rewrite.NewRewriter(parser.New(), os.ReadFile)
	if !quietFlag {
		bar := progressbar.Default(int64(len(candidates)), "scanning")
		rewriter.Progress = func() { bar.Add(1) }
	}

	report, err := rewriter.RewriteConsumers(modulePath, defined, reexports, candidates)
	if err != nil {
		return err
	}

	format, err := resolveFormat(cfg.Output.Format, fixFormat)
	if err != nil {
		return err
	}
	rendered, err := output.RenderRewriteReport(report, format)
	if err != nil {
		return err
	}
	fmt.Println(rendered)

	if fixDryRun {
		if !quietFlag {
			fmt.Println("\n[DRY RUN] No files modified.")
		}
		return nil
	}

	if err := rewrite.Apply(report, os.ReadFile, files.WriteFileAtomic); err != nil {
		return err
	}
	if !quietFlag && len(report.FilesChanged) > 0 {
		fmt.Printf("\nRewrote imports in %d files.\n", len(report.FilesChanged))
	}

	recordRun(cfg, history.Run{
		ID:          uuid.NewString(),
		Operation:   "fix-imports",
		Source:      modulePath,
		Definitions: len(defined),
		FilesOut:    len(report.FilesChanged),
		DryRun:      false,
	})

	return nil
}

// candidateFiles bounds the consumer scan: an explicit --files list wins;
// otherwise git's tracked *.py files; otherwise a glob walk from config
// patterns. The engine works the same either way, just with less
// automation when git is unavailable.
func candidateFiles(cfg *config.Config, modulePath string) ([]string, error) {
	if len(fixFiles) > 0 {
		return fixFiles, nil
	}

	ops := git.NewOperations()
	root := ops.WorktreeRoot(filepath.Dir(modulePath))
	if tracked, err := ops.ListTrackedFiles(root, "*.py"); err == nil && len(tracked) > 0 {
		return tracked, nil
	}

	discovery, err := files.NewDiscovery(root, cfg.Scan.Include, cfg.Scan.Ignore)
	if err != nil {
		return nil, fmt.Errorf("invalid scan patterns: %w", err)
	}
	return discovery.Discover()
}
