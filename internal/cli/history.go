package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/m-gris/atomyst/internal/history"
)

var historyLimit int

// historyCmd represents the history command.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent atomyst runs",
	Long: `History lists recent atomize, extract, and fix-imports runs recorded in
the local ledger (default: .atomyst/history.db).`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	path := cfg.History.Path
	if path == "" {
		rootDir, err := os.Getwd()
		if err != nil {
			return err
		}
		path = filepath.Join(rootDir, ".atomyst", "history.db")
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Println("No history recorded yet.")
		return nil
	}

	store, err := history.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	runs, err := store.List(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No history recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tOPERATION\tSOURCE\tDEFS\tFILES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			run.Operation, run.Source, run.Definitions, run.FilesOut)
	}
	return w.Flush()
}
