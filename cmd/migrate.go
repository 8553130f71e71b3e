package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/glasswing-ui/glasswing/internal/observability"
	"github.com/glasswing-ui/glasswing/migrate"
)

// defaultRules are the migrations shipped with this release: deprecated
// attribute names across templates and stylesheets, renamed public
// symbols in sources.
func defaultRules() []migrate.Rule {
	return []migrate.Rule{
		&migrate.AttributeSelectorRename{Renames: map[string]string{
			"gw-drawer-open":     "gw-drawer-opened",
			"gw-tooltip-message": "gw-tooltip-text",
			"gw-autosize-rows":   "data-min-rows",
		}},
		&migrate.SymbolRename{Renames: map[string]string{
			"GwCheckboxComponent": "GwCheckbox",
			"GwDrawerContainer":   "GwDrawer",
			"registerGwWidgets":   "provideGwWidgets",
		}},
	}
}

var (
	migrateDryRun  bool
	migrateWorkers int
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <dir>",
	Short: "Rewrite a project tree to the current widget API.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := args[0]
		if _, err := os.Stat(root); err != nil {
			return fmt.Errorf("migration root: %w", err)
		}

		dryRun := appConfig.Migrate.DryRun || migrateDryRun
		workers := appConfig.Migrate.Workers
		if cmd.Flags().Changed("workers") {
			workers = migrateWorkers
		}

		runner := migrate.NewRunner(afero.NewOsFs(), defaultRules(), migrate.Options{
			Workers: workers,
			DryRun:  dryRun,
			Logger:  observability.GetLogger(),
		})
		summary, err := runner.Run(cmd.Context(), root)
		if err != nil {
			return err
		}

		printSummary(cmd, summary)
		return nil
	},
}

func printSummary(cmd *cobra.Command, summary *migrate.Summary) {
	verb := "rewrote"
	if summary.DryRun {
		verb = "would rewrite"
	}
	cmd.Printf("scanned %d files, %s %d\n", summary.Scanned, verb, len(summary.Changed))
	for _, file := range summary.Changed {
		cmd.Printf("  %s (%s): %d edits\n", file.Path, file.Kind, file.EditCount)
		rules := make([]string, 0, len(file.ByRule))
		for rule := range file.ByRule {
			rules = append(rules, rule)
		}
		sort.Strings(rules)
		for _, rule := range rules {
			cmd.Printf("    %s: %d\n", rule, file.ByRule[rule])
		}
	}
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "report edits without writing files")
	migrateCmd.Flags().IntVar(&migrateWorkers, "workers", 4, "concurrent file rewrites")
	rootCmd.AddCommand(migrateCmd)
}
