package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-sidebar/cmd/config"
	"github.com/mattsolo1/grove-sidebar/pkg/sidebar"
)

func NewGenerateCmd(logger **logrus.Entry) *cobra.Command {
	var (
		dryRun     bool
		verbose    bool
		showReport bool
	)

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Regenerate the sidebar and index files",
		Long: `Regenerate _sidebar.md and every directory index file.

Stale index files (the reserved _i_ prefix) in visited directories are removed.

Examples:
  sidebar generate                     # Regenerate in the current directory
  sidebar generate --root docs -d 3    # Three levels deep under ./docs
  sidebar generate --dry-run --verbose # Show what would change`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := config.Root()
			if err != nil {
				return err
			}
			opts, err := config.LoadOptions()
			if err != nil {
				return err
			}

			report, err := sidebar.Generate(cmd.Context(), root, opts, sidebar.ApplyOptions{
				DryRun:  dryRun,
				Verbose: verbose,
			}, cmd.OutOrStdout(), *logger)
			if report != nil && showReport {
				report.Complete()
				printReport(cmd.OutOrStdout(), report)
			}
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be changed without modifying")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List every file that changes")
	cmd.Flags().BoolVar(&showReport, "report", true, "Show a summary report")

	return cmd
}
