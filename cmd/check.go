package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-sidebar/cmd/config"
	"github.com/mattsolo1/grove-sidebar/pkg/sidebar"
)

func NewCheckCmd(logger **logrus.Entry) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fail if the generated files are out of date",
		Long: `Compute the sidebar and index files and compare them with the ones on disk.
Nothing is written. Exits non-zero when a regeneration would change anything,
which makes it suitable for CI.`,
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

			plan, err := sidebar.Build(os.DirFS(root), opts)
			if err != nil {
				return err
			}

			pending := plan.Pending()
			(*logger).WithFields(logrus.Fields{
				"root":    root,
				"files":   len(plan.Changes),
				"pending": len(pending),
			}).Debug("Checked generated files")

			out := cmd.OutOrStdout()
			if len(pending) == 0 {
				fmt.Fprintln(out, successStyle.Render("✓ Sidebar is up to date"))
				return nil
			}

			for _, change := range pending {
				fmt.Fprintf(out, "  %s %s\n", changeSymbol(change.Action), change.Path)
			}
			return fmt.Errorf("%d generated file(s) out of date; run 'sidebar generate'", len(pending))
		},
	}

	return cmd
}
