package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-sidebar/cmd/config"
	"github.com/mattsolo1/grove-sidebar/pkg/linkcheck"
	"github.com/mattsolo1/grove-sidebar/pkg/sidebar"
)

func NewVerifyCmd(logger **logrus.Entry) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that every link in the generated files resolves",
		Long: `Parse _sidebar.md and every index file and report links whose target
does not exist under the documentation root. External links and anchors are
skipped. The generated files must be up to date; run 'sidebar generate' first.`,
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

			fsys := os.DirFS(root)
			plan, err := sidebar.Build(fsys, opts)
			if err != nil {
				return err
			}
			if pending := plan.Pending(); len(pending) > 0 {
				return fmt.Errorf("%d generated file(s) out of date; run 'sidebar generate'", len(pending))
			}

			var paths []string
			for _, f := range plan.Files() {
				paths = append(paths, f.Path)
			}

			broken, err := linkcheck.Verify(fsys, paths)
			if err != nil {
				return err
			}
			(*logger).WithFields(logrus.Fields{
				"files":  len(paths),
				"broken": len(broken),
			}).Debug("Verified links")

			out := cmd.OutOrStdout()
			if len(broken) == 0 {
				fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ All links in %d file(s) resolve", len(paths))))
				return nil
			}
			for _, b := range broken {
				fmt.Fprintf(out, "  %s %s\n", errorStyle.Render("✗"), b)
			}
			return fmt.Errorf("found %d broken link(s)", len(broken))
		},
	}

	return cmd
}
