package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-sidebar/cmd/config"
	"github.com/mattsolo1/grove-sidebar/pkg/sidebar"
	"github.com/mattsolo1/grove-sidebar/pkg/watch"
)

var watchUlog = grovelogging.NewUnifiedLogger("grove-sidebar.cmd.watch")

func NewWatchCmd(logger **logrus.Entry) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever the documentation tree changes",
		Long: `Generate once, then watch every visible directory under the root and
regenerate after changes settle. Changes to hidden entries, including the
generated files themselves, are ignored. Stop with Ctrl-C.`,
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

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			regenerate := func(ctx context.Context) error {
				report, err := sidebar.Generate(ctx, root, opts, sidebar.ApplyOptions{Verbose: verbose}, out, *logger)
				if err != nil {
					return err
				}
				if report.Changed() > 0 {
					watchUlog.Success("Sidebar regenerated").
						Field("created", report.Created).
						Field("updated", report.Updated).
						Field("deleted", report.Deleted).
						Pretty(fmt.Sprintf("%s %d created, %d updated, %d deleted",
							successStyle.Render("✓"), report.Created, report.Updated, report.Deleted)).
						PrettyOnly().
						Emit()
				}
				return nil
			}

			if err := regenerate(ctx); err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}

			w, err := watch.New(root, config.WatchDebounce(), regenerate, *logger)
			if err != nil {
				return err
			}
			watchUlog.Info("Watching for changes").
				Field("root", root).
				Field("debounce", config.WatchDebounce().String()).
				Pretty(fmt.Sprintf("%s %s", dimStyle.Render("Watching"), root)).
				PrettyOnly().
				Log(ctx)
			return w.Run(ctx)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List every file that changes")

	return cmd
}
