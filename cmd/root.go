package cmd

import (
	"fmt"

	"github.com/mattsolo1/grove-core/cli"
	"github.com/mattsolo1/grove-core/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-sidebar/cmd/config"
)

// NewRootCmd builds the sidebar command tree.
func NewRootCmd() *cobra.Command {
	var logger *logrus.Entry

	rootCmd := cli.NewStandardCommand(
		"sidebar",
		"Generate a docsify sidebar and per-directory index pages",
	)
	rootCmd.Long = `Sidebar scans a documentation tree and writes a nested _sidebar.md at the
root plus an _i_<dir>.md index page next to every subdirectory.

Entries starting with '_' or '.' are hidden. Generated files use the reserved
'_i_' prefix and are removed or rewritten on every run.`
	rootCmd.SilenceUsage = true
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// This runs once before any subcommand
		if err := config.InitConfig(); err != nil {
			return err
		}
		base, err := config.NewLogger(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		logger = base.WithField("component", "sidebar")
		return nil
	}
	info := version.GetInfo()
	rootCmd.Version = info.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("%s\n", info.String()))

	config.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(NewGenerateCmd(&logger))
	rootCmd.AddCommand(NewCheckCmd(&logger))
	rootCmd.AddCommand(NewVerifyCmd(&logger))
	rootCmd.AddCommand(NewWatchCmd(&logger))
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}
