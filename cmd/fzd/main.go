package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/fzd/cli"
	"github.com/mattsolo1/fzd/cmd"
	"github.com/mattsolo1/fzd/version"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"fzd",
		"Interactive directory browser driving an external fuzzy picker",
	)
	rootCmd.Version = version.Version

	// A bare `fzd [dir]` browses from there.
	rootCmd.RunE = cmd.RunBrowse
	rootCmd.Args = cobra.MaximumNArgs(1)

	rootCmd.AddCommand(cmd.NewBrowseCmd())
	rootCmd.AddCommand(cmd.NewPreviewCmd())
	rootCmd.AddCommand(cmd.NewGlobalListCmd())
	rootCmd.AddCommand(cmd.NewConfigCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	cli.ApplyStyledHelpRecursive(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		if cmd.IsCancelled(err) {
			os.Exit(130)
		}
		handler := cli.NewErrorHandler(false)
		handler.Handle(err)
		os.Exit(cli.ExitCode(err))
	}
}
