package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/fzd/cli"
	"github.com/mattsolo1/fzd/command"
	"github.com/mattsolo1/fzd/pkg/frame"
	"github.com/mattsolo1/fzd/pkg/search"
)

// NewGlobalListCmd returns the reload entrypoint for the indexed search
// overlay: the picker re-runs it on every keystroke with the current query
// and replaces its candidate list with this command's stdout.
func NewGlobalListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "global-list [-- query]",
		Short:  "Print gated, filtered global search results as picker records",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			cfg, err := loadConfig(opts.ConfigFile)
			if err != nil {
				return err
			}

			query := strings.TrimSpace(strings.Join(args, " "))

			filter, err := search.NewFilter(cfg.Search.Roots, cfg.Search.Exclude,
				cfg.Search.MinQueryLen, cfg.Search.MaxResults)
			if err != nil {
				return err
			}
			coord := search.NewCoordinator(cfg.Search.Backend, filter, &command.RealExecutor{})

			pal := frame.NewPalette(cfg.Colors.Dir, cfg.Colors.File)
			for _, line := range search.Lines(coord.Query(cmd.Context(), query), pal) {
				fmt.Fprintln(os.Stdout, line.Record())
			}
			return nil
		},
	}
	return cmd
}
