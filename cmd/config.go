package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/fzd/cli"
	"github.com/mattsolo1/fzd/config"
)

// NewConfigCmd returns the configuration inspection command.
func NewConfigCmd() *cobra.Command {
	var validate bool
	var showPath bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print or validate the resolved configuration",
		Long: `Prints the fully resolved configuration: the YAML file, conf.d/*.toml
fragments and FZD_* environment overrides merged, with defaults filled in.
With --validate only the verdict is reported; with --path only the config
file location.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			path := opts.ConfigFile
			if path == "" {
				path = config.DefaultPath()
			}

			if showPath {
				fmt.Fprintln(os.Stdout, path)
				return nil
			}

			cfg, err := config.Load(path)
			if validate {
				if err != nil {
					fmt.Fprintf(os.Stderr, "invalid: %v\n", err)
					return err
				}
				fmt.Fprintln(os.Stdout, "valid")
				return nil
			}
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "# Source: %s\n%s", path, data)
			return nil
		},
	}

	cmd.Flags().BoolVar(&validate, "validate", false, "Validate the config file and report the verdict")
	cmd.Flags().BoolVar(&showPath, "path", false, "Print the resolved config file path")

	return cmd
}
