package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/mdsafe/config"
)

func newConfigCmd() *cobra.Command {
	var effective bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the configuration options as TOML",
		Long: `Config prints every option with its default and description as a
TOML document suitable for ~/.config/mdsafe/mdsafe.toml.

With --effective, the loaded values (defaults, file and environment applied)
are printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !effective {
				_, err := fmt.Fprint(out, config.RenderDefaultTOML())
				return err
			}

			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			return printEffective(cmd, a.v)
		},
	}

	cmd.Flags().BoolVar(&effective, "effective", false, "print loaded values instead of defaults")
	return cmd
}

func printEffective(cmd *cobra.Command, v *viper.Viper) error {
	out := cmd.OutOrStdout()
	if used := v.ConfigFileUsed(); used != "" {
		if _, err := fmt.Fprintf(out, "# config file: %s\n", used); err != nil {
			return err
		}
	}
	for _, o := range config.GetConfigOptions() {
		if _, err := fmt.Fprintf(out, "%s = %v\n", o.Key, v.Get(o.Key)); err != nil {
			return err
		}
	}
	return nil
}
