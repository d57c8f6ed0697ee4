// Package cmd implements the CLI commands for mdsafe using Cobra.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/mdsafe/config"
	"github.com/gaurav-prasanna/mdsafe/logging"
)

type ctxKey string

const appKey ctxKey = "app"

// app carries the loaded configuration to subcommands.
type app struct {
	v        *viper.Viper
	settings config.Settings
	logs     *logging.Provider
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "mdsafe",
		Short: "Render markdown into sanitized HTML",
		Long: `mdsafe converts markdown into HTML and sanitizes the result against a
fixed allow-list, either as an HTTP service or from the command line.

Usage:
  mdsafe serve [flags]
  mdsafe render <path|-|url> [flags]
  mdsafe config`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(v); err != nil {
				return err
			}
			settings, err := config.FromViper(v)
			if err != nil {
				return err
			}
			logs, err := logging.NewProvider(logging.Config{Level: settings.LogLevel, Format: settings.LogFormat})
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, &app{v: v, settings: settings, logs: logs}))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (toml|yaml|json)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func getApp(cmd *cobra.Command) (*app, error) {
	a, ok := cmd.Context().Value(appKey).(*app)
	if !ok {
		return nil, errors.New("internal error: app not initialized")
	}
	return a, nil
}
