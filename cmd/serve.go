package cmd

import (
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/mdsafe/config"
	"github.com/gaurav-prasanna/mdsafe/server"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve POST /api/markdown",
		Long: `Serve runs the HTTP service. It accepts {"markdown": "..."} on
POST /api/markdown and answers with {"html": "..."}.

Examples:
  mdsafe serve
  mdsafe serve --port 8080
  PORT=8080 mdsafe serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			settings := a.settings
			if cmd.Flags().Changed("port") {
				a.v.Set("server.port", strconv.Itoa(port))
				if settings, err = config.FromViper(a.v); err != nil {
					return err
				}
			}

			logger := a.logs.Named("mdsafe.server")
			p := buildPipeline(settings, logger)

			srv := &http.Server{
				Addr: settings.Addr(),
				Handler: server.New(p, logger, server.Options{
					MaxBodyBytes:   settings.MaxBodyBytes,
					AllowedOrigins: settings.AllowedOrigins,
				}).Router(),
				ReadTimeout:  settings.ReadTimeout,
				WriteTimeout: settings.WriteTimeout,
				IdleTimeout:  settings.IdleTimeout,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("server listening",
				"addr", srv.Addr,
				"audit", settings.Audit,
				"max_body_bytes", settings.MaxBodyBytes,
			)
			return server.Run(ctx, srv, settings.ShutdownTimeout, logger)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides server.port and PORT)")
	return cmd
}
