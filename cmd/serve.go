package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mini-infragpt/infragpt/cmd/actions"
	"github.com/mini-infragpt/infragpt/pkg/logging"
	"github.com/mini-infragpt/infragpt/pkg/status"
	"github.com/spf13/cobra"
)

func newServeCmd(c *container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the status page and health endpoints.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd.Context(), c, actions.ActionFunc(func(ctx context.Context) (*actions.ActionResult, error) {
				return nil, serve(ctx, c, addr)
			}))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from configuration, \":5000\").")
	return cmd
}

func serve(ctx context.Context, c *container, addr string) error {
	if addr == "" {
		addr = c.config.Server.Addr
	}

	log := logging.New(c.config.Server.LogLevel, c.config.Server.LogFormat)
	if c.global.EnableDebugLogging {
		log = logging.New("debug", c.config.Server.LogFormat)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := status.NewServer(status.Config{
		Addr:        addr,
		Environment: c.config.Server.Environment,
	}, log)

	return server.Run(ctx)
}
