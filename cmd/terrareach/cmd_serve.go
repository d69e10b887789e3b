package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/terrareach/service"
)

func newServeCmd(a *app) *cobra.Command {
	var bind string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve reachability over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if bind != "" {
				a.cfg.Server.BindAddress = bind
			}
			proc, err := a.newProcess()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return service.NewServer(proc, a.cfg, a.log).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "", "listen address; overrides [server] bind_address")
	return cmd
}
