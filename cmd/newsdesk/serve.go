package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"newsdesk/internal/core"
	"newsdesk/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := core.LoadConfig()
			if err != nil {
				return err
			}

			logger := core.NewLoggerWithLevel(os.Stdout, config.LogLevel)

			srv, err := server.New(config, logger)
			if err != nil {
				logger.Error("Failed to create server", "error", err)
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.Run(ctx); err != nil {
				logger.Error("Server failed", "error", err)
				return err
			}
			return nil
		},
	}
}
