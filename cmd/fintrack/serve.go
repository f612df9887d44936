package main

import (
	"context"
	"errors"
	"net/http"

	"fintrack/internal/backend"
	"fintrack/internal/cli"
	apphttp "fintrack/internal/http"
	"fintrack/internal/log"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API server",
		RunE: func(_ *cobra.Command, _ []string) error {
			logger.Info("Starting fintrack", log.FieldOperation, log.OpStartup, "addr", cfg.Addr())

			be, err := backend.Open(cfg, logger)
			if err != nil {
				return err
			}

			srv := apphttp.NewServer(apphttp.Options{
				Addr:               cfg.Addr(),
				DefaultOwnerID:     cfg.DefaultOwnerID,
				RateLimitPerMinute: cfg.RateLimitPerMinute,
				Logger:             logger,
			}, be.Services())

			ctx, done := cli.GracefulShutdown(logger, cfg.ShutdownTimeout, func(ctx context.Context) error {
				return errors.Join(srv.Shutdown(ctx), be.Close())
			})

			serveErr := make(chan error, 1)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
			}()
			logger.Info("Server listening", "addr", cfg.Addr())

			select {
			case err := <-serveErr:
				_ = be.Close()
				return err
			case <-ctx.Done():
			}
			cli.WaitForShutdown(ctx, done)
			return nil
		},
	}
}
