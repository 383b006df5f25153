package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/teamsrelay/pkg/cli/config"
	controller "github.com/m-mizutani/teamsrelay/pkg/controller/http"
	"github.com/m-mizutani/teamsrelay/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		relayCfg  relayConfig
	)

	flags := append(serverCfg.Flags(), relayCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Description: "POST /hooks/github relays one delivery and answers an empty text/plain 200.\n" +
			"A failed relay answers 500, as a crashed CGI script would.",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.From(ctx)

			logger.Info("Starting teamsrelay server",
				slog.String("addr", serverCfg.Addr),
			)

			relayUC, err := relayCfg.build(ctx, nil)
			if err != nil {
				return err
			}

			server, err := controller.NewServer(
				ctx,
				relayUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithWebhookSecret(relayCfg.github.WebhookSecret),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
