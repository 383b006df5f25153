package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/teamsrelay/pkg/cli/config"
	"github.com/m-mizutani/teamsrelay/pkg/domain/types"
	"github.com/m-mizutani/teamsrelay/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var loggerCfg config.Logger
	var logger *slog.Logger

	defer sentry.Flush(2 * time.Second)

	app := &cli.Command{
		Name:      "teamsrelay",
		Usage:     "Relay GitHub webhook events to Microsoft Teams",
		Version:   types.Version,
		Flags:     loggerCfg.Flags(),
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = logging.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdCGI(),
			cmdSend(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}
