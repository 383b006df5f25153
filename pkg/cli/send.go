package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/teamsrelay/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func cmdSend() *cli.Command {
	var (
		relayCfg    relayConfig
		eventType   string
		payloadPath string
		dryRun      bool
	)

	flags := append(relayCfg.Flags(),
		&cli.StringFlag{
			Name:        "event",
			Aliases:     []string{"e"},
			Usage:       "GitHub event type, as in the X-GitHub-Event header",
			Required:    true,
			Destination: &eventType,
		},
		&cli.StringFlag{
			Name:        "payload",
			Aliases:     []string{"p"},
			Usage:       "Path to the event JSON payload (default: stdin)",
			Destination: &payloadPath,
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Print the message instead of sending it",
			Destination: &dryRun,
		},
	)

	return &cli.Command{
		Name:  "send",
		Usage: "Relay a single event payload from a file or stdin",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			stdout := c.Root().Writer
			stderr := c.Root().ErrWriter

			payload, err := readPayload(c.Root().Reader, payloadPath)
			if err != nil {
				return err
			}

			var renderTo io.Writer
			if dryRun {
				renderTo = stdout
			}
			relayUC, err := relayCfg.build(ctx, renderTo)
			if err != nil {
				return err
			}

			delivery, err := relayUC.Handle(ctx, &model.WebhookEvent{
				ID:         uuid.NewString(),
				Type:       model.EventType(eventType),
				ReceivedAt: time.Now(),
				RawPayload: payload,
			})
			if err != nil {
				return err
			}

			switch {
			case delivery.Sent:
				color.New(color.FgGreen).Fprintf(stderr, "sent: %s\n", delivery.Title)
			case delivery.Suppressed:
				color.New(color.FgYellow).Fprintf(stderr, "suppressed: %s\n", delivery.Title)
			default:
				color.New(color.FgCyan).Fprintf(stderr, "rendered: %s\n", delivery.Title)
			}

			return nil
		},
	}
}

func readPayload(stdin io.Reader, path string) ([]byte, error) {
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read payload file", goerr.V("path", path))
		}
		return raw, nil
	}

	raw, err := io.ReadAll(stdin)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read payload from stdin")
	}
	return raw, nil
}
