package cli

import (
	"context"
	"net/http"
	"net/http/cgi"

	"github.com/m-mizutani/goerr/v2"
	controller "github.com/m-mizutani/teamsrelay/pkg/controller/http"
	"github.com/m-mizutani/teamsrelay/pkg/domain/interfaces"
	"github.com/m-mizutani/teamsrelay/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdCGI() *cli.Command {
	var relayCfg relayConfig

	return &cli.Command{
		Name:  "cgi",
		Usage: "Handle one webhook delivery as a CGI script (CONTENT_LENGTH, HTTP_X_GITHUB_EVENT, stdin)",
		Description: "Reads CONTENT_LENGTH bytes of payload from stdin and the event type from HTTP_X_GITHUB_EVENT.\n" +
			"A relayed or suppressed event answers an empty text/plain 200 response.\n" +
			"A failed relay answers 500, as the hosting web server would for a crashed script.",
		Flags: relayCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			relayUC, err := relayCfg.build(ctx, nil)
			if err != nil {
				return err
			}

			if err := cgi.Serve(newCGIHandler(ctx, relayCfg.github.WebhookSecret, relayUC)); err != nil {
				return goerr.Wrap(err, "failed to serve CGI request")
			}
			return nil
		},
	}
}

// newCGIHandler serves the webhook handler with the command's logger, since
// cgi.Serve builds requests from a fresh context
func newCGIHandler(ctx context.Context, secret string, relayUC interfaces.RelayUseCase) http.Handler {
	logger := logging.From(ctx)
	webhookHandler := controller.NewWebhookHandler(secret, relayUC)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		webhookHandler.Handle(w, r.WithContext(logging.With(r.Context(), logger)))
	})
}
