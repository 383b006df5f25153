package errs

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/teamsrelay/pkg/utils/logging"
)

// Handle logs err and reports it to Sentry if a Sentry client has been initialized
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	var eventID *sentry.EventID
	if hub := sentry.CurrentHub(); hub.Client() != nil {
		eventID = hub.Clone().CaptureException(err)
	}

	attrs := []any{slog.Any("error", err)}
	if eventID != nil {
		attrs = append(attrs, slog.String("sentry.id", string(*eventID)))
	}
	logger.Error("request failed", attrs...)
}
