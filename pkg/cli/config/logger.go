package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/urfave/cli/v3"
)

// Logger holds logger configuration
type Logger struct {
	Level  string
	JSON   bool
	Output string
}

// Flags returns CLI flags for logger configuration
func (c *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &c.Level,
			Sources:     cli.EnvVars("TEAMSRELAY_LOG_LEVEL"),
		},
		&cli.BoolFlag{
			Name:        "log-json",
			Usage:       "Output logs in JSON format",
			Value:       false,
			Destination: &c.JSON,
			Sources:     cli.EnvVars("TEAMSRELAY_LOG_JSON"),
		},
		&cli.StringFlag{
			Name:        "log-output",
			Usage:       "Log destination (stderr, stdout). stdout carries CGI responses, so stderr is the default",
			Value:       "stderr",
			Destination: &c.Output,
			Sources:     cli.EnvVars("TEAMSRELAY_LOG_OUTPUT"),
		},
	}
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Configure configures and returns a logger. Secrets in logged structs are masked.
func (c *Logger) Configure() (*slog.Logger, error) {
	level, ok := logLevels[strings.ToLower(c.Level)]
	if !ok {
		return nil, goerr.New("invalid log level", goerr.V("level", c.Level))
	}

	var w io.Writer
	switch c.Output {
	case "", "stderr":
		w = os.Stderr
	case "stdout":
		w = os.Stdout
	default:
		return nil, goerr.New("invalid log output", goerr.V("output", c.Output))
	}

	filter := masq.New(
		masq.WithTag("secret"),
		masq.WithFieldName("Token"),
		masq.WithFieldName("WebhookSecret"),
		masq.WithFieldName("DSN"),
	)

	var handler slog.Handler
	if c.JSON {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: filter,
		})
	} else {
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithReplaceAttr(filter),
		)
	}

	return slog.New(handler), nil
}
