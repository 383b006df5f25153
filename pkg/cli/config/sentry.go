package config

import (
	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/teamsrelay/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Sentry holds error reporting configuration
type Sentry struct {
	DSN string `masq:"secret"`
	Env string
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error reporting",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("TEAMSRELAY_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Value:       "production",
			Destination: &c.Env,
			Sources:     cli.EnvVars("TEAMSRELAY_SENTRY_ENV"),
		},
	}
}

// Configure initializes the Sentry client. It is a no-op without a DSN.
func (c *Sentry) Configure() error {
	if c.DSN == "" {
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         c.DSN,
		Environment: c.Env,
		Release:     types.Version,
	}); err != nil {
		return goerr.Wrap(err, "failed to initialize Sentry")
	}

	return nil
}
