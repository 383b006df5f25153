package config

import "github.com/urfave/cli/v3"

// Slack holds the optional Slack mirror destination
type Slack struct {
	WebhookURL string `masq:"secret"`
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL to mirror messages to",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("TEAMSRELAY_SLACK_WEBHOOK_URL"),
		},
	}
}
