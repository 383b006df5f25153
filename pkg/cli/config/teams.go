package config

import "github.com/urfave/cli/v3"

// Teams holds Microsoft Teams destinations
type Teams struct {
	WebhookURL         string `masq:"secret"`
	ProjectsWebhookURL string `masq:"secret"`
	SkipURLValidation  bool
}

// Flags returns CLI flags for Teams configuration
func (c *Teams) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "teams-webhook-url",
			Usage:       "Teams incoming webhook URL for organization events",
			Destination: &c.WebhookURL,
			Sources:     cli.EnvVars("TEAMSRELAY_TEAMS_WEBHOOK_URL"),
		},
		&cli.StringFlag{
			Name:        "teams-projects-webhook-url",
			Usage:       "Teams incoming webhook URL for enriched project card events",
			Destination: &c.ProjectsWebhookURL,
			Sources:     cli.EnvVars("TEAMSRELAY_TEAMS_PROJECTS_WEBHOOK_URL"),
		},
		&cli.BoolFlag{
			Name:        "teams-skip-url-validation",
			Usage:       "Accept webhook URLs outside the Microsoft connector hosts (proxies, test endpoints)",
			Destination: &c.SkipURLValidation,
			Sources:     cli.EnvVars("TEAMSRELAY_TEAMS_SKIP_URL_VALIDATION"),
		},
	}
}
