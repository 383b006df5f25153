package config

import "github.com/urfave/cli/v3"

// GitHub holds GitHub configuration
type GitHub struct {
	Token         string `masq:"secret"`
	WebhookSecret string `masq:"secret"`
	APIBaseURL    string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub access token, enables project card lookups",
			Destination: &c.Token,
			Sources:     cli.EnvVars("TEAMSRELAY_GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret, enables X-Hub-Signature-256 verification",
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("TEAMSRELAY_GITHUB_WEBHOOK_SECRET"),
		},
		&cli.StringFlag{
			Name:        "github-api-base-url",
			Usage:       "GitHub API base URL (for GitHub Enterprise Server)",
			Destination: &c.APIBaseURL,
			Sources:     cli.EnvVars("TEAMSRELAY_GITHUB_API_BASE_URL"),
		},
	}
}
