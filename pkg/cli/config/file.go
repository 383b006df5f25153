package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// File points to an optional TOML file holding destinations and secrets
type File struct {
	Path string
}

// fileValues is the layout of the TOML file
type fileValues struct {
	Teams struct {
		WebhookURL         string `toml:"webhook_url"`
		ProjectsWebhookURL string `toml:"projects_webhook_url"`
		SkipURLValidation  bool   `toml:"skip_url_validation"`
	} `toml:"teams"`
	GitHub struct {
		Token         string `toml:"token"`
		WebhookSecret string `toml:"webhook_secret"`
		APIBaseURL    string `toml:"api_base_url"`
	} `toml:"github"`
	Slack struct {
		WebhookURL string `toml:"webhook_url"`
	} `toml:"slack"`
}

// Flags returns CLI flags for the config file
func (c *File) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to TOML config file; its values fill options not given by flag or env",
			Destination: &c.Path,
			Sources:     cli.EnvVars("TEAMSRELAY_CONFIG"),
		},
	}
}

// Apply loads the file (if any) and fills empty fields of the given configs
func (c *File) Apply(teams *Teams, github *GitHub, slack *Slack) error {
	if c.Path == "" {
		return nil
	}

	raw, err := os.ReadFile(c.Path)
	if err != nil {
		return goerr.Wrap(err, "failed to read config file", goerr.V("path", c.Path))
	}

	var v fileValues
	if err := toml.Unmarshal(raw, &v); err != nil {
		return goerr.Wrap(err, "failed to parse config file", goerr.V("path", c.Path))
	}

	fill(&teams.WebhookURL, v.Teams.WebhookURL)
	fill(&teams.ProjectsWebhookURL, v.Teams.ProjectsWebhookURL)
	teams.SkipURLValidation = teams.SkipURLValidation || v.Teams.SkipURLValidation
	fill(&github.Token, v.GitHub.Token)
	fill(&github.WebhookSecret, v.GitHub.WebhookSecret)
	fill(&github.APIBaseURL, v.GitHub.APIBaseURL)
	fill(&slack.WebhookURL, v.Slack.WebhookURL)

	return nil
}

func fill(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
