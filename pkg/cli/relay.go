package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/teamsrelay/pkg/cli/config"
	"github.com/m-mizutani/teamsrelay/pkg/domain/interfaces"
	githubinfra "github.com/m-mizutani/teamsrelay/pkg/infra/github"
	slackinfra "github.com/m-mizutani/teamsrelay/pkg/infra/slack"
	"github.com/m-mizutani/teamsrelay/pkg/infra/teams"
	"github.com/m-mizutani/teamsrelay/pkg/usecase"
	"github.com/m-mizutani/teamsrelay/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// relayConfig gathers the configuration every relaying command needs
type relayConfig struct {
	file   config.File
	teams  config.Teams
	github config.GitHub
	slack  config.Slack
	sentry config.Sentry
}

func (c *relayConfig) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, c.file.Flags()...)
	flags = append(flags, c.teams.Flags()...)
	flags = append(flags, c.github.Flags()...)
	flags = append(flags, c.slack.Flags()...)
	flags = append(flags, c.sentry.Flags()...)
	return flags
}

// build creates the relay use case. A non-nil dryRun switches to rendering instead of sending.
func (c *relayConfig) build(ctx context.Context, dryRun io.Writer) (interfaces.RelayUseCase, error) {
	logger := logging.From(ctx)

	if err := c.file.Apply(&c.teams, &c.github, &c.slack); err != nil {
		return nil, err
	}
	if err := c.sentry.Configure(); err != nil {
		return nil, err
	}

	logger.Debug("Relay configuration",
		slog.Any("teams", c.teams),
		slog.Any("github", c.github),
		slog.Any("slack", c.slack),
	)

	if c.teams.WebhookURL == "" && dryRun == nil {
		return nil, goerr.New("Teams webhook URL is required (--teams-webhook-url or config file)")
	}

	var teamsOpts []teams.Option
	if c.teams.SkipURLValidation {
		teamsOpts = append(teamsOpts, teams.WithSkipURLValidation())
	}
	opts := []usecase.RelayOption{
		usecase.WithChatClient(teams.New(teamsOpts...)),
	}

	if c.slack.WebhookURL != "" {
		opts = append(opts, usecase.WithChatClient(slackinfra.New(c.slack.WebhookURL)))
	}

	switch {
	case c.github.Token != "" && c.teams.ProjectsWebhookURL != "":
		var ghOpts []githubinfra.Option
		if c.github.APIBaseURL != "" {
			ghOpts = append(ghOpts, githubinfra.WithBaseURL(c.github.APIBaseURL))
		}
		api, err := githubinfra.NewClient(c.github.Token, ghOpts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create GitHub client")
		}
		opts = append(opts, usecase.WithProjectAPI(api, c.teams.ProjectsWebhookURL))

	case c.github.Token != "" || c.teams.ProjectsWebhookURL != "":
		logger.Warn("Project card enrichment needs both a GitHub token and a projects webhook URL; disabled")
	}

	if dryRun != nil {
		opts = append(opts, usecase.WithDryRun(dryRun))
	}

	return usecase.NewRelay(c.teams.WebhookURL, opts...), nil
}
