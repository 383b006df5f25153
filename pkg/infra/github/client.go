package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/teamsrelay/pkg/domain/interfaces"
)

type client struct {
	githubClient *github.Client
}

// Option is a functional option for the GitHub client
type Option func(*github.Client) error

// WithBaseURL points the client at a GitHub Enterprise server or a test server
func WithBaseURL(baseURL string) Option {
	return func(c *github.Client) error {
		u, err := url.Parse(baseURL)
		if err != nil {
			return goerr.Wrap(err, "invalid GitHub API base URL", goerr.V("url", baseURL))
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		c.BaseURL = u
		return nil
	}
}

// NewClient creates a GitHub API client authenticated with a static token
func NewClient(token string, opts ...Option) (interfaces.ProjectAPI, error) {
	if token == "" {
		return nil, goerr.New("GitHub token is required")
	}

	githubClient := github.NewClient(nil)
	for _, opt := range opts {
		if err := opt(githubClient); err != nil {
			return nil, err
		}
	}

	return &client{
		githubClient: githubClient.WithAuthToken(token),
	}, nil
}

// GetProjectColumn fetches a project column by its API URL
func (c *client) GetProjectColumn(ctx context.Context, columnURL string) (*github.ProjectColumn, error) {
	var column github.ProjectColumn
	if err := c.get(ctx, columnURL, &column); err != nil {
		return nil, err
	}
	return &column, nil
}

// GetProject fetches a project by its API URL
func (c *client) GetProject(ctx context.Context, projectURL string) (*github.Project, error) {
	var project github.Project
	if err := c.get(ctx, projectURL, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetIssue fetches an issue (or pull request) by its API URL
func (c *client) GetIssue(ctx context.Context, issueURL string) (*github.Issue, error) {
	var issue github.Issue
	if err := c.get(ctx, issueURL, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (c *client) get(ctx context.Context, resourceURL string, v any) error {
	req, err := c.githubClient.NewRequest(http.MethodGet, resourceURL, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to create GitHub API request", goerr.V("url", resourceURL))
	}

	// Projects (classic) endpoints required a preview media type
	req.Header.Set("Accept", "application/vnd.github.inertia-preview+json")

	resp, err := c.githubClient.Do(ctx, req, v)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		return goerr.Wrap(err, "GitHub API request failed",
			goerr.V("url", resourceURL),
			goerr.V("status", status),
		)
	}

	return nil
}
