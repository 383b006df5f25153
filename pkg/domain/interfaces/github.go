package interfaces

import (
	"context"

	"github.com/google/go-github/v66/github"
)

// ProjectAPI resolves the resources a project card refers to. Each method takes the
// API URL found in the webhook payload rather than an ID.
type ProjectAPI interface {
	// GetProjectColumn fetches the column a card belongs to
	GetProjectColumn(ctx context.Context, columnURL string) (*github.ProjectColumn, error)

	// GetProject fetches the project a column belongs to
	GetProject(ctx context.Context, projectURL string) (*github.Project, error)

	// GetIssue fetches the issue or pull request linked to a card
	GetIssue(ctx context.Context, issueURL string) (*github.Issue, error)
}
