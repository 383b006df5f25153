package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/teamsrelay/pkg/domain/interfaces"
	"github.com/m-mizutani/teamsrelay/pkg/domain/model"
	"github.com/m-mizutani/teamsrelay/pkg/utils/logging"
)

// EnrichProjectCard resolves card -> column -> project and card -> linked issue through
// the GitHub API. Lookups run one after another and the first failure is returned.
// A card without content_url (a plain note) has no linked issue.
func EnrichProjectCard(ctx context.Context, api interfaces.ProjectAPI, payload model.Payload) (*model.ProjectCardDetail, error) {
	logger := logging.From(ctx)

	columnURL, err := payload.String("project_card.column_url")
	if err != nil {
		return nil, goerr.Wrap(err, "project card has no column URL")
	}

	column, err := api.GetProjectColumn(ctx, columnURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get project column", goerr.V("url", columnURL))
	}
	if column.GetProjectURL() == "" {
		return nil, goerr.Wrap(model.ErrMissingField, "project column has no project URL",
			goerr.V("url", columnURL),
		)
	}

	project, err := api.GetProject(ctx, column.GetProjectURL())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get project", goerr.V("url", column.GetProjectURL()))
	}

	detail := &model.ProjectCardDetail{
		ProjectName: project.GetName(),
		ColumnName:  column.GetName(),
	}

	if payload.Has("project_card.content_url") {
		contentURL, err := payload.String("project_card.content_url")
		if err != nil {
			return nil, err
		}

		issue, err := api.GetIssue(ctx, contentURL)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get linked issue", goerr.V("url", contentURL))
		}

		detail.HasIssue = true
		detail.IssueTitle = issue.GetTitle()
		detail.IssueURL = issue.GetHTMLURL()
	}

	logger.Debug("Enriched project card",
		"project", detail.ProjectName,
		"column", detail.ColumnName,
		"has_issue", detail.HasIssue,
	)

	return detail, nil
}
