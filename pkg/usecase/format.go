package usecase

import (
	"fmt"
	"slices"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/teamsrelay/pkg/domain/model"
)

// EscapeMarkdown prefixes each markdown control character (` \ * _ #) with a backslash
func EscapeMarkdown(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '`', '\\', '*', '_', '#':
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// FormatTitle formats the message title. repository.full_name must be present.
func FormatTitle(eventType model.EventType, payload model.Payload) (string, error) {
	repo, err := payload.String("repository.full_name")
	if err != nil {
		return "", goerr.Wrap(err, "failed to format title", goerr.V("event_type", eventType))
	}
	return fmt.Sprintf("GitHub event: %s in %s", eventType, repo), nil
}

// Actions that are worth a notification. Other actions still build a message but it is not sent.
var (
	notifiedIssueActions = []string{"opened", "reopened", "closed", "edited", "deleted"}
	notifiedPullActions  = []string{"opened", "reopened", "closed", "edited"}
)

type bodyFormatter func(r *fieldReader, card *model.ProjectCardDetail) *model.Body

var bodyFormatters = map[model.EventType]bodyFormatter{
	model.EventTypeCommitComment:            formatCommitComment,
	model.EventTypeCreate:                   formatCreate,
	model.EventTypeIssueComment:             formatIssueComment,
	model.EventTypeIssues:                   formatIssues,
	model.EventTypeProjectCard:              formatProjectCard,
	model.EventTypePullRequest:              formatPullRequest,
	model.EventTypePullRequestReview:        formatPullRequestReview,
	model.EventTypePullRequestReviewComment: formatPullRequestReviewComment,
	model.EventTypePush:                     formatPush,
}

// FormatBody builds the unescaped description, link buttons and suppression flag for
// an event. card is the result of project card enrichment and may be nil.
// Unknown event types produce the event type itself as the description.
func FormatBody(eventType model.EventType, payload model.Payload, card *model.ProjectCardDetail) (*model.Body, error) {
	f, ok := bodyFormatters[eventType]
	if !ok {
		return &model.Body{Text: string(eventType)}, nil
	}

	r := &fieldReader{payload: payload}
	body := f(r, card)
	if r.err != nil {
		return nil, goerr.Wrap(r.err, "failed to format body", goerr.V("event_type", eventType))
	}
	return body, nil
}

// fieldReader reads payload fields and keeps the first lookup error
type fieldReader struct {
	payload model.Payload
	err     error
}

func (r *fieldReader) get(path string) string {
	if r.err != nil {
		return ""
	}
	v, err := r.payload.String(path)
	if err != nil {
		r.err = err
		return ""
	}
	return v
}

func formatCommitComment(r *fieldReader, _ *model.ProjectCardDetail) *model.Body {
	return &model.Body{
		Text: fmt.Sprintf("%s commented on %s in %s\n\n%s",
			r.get("comment.user.login"),
			r.get("comment.commit_id"),
			r.get("repository.full_name"),
			r.get("comment.body"),
		),
	}
}

func formatCreate(r *fieldReader, _ *model.ProjectCardDetail) *model.Body {
	return &model.Body{
		Text: fmt.Sprintf("%s created %s (%s) in %s",
			r.get("sender.login"),
			r.get("ref_type"),
			r.get("ref"),
			r.get("repository.full_name"),
		),
	}
}

func formatIssueComment(r *fieldReader, _ *model.ProjectCardDetail) *model.Body {
	number := r.get("issue.number")
	return &model.Body{
		Text: fmt.Sprintf("%s commented on issue #%s in %s\n\nTitle: %s\n\n%s",
			r.get("sender.login"),
			number,
			r.get("repository.full_name"),
			r.get("issue.title"),
			r.get("comment.body"),
		),
		Buttons: []model.LinkButton{
			{Label: "Issue #" + number, URL: r.get("issue.html_url")},
			{Label: "Comment", URL: r.get("comment.html_url")},
		},
	}
}

func formatIssues(r *fieldReader, _ *model.ProjectCardDetail) *model.Body {
	number := r.get("issue.number")
	action := r.get("action")
	return &model.Body{
		Text: fmt.Sprintf("%s %s issue #%s in %s\n\nTitle: %s\n\n--\n\n%s",
			r.get("sender.login"),
			action,
			number,
			r.get("repository.full_name"),
			r.get("issue.title"),
			r.get("issue.body"),
		),
		Buttons: []model.LinkButton{
			{Label: "Issue #" + number, URL: r.get("issue.html_url")},
		},
		Suppressed: !slices.Contains(notifiedIssueActions, action),
	}
}

func formatProjectCard(r *fieldReader, card *model.ProjectCardDetail) *model.Body {
	if card == nil {
		return &model.Body{
			Text: fmt.Sprintf("%s %s card note %s in %s",
				r.get("sender.login"),
				r.get("action"),
				r.get("project_card.note"),
				r.get("repository.full_name"),
			),
		}
	}

	text := fmt.Sprintf("%s %s card in %s / %s in %s",
		r.get("sender.login"),
		r.get("action"),
		card.ProjectName,
		card.ColumnName,
		r.get("repository.full_name"),
	)

	body := &model.Body{}
	if card.HasIssue {
		text += "\n\nIssue: " + card.IssueTitle
		body.Buttons = append(body.Buttons, model.LinkButton{Label: "Issue", URL: card.IssueURL})
	}
	if note := r.get("project_card.note"); note != "" {
		text += "\n\n" + note
	}
	body.Text = text

	return body
}

func formatPullRequest(r *fieldReader, _ *model.ProjectCardDetail) *model.Body {
	number := r.get("pull_request.number")
	action := r.get("action")
	return &model.Body{
		Text: fmt.Sprintf("%s %s pull #%s in %s\n\nTitle: %s\n\nMerge: %s:%s into %s:%s",
			r.get("sender.login"),
			action,
			number,
			r.get("repository.full_name"),
			r.get("pull_request.title"),
			r.get("pull_request.head.repo.full_name"),
			r.get("pull_request.head.ref"),
			r.get("pull_request.base.repo.full_name"),
			r.get("pull_request.base.ref"),
		),
		Buttons: []model.LinkButton{
			{Label: "Pull Request #" + number, URL: r.get("pull_request.html_url")},
		},
		Suppressed: !slices.Contains(notifiedPullActions, action),
	}
}

func formatPullRequestReview(r *fieldReader, _ *model.ProjectCardDetail) *model.Body {
	return &model.Body{
		Text: fmt.Sprintf("%s %s %s review on pull #%s in %s",
			r.get("sender.login"),
			r.get("action"),
			r.get("review.state"),
			r.get("pull_request.number"),
			r.get("repository.full_name"),
		),
	}
}

func formatPullRequestReviewComment(r *fieldReader, _ *model.ProjectCardDetail) *model.Body {
	return &model.Body{
		Text: fmt.Sprintf("%s %s comment on pull #%s in %s",
			r.get("comment.user.login"),
			r.get("action"),
			r.get("pull_request.number"),
			r.get("repository.full_name"),
		),
	}
}

func formatPush(r *fieldReader, _ *model.ProjectCardDetail) *model.Body {
	return &model.Body{
		Text: fmt.Sprintf("%s pushed to %s in %s",
			r.get("pusher.name"),
			r.get("ref"),
			r.get("repository.full_name"),
		),
		Buttons: []model.LinkButton{
			{Label: "Compare", URL: r.get("compare")},
		},
	}
}
