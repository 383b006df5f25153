package usecase_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/teamsrelay/pkg/domain/model"
	"github.com/m-mizutani/teamsrelay/pkg/usecase"
)

func mustPayload(t *testing.T, body string) model.Payload {
	t.Helper()
	p, err := model.ParsePayload([]byte(body))
	gt.NoError(t, err)
	return p
}

func unescapeMarkdown(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && strings.IndexByte("`\\*_#", s[i+1]) >= 0 {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "plain text", want: "plain text"},
		{input: "issue #12", want: `issue \#12`},
		{input: "snake_case *bold*", want: `snake\_case \*bold\*`},
		{input: "`code`", want: "\\`code\\`"},
		{input: `C:\path`, want: `C:\\path`},
		{input: "日本語 #タグ", want: `日本語 \#タグ`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			gt.Value(t, usecase.EscapeMarkdown(tt.input)).Equal(tt.want)
		})
	}
}

func TestEscapeMarkdown_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"no specials here",
		`\\already\\escaped\\`,
		"#_*`\\",
		"mixed **markdown** with `code` and __under__ #1",
		"trailing backslash \\",
		"a\xffb_",
		"\xc3#\x28 truncated \xe2\x82",
	}

	for _, input := range inputs {
		escaped := usecase.EscapeMarkdown(input)
		gt.Value(t, unescapeMarkdown(escaped)).Equal(input)
	}

	// Bytes that are not valid UTF-8 pass through untouched
	gt.Value(t, usecase.EscapeMarkdown("a\xffb_")).Equal("a\xffb\\_")

	// No special characters: escaping is the identity and therefore idempotent
	s := "alice pushed to refs/heads/main in org/repo"
	gt.Value(t, usecase.EscapeMarkdown(usecase.EscapeMarkdown(s))).Equal(s)
}

func TestFormatTitle(t *testing.T) {
	p := mustPayload(t, `{"repository":{"full_name":"org/repo"}}`)

	title, err := usecase.FormatTitle(model.EventTypePush, p)
	gt.NoError(t, err)
	gt.Value(t, title).Equal("GitHub event: push in org/repo")

	title, err = usecase.FormatTitle("deployment", p)
	gt.NoError(t, err)
	gt.Value(t, title).Equal("GitHub event: deployment in org/repo")
}

func TestFormatTitle_MissingRepository(t *testing.T) {
	_, err := usecase.FormatTitle(model.EventTypePush, mustPayload(t, `{"ref":"refs/heads/main"}`))
	gt.Error(t, err)
	gt.Value(t, errors.Is(err, model.ErrMissingField)).Equal(true)
}

func TestFormatBody(t *testing.T) {
	tests := []struct {
		name           string
		eventType      model.EventType
		payload        string
		wantText       string
		wantButtons    []model.LinkButton
		wantSuppressed bool
	}{
		{
			name:        "push",
			eventType:   model.EventTypePush,
			payload:     `{"pusher":{"name":"alice"},"ref":"refs/heads/main","repository":{"full_name":"org/repo"},"compare":"http://example.com/diff"}`,
			wantText:    "alice pushed to refs/heads/main in org/repo",
			wantButtons: []model.LinkButton{{Label: "Compare", URL: "http://example.com/diff"}},
		},
		{
			name:      "unknown event type",
			eventType: "deployment_status",
			payload:   `{"repository":{"full_name":"org/repo"}}`,
			wantText:  "deployment_status",
		},
		{
			name:      "commit_comment",
			eventType: model.EventTypeCommitComment,
			payload:   `{"comment":{"user":{"login":"bob"},"commit_id":"abc123","body":"LGTM"},"repository":{"full_name":"org/repo"}}`,
			wantText:  "bob commented on abc123 in org/repo\n\nLGTM",
		},
		{
			name:      "create",
			eventType: model.EventTypeCreate,
			payload:   `{"sender":{"login":"carol"},"ref_type":"tag","ref":"v1.0.0","repository":{"full_name":"org/repo"}}`,
			wantText:  "carol created tag (v1.0.0) in org/repo",
		},
		{
			name:      "issue_comment",
			eventType: model.EventTypeIssueComment,
			payload: `{"sender":{"login":"dave"},"repository":{"full_name":"org/repo"},
				"issue":{"number":7,"title":"Crash","html_url":"https://github.com/org/repo/issues/7"},
				"comment":{"body":"same here","html_url":"https://github.com/org/repo/issues/7#issuecomment-1"}}`,
			wantText: "dave commented on issue #7 in org/repo\n\nTitle: Crash\n\nsame here",
			wantButtons: []model.LinkButton{
				{Label: "Issue #7", URL: "https://github.com/org/repo/issues/7"},
				{Label: "Comment", URL: "https://github.com/org/repo/issues/7#issuecomment-1"},
			},
		},
		{
			name:      "issues opened",
			eventType: model.EventTypeIssues,
			payload: `{"action":"opened","sender":{"login":"erin"},"repository":{"full_name":"org/repo"},
				"issue":{"number":8,"title":"Bug","body":"steps","html_url":"https://github.com/org/repo/issues/8"}}`,
			wantText:    "erin opened issue #8 in org/repo\n\nTitle: Bug\n\n--\n\nsteps",
			wantButtons: []model.LinkButton{{Label: "Issue #8", URL: "https://github.com/org/repo/issues/8"}},
		},
		{
			name:      "issues labeled is suppressed",
			eventType: model.EventTypeIssues,
			payload: `{"action":"labeled","sender":{"login":"erin"},"repository":{"full_name":"org/repo"},
				"issue":{"number":8,"title":"Bug","body":null,"html_url":"https://github.com/org/repo/issues/8"}}`,
			wantText:       "erin labeled issue #8 in org/repo\n\nTitle: Bug\n\n--\n\n",
			wantButtons:    []model.LinkButton{{Label: "Issue #8", URL: "https://github.com/org/repo/issues/8"}},
			wantSuppressed: true,
		},
		{
			name:      "project_card without enrichment",
			eventType: model.EventTypeProjectCard,
			payload:   `{"action":"created","sender":{"login":"frank"},"project_card":{"note":"write docs"},"repository":{"full_name":"org/repo"}}`,
			wantText:  "frank created card note write docs in org/repo",
		},
		{
			name:      "pull_request closed",
			eventType: model.EventTypePullRequest,
			payload:   pullRequestPayload("closed"),
			wantText:  "gina closed pull #3 in org/repo\n\nTitle: Add feature\n\nMerge: gina/repo:feature into org/repo:main",
			wantButtons: []model.LinkButton{
				{Label: "Pull Request #3", URL: "https://github.com/org/repo/pull/3"},
			},
		},
		{
			name:      "pull_request assigned is suppressed",
			eventType: model.EventTypePullRequest,
			payload:   pullRequestPayload("assigned"),
			wantText:  "gina assigned pull #3 in org/repo\n\nTitle: Add feature\n\nMerge: gina/repo:feature into org/repo:main",
			wantButtons: []model.LinkButton{
				{Label: "Pull Request #3", URL: "https://github.com/org/repo/pull/3"},
			},
			wantSuppressed: true,
		},
		{
			name:      "pull_request_review",
			eventType: model.EventTypePullRequestReview,
			payload:   `{"action":"submitted","sender":{"login":"hank"},"review":{"state":"approved"},"pull_request":{"number":3},"repository":{"full_name":"org/repo"}}`,
			wantText:  "hank submitted approved review on pull #3 in org/repo",
		},
		{
			name:      "pull_request_review_comment",
			eventType: model.EventTypePullRequestReviewComment,
			payload:   `{"action":"created","comment":{"user":{"login":"ivy"}},"pull_request":{"number":3},"repository":{"full_name":"org/repo"}}`,
			wantText:  "ivy created comment on pull #3 in org/repo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := usecase.FormatBody(tt.eventType, mustPayload(t, tt.payload), nil)
			gt.NoError(t, err)
			gt.Value(t, body.Text).Equal(tt.wantText)
			gt.Value(t, body.Suppressed).Equal(tt.wantSuppressed)
			gt.Number(t, len(body.Buttons)).Equal(len(tt.wantButtons))
			for i, b := range tt.wantButtons {
				gt.Value(t, body.Buttons[i]).Equal(b)
			}
		})
	}
}

func TestFormatBody_SuppressionByAction(t *testing.T) {
	for _, action := range []string{"opened", "reopened", "closed", "edited", "deleted"} {
		body, err := usecase.FormatBody(model.EventTypeIssues, mustPayload(t, issuesPayload(action)), nil)
		gt.NoError(t, err)
		gt.Value(t, body.Suppressed).Equal(false)
	}
	for _, action := range []string{"labeled", "assigned", "milestoned", "transferred"} {
		body, err := usecase.FormatBody(model.EventTypeIssues, mustPayload(t, issuesPayload(action)), nil)
		gt.NoError(t, err)
		gt.Value(t, body.Suppressed).Equal(true)
	}

	for _, action := range []string{"opened", "reopened", "closed", "edited"} {
		body, err := usecase.FormatBody(model.EventTypePullRequest, mustPayload(t, pullRequestPayload(action)), nil)
		gt.NoError(t, err)
		gt.Value(t, body.Suppressed).Equal(false)
	}
	for _, action := range []string{"deleted", "synchronize", "labeled", "assigned"} {
		body, err := usecase.FormatBody(model.EventTypePullRequest, mustPayload(t, pullRequestPayload(action)), nil)
		gt.NoError(t, err)
		gt.Value(t, body.Suppressed).Equal(true)
	}
}

func TestFormatBody_ProjectCardEnriched(t *testing.T) {
	p := mustPayload(t, `{"action":"moved","sender":{"login":"jack"},"project_card":{"note":null},"repository":{"full_name":"org/repo"}}`)

	t.Run("with linked issue", func(t *testing.T) {
		body, err := usecase.FormatBody(model.EventTypeProjectCard, p, &model.ProjectCardDetail{
			ProjectName: "Roadmap",
			ColumnName:  "In progress",
			IssueTitle:  "Ship v2",
			IssueURL:    "https://github.com/org/repo/issues/9",
			HasIssue:    true,
		})
		gt.NoError(t, err)
		gt.Value(t, body.Text).Equal("jack moved card in Roadmap / In progress in org/repo\n\nIssue: Ship v2")
		gt.Number(t, len(body.Buttons)).Equal(1)
		gt.Value(t, body.Buttons[0]).Equal(model.LinkButton{Label: "Issue", URL: "https://github.com/org/repo/issues/9"})
		gt.Value(t, body.Suppressed).Equal(false)
	})

	t.Run("note card", func(t *testing.T) {
		noted := mustPayload(t, `{"action":"created","sender":{"login":"jack"},"project_card":{"note":"remember"},"repository":{"full_name":"org/repo"}}`)
		body, err := usecase.FormatBody(model.EventTypeProjectCard, noted, &model.ProjectCardDetail{
			ProjectName: "Roadmap",
			ColumnName:  "Todo",
		})
		gt.NoError(t, err)
		gt.Value(t, body.Text).Equal("jack created card in Roadmap / Todo in org/repo\n\nremember")
		gt.Number(t, len(body.Buttons)).Equal(0)
	})
}

func TestFormatBody_MissingField(t *testing.T) {
	tests := []struct {
		name      string
		eventType model.EventType
		payload   string
	}{
		{name: "push without pusher", eventType: model.EventTypePush, payload: `{"ref":"refs/heads/main","repository":{"full_name":"org/repo"},"compare":"x"}`},
		{name: "issues without action", eventType: model.EventTypeIssues, payload: `{"sender":{"login":"a"},"repository":{"full_name":"org/repo"},"issue":{"number":1,"title":"t","body":"b","html_url":"u"}}`},
		{name: "pull_request without head", eventType: model.EventTypePullRequest, payload: `{"action":"opened","sender":{"login":"a"},"repository":{"full_name":"org/repo"},"pull_request":{"number":1,"title":"t","html_url":"u","base":{"ref":"main","repo":{"full_name":"org/repo"}}}}`},
		{name: "issue_comment without comment", eventType: model.EventTypeIssueComment, payload: `{"sender":{"login":"a"},"repository":{"full_name":"org/repo"},"issue":{"number":1,"title":"t","html_url":"u"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := usecase.FormatBody(tt.eventType, mustPayload(t, tt.payload), nil)
			gt.Error(t, err)
			gt.Value(t, errors.Is(err, model.ErrMissingField)).Equal(true)
			gt.Value(t, body == nil).Equal(true)
		})
	}
}

func issuesPayload(action string) string {
	return `{"action":"` + action + `","sender":{"login":"erin"},"repository":{"full_name":"org/repo"},
		"issue":{"number":8,"title":"Bug","body":"steps","html_url":"https://github.com/org/repo/issues/8"}}`
}

func pullRequestPayload(action string) string {
	return `{"action":"` + action + `","sender":{"login":"gina"},"repository":{"full_name":"org/repo"},
		"pull_request":{"number":3,"title":"Add feature","html_url":"https://github.com/org/repo/pull/3",
			"head":{"ref":"feature","repo":{"full_name":"gina/repo"}},
			"base":{"ref":"main","repo":{"full_name":"org/repo"}}}}`
}
