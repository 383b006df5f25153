package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/go-github/v66/github"

	"github.com/m-mizutani/teamsrelay/pkg/domain/model"
)

// MockProjectAPI is a mock implementation of ProjectAPI
type MockProjectAPI struct {
	getProjectColumnFunc func(ctx context.Context, columnURL string) (*github.ProjectColumn, error)
	getProjectFunc       func(ctx context.Context, projectURL string) (*github.Project, error)
	getIssueFunc         func(ctx context.Context, issueURL string) (*github.Issue, error)
	calls                []string
}

func (m *MockProjectAPI) GetProjectColumn(ctx context.Context, columnURL string) (*github.ProjectColumn, error) {
	m.calls = append(m.calls, columnURL)
	if m.getProjectColumnFunc != nil {
		return m.getProjectColumnFunc(ctx, columnURL)
	}
	return nil, errors.New("mock not configured")
}

func (m *MockProjectAPI) GetProject(ctx context.Context, projectURL string) (*github.Project, error) {
	m.calls = append(m.calls, projectURL)
	if m.getProjectFunc != nil {
		return m.getProjectFunc(ctx, projectURL)
	}
	return nil, errors.New("mock not configured")
}

func (m *MockProjectAPI) GetIssue(ctx context.Context, issueURL string) (*github.Issue, error) {
	m.calls = append(m.calls, issueURL)
	if m.getIssueFunc != nil {
		return m.getIssueFunc(ctx, issueURL)
	}
	return nil, errors.New("mock not configured")
}

func newProjectAPIMock() *MockProjectAPI {
	return &MockProjectAPI{
		getProjectColumnFunc: func(ctx context.Context, columnURL string) (*github.ProjectColumn, error) {
			return &github.ProjectColumn{
				Name:       github.String("In progress"),
				ProjectURL: github.String("https://api.github.com/projects/1"),
			}, nil
		},
		getProjectFunc: func(ctx context.Context, projectURL string) (*github.Project, error) {
			return &github.Project{Name: github.String("Roadmap")}, nil
		},
		getIssueFunc: func(ctx context.Context, issueURL string) (*github.Issue, error) {
			return &github.Issue{
				Title:   github.String("Ship v2"),
				HTMLURL: github.String("https://github.com/org/repo/issues/9"),
			}, nil
		},
	}
}

// MockChatClient is a mock implementation of ChatClient
type MockChatClient struct {
	sendFunc func(ctx context.Context, msg *model.Message) error
	sent     []*model.Message
	rendered []*model.Message
}

func (m *MockChatClient) Name() string { return "mock" }

func (m *MockChatClient) Send(ctx context.Context, msg *model.Message) error {
	m.sent = append(m.sent, msg)
	if m.sendFunc != nil {
		return m.sendFunc(ctx, msg)
	}
	return nil
}

func (m *MockChatClient) Render(w io.Writer, msg *model.Message) error {
	m.rendered = append(m.rendered, msg)
	_, err := fmt.Fprintf(w, "%s\n%s\n", msg.Title, msg.Text)
	return err
}
