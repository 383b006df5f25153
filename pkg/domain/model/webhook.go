package model

import "time"

// EventType is the GitHub event name taken from the X-GitHub-Event header
type EventType string

const (
	EventTypeCommitComment            EventType = "commit_comment"
	EventTypeCreate                   EventType = "create"
	EventTypeIssueComment             EventType = "issue_comment"
	EventTypeIssues                   EventType = "issues"
	EventTypeProjectCard              EventType = "project_card"
	EventTypePullRequest              EventType = "pull_request"
	EventTypePullRequestReview        EventType = "pull_request_review"
	EventTypePullRequestReviewComment EventType = "pull_request_review_comment"
	EventTypePush                     EventType = "push"
)

// WebhookEvent represents a webhook delivery received from GitHub
type WebhookEvent struct {
	ID         string    // Retrieved from X-GitHub-Delivery header
	Type       EventType // Retrieved from X-GitHub-Event header
	ReceivedAt time.Time // Time when the event was received
	RawPayload []byte    // Raw JSON payload
}

// Delivery summarizes what the relay did with one webhook event
type Delivery struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Title      string    `json:"title"`
	Target     string    `json:"target" masq:"secret"`
	Enriched   bool      `json:"enriched"`
	Suppressed bool      `json:"suppressed"`
	Sent       bool      `json:"sent"`
}
