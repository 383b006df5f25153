package slack

import (
	"context"
	"encoding/json"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/teamsrelay/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Client mirrors relayed messages to a Slack incoming webhook
type Client struct {
	webhookURL string
}

// New creates a Slack mirror client
func New(webhookURL string) *Client {
	return &Client{webhookURL: webhookURL}
}

// Name returns the client name
func (c *Client) Name() string {
	return "slack"
}

func newWebhookMessage(msg *model.Message) *slack.WebhookMessage {
	attachment := slack.Attachment{
		Title:      msg.Title,
		Text:       msg.Text,
		MarkdownIn: []string{"text"},
	}
	for _, b := range msg.Buttons {
		attachment.Actions = append(attachment.Actions, slack.AttachmentAction{
			Name: b.Label,
			Text: b.Label,
			Type: "button",
			URL:  b.URL,
		})
	}

	return &slack.WebhookMessage{
		Text:        msg.Title,
		Attachments: []slack.Attachment{attachment},
	}
}

// Send posts the message to the Slack webhook. msg.WebhookURL is a Teams destination and is ignored.
func (c *Client) Send(ctx context.Context, msg *model.Message) error {
	if err := slack.PostWebhookContext(ctx, c.webhookURL, newWebhookMessage(msg)); err != nil {
		return goerr.Wrap(err, "failed to post message to Slack")
	}
	return nil
}

// Render writes the webhook message JSON that Send would post
func (c *Client) Render(w io.Writer, msg *model.Message) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newWebhookMessage(msg)); err != nil {
		return goerr.Wrap(err, "failed to render Slack message")
	}
	return nil
}
