package teams

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	goteamsnotify "github.com/atc0005/go-teams-notify/v2"
	"github.com/atc0005/go-teams-notify/v2/messagecard"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/teamsrelay/pkg/domain/model"
)

func newMessageCard(msg *model.Message) (*messagecard.MessageCard, error) {
	card := messagecard.NewMessageCard()
	card.Title = msg.Title
	card.Summary = msg.Title
	card.Text = msg.Text

	for _, b := range msg.Buttons {
		action, err := messagecard.NewPotentialAction(messagecard.PotentialActionOpenURIType, b.Label)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create link button", goerr.V("label", b.Label))
		}
		action.PotentialActionOpenURI.Targets = []messagecard.PotentialActionOpenURITarget{
			{OS: "default", URI: b.URL},
		}
		if err := card.AddPotentialAction(action); err != nil {
			return nil, goerr.Wrap(err, "failed to add link button", goerr.V("label", b.Label))
		}
	}

	return card, nil
}

// Client posts messages to Microsoft Teams incoming webhook connectors
type Client struct {
	client *goteamsnotify.TeamsClient
}

// Option is a functional option for Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used to post messages
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.client.SetHTTPClient(httpClient)
	}
}

// WithSkipURLValidation accepts webhook URLs outside the Microsoft connector hosts
func WithSkipURLValidation() Option {
	return func(c *Client) {
		c.client.SkipWebhookURLValidationOnSend(true)
	}
}

// New creates a Teams client
func New(opts ...Option) *Client {
	c := &Client{
		client: goteamsnotify.NewTeamsClient().SetHTTPClient(&http.Client{Timeout: 30 * time.Second}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the client name
func (c *Client) Name() string {
	return "teams"
}

// Send posts the message to msg.WebhookURL
func (c *Client) Send(ctx context.Context, msg *model.Message) error {
	if msg.WebhookURL == "" {
		return goerr.New("Teams webhook URL is not set")
	}

	card, err := newMessageCard(msg)
	if err != nil {
		return err
	}

	if err := c.client.SendWithContext(ctx, msg.WebhookURL, card); err != nil {
		return goerr.Wrap(err, "failed to post message to Teams", goerr.V("title", msg.Title))
	}

	return nil
}

// Render writes the message card JSON that Send would post
func (c *Client) Render(w io.Writer, msg *model.Message) error {
	card, err := newMessageCard(msg)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(card); err != nil {
		return goerr.Wrap(err, "failed to render message card")
	}
	return nil
}
