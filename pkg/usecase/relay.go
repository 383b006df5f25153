package usecase

import (
	"context"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/teamsrelay/pkg/domain/interfaces"
	"github.com/m-mizutani/teamsrelay/pkg/domain/model"
	"github.com/m-mizutani/teamsrelay/pkg/utils/logging"
)

type relayUseCase struct {
	webhookURL         string
	projectsWebhookURL string
	projectAPI         interfaces.ProjectAPI
	chatClients        []interfaces.ChatClient
	dryRun             io.Writer
}

// RelayOption is a functional option for the relay use case
type RelayOption func(*relayUseCase)

// WithProjectAPI enables project card enrichment. Enriched messages go to projectsWebhookURL.
func WithProjectAPI(api interfaces.ProjectAPI, projectsWebhookURL string) RelayOption {
	return func(uc *relayUseCase) {
		uc.projectAPI = api
		uc.projectsWebhookURL = projectsWebhookURL
	}
}

// WithChatClient adds a destination chat client
func WithChatClient(client interfaces.ChatClient) RelayOption {
	return func(uc *relayUseCase) {
		uc.chatClients = append(uc.chatClients, client)
	}
}

// WithDryRun renders messages to w instead of sending them
func WithDryRun(w io.Writer) RelayOption {
	return func(uc *relayUseCase) {
		uc.dryRun = w
	}
}

// NewRelay creates a new instance of RelayUseCase. webhookURL is the default Teams destination.
func NewRelay(webhookURL string, opts ...RelayOption) interfaces.RelayUseCase {
	uc := &relayUseCase{
		webhookURL: webhookURL,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Handle formats a webhook event into a chat message and sends it. In dry-run mode the
// message is rendered even if it would be suppressed.
func (uc *relayUseCase) Handle(ctx context.Context, event *model.WebhookEvent) (*model.Delivery, error) {
	logger := logging.From(ctx).With("delivery_id", event.ID, "event_type", event.Type)

	payload, err := model.ParsePayload(event.RawPayload)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse webhook payload", goerr.V("delivery_id", event.ID))
	}

	msg := model.NewMessage(uc.webhookURL)

	title, err := FormatTitle(event.Type, payload)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build message", goerr.V("delivery_id", event.ID))
	}
	msg.Title = title

	var card *model.ProjectCardDetail
	if event.Type == model.EventTypeProjectCard && uc.projectAPI != nil {
		card, err = EnrichProjectCard(ctx, uc.projectAPI, payload)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to enrich project card", goerr.V("delivery_id", event.ID))
		}
		msg.WebhookURL = uc.projectsWebhookURL
	}

	body, err := FormatBody(event.Type, payload, card)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build message", goerr.V("delivery_id", event.ID))
	}
	msg.Text = EscapeMarkdown(body.Text)
	for _, b := range body.Buttons {
		msg.AddLinkButton(b.Label, b.URL)
	}

	delivery := &model.Delivery{
		ID:         event.ID,
		Type:       event.Type,
		Title:      msg.Title,
		Target:     msg.WebhookURL,
		Enriched:   card != nil,
		Suppressed: body.Suppressed,
	}

	if uc.dryRun != nil {
		for _, client := range uc.chatClients {
			if err := client.Render(uc.dryRun, msg); err != nil {
				return nil, goerr.Wrap(err, "failed to render message", goerr.V("client", client.Name()))
			}
		}
		logger.Info("Rendered message (dry run)", "suppressed", body.Suppressed)
		return delivery, nil
	}

	if body.Suppressed {
		logger.Info("Message suppressed by event action", "title", msg.Title)
		return delivery, nil
	}

	for _, client := range uc.chatClients {
		if err := client.Send(ctx, msg); err != nil {
			return nil, goerr.Wrap(err, "failed to send message",
				goerr.V("client", client.Name()),
				goerr.V("delivery_id", event.ID),
			)
		}
		logger.Info("Message sent", "client", client.Name(), "title", msg.Title)
	}
	delivery.Sent = true

	return delivery, nil
}
