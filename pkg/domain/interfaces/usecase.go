package interfaces

import (
	"context"

	"github.com/m-mizutani/teamsrelay/pkg/domain/model"
)

// RelayUseCase defines the interface for relaying a webhook event to chat
type RelayUseCase interface {
	// Handle formats the event and sends (or renders) the chat message
	Handle(ctx context.Context, event *model.WebhookEvent) (*model.Delivery, error)
}
