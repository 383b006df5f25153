package interfaces

import (
	"context"
	"io"

	"github.com/m-mizutani/teamsrelay/pkg/domain/model"
)

// ChatClient delivers a message to a chat service
type ChatClient interface {
	// Name identifies the client in logs
	Name() string

	// Send transmits the message
	Send(ctx context.Context, msg *model.Message) error

	// Render writes the payload Send would transmit, without sending it
	Render(w io.Writer, msg *model.Message) error
}
