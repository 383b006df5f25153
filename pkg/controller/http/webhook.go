package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/teamsrelay/pkg/domain/interfaces"
	"github.com/m-mizutani/teamsrelay/pkg/domain/model"
	"github.com/m-mizutani/teamsrelay/pkg/utils/errs"
	"github.com/m-mizutani/teamsrelay/pkg/utils/logging"
)

// WebhookHandler handles GitHub webhooks
type WebhookHandler struct {
	secret  string
	relayUC interfaces.RelayUseCase
}

// NewWebhookHandler creates a new WebhookHandler. An empty secret disables signature verification.
func NewWebhookHandler(secret string, relayUC interfaces.RelayUseCase) *WebhookHandler {
	return &WebhookHandler{
		secret:  secret,
		relayUC: relayUC,
	}
}

// Handle processes webhook requests. On success the response is an empty text/plain body.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	deliveryID := r.Header.Get("X-GitHub-Delivery")
	if deliveryID == "" {
		deliveryID = uuid.NewString()
	}
	eventType := r.Header.Get("X-GitHub-Event")

	logger := logging.From(ctx).With("delivery_id", deliveryID, "event_type", eventType)
	ctx = logging.With(ctx, logger)

	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		errs.Handle(ctx, goerr.Wrap(err, "failed to read request body"))
		writeError(w, goerr.New("failed to read request body"), http.StatusBadRequest)
		return
	}

	if h.secret != "" && !h.verifySignature(body, r.Header.Get("X-Hub-Signature-256")) {
		logger.Warn("Invalid webhook signature")
		writeError(w, goerr.New("invalid signature"), http.StatusUnauthorized)
		return
	}

	event := &model.WebhookEvent{
		ID:         deliveryID,
		Type:       model.EventType(eventType),
		ReceivedAt: time.Now(),
		RawPayload: body,
	}

	delivery, err := h.relayUC.Handle(ctx, event)
	if err != nil {
		errs.Handle(ctx, err)
		writeError(w, goerr.New("failed to relay webhook event"), http.StatusInternalServerError)
		return
	}

	logger.Debug("Webhook event relayed",
		"sent", delivery.Sent,
		"suppressed", delivery.Suppressed,
		"enriched", delivery.Enriched,
	)

	w.Header().Set("Content-Type", "text/plain")
}

// verifySignature verifies the webhook signature
func (h *WebhookHandler) verifySignature(payload []byte, signature string) bool {
	if signature == "" {
		return false
	}

	signature = strings.TrimPrefix(signature, "sha256=")

	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(payload)
	expectedMAC := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expectedMAC))
}
