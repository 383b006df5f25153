package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/teamsrelay/pkg/domain/interfaces"
)

// WebhookPath is the endpoint GitHub delivers webhooks to
const WebhookPath = "/hooks/github"

// config holds internal HTTP server configuration
type config struct {
	addr          string
	webhookSecret string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithWebhookSecret enables X-Hub-Signature-256 verification
func WithWebhookSecret(secret string) Option {
	return func(c *config) {
		c.webhookSecret = secret
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	relayUC interfaces.RelayUseCase,
	opts ...Option,
) (*Server, error) {
	cfg := &config{
		addr: "localhost:8080",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	router.Get("/health", handleHealth)

	webhookHandler := NewWebhookHandler(cfg.webhookSecret, relayUC)
	router.Post(WebhookPath, webhookHandler.Handle)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
