// Package api is the REST client for the platform backend. All console
// features go through the Client interface so tests can substitute fakes.
package api

import (
	"context"

	"github.com/fundry/console/internal/console/models"
)

// Client is the remote platform API surface the console consumes.
// Every method honors context cancellation. Implementations translate
// transport and status failures into the sentinel errors in errors.go.
type Client interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (string, error)
	// Register creates an account with the given role tag.
	Register(ctx context.Context, email, password, name, role string) error

	Me(ctx context.Context) (models.Profile, error)

	ListFunds(ctx context.Context) ([]models.Fund, error)
	GetFund(ctx context.Context, id string) (models.Fund, error)
	CreateFund(ctx context.Context, f models.Fund) (models.Fund, error)
	UpdateFund(ctx context.Context, f models.Fund) (models.Fund, error)

	ListPledges(ctx context.Context) ([]models.Pledge, error)
	CreatePledge(ctx context.Context, p models.Pledge) (models.Pledge, error)
	// AcceptPledge confirms a pledge and returns the resulting handshake.
	AcceptPledge(ctx context.Context, id string) (models.Handshake, error)
	ListHandshakes(ctx context.Context) ([]models.Handshake, error)

	ListDocuments(ctx context.Context) ([]models.OwnerDocument, error)
	ListNotifications(ctx context.Context) ([]models.Notification, error)

	ListConversations(ctx context.Context) ([]models.Conversation, error)
	ListMessages(ctx context.Context, conversationID string) ([]models.Message, error)
	// SendMessage posts a new message. The response body is not relied on;
	// callers refetch to obtain authoritative state.
	SendMessage(ctx context.Context, conversationID, body string) error
}
