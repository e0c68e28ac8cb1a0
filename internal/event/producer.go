package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	pkgkafka "github.com/grimimirg/auth-middleware/pkg/kafka"
)

// Kafka topic constants for session domain events.
const (
	TopicSessionAuthenticated = "auth.session.authenticated"
	TopicSessionDenied        = "auth.session.denied"
)

// Aggregate type constant.
const AggregateTypeAccount = "account"

// Source identifier for events originating from this service.
const SourceAuthMiddleware = "auth-middleware"

// Publisher is the piece of the Kafka producer this package relies on.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// SessionAuthenticatedData is the payload for a session.authenticated event.
type SessionAuthenticatedData struct {
	UserID  int64  `json:"user_id"`
	Email   string `json:"email"`
	Refresh bool   `json:"refresh"`
}

// SessionDeniedData is the payload for a session.denied event. Identifier is
// the supplied username and may not correspond to any account.
type SessionDeniedData struct {
	Identifier string `json:"identifier,omitempty"`
	Reason     string `json:"reason"`
}

// Producer publishes session domain events to Kafka.
type Producer struct {
	publisher Publisher
	logger    *slog.Logger
}

// NewProducer creates a new event producer for the gateway.
func NewProducer(publisher Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishSessionAuthenticated publishes a session.authenticated event.
func (p *Producer) PublishSessionAuthenticated(ctx context.Context, userID int64, email string, refresh bool) error {
	data := SessionAuthenticatedData{
		UserID:  userID,
		Email:   email,
		Refresh: refresh,
	}

	aggregateID := strconv.FormatInt(userID, 10)
	event, err := pkgkafka.NewEvent(TopicSessionAuthenticated, aggregateID, AggregateTypeAccount, SourceAuthMiddleware, data)
	if err != nil {
		return fmt.Errorf("create session.authenticated event: %w", err)
	}

	if err := p.publisher.Publish(ctx, TopicSessionAuthenticated, event); err != nil {
		return fmt.Errorf("publish session.authenticated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published session.authenticated event",
		slog.Int64("user_id", userID),
		slog.Bool("refresh", refresh),
	)

	return nil
}

// PublishSessionDenied publishes a session.denied event. The identifier may
// be empty when the denial happened before any account was resolved.
func (p *Producer) PublishSessionDenied(ctx context.Context, identifier, reason string) error {
	data := SessionDeniedData{
		Identifier: identifier,
		Reason:     reason,
	}

	aggregateID := identifier
	if aggregateID == "" {
		aggregateID = "unknown"
	}

	event, err := pkgkafka.NewEvent(TopicSessionDenied, aggregateID, AggregateTypeAccount, SourceAuthMiddleware, data)
	if err != nil {
		return fmt.Errorf("create session.denied event: %w", err)
	}

	if err := p.publisher.Publish(ctx, TopicSessionDenied, event); err != nil {
		return fmt.Errorf("publish session.denied event: %w", err)
	}

	p.logger.DebugContext(ctx, "published session.denied event",
		slog.String("reason", reason),
	)

	return nil
}
