package events

import (
	"context"
	"time"

	"plans-assistant-be/internal/pkg/logger"
	pkgEvents "plans-assistant-be/pkg/events"
	pktNats "plans-assistant-be/pkg/nats"

	"github.com/google/uuid"
)

// Publisher abstracts event publishing for resolved chat turns.
type Publisher interface {
	PublishChatResolved(ctx context.Context, sessionId uuid.UUID, utterance, answer string)
	PublishSessionDeleted(ctx context.Context, sessionId uuid.UUID)
}

// NatsPublisher implements Publisher using NATS. A nil underlying publisher
// turns every emit into a no-op so the assistant runs without a broker.
type NatsPublisher struct {
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

var _ Publisher = &NatsPublisher{}

func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishChatResolved emits CHAT_RESOLVED after a turn completes.
func (p *NatsPublisher) PublishChatResolved(ctx context.Context, sessionId uuid.UUID, utterance, answer string) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type: "CHAT_RESOLVED",
		Data: map[string]interface{}{
			"session_id": sessionId,
			"utterance":  utterance,
			"answer":     answer,
		},
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("CHAT", "Failed to publish CHAT_RESOLVED event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishSessionDeleted emits SESSION_DELETED when a session is discarded.
func (p *NatsPublisher) PublishSessionDeleted(ctx context.Context, sessionId uuid.UUID) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type: "SESSION_DELETED",
		Data: map[string]interface{}{
			"session_id": sessionId,
		},
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("CHAT", "Failed to publish SESSION_DELETED event", map[string]interface{}{"error": err.Error()})
	}
}
