package contract

import (
	"context"

	"plans-assistant-be/internal/model"

	"github.com/google/uuid"
)

type ChatExchangeRepository interface {
	Create(ctx context.Context, exchange *model.ChatExchange) error
	FindBySessionId(ctx context.Context, sessionId uuid.UUID, limit, offset int) ([]model.ChatExchange, error)
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
}
