package implementation

import (
	"context"

	"plans-assistant-be/internal/model"
	"plans-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatExchangeRepositoryImpl struct {
	db *gorm.DB
}

func NewChatExchangeRepository(db *gorm.DB) contract.ChatExchangeRepository {
	return &ChatExchangeRepositoryImpl{db: db}
}

func (r *ChatExchangeRepositoryImpl) Create(ctx context.Context, exchange *model.ChatExchange) error {
	return r.db.WithContext(ctx).Create(exchange).Error
}

func (r *ChatExchangeRepositoryImpl) FindBySessionId(ctx context.Context, sessionId uuid.UUID, limit, offset int) ([]model.ChatExchange, error) {
	var exchanges []model.ChatExchange
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&exchanges).Error
	if err != nil {
		return nil, err
	}
	return exchanges, nil
}

func (r *ChatExchangeRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionId).Delete(&model.ChatExchange{}).Error
}
