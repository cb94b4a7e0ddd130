package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatExchange records one resolved turn: the user's utterance, the
// assistant's answer, and the per-stage diagnostics captured along the way.
type ChatExchange struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Utterance   string         `gorm:"type:text;not null"`
	Answer      string         `gorm:"type:text;not null"`
	Diagnostics datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
}

func (ChatExchange) TableName() string {
	return "chat_exchanges"
}
