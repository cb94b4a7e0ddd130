package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type SendChatRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Message   string    `json:"message" validate:"required"`
}

type SendChatResponse struct {
	SessionId   uuid.UUID       `json:"session_id"`
	Answer      string          `json:"answer"`
	Diagnostics json.RawMessage `json:"diagnostics,omitempty"`
}

type ChatTurnResponse struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatExchangeResponse struct {
	Id          uuid.UUID       `json:"id"`
	SessionId   uuid.UUID       `json:"session_id"`
	Utterance   string          `json:"utterance"`
	Answer      string          `json:"answer"`
	Diagnostics json.RawMessage `json:"diagnostics,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PublishChatExchangeMessage is the payload carried on the internal event
// bus from the chat service to the persistence consumer.
type PublishChatExchangeMessage struct {
	SessionId   uuid.UUID       `json:"session_id"`
	Utterance   string          `json:"utterance"`
	Answer      string          `json:"answer"`
	Diagnostics json.RawMessage `json:"diagnostics"`
}

type DeleteSessionRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
}
