// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"plans-assistant-be/internal/dto"
	"plans-assistant-be/internal/model"
	"plans-assistant-be/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the exchange topic and writes each resolved turn
// to the database, keeping persistence latency off the request path.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	exchanges contract.ChatExchangeRepository
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	exchanges contract.ChatExchangeRepository,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		exchanges: exchanges,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishChatExchangeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	exchange := &model.ChatExchange{
		Id:          uuid.New(),
		SessionId:   payload.SessionId,
		Utterance:   payload.Utterance,
		Answer:      payload.Answer,
		Diagnostics: datatypes.JSON(payload.Diagnostics),
	}

	if err := cs.exchanges.Create(ctx, exchange); err != nil {
		log.Printf("[ERROR] Failed to persist exchange for session %s: %v", payload.SessionId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	log.Printf("[INFO] Exchange persisted for session %s", payload.SessionId)
	msg.Ack()
}
