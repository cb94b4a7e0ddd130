// FILE: internal/service/chat_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"plans-assistant-be/internal/dto"
	"plans-assistant-be/internal/pkg/logger"
	"plans-assistant-be/internal/repository/contract"
	agentEvents "plans-assistant-be/pkg/agent/events"
	"plans-assistant-be/pkg/agent/pipeline"
	"plans-assistant-be/pkg/agent/transcript"

	"github.com/google/uuid"
)

type IChatService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetTranscript(ctx context.Context, sessionId uuid.UUID) ([]dto.ChatTurnResponse, error)
	GetExchanges(ctx context.Context, sessionId uuid.UUID, limit, offset int) ([]dto.ChatExchangeResponse, error)
	DeleteSession(ctx context.Context, sessionId uuid.UUID) error
}

type chatService struct {
	pipeline    *pipeline.Pipeline
	transcripts contract.TranscriptRepository
	exchanges   contract.ChatExchangeRepository
	publisher   IPublisherService
	events      agentEvents.Publisher
	logger      logger.ILogger
}

func NewChatService(
	p *pipeline.Pipeline,
	transcripts contract.TranscriptRepository,
	exchanges contract.ChatExchangeRepository,
	publisher IPublisherService,
	events agentEvents.Publisher,
	sysLogger logger.ILogger,
) IChatService {
	return &chatService{
		pipeline:    p,
		transcripts: transcripts,
		exchanges:   exchanges,
		publisher:   publisher,
		events:      events,
		logger:      sysLogger,
	}
}

func (s *chatService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	id := uuid.New()
	if err := s.transcripts.Save(ctx, id, transcript.Transcript{}); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("CHAT", "Session created", map[string]interface{}{"session_id": id})
	return &dto.CreateSessionResponse{Id: id}, nil
}

// SendChat resolves one utterance against the stored transcript. An unknown
// session id starts a fresh transcript rather than failing, so clients may
// supply their own ids.
func (s *chatService) SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	t, found, err := s.transcripts.Get(ctx, req.SessionId)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}
	if !found {
		t = transcript.Transcript{}
	}

	res, err := s.pipeline.Resolve(ctx, req.Message, t)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve chat: %w", err)
	}

	if err := s.transcripts.Save(ctx, req.SessionId, res.Transcript); err != nil {
		return nil, fmt.Errorf("failed to save transcript: %w", err)
	}

	diagnostics, err := json.Marshal(res.Diagnostics)
	if err != nil {
		s.logger.Warn("CHAT", "Failed to marshal diagnostics", map[string]interface{}{"error": err.Error()})
		diagnostics = nil
	}

	// Persistence happens asynchronously via the consumer. A publish failure
	// is logged but never fails the turn the user already got an answer for.
	msg := dto.PublishChatExchangeMessage{
		SessionId:   req.SessionId,
		Utterance:   req.Message,
		Answer:      res.Answer,
		Diagnostics: diagnostics,
	}
	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.logger.Error("CHAT", "Failed to publish chat exchange", map[string]interface{}{
			"session_id": req.SessionId,
			"error":      err.Error(),
		})
	}

	s.events.PublishChatResolved(ctx, req.SessionId, req.Message, res.Answer)

	return &dto.SendChatResponse{
		SessionId:   req.SessionId,
		Answer:      res.Answer,
		Diagnostics: diagnostics,
	}, nil
}

func (s *chatService) GetTranscript(ctx context.Context, sessionId uuid.UUID) ([]dto.ChatTurnResponse, error) {
	t, found, err := s.transcripts.Get(ctx, sessionId)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}
	if !found {
		return []dto.ChatTurnResponse{}, nil
	}

	turns := make([]dto.ChatTurnResponse, 0, len(t))
	for _, turn := range t {
		turns = append(turns, dto.ChatTurnResponse{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}
	return turns, nil
}

func (s *chatService) GetExchanges(ctx context.Context, sessionId uuid.UUID, limit, offset int) ([]dto.ChatExchangeResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	records, err := s.exchanges.FindBySessionId(ctx, sessionId, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to load exchanges: %w", err)
	}

	out := make([]dto.ChatExchangeResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, dto.ChatExchangeResponse{
			Id:          rec.Id,
			SessionId:   rec.SessionId,
			Utterance:   rec.Utterance,
			Answer:      rec.Answer,
			Diagnostics: json.RawMessage(rec.Diagnostics),
			CreatedAt:   rec.CreatedAt,
		})
	}
	return out, nil
}

func (s *chatService) DeleteSession(ctx context.Context, sessionId uuid.UUID) error {
	if err := s.transcripts.Delete(ctx, sessionId); err != nil {
		return fmt.Errorf("failed to delete transcript: %w", err)
	}
	if err := s.exchanges.DeleteBySessionId(ctx, sessionId); err != nil {
		return fmt.Errorf("failed to delete exchanges: %w", err)
	}

	s.events.PublishSessionDeleted(ctx, sessionId)
	return nil
}
