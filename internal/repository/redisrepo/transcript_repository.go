package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"plans-assistant-be/internal/repository/contract"
	"plans-assistant-be/pkg/agent/transcript"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type TranscriptRepository struct {
	client *redis.Client
	ttl    time.Duration
}

var _ contract.TranscriptRepository = &TranscriptRepository{}

// NewTranscriptRepository stores transcripts as JSON in Redis so sessions
// survive process restarts and can be shared between replicas.
func NewTranscriptRepository(client *redis.Client, ttl time.Duration) *TranscriptRepository {
	return &TranscriptRepository{
		client: client,
		ttl:    ttl,
	}
}

func transcriptKey(sessionId uuid.UUID) string {
	return fmt.Sprintf("transcript:%s", sessionId)
}

func (r *TranscriptRepository) Save(ctx context.Context, sessionId uuid.UUID, t transcript.Transcript) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}
	return r.client.Set(ctx, transcriptKey(sessionId), data, r.ttl).Err()
}

func (r *TranscriptRepository) Get(ctx context.Context, sessionId uuid.UUID) (transcript.Transcript, bool, error) {
	data, err := r.client.Get(ctx, transcriptKey(sessionId)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var t transcript.Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal transcript: %w", err)
	}
	return t, true, nil
}

func (r *TranscriptRepository) Delete(ctx context.Context, sessionId uuid.UUID) error {
	return r.client.Del(ctx, transcriptKey(sessionId)).Err()
}
