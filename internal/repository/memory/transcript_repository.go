package memory

import (
	"context"
	"time"

	"plans-assistant-be/internal/repository/contract"
	"plans-assistant-be/pkg/agent/transcript"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type TranscriptRepository struct {
	cache *cache.Cache
}

var _ contract.TranscriptRepository = &TranscriptRepository{}

// NewTranscriptRepository keeps transcripts in process memory. Entries
// expire after ttl and are purged every 10 minutes.
func NewTranscriptRepository(ttl time.Duration) *TranscriptRepository {
	c := cache.New(ttl, 10*time.Minute)
	return &TranscriptRepository{
		cache: c,
	}
}

func (r *TranscriptRepository) Save(_ context.Context, sessionId uuid.UUID, t transcript.Transcript) error {
	r.cache.Set(sessionId.String(), t, cache.DefaultExpiration)
	return nil
}

func (r *TranscriptRepository) Get(_ context.Context, sessionId uuid.UUID) (transcript.Transcript, bool, error) {
	if x, found := r.cache.Get(sessionId.String()); found {
		return x.(transcript.Transcript), true, nil
	}
	return nil, false, nil
}

func (r *TranscriptRepository) Delete(_ context.Context, sessionId uuid.UUID) error {
	r.cache.Delete(sessionId.String())
	return nil
}
