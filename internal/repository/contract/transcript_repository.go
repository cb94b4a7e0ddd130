package contract

import (
	"context"

	"plans-assistant-be/pkg/agent/transcript"

	"github.com/google/uuid"
)

// TranscriptRepository keeps the running transcript of a session between
// turns. Backed by an in-process cache or Redis depending on configuration.
type TranscriptRepository interface {
	Save(ctx context.Context, sessionId uuid.UUID, t transcript.Transcript) error
	Get(ctx context.Context, sessionId uuid.UUID) (transcript.Transcript, bool, error)
	Delete(ctx context.Context, sessionId uuid.UUID) error
}
