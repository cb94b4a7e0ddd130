package service

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"testing"
	"time"

	"plans-assistant-be/internal/dto"
	"plans-assistant-be/internal/model"
	"plans-assistant-be/internal/repository/memory"
	agentEvents "plans-assistant-be/pkg/agent/events"
	"plans-assistant-be/pkg/agent/pipeline"
	"plans-assistant-be/pkg/catalog"
	"plans-assistant-be/pkg/llm"
	"plans-assistant-be/pkg/querystore"

	"github.com/google/uuid"
)

type scriptedProvider struct {
	responses []string
	calls     int
}

func (p *scriptedProvider) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	if p.calls >= len(p.responses) {
		return "", io.EOF
	}
	out := p.responses[p.calls]
	p.calls++
	return out, nil
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, nil, options...)
}

type stubStore struct {
	result *querystore.Result
}

func (s *stubStore) Execute(_ context.Context, _ string) *querystore.Result {
	return s.result
}

type stubCatalog struct{}

func (c *stubCatalog) Request(_ context.Context, _ string, _ string) catalog.Response {
	return catalog.Response{Data: map[string]any{"plans": []any{"5G Infinite"}}}
}

type recordingPublisher struct {
	payloads []interface{}
}

func (r *recordingPublisher) Publish(_ context.Context, payload interface{}) error {
	r.payloads = append(r.payloads, payload)
	return nil
}

type recordingEvents struct {
	resolved []uuid.UUID
	deleted  []uuid.UUID
}

var _ agentEvents.Publisher = &recordingEvents{}

func (r *recordingEvents) PublishChatResolved(_ context.Context, sessionId uuid.UUID, _, _ string) {
	r.resolved = append(r.resolved, sessionId)
}

func (r *recordingEvents) PublishSessionDeleted(_ context.Context, sessionId uuid.UUID) {
	r.deleted = append(r.deleted, sessionId)
}

type fakeExchangeRepo struct {
	created []*model.ChatExchange
}

func (f *fakeExchangeRepo) Create(_ context.Context, exchange *model.ChatExchange) error {
	f.created = append(f.created, exchange)
	return nil
}

func (f *fakeExchangeRepo) FindBySessionId(_ context.Context, sessionId uuid.UUID, _, _ int) ([]model.ChatExchange, error) {
	var out []model.ChatExchange
	for _, ex := range f.created {
		if ex.SessionId == sessionId {
			out = append(out, *ex)
		}
	}
	return out, nil
}

func (f *fakeExchangeRepo) DeleteBySessionId(_ context.Context, sessionId uuid.UUID) error {
	var kept []*model.ChatExchange
	for _, ex := range f.created {
		if ex.SessionId != sessionId {
			kept = append(kept, ex)
		}
	}
	f.created = kept
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestChatService(provider *scriptedProvider) (IChatService, *recordingPublisher, *recordingEvents) {
	store := &stubStore{result: &querystore.Result{
		Success:  true,
		Rows:     []map[string]any{{"category": "Business Mobile"}},
		RowCount: 1,
		Message:  "Query executed successfully. Returned 1 rows.",
	}}
	p := pipeline.New(provider, store, &stubCatalog{}, log.New(io.Discard, "", 0))

	publisher := &recordingPublisher{}
	events := &recordingEvents{}
	svc := NewChatService(
		p,
		memory.NewTranscriptRepository(time.Hour),
		&fakeExchangeRepo{},
		publisher,
		events,
		nopLogger{},
	)
	return svc, publisher, events
}

func TestSendChatResolvesAndPersistsTranscript(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"SELECT DISTINCT Category FROM plans WHERE Category LIKE '%Mobile%'",
		"We offer Business Mobile plans.",
		"SELECT DISTINCT Category FROM plans WHERE Category LIKE '%Mobile%'",
		"As mentioned, Business Mobile plans.",
	}}
	svc, publisher, events := newTestChatService(provider)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	res, err := svc.SendChat(ctx, &dto.SendChatRequest{
		SessionId: session.Id,
		Message:   "I need mobile plans",
	})
	if err != nil {
		t.Fatalf("SendChat: %v", err)
	}
	if res.Answer != "We offer Business Mobile plans." {
		t.Errorf("answer = %q", res.Answer)
	}
	if len(res.Diagnostics) == 0 {
		t.Error("expected diagnostics payload")
	}

	// Transcript now holds the completed exchange.
	turns, err := svc.GetTranscript(ctx, session.Id)
	if err != nil {
		t.Fatalf("GetTranscript: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("transcript length = %d, want 2", len(turns))
	}

	// Second turn grows the transcript to two exchanges.
	if _, err := svc.SendChat(ctx, &dto.SendChatRequest{
		SessionId: session.Id,
		Message:   "tell me more",
	}); err != nil {
		t.Fatalf("second SendChat: %v", err)
	}
	turns, _ = svc.GetTranscript(ctx, session.Id)
	if len(turns) != 4 {
		t.Errorf("transcript length = %d, want 4", len(turns))
	}

	// Each resolved turn was handed to the persistence bus and the event mirror.
	if len(publisher.payloads) != 2 {
		t.Errorf("published payloads = %d, want 2", len(publisher.payloads))
	}
	msg, ok := publisher.payloads[0].(dto.PublishChatExchangeMessage)
	if !ok {
		t.Fatalf("payload type = %T", publisher.payloads[0])
	}
	if msg.SessionId != session.Id || msg.Utterance != "I need mobile plans" {
		t.Errorf("published message = %+v", msg)
	}
	var diag map[string]json.RawMessage
	if err := json.Unmarshal(msg.Diagnostics, &diag); err != nil {
		t.Fatalf("diagnostics not valid JSON: %v", err)
	}
	if len(events.resolved) != 2 {
		t.Errorf("resolved events = %d, want 2", len(events.resolved))
	}
}

func TestSendChatUnknownSessionStartsFresh(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"SELECT Plans FROM plans WHERE Plans LIKE '%5G%'",
		"The 5G Infinite plan fits.",
	}}
	svc, _, _ := newTestChatService(provider)

	res, err := svc.SendChat(context.Background(), &dto.SendChatRequest{
		SessionId: uuid.New(),
		Message:   "I need 5G plans",
	})
	if err != nil {
		t.Fatalf("SendChat: %v", err)
	}
	if res.Answer == "" {
		t.Error("expected an answer for an unknown session")
	}
}

func TestDeleteSessionClearsState(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"SELECT DISTINCT Category FROM plans WHERE Category LIKE '%Mobile%'",
		"We offer Business Mobile plans.",
	}}
	svc, _, events := newTestChatService(provider)
	ctx := context.Background()

	session, _ := svc.CreateSession(ctx)
	if _, err := svc.SendChat(ctx, &dto.SendChatRequest{SessionId: session.Id, Message: "mobile plans"}); err != nil {
		t.Fatalf("SendChat: %v", err)
	}

	if err := svc.DeleteSession(ctx, session.Id); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}

	turns, err := svc.GetTranscript(ctx, session.Id)
	if err != nil {
		t.Fatalf("GetTranscript: %v", err)
	}
	if len(turns) != 0 {
		t.Errorf("transcript after delete = %d turns", len(turns))
	}
	if len(events.deleted) != 1 || events.deleted[0] != session.Id {
		t.Errorf("deleted events = %v", events.deleted)
	}
}
