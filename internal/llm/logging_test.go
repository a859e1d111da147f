package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/certprep/internal/logger"
	"github.com/abhisek/certprep/internal/store"
)

// memEvents is an in-memory store.EventRepo.
type memEvents struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (m *memEvents) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, data)
	return nil
}

func (m *memEvents) QueryLLMEvents(context.Context, store.QueryOpts) ([]store.LLMRequestEvent, error) {
	return nil, nil
}

func (m *memEvents) GetLLMEvent(context.Context, int64) (*store.LLMRequestEvent, error) {
	return nil, nil
}

func (m *memEvents) LLMUsageByPurpose(context.Context) ([]store.LLMPurposeUsage, error) {
	return nil, nil
}

func (m *memEvents) LLMUsageByModel(context.Context) ([]store.LLMModelUsage, error) {
	return nil, nil
}

func (m *memEvents) appended() []store.LLMRequestEventData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]store.LLMRequestEventData(nil), m.events...)
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	events := &memEvents{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"question_text":"q","question_type":"true_false","correct_answer":"True"}`),
		Usage:   Usage{InputTokens: 120, OutputTokens: 40},
	})
	p := WithLogging(mock, ProviderMock, events, nil)

	ctx := WithPurpose(context.Background(), PurposeQuizGeneration)
	_, err := p.Generate(ctx, UserPrompt("You write AWS exam items.", "One question on S3.", answerSchema(), 512))
	require.NoError(t, err)

	got := events.appended()
	require.Len(t, got, 1)
	ev := got[0]
	assert.Equal(t, ProviderMock, ev.Provider)
	assert.Equal(t, "mock", ev.Model)
	assert.Equal(t, PurposeQuizGeneration, ev.Purpose)
	assert.True(t, ev.Success)
	assert.Equal(t, 120, ev.InputTokens)
	assert.Equal(t, 40, ev.OutputTokens)
	assert.Contains(t, ev.RequestBody, "[system]\nYou write AWS exam items.")
	assert.Contains(t, ev.RequestBody, "[user]\nOne question on S3.")
	assert.Contains(t, ev.RequestBody, "[schema: test-answer]")
	assert.Contains(t, ev.ResponseBody, `"correct_answer":"True"`)
	assert.Empty(t, ev.ErrorMessage)
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	events := &memEvents{}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	p := WithLogging(mock, ProviderMock, events, nil)

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)

	got := events.appended()
	require.Len(t, got, 1)
	assert.False(t, got[0].Success)
	assert.Equal(t, PurposeUnknown, got[0].Purpose)
	assert.Contains(t, got[0].ErrorMessage, "down")
	assert.Empty(t, got[0].ResponseBody)
}

func TestLoggingProvider_AuditFailureDoesNotFailCall(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	events := &memEvents{err: errors.New("disk full")}
	mock := NewMockProvider(MockJSON(map[string]any{"ok": true}))
	p := WithLogging(mock, ProviderMock, events, logger.FromZap(zap.New(core)))

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Content))

	entries := logs.FilterMessage("recording llm request event failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "disk full", entries[0].ContextMap()["error"])
}
