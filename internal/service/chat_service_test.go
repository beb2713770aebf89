package service

import (
	"context"
	"sync"
	"testing"

	"luminous-ledger/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestChatSend_AppendOnlyOrdering(t *testing.T) {
	llm := &stubGenerator{fn: func(ctx context.Context, req GenerateRequest) (string, error) {
		return `{"reply":"hello there"}`, nil
	}}
	svc := NewChatService(llm, zap.NewNop())
	userID := uuid.New()

	messages, err := svc.Send(context.Background(), userID, "hi")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, models.RoleUser, messages[0].Role)
	assert.Equal(t, "hi", messages[0].Content)
	assert.Equal(t, models.RoleAssistant, messages[1].Role)
	assert.Equal(t, "hello there", messages[1].Content)

	messages, err = svc.Send(context.Background(), userID, "how do I save more?")
	require.NoError(t, err)
	require.Len(t, messages, 4)
	assert.Equal(t, "hi", messages[0].Content)
	assert.Equal(t, "how do I save more?", messages[2].Content)
}

func TestChatSend_TranscriptInPrompt(t *testing.T) {
	var prompt string
	llm := &stubGenerator{fn: func(ctx context.Context, req GenerateRequest) (string, error) {
		prompt = req.Prompt
		return `{"reply":"sure"}`, nil
	}}
	svc := NewChatService(llm, zap.NewNop())
	userID := uuid.New()

	_, err := svc.Send(context.Background(), userID, "first question")
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), userID, "second question")
	require.NoError(t, err)

	assert.Contains(t, prompt, "User: first question")
	assert.Contains(t, prompt, "Assistant: sure")
	assert.Contains(t, prompt, "User: second question")
}

func TestChatSend_ApologyOnModelFailure(t *testing.T) {
	llm := &stubGenerator{fn: func(ctx context.Context, req GenerateRequest) (string, error) {
		return "", ErrEmptyModelOutput
	}}
	svc := NewChatService(llm, zap.NewNop())

	messages, err := svc.Send(context.Background(), uuid.New(), "hi")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, apologyMessage, messages[1].Content)
}

func TestChatSend_SingleFlightGuard(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	llm := &stubGenerator{fn: func(ctx context.Context, req GenerateRequest) (string, error) {
		close(started)
		<-release
		return `{"reply":"done"}`, nil
	}}
	svc := NewChatService(llm, zap.NewNop())
	userID := uuid.New()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := svc.Send(context.Background(), userID, "slow one")
		assert.NoError(t, err)
	}()

	<-started
	_, err := svc.Send(context.Background(), userID, "too eager")
	assert.ErrorIs(t, err, ErrChatBusy)

	close(release)
	wg.Wait()

	// Only the first send made it into the transcript.
	history := svc.History(userID)
	require.Len(t, history, 2)
	assert.Equal(t, "slow one", history[0].Content)
}

func TestChatSend_GuardIsPerUser(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	first := true
	var mu sync.Mutex
	llm := &stubGenerator{fn: func(ctx context.Context, req GenerateRequest) (string, error) {
		mu.Lock()
		slow := first
		first = false
		mu.Unlock()
		if slow {
			close(started)
			<-release
		}
		return `{"reply":"ok"}`, nil
	}}
	svc := NewChatService(llm, zap.NewNop())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := svc.Send(context.Background(), uuid.New(), "slow user")
		assert.NoError(t, err)
	}()

	<-started
	_, err := svc.Send(context.Background(), uuid.New(), "other user")
	assert.NoError(t, err)

	close(release)
	wg.Wait()
}

func TestChatSend_EmptyMessage(t *testing.T) {
	svc := NewChatService(&stubGenerator{}, zap.NewNop())
	_, err := svc.Send(context.Background(), uuid.New(), "")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestChatReset(t *testing.T) {
	llm := &stubGenerator{fn: func(ctx context.Context, req GenerateRequest) (string, error) {
		return `{"reply":"ok"}`, nil
	}}
	svc := NewChatService(llm, zap.NewNop())
	userID := uuid.New()

	_, err := svc.Send(context.Background(), userID, "hi")
	require.NoError(t, err)
	require.NotEmpty(t, svc.History(userID))

	svc.Reset(userID)
	assert.Empty(t, svc.History(userID))
}

func TestChatHistory_ReturnsCopy(t *testing.T) {
	llm := &stubGenerator{fn: func(ctx context.Context, req GenerateRequest) (string, error) {
		return `{"reply":"ok"}`, nil
	}}
	svc := NewChatService(llm, zap.NewNop())
	userID := uuid.New()

	_, err := svc.Send(context.Background(), userID, "hi")
	require.NoError(t, err)

	history := svc.History(userID)
	history[0].Content = "tampered"
	assert.Equal(t, "hi", svc.History(userID)[0].Content)
}
