package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"luminous-ledger/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrChatBusy is the single-flight guard: a second send for the same
	// user while one is in flight is rejected instead of interleaving.
	ErrChatBusy = errors.New("a chat request is already in flight")

	ErrEmptyMessage = errors.New("message must not be empty")
)

// chatSession is one user's append-only transcript. Transcripts live in
// process memory only and do not survive a restart.
type chatSession struct {
	mu       sync.Mutex
	busy     bool
	messages []models.ChatMessage
}

type ChatService struct {
	llm    textGenerator
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*chatSession
}

func NewChatService(llm textGenerator, logger *zap.Logger) *ChatService {
	return &ChatService{
		llm:      llm,
		logger:   logger,
		sessions: make(map[uuid.UUID]*chatSession),
	}
}

func (s *ChatService) session(userID uuid.UUID) *chatSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		session = &chatSession{}
		s.sessions[userID] = session
	}
	return session
}

// Send appends the user's message, asks the model for a reply over the
// running transcript, and appends the reply. If the model call fails the
// apology message is appended instead; the transcript stays append-only
// either way.
func (s *ChatService) Send(ctx context.Context, userID uuid.UUID, message string) ([]models.ChatMessage, error) {
	if message == "" {
		return nil, ErrEmptyMessage
	}

	session := s.session(userID)

	session.mu.Lock()
	if session.busy {
		session.mu.Unlock()
		return nil, ErrChatBusy
	}
	session.busy = true
	session.messages = append(session.messages, models.ChatMessage{
		Role:      models.RoleUser,
		Content:   message,
		CreatedAt: time.Now(),
	})
	transcript := make([]models.ChatMessage, len(session.messages))
	copy(transcript, session.messages)
	session.mu.Unlock()

	reply := apologyMessage
	text, err := s.llm.Generate(ctx, GenerateRequest{Prompt: chatPrompt(transcript)})
	if err != nil {
		s.logger.Warn("Chat generation failed", zap.Error(err), zap.String("user_id", userID.String()))
	} else {
		reply = extractField(text, "reply")
	}

	session.mu.Lock()
	session.messages = append(session.messages, models.ChatMessage{
		Role:      models.RoleAssistant,
		Content:   reply,
		CreatedAt: time.Now(),
	})
	result := make([]models.ChatMessage, len(session.messages))
	copy(result, session.messages)
	session.busy = false
	session.mu.Unlock()

	return result, nil
}

// History returns a copy of the user's transcript in order.
func (s *ChatService) History(userID uuid.UUID) []models.ChatMessage {
	session := s.session(userID)

	session.mu.Lock()
	defer session.mu.Unlock()

	result := make([]models.ChatMessage, len(session.messages))
	copy(result, session.messages)
	return result
}

// Reset drops the user's transcript.
func (s *ChatService) Reset(userID uuid.UUID) {
	session := s.session(userID)

	session.mu.Lock()
	defer session.mu.Unlock()

	session.messages = nil
}
