package service

import (
	"context"
	"errors"

	"luminous-ledger/internal/dto"
	"luminous-ledger/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNoTransactions = errors.New("no transactions to analyze")

// apologyMessage stands in for advice whenever the model call fails; the
// summary page still renders instead of erroring out.
const apologyMessage = "The AI advisor has stepped away for a moment. Please try again later."

type transactionLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Transaction, error)
}

type AdviceService struct {
	llm    textGenerator
	txRepo transactionLister
	logger *zap.Logger
}

func NewAdviceService(llm textGenerator, txRepo transactionLister, logger *zap.Logger) *AdviceService {
	return &AdviceService{
		llm:    llm,
		txRepo: txRepo,
		logger: logger,
	}
}

// GenerateAdvice aggregates the user's transactions into a summary, asks
// the model for advice on it, and degrades to a fixed apology message if
// the model call fails.
func (s *AdviceService) GenerateAdvice(ctx context.Context, userID uuid.UUID, mindset string) (*dto.AdviceResponse, error) {
	transactions, err := s.txRepo.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, ErrNoTransactions
	}

	summary := summarizeTransactions(transactions)

	text, err := s.llm.Generate(ctx, GenerateRequest{
		Prompt: advicePrompt(summary, mindset),
	})
	if err != nil {
		s.logger.Warn("Advice generation failed, using fallback message", zap.Error(err))
		return &dto.AdviceResponse{Advice: apologyMessage, Summary: summary}, nil
	}

	return &dto.AdviceResponse{
		Advice:  extractField(text, "advice"),
		Summary: summary,
	}, nil
}
