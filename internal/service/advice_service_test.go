package service

import (
	"context"
	"errors"
	"testing"

	"luminous-ledger/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubTransactionLister struct {
	transactions []*models.Transaction
	err          error
}

func (s *stubTransactionLister) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Transaction, error) {
	return s.transactions, s.err
}

func sampleTransactions() []*models.Transaction {
	return []*models.Transaction{
		{Type: models.TypeIncome, Amount: 3000, Category: models.CategorySalary},
		{Type: models.TypeExpense, Amount: -1200, Category: models.CategoryHousing},
		{Type: models.TypeExpense, Amount: -300, Category: models.CategoryFood},
		{Type: models.TypeExpense, Amount: -200, Category: models.CategoryFood},
	}
}

func TestGenerateAdvice_SummaryInPromptAndResponse(t *testing.T) {
	var prompt string
	llm := &stubGenerator{fn: func(ctx context.Context, req GenerateRequest) (string, error) {
		prompt = req.Prompt
		return `{"advice":"cook at home more often"}`, nil
	}}
	txRepo := &stubTransactionLister{transactions: sampleTransactions()}

	svc := NewAdviceService(llm, txRepo, zap.NewNop())
	resp, err := svc.GenerateAdvice(context.Background(), uuid.New(), "balanced_growth")
	require.NoError(t, err)

	assert.Equal(t, "cook at home more often", resp.Advice)
	assert.Equal(t, 3000.0, resp.Summary.TotalIncome)
	assert.Equal(t, 1700.0, resp.Summary.TotalExpenses)
	assert.Equal(t, 1300.0, resp.Summary.Balance)
	assert.Equal(t, 500.0, resp.Summary.ByCategory["food"])

	assert.Contains(t, prompt, "Total income: 3000.00")
	assert.Contains(t, prompt, "food: 500.00")
	assert.Contains(t, prompt, "balanced planner")
}

func TestGenerateAdvice_UnknownMindsetFallsBack(t *testing.T) {
	var prompt string
	llm := &stubGenerator{fn: func(ctx context.Context, req GenerateRequest) (string, error) {
		prompt = req.Prompt
		return `{"advice":"ok"}`, nil
	}}
	txRepo := &stubTransactionLister{transactions: sampleTransactions()}

	svc := NewAdviceService(llm, txRepo, zap.NewNop())
	_, err := svc.GenerateAdvice(context.Background(), uuid.New(), "day_trader")
	require.NoError(t, err)
	assert.Contains(t, prompt, "prudent value investor")
}

func TestGenerateAdvice_ApologyOnModelFailure(t *testing.T) {
	llm := &stubGenerator{fn: func(ctx context.Context, req GenerateRequest) (string, error) {
		return "", ErrEmptyModelOutput
	}}
	txRepo := &stubTransactionLister{transactions: sampleTransactions()}

	svc := NewAdviceService(llm, txRepo, zap.NewNop())
	resp, err := svc.GenerateAdvice(context.Background(), uuid.New(), "conservative_investor")
	require.NoError(t, err)

	assert.Equal(t, apologyMessage, resp.Advice)
	assert.Equal(t, 1700.0, resp.Summary.TotalExpenses)
}

func TestGenerateAdvice_NoTransactions(t *testing.T) {
	svc := NewAdviceService(&stubGenerator{}, &stubTransactionLister{}, zap.NewNop())
	_, err := svc.GenerateAdvice(context.Background(), uuid.New(), "conservative_investor")
	assert.ErrorIs(t, err, ErrNoTransactions)
}

func TestGenerateAdvice_RepositoryError(t *testing.T) {
	repoErr := errors.New("connection reset")
	svc := NewAdviceService(&stubGenerator{}, &stubTransactionLister{err: repoErr}, zap.NewNop())
	_, err := svc.GenerateAdvice(context.Background(), uuid.New(), "conservative_investor")
	assert.ErrorIs(t, err, repoErr)
}
