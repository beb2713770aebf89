package service

import (
	"context"
	"testing"

	"luminous-ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubGenerator is a deterministic stand-in for the LLM service, shared
// by the AI-flow tests in this package.
type stubGenerator struct {
	fn    func(ctx context.Context, req GenerateRequest) (string, error)
	calls int
}

func (s *stubGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	s.calls++
	return s.fn(ctx, req)
}

func TestReceiptScan_Success(t *testing.T) {
	llm := &stubGenerator{fn: func(ctx context.Context, req GenerateRequest) (string, error) {
		assert.NotEmpty(t, req.Prompt)
		assert.Equal(t, "aW1hZ2U=", req.ImageBase64)
		return `{"amount":1500,"date":"2024-05-01","store_name":"Super","category":"food","items":"groceries"}`, nil
	}}

	svc := NewReceiptService(llm, zap.NewNop())
	receipt, err := svc.Scan(context.Background(), "aW1hZ2U=")
	require.NoError(t, err)
	assert.Equal(t, 1500.0, receipt.Amount)
	assert.Equal(t, models.CategoryFood, receipt.Category)
}

func TestReceiptScan_Idempotent(t *testing.T) {
	llm := &stubGenerator{fn: func(ctx context.Context, req GenerateRequest) (string, error) {
		return `{"amount":1500,"date":"2024-05-01","store_name":"Super","category":"food","items":"groceries"}`, nil
	}}
	svc := NewReceiptService(llm, zap.NewNop())

	first, err := svc.Scan(context.Background(), "aW1hZ2U=")
	require.NoError(t, err)
	second, err := svc.Scan(context.Background(), "aW1hZ2U=")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, llm.calls)
}

func TestReceiptScan_EmptyImage(t *testing.T) {
	svc := NewReceiptService(&stubGenerator{}, zap.NewNop())
	_, err := svc.Scan(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestReceiptScan_GenerationErrorPropagates(t *testing.T) {
	llm := &stubGenerator{fn: func(ctx context.Context, req GenerateRequest) (string, error) {
		return "", ErrEmptyModelOutput
	}}
	svc := NewReceiptService(llm, zap.NewNop())

	_, err := svc.Scan(context.Background(), "aW1hZ2U=")
	assert.ErrorIs(t, err, ErrEmptyModelOutput)
}

func TestReceiptScan_UnparseableOutput(t *testing.T) {
	llm := &stubGenerator{fn: func(ctx context.Context, req GenerateRequest) (string, error) {
		return "that is not a receipt", nil
	}}
	svc := NewReceiptService(llm, zap.NewNop())

	_, err := svc.Scan(context.Background(), "aW1hZ2U=")
	assert.ErrorIs(t, err, ErrUnparseableModelOutput)
}
