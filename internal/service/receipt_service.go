package service

import (
	"context"
	"errors"

	"luminous-ledger/internal/models"

	"go.uber.org/zap"
)

var ErrEmptyImage = errors.New("image data is required")

// textGenerator is the slice of LLMService the AI flows consume.
type textGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

type ReceiptService struct {
	llm    textGenerator
	logger *zap.Logger
}

func NewReceiptService(llm textGenerator, logger *zap.Logger) *ReceiptService {
	return &ReceiptService{
		llm:    llm,
		logger: logger,
	}
}

// Scan sends a base64-encoded JPEG to the model with the extraction prompt
// and maps the answer into a ParsedReceipt. Nothing is stored; the result
// prefills the caller's entry form, and any failure leaves the form for
// manual entry.
func (s *ReceiptService) Scan(ctx context.Context, imageBase64 string) (*models.ParsedReceipt, error) {
	if imageBase64 == "" {
		return nil, ErrEmptyImage
	}

	text, err := s.llm.Generate(ctx, GenerateRequest{
		Prompt:      receiptPrompt(),
		ImageBase64: imageBase64,
	})
	if err != nil {
		return nil, err
	}

	receipt, err := ParseReceipt(text)
	if err != nil {
		s.logger.Warn("Failed to parse receipt from model output", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Receipt scanned",
		zap.Float64("amount", receipt.Amount),
		zap.String("category", string(receipt.Category)),
	)
	return receipt, nil
}
