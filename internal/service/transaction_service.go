package service

import (
	"context"
	"errors"
	"math"
	"time"

	"luminous-ledger/internal/dto"
	"luminous-ledger/internal/models"
	"luminous-ledger/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidType     = errors.New("type must be income or expense")
	ErrInvalidCategory = errors.New("category does not match transaction type")
	ErrInvalidAmount   = errors.New("amount must not be zero")
	ErrInvalidDate     = errors.New("date must be in YYYY-MM-DD format")
)

const dateLayout = "2006-01-02"

type TransactionService struct {
	txRepo *repository.TransactionRepository
	logger *zap.Logger
}

func NewTransactionService(txRepo *repository.TransactionRepository, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		txRepo: txRepo,
		logger: logger,
	}
}

// canonicalAmount derives the stored sign from the type tag, the single
// source of truth for income vs expense: expenses are stored negative,
// incomes positive, whatever sign the caller submitted.
func canonicalAmount(txType models.TransactionType, amount float64) float64 {
	if txType == models.TypeExpense {
		return -math.Abs(amount)
	}
	return math.Abs(amount)
}

func validateTransactionInput(txType, category string, amount float64, date string) (models.TransactionType, models.TransactionCategory, time.Time, error) {
	t := models.TransactionType(txType)
	if t != models.TypeIncome && t != models.TypeExpense {
		return "", "", time.Time{}, ErrInvalidType
	}

	c := models.TransactionCategory(category)
	if !models.ValidCategory(t, c) {
		return "", "", time.Time{}, ErrInvalidCategory
	}

	if amount == 0 {
		return "", "", time.Time{}, ErrInvalidAmount
	}

	parsedDate, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", "", time.Time{}, ErrInvalidDate
	}

	return t, c, parsedDate, nil
}

func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	txType, category, date, err := validateTransactionInput(req.Type, req.Category, req.Amount, req.Date)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tx := &models.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        txType,
		Amount:      canonicalAmount(txType, req.Amount),
		Category:    category,
		Title:       sanitizeUTF8(req.Title),
		Description: sanitizeUTF8(req.Description),
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	s.logger.Info("Transaction created",
		zap.String("id", tx.ID.String()),
		zap.String("type", string(tx.Type)),
		zap.String("category", string(tx.Category)),
	)
	return transactionResponse(tx), nil
}

func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, limit int) ([]dto.TransactionResponse, error) {
	transactions, err := s.txRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	result := make([]dto.TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		result = append(result, *transactionResponse(tx))
	}
	return result, nil
}

func (s *TransactionService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	txType, category, date, err := validateTransactionInput(req.Type, req.Category, req.Amount, req.Date)
	if err != nil {
		return nil, err
	}

	tx, err := s.txRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	tx.Type = txType
	tx.Amount = canonicalAmount(txType, req.Amount)
	tx.Category = category
	tx.Title = sanitizeUTF8(req.Title)
	tx.Description = sanitizeUTF8(req.Description)
	tx.Date = date
	tx.UpdatedAt = time.Now()

	if err := s.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}

	return transactionResponse(tx), nil
}

func (s *TransactionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.txRepo.GetByID(ctx, id, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	return s.txRepo.Delete(ctx, id, userID)
}

func transactionResponse(tx *models.Transaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:          tx.ID.String(),
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		Category:    string(tx.Category),
		Title:       tx.Title,
		Description: tx.Description,
		Date:        tx.Date.Format(dateLayout),
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
	}
}
