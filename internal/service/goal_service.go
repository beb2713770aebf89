package service

import (
	"context"
	"errors"
	"time"

	"luminous-ledger/internal/dto"
	"luminous-ledger/internal/models"
	"luminous-ledger/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var (
	ErrEmptyGoalTitle    = errors.New("goal title must not be empty")
	ErrInvalidGoalTarget = errors.New("target amount must be positive")
)

type GoalService struct {
	goalRepo *repository.GoalRepository
	logger   *zap.Logger
}

func NewGoalService(goalRepo *repository.GoalRepository, logger *zap.Logger) *GoalService {
	return &GoalService{
		goalRepo: goalRepo,
		logger:   logger,
	}
}

func (s *GoalService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateGoalRequest) (*dto.GoalResponse, error) {
	if req.Title == "" {
		return nil, ErrEmptyGoalTitle
	}
	if req.TargetAmount <= 0 {
		return nil, ErrInvalidGoalTarget
	}

	targetDate, err := time.Parse(dateLayout, req.TargetDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	now := time.Now()
	goal := &models.SavingsGoal{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         sanitizeUTF8(req.Title),
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		TargetDate:    targetDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}

	s.logger.Info("Savings goal created", zap.String("id", goal.ID.String()))
	return goalResponse(goal), nil
}

func (s *GoalService) List(ctx context.Context, userID uuid.UUID) ([]dto.GoalResponse, error) {
	goals, err := s.goalRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.GoalResponse, 0, len(goals))
	for _, goal := range goals {
		result = append(result, *goalResponse(goal))
	}
	return result, nil
}

func (s *GoalService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateGoalRequest) (*dto.GoalResponse, error) {
	if req.Title == "" {
		return nil, ErrEmptyGoalTitle
	}
	if req.TargetAmount <= 0 {
		return nil, ErrInvalidGoalTarget
	}

	targetDate, err := time.Parse(dateLayout, req.TargetDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	goal, err := s.goalRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	goal.Title = sanitizeUTF8(req.Title)
	goal.TargetAmount = req.TargetAmount
	goal.CurrentAmount = req.CurrentAmount
	goal.TargetDate = targetDate
	goal.UpdatedAt = time.Now()

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, err
	}

	return goalResponse(goal), nil
}

func (s *GoalService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.goalRepo.GetByID(ctx, id, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	return s.goalRepo.Delete(ctx, id, userID)
}

func goalResponse(goal *models.SavingsGoal) *dto.GoalResponse {
	progress := 0.0
	if goal.TargetAmount > 0 {
		progress = goal.CurrentAmount / goal.TargetAmount
		if progress > 1 {
			progress = 1
		}
	}

	return &dto.GoalResponse{
		ID:            goal.ID.String(),
		Title:         goal.Title,
		TargetAmount:  goal.TargetAmount,
		CurrentAmount: goal.CurrentAmount,
		TargetDate:    goal.TargetDate.Format(dateLayout),
		Progress:      progress,
		CreatedAt:     goal.CreatedAt.Format(time.RFC3339),
	}
}
