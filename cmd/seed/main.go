package main

import (
	"context"
	"log"
	"time"

	"luminous-ledger/internal/models"
	"luminous-ledger/internal/repository"
	"luminous-ledger/pkg/auth"
	"luminous-ledger/pkg/config"
	"luminous-ledger/pkg/logger"
	"luminous-ledger/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	demoEmail    = "demo@luminous.ledger"
	demoPassword = "demo-password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	goalRepo := repository.NewGoalRepository(db, appLogger)

	appLogger.Info("Starting database seeding...")

	user, err := seedDemoUser(ctx, userRepo)
	if err != nil {
		appLogger.Fatal("Failed to seed demo user", zap.Error(err))
	}

	if err := seedTransactions(ctx, txRepo, user.ID); err != nil {
		appLogger.Fatal("Failed to seed transactions", zap.Error(err))
	}

	if err := seedGoals(ctx, goalRepo, user.ID); err != nil {
		appLogger.Fatal("Failed to seed goals", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!",
		zap.String("email", demoEmail),
	)
}

func seedDemoUser(ctx context.Context, userRepo *repository.UserRepository) (*models.User, error) {
	if existing, err := userRepo.GetByEmail(ctx, demoEmail); err == nil {
		return existing, nil
	}

	hashed, err := auth.HashPassword(demoPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New(),
		Username:  "demo",
		Email:     demoEmail,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func seedTransactions(ctx context.Context, txRepo *repository.TransactionRepository, userID uuid.UUID) error {
	now := time.Now()
	samples := []struct {
		txType   models.TransactionType
		amount   float64
		category models.TransactionCategory
		title    string
		daysAgo  int
	}{
		{models.TypeIncome, 320000, models.CategorySalary, "Monthly salary", 25},
		{models.TypeIncome, 12000, models.CategoryInvestment, "Dividend payout", 14},
		{models.TypeExpense, -64000, models.CategoryHousing, "Rent", 24},
		{models.TypeExpense, -18500, models.CategoryFood, "Groceries", 9},
		{models.TypeExpense, -5200, models.CategoryTransportation, "Commuter pass", 20},
		{models.TypeExpense, -7800, models.CategoryEntertainment, "Cinema and dinner", 6},
		{models.TypeExpense, -9400, models.CategoryUtilities, "Electricity and water", 12},
		{models.TypeExpense, -3200, models.CategoryShopping, "Household goods", 3},
	}

	for _, sample := range samples {
		tx := &models.Transaction{
			ID:        uuid.New(),
			UserID:    userID,
			Type:      sample.txType,
			Amount:    sample.amount,
			Category:  sample.category,
			Title:     sample.title,
			Date:      now.AddDate(0, 0, -sample.daysAgo),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := txRepo.Create(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}

func seedGoals(ctx context.Context, goalRepo *repository.GoalRepository, userID uuid.UUID) error {
	now := time.Now()
	samples := []struct {
		title   string
		target  float64
		current float64
		months  int
	}{
		{"Emergency fund", 1000000, 250000, 12},
		{"Summer travel", 300000, 120000, 6},
	}

	for _, sample := range samples {
		goal := &models.SavingsGoal{
			ID:            uuid.New(),
			UserID:        userID,
			Title:         sample.title,
			TargetAmount:  sample.target,
			CurrentAmount: sample.current,
			TargetDate:    now.AddDate(0, sample.months, 0),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := goalRepo.Create(ctx, goal); err != nil {
			return err
		}
	}
	return nil
}
