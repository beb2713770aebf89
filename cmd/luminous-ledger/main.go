package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"luminous-ledger/internal/api"
	"luminous-ledger/internal/api/handlers"
	"luminous-ledger/internal/repository"
	"luminous-ledger/internal/service"
	"luminous-ledger/pkg/auth"
	"luminous-ledger/pkg/config"
	"luminous-ledger/pkg/logger"
	"luminous-ledger/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Luminous Ledger service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	goalRepo := repository.NewGoalRepository(db, appLogger)
	projectRepo := repository.NewProjectRepository(db, appLogger)

	// JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	llmService := service.NewLLMService(&cfg.Gemini, appLogger)
	receiptService := service.NewReceiptService(llmService, appLogger)
	adviceService := service.NewAdviceService(llmService, txRepo, appLogger)
	chatService := service.NewChatService(llmService, appLogger)
	txService := service.NewTransactionService(txRepo, appLogger)
	goalService := service.NewGoalService(goalRepo, appLogger)
	projectService := service.NewProjectService(projectRepo, llmService, appLogger)
	statsService := service.NewStatsService(txRepo, goalRepo, appLogger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	aiHandler := handlers.NewAIHandler(llmService, receiptService, adviceService, chatService, appLogger)
	txHandler := handlers.NewTransactionHandler(txService, appLogger)
	goalHandler := handlers.NewGoalHandler(goalService, appLogger)
	projectHandler := handlers.NewProjectHandler(projectService, appLogger)
	dashboardHandler := handlers.NewDashboardHandler(statsService, appLogger)

	app := api.SetupRouter(authHandler, aiHandler, txHandler, goalHandler, projectHandler, dashboardHandler, jwtManager, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
