package api

import (
	"luminous-ledger/internal/api/handlers"
	"luminous-ledger/pkg/auth"
	"luminous-ledger/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	aiHandler *handlers.AIHandler,
	txHandler *handlers.TransactionHandler,
	goalHandler *handlers.GoalHandler,
	projectHandler *handlers.ProjectHandler,
	dashboardHandler *handlers.DashboardHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		// Receipt photos arrive base64-encoded in JSON bodies.
		BodyLimit: 10 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	protected.Post("/analyze", aiHandler.Analyze)
	protected.Post("/receipts/scan", aiHandler.ScanReceipt)
	protected.Post("/advice", aiHandler.GenerateAdvice)

	chat := protected.Group("/chat")
	chat.Post("", aiHandler.SendChat)
	chat.Get("", aiHandler.GetChat)
	chat.Delete("", aiHandler.ResetChat)

	transactions := protected.Group("/transactions")
	transactions.Post("", txHandler.Create)
	transactions.Get("", txHandler.List)
	transactions.Put("/:id", txHandler.Update)
	transactions.Delete("/:id", txHandler.Delete)

	goals := protected.Group("/goals")
	goals.Post("", goalHandler.Create)
	goals.Get("", goalHandler.List)
	goals.Put("/:id", goalHandler.Update)
	goals.Delete("/:id", goalHandler.Delete)

	projects := protected.Group("/projects")
	projects.Post("", projectHandler.Create)
	projects.Get("", projectHandler.List)
	projects.Get("/:id", projectHandler.Get)
	projects.Put("/:id", projectHandler.Update)
	projects.Delete("/:id", projectHandler.Delete)
	projects.Post("/:id/workflow", projectHandler.GenerateWorkflow)
	projects.Post("/:id/tasks/:taskID/toggle", projectHandler.ToggleTask)

	protected.Get("/dashboard/summary", dashboardHandler.Summary)

	return app
}
