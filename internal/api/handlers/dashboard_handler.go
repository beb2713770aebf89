package handlers

import (
	"luminous-ledger/internal/service"
	"luminous-ledger/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	statsService *service.StatsService
	logger       *zap.Logger
}

func NewDashboardHandler(statsService *service.StatsService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		statsService: statsService,
		logger:       logger,
	}
}

// Summary returns income/expense totals, the category breakdown, the
// monthly series and the most recent activity for the dashboard.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	session, ok := middleware.SessionFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authorization required",
		})
	}

	resp, err := h.statsService.Dashboard(c.Context(), session.UserID)
	if err != nil {
		h.logger.Error("Dashboard summary failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load dashboard",
		})
	}

	return c.JSON(resp)
}
