package middleware

import (
	"strings"

	"luminous-ledger/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionKey = "session"

// Session carries the authenticated identity for a single request. It is
// resolved once by the auth middleware and passed explicitly to anything
// that needs it; there is no process-wide current user.
type Session struct {
	UserID   uuid.UUID
	Username string
	Email    string
}

func AuthMiddleware(jwtManager *auth.JWTManager, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("Authorization")
		if token == "" {
			logger.Warn("Missing authorization token")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization token required",
			})
		}

		token = strings.TrimPrefix(token, "Bearer ")

		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			logger.Warn("Invalid token", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			logger.Warn("Malformed user id in token", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals(sessionKey, Session{
			UserID:   userID,
			Username: claims.Username,
			Email:    claims.Email,
		})

		return c.Next()
	}
}

// SessionFromCtx returns the session stored by AuthMiddleware.
func SessionFromCtx(c *fiber.Ctx) (Session, bool) {
	s, ok := c.Locals(sessionKey).(Session)
	return s, ok
}
