package middleware

import (
	"context"

	"valor-assist/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const SessionCookieName = "valor.sid"

const (
	localUser   = "user"
	localUserID = "userID"
	localRole   = "role"
)

// Authenticator resolves a session cookie to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, cookie string) (*models.User, error)
}

// Session loads the user behind the session cookie when there is one. Requests
// without a valid session pass through anonymously.
func Session(authenticator Authenticator, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies(SessionCookieName)
		if cookie == "" {
			return c.Next()
		}

		user, err := authenticator.Authenticate(c.UserContext(), cookie)
		if err != nil {
			logger.Debug("Ignoring invalid session cookie", zap.String("ip", c.IP()), zap.Error(err))
			return c.Next()
		}

		c.Locals(localUser, user)
		c.Locals(localUserID, user.ID)
		c.Locals(localRole, string(user.Role))
		return c.Next()
	}
}

func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}
		return c.Next()
	}
}

// RequireRole must run after Session.
func RequireRole(role models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}
		if user.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden",
			})
		}
		return c.Next()
	}
}

func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localUser).(*models.User)
	return user
}

// CurrentUserID is nil for anonymous requests.
func CurrentUserID(c *fiber.Ctx) *int64 {
	id, ok := c.Locals(localUserID).(int64)
	if !ok {
		return nil
	}
	return &id
}
