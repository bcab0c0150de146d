package handlers

import (
	"errors"
	"time"

	"valor-assist/internal/dto"
	"valor-assist/internal/service"
	"valor-assist/pkg/middleware"
	"valor-assist/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService  *service.AuthService
	validator    *validator.Validator
	secureCookie bool
	logger       *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, v *validator.Validator, secureCookie bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		validator:    v,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, session *service.Session) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Cookie,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Register godoc
// @Summary Register a new user
// @Description Create an account and start a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration request"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]string
// @Router /api/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	user, session, err := h.authService.Register(c.UserContext(), &req, c.IP())
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			return errorResponse(c, fiber.StatusConflict, "Username or email already exists")
		}
		h.logger.Error("Registration failed", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Registration failed")
	}

	h.setSessionCookie(c, session)
	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{User: service.ToUserResponse(user)})
}

// Login godoc
// @Summary Login user
// @Description Login with username and password; sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} map[string]string
// @Router /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	user, session, err := h.authService.Login(c.UserContext(), &req, c.IP())
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return errorResponse(c, fiber.StatusUnauthorized, "Invalid username or password")
		}
		h.logger.Error("Login failed", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Login failed")
	}

	h.setSessionCookie(c, session)
	return c.JSON(dto.AuthResponse{User: service.ToUserResponse(user)})
}

// Logout godoc
// @Summary Logout
// @Description Delete the current session and clear the cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), c.Cookies(middleware.SessionCookieName), c.IP()); err != nil {
		h.logger.Error("Logout failed", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Logout failed")
	}

	c.ClearCookie(middleware.SessionCookieName)
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// CurrentUser godoc
// @Summary Current user
// @Description Return the user behind the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} map[string]string
// @Router /api/user [get]
func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return errorResponse(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	return c.JSON(dto.AuthResponse{User: service.ToUserResponse(user)})
}
