package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sekolah-go-api/internal/dto"
	"github.com/noah-isme/sekolah-go-api/internal/middleware"
	"github.com/noah-isme/sekolah-go-api/internal/service"
	"github.com/noah-isme/sekolah-go-api/internal/utils"
)

// AuthHandler handles admin login, logout and password reset requests.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires the public auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.login)
	router.Post("/forgot-password", h.forgotPassword)
}

// RegisterSession wires routes that need an active session.
func (h *AuthHandler) RegisterSession(router fiber.Router) {
	router.Post("/logout", h.logout)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, ttl, err := h.service.Login(c.UserContext(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return utils.SendError(c, fiber.StatusUnauthorized, "incorrect username or password")
		case errors.Is(err, service.ErrAccountBlocked):
			return utils.SendError(c, fiber.StatusForbidden, "your account has been blocked, please contact the administrator")
		default:
			return sendServiceError(c, err, "failed to process login")
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    response.Token,
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})

	return utils.SendSuccess(c, "login successful", response)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	h.service.Logout(c.UserContext(), actorFromContext(c))

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})

	return utils.SendRedirect(c, fiber.StatusOK, "logged out", "/login")
}

func (h *AuthHandler) forgotPassword(c *fiber.Ctx) error {
	var payload dto.ForgotPasswordRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	message, err := h.service.ForgotPassword(c.UserContext(), payload)
	if err != nil {
		if errors.Is(err, service.ErrUsernameNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "username not found")
		}
		return sendServiceError(c, err, "failed to process reset request")
	}

	return utils.SendSuccess(c, message, nil)
}
