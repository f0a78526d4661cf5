package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sekolah-go-api/internal/middleware"
	"github.com/noah-isme/sekolah-go-api/internal/service"
	"github.com/noah-isme/sekolah-go-api/internal/utils"
)

// NotificationHandler serves the unread badge dropdown and the mark-all-read
// action.
type NotificationHandler struct {
	service service.AuditService
	logger  zerolog.Logger
}

// NewNotificationHandler constructs a notification handler.
func NewNotificationHandler(service service.AuditService, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger.With().Str("component", "notification_handler").Logger(),
	}
}

// Register wires the session-gated notification routes.
func (h *NotificationHandler) Register(router fiber.Router) {
	router.Get("/notifications", h.list)
	router.Post("/notifications/mark-all-read", h.markAllRead)
}

func (h *NotificationHandler) list(c *fiber.Ctx) error {
	views, err := h.service.RecentNotifications(c.UserContext(), middleware.CurrentAdminID(c))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load notifications")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load notifications")
	}
	return utils.SendSuccess(c, "", views)
}

func (h *NotificationHandler) markAllRead(c *fiber.Ctx) error {
	if err := h.service.MarkAllRead(c.UserContext(), middleware.CurrentAdminID(c)); err != nil {
		h.logger.Error().Err(err).Msg("failed to mark notifications read")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to mark notifications read")
	}
	return utils.SendSuccess(c, "all notifications marked read", nil)
}
