package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sekolah-go-api/internal/service"
	"github.com/noah-isme/sekolah-go-api/internal/utils"
)

// DashboardHandler serves the admin landing page data.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register wires the session-gated dashboard route.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/dashboard", h.overview)
}

func (h *DashboardHandler) overview(c *fiber.Ctx) error {
	response, err := h.service.Overview(c.UserContext())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load dashboard")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load dashboard")
	}
	return utils.SendSuccess(c, "", response)
}
