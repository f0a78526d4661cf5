package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sekolah-go-api/internal/service"
	"github.com/noah-isme/sekolah-go-api/internal/utils"
)

const defaultAuditLimit = 25

// AuditHandler serves the admin activity log page.
type AuditHandler struct {
	service service.AuditService
	logger  zerolog.Logger
}

// NewAuditHandler constructs an audit log handler.
func NewAuditHandler(service service.AuditService, logger zerolog.Logger) *AuditHandler {
	return &AuditHandler{
		service: service,
		logger:  logger.With().Str("component", "audit_handler").Logger(),
	}
}

// Register wires the session-gated audit log route.
func (h *AuditHandler) Register(router fiber.Router) {
	router.Get("/logs", h.list)
}

// list accepts ?limit=N or ?limit=all; anything unparseable falls back to the
// default.
func (h *AuditHandler) list(c *fiber.Ctx) error {
	limit := defaultAuditLimit
	switch raw := strings.ToLower(strings.TrimSpace(c.Query("limit"))); {
	case raw == "all":
		limit = 0
	case raw != "":
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := h.service.List(c.UserContext(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list audit logs")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load activity log")
	}

	return utils.SendSuccess(c, "", entries)
}
