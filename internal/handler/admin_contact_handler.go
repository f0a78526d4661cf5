package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sekolah-go-api/internal/dto"
	"github.com/noah-isme/sekolah-go-api/internal/service"
	"github.com/noah-isme/sekolah-go-api/internal/utils"
)

// AdminContactHandler manages the contact inbox and the contact page document.
type AdminContactHandler struct {
	service  service.ContactService
	audit    service.AuditService
	pageSize int
	logger   zerolog.Logger
}

// NewAdminContactHandler constructs an inbox handler.
func NewAdminContactHandler(service service.ContactService, audit service.AuditService, pageSize int, logger zerolog.Logger) *AdminContactHandler {
	return &AdminContactHandler{
		service:  service,
		audit:    audit,
		pageSize: pageSize,
		logger:   logger.With().Str("component", "admin_contact_handler").Logger(),
	}
}

// Register wires the session-gated inbox routes.
func (h *AdminContactHandler) Register(router fiber.Router) {
	router.Get("/messages", h.list)
	router.Get("/messages/:id", h.detail)
	router.Delete("/messages/:id", h.remove)
	router.Put("/contact-info", h.updateInfo)
}

func (h *AdminContactHandler) list(c *fiber.Ctx) error {
	page, size, err := pageParams(c, h.pageSize)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid pagination parameters")
	}

	response, err := h.service.List(c.UserContext(), c.Query("search"), page, size)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list inbox")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load inbox")
	}

	return utils.OK(c, response.Items, "", response.Pagination)
}

func (h *AdminContactHandler) detail(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid message id")
	}

	response, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "message not found")
		}
		return sendServiceError(c, err, "failed to load message")
	}
	return utils.SendSuccess(c, "", response)
}

func (h *AdminContactHandler) remove(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid message id")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "message not found")
		}
		return sendServiceError(c, err, "failed to delete message")
	}

	h.audit.Record(c.UserContext(), actorFromContext(c), "Deleted contact message", fmt.Sprintf("message id %d", id), nil)
	return utils.SendSuccess(c, "message deleted", nil)
}

func (h *AdminContactHandler) updateInfo(c *fiber.Ctx) error {
	var payload dto.ContactInfoRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.UpdateInfo(c.UserContext(), payload)
	if err != nil {
		return sendServiceError(c, err, "failed to update contact info")
	}

	h.audit.Record(c.UserContext(), actorFromContext(c), "Updated contact info", "", nil)
	return utils.SendSuccess(c, "contact info updated", response)
}
