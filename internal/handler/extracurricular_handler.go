package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sekolah-go-api/internal/service"
	"github.com/noah-isme/sekolah-go-api/internal/utils"
)

// ExtracurricularHandler serves the public activity pages.
type ExtracurricularHandler struct {
	service  service.ExtracurricularService
	pageSize int
	logger   zerolog.Logger
}

// NewExtracurricularHandler constructs an activity handler.
func NewExtracurricularHandler(service service.ExtracurricularService, pageSize int, logger zerolog.Logger) *ExtracurricularHandler {
	return &ExtracurricularHandler{
		service:  service,
		pageSize: pageSize,
		logger:   logger.With().Str("component", "extracurricular_handler").Logger(),
	}
}

// Register wires the public activity routes.
func (h *ExtracurricularHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.detail)
}

func (h *ExtracurricularHandler) list(c *fiber.Ctx) error {
	page, size, err := pageParams(c, h.pageSize)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid pagination parameters")
	}

	response, err := h.service.List(c.UserContext(), c.Query("search"), page, size)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list activities")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load activities")
	}

	return utils.OK(c, response.Items, "", response.Pagination)
}

func (h *ExtracurricularHandler) detail(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	response, err := h.service.Detail(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "activity not found")
		}
		return sendServiceError(c, err, "failed to load activity")
	}
	return utils.SendSuccess(c, "", response)
}
