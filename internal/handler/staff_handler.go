package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sekolah-go-api/internal/service"
	"github.com/noah-isme/sekolah-go-api/internal/utils"
)

// StaffHandler serves the public staff directory.
type StaffHandler struct {
	service  service.StaffService
	pageSize int
	logger   zerolog.Logger
}

// NewStaffHandler constructs a staff handler.
func NewStaffHandler(service service.StaffService, pageSize int, logger zerolog.Logger) *StaffHandler {
	return &StaffHandler{
		service:  service,
		pageSize: pageSize,
		logger:   logger.With().Str("component", "staff_handler").Logger(),
	}
}

// Register wires the public staff routes.
func (h *StaffHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:teacherID", h.detail)
}

func (h *StaffHandler) list(c *fiber.Ctx) error {
	page, size, err := pageParams(c, h.pageSize)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid pagination parameters")
	}

	response, err := h.service.List(c.UserContext(), c.Query("search"), page, size)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list staff")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load staff directory")
	}

	return utils.OK(c, response.Items, "", response.Pagination)
}

func (h *StaffHandler) detail(c *fiber.Ctx) error {
	response, err := h.service.Get(c.UserContext(), c.Params("teacherID"))
	if err != nil {
		if errors.Is(err, service.ErrTeacherNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "teacher not found")
		}
		return sendServiceError(c, err, "failed to load teacher")
	}
	return utils.SendSuccess(c, "", response)
}
