package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sekolah-go-api/internal/service"
	"github.com/noah-isme/sekolah-go-api/internal/utils"
)

// MaterialsHandler serves the public e-learning pages.
type MaterialsHandler struct {
	service service.MaterialsService
	logger  zerolog.Logger
}

// NewMaterialsHandler constructs a materials handler.
func NewMaterialsHandler(service service.MaterialsService, logger zerolog.Logger) *MaterialsHandler {
	return &MaterialsHandler{
		service: service,
		logger:  logger.With().Str("component", "materials_handler").Logger(),
	}
}

// Register wires the public e-learning routes.
func (h *MaterialsHandler) Register(router fiber.Router) {
	router.Get("/classes", h.listClasses)
	router.Get("/classes/:id/subjects", h.listSubjects)
	router.Get("/subjects/:id/materials", h.listMaterials)
	router.Get("/materials/:id", h.materialDetail)
}

func (h *MaterialsHandler) listClasses(c *fiber.Ctx) error {
	response, err := h.service.ListClasses(c.UserContext())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list classes")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load classes")
	}
	return utils.SendSuccess(c, "", response)
}

func (h *MaterialsHandler) listSubjects(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid class id")
	}

	response, err := h.service.ListSubjects(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "class not found")
		}
		return sendServiceError(c, err, "failed to load subjects")
	}
	return utils.SendSuccess(c, "", response)
}

func (h *MaterialsHandler) listMaterials(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid subject id")
	}

	response, err := h.service.ListMaterials(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "subject not found")
		}
		return sendServiceError(c, err, "failed to load materials")
	}
	return utils.SendSuccess(c, "", response)
}

func (h *MaterialsHandler) materialDetail(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid material id")
	}

	response, err := h.service.MaterialDetail(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrMaterialNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "material not found")
		}
		return sendServiceError(c, err, "failed to load material")
	}
	return utils.SendSuccess(c, "", response)
}
