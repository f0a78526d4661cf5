package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sekolah-go-api/internal/dto"
	"github.com/noah-isme/sekolah-go-api/internal/service"
	"github.com/noah-isme/sekolah-go-api/internal/utils"
)

const extracurricularCategory = "extracurricular"

// AdminExtracurricularHandler manages extracurricular activities.
type AdminExtracurricularHandler struct {
	service service.ExtracurricularService
	uploads service.UploadService
	audit   service.AuditService
	logger  zerolog.Logger
}

// NewAdminExtracurricularHandler constructs an activity management handler.
func NewAdminExtracurricularHandler(service service.ExtracurricularService, uploads service.UploadService, audit service.AuditService, logger zerolog.Logger) *AdminExtracurricularHandler {
	return &AdminExtracurricularHandler{
		service: service,
		uploads: uploads,
		audit:   audit,
		logger:  logger.With().Str("component", "admin_extracurricular_handler").Logger(),
	}
}

// Register wires the session-gated activity routes.
func (h *AdminExtracurricularHandler) Register(router fiber.Router) {
	router.Post("/extracurricular", h.create)
	router.Put("/extracurricular/:id", h.update)
	router.Delete("/extracurricular/:id", h.remove)
}

func (h *AdminExtracurricularHandler) create(c *fiber.Ctx) error {
	var payload dto.ExtracurricularRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	image, err := h.saveImage(c)
	if err != nil {
		return h.uploadError(c, err)
	}

	response, err := h.service.Create(c.UserContext(), payload, image)
	if err != nil {
		h.uploads.Remove(c.UserContext(), extracurricularCategory, image)
		return sendServiceError(c, err, "failed to add activity")
	}

	h.audit.Record(c.UserContext(), actorFromContext(c), "Added extracurricular", response.Name, nil)
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "activity added", response)
}

func (h *AdminExtracurricularHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	var payload dto.ExtracurricularRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	image, err := h.saveImage(c)
	if err != nil {
		return h.uploadError(c, err)
	}

	response, err := h.service.Update(c.UserContext(), id, payload, image)
	if err != nil {
		h.uploads.Remove(c.UserContext(), extracurricularCategory, image)
		if errors.Is(err, service.ErrActivityNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "activity not found")
		}
		return sendServiceError(c, err, "failed to update activity")
	}

	h.audit.Record(c.UserContext(), actorFromContext(c), "Updated extracurricular", response.Name, nil)
	return utils.SendSuccess(c, "activity updated", response)
}

func (h *AdminExtracurricularHandler) remove(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	activity, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "activity not found")
		}
		return sendServiceError(c, err, "failed to delete activity")
	}

	h.uploads.Remove(c.UserContext(), extracurricularCategory, activity.Image)
	h.audit.Record(c.UserContext(), actorFromContext(c), "Deleted extracurricular", activity.Name, nil)
	return utils.SendSuccess(c, "activity deleted", nil)
}

func (h *AdminExtracurricularHandler) saveImage(c *fiber.Ctx) (string, error) {
	file := formFile(c, "image")
	if file == nil {
		return "", nil
	}
	return h.uploads.SaveImage(c.UserContext(), extracurricularCategory, file)
}

func (h *AdminExtracurricularHandler) uploadError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrFileTooLarge):
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "image exceeds the maximum allowed size")
	case errors.Is(err, service.ErrFileTypeNotAllowed):
		return utils.SendError(c, fiber.StatusBadRequest, "image file type not allowed")
	default:
		h.logger.Error().Err(err).Msg("activity upload failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to store image")
	}
}
