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

const materialCategory = "materials"

// AdminMaterialsHandler manages the e-learning hierarchy.
type AdminMaterialsHandler struct {
	service service.MaterialsService
	uploads service.UploadService
	audit   service.AuditService
	logger  zerolog.Logger
}

// NewAdminMaterialsHandler constructs an e-learning management handler.
func NewAdminMaterialsHandler(service service.MaterialsService, uploads service.UploadService, audit service.AuditService, logger zerolog.Logger) *AdminMaterialsHandler {
	return &AdminMaterialsHandler{
		service: service,
		uploads: uploads,
		audit:   audit,
		logger:  logger.With().Str("component", "admin_materials_handler").Logger(),
	}
}

// Register wires the session-gated e-learning routes.
func (h *AdminMaterialsHandler) Register(router fiber.Router) {
	router.Post("/classes", h.createClass)
	router.Put("/classes/:id", h.updateClass)
	router.Delete("/classes/:id", h.removeClass)

	router.Post("/subjects", h.createSubject)
	router.Put("/subjects/:id", h.updateSubject)
	router.Delete("/subjects/:id", h.removeSubject)

	router.Post("/materials", h.createMaterial)
	router.Put("/materials/:id", h.updateMaterial)
	router.Delete("/materials/:id", h.removeMaterial)
}

func (h *AdminMaterialsHandler) createClass(c *fiber.Ctx) error {
	var payload dto.ClassGroupRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.CreateClass(c.UserContext(), payload)
	if err != nil {
		return sendServiceError(c, err, "failed to add class")
	}

	h.audit.Record(c.UserContext(), actorFromContext(c), "Added class", response.Title, nil)
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "class added", response)
}

func (h *AdminMaterialsHandler) updateClass(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid class id")
	}

	var payload dto.ClassGroupRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.UpdateClass(c.UserContext(), id, payload)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "class not found")
		}
		return sendServiceError(c, err, "failed to update class")
	}

	h.audit.Record(c.UserContext(), actorFromContext(c), "Edited class", response.Title, nil)
	return utils.SendSuccess(c, "class updated", response)
}

func (h *AdminMaterialsHandler) removeClass(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid class id")
	}

	class, err := h.service.DeleteClass(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "class not found")
		}
		return sendServiceError(c, err, "failed to delete class")
	}

	h.audit.Record(c.UserContext(), actorFromContext(c), "Deleted class", class.Title, nil)
	return utils.SendSuccess(c, "class deleted with its subjects and materials", nil)
}

func (h *AdminMaterialsHandler) createSubject(c *fiber.Ctx) error {
	var payload dto.SubjectRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.CreateSubject(c.UserContext(), payload)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "class not found")
		}
		return sendServiceError(c, err, "failed to add subject")
	}

	h.audit.Record(c.UserContext(), actorFromContext(c), "Added subject", response.Title, nil)
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "subject added", response)
}

func (h *AdminMaterialsHandler) updateSubject(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid subject id")
	}

	var payload dto.SubjectRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.UpdateSubject(c.UserContext(), id, payload)
	if err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "subject not found")
		}
		return sendServiceError(c, err, "failed to update subject")
	}

	h.audit.Record(c.UserContext(), actorFromContext(c), "Edited subject", response.Title, nil)
	return utils.SendSuccess(c, "subject updated", response)
}

func (h *AdminMaterialsHandler) removeSubject(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid subject id")
	}

	subject, err := h.service.DeleteSubject(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "subject not found")
		}
		return sendServiceError(c, err, "failed to delete subject")
	}

	h.audit.Record(c.UserContext(), actorFromContext(c), "Deleted subject", subject.Title, nil)
	return utils.SendSuccess(c, "subject deleted with its materials", nil)
}

func (h *AdminMaterialsHandler) createMaterial(c *fiber.Ctx) error {
	var payload dto.MaterialRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	var fileName string
	if file := formFile(c, "file"); file != nil {
		saved, err := h.uploads.SaveDocument(c.UserContext(), materialCategory, file)
		if err != nil {
			return h.uploadError(c, err)
		}
		fileName = saved
	}

	response, err := h.service.CreateMaterial(c.UserContext(), payload, fileName)
	if err != nil {
		h.uploads.Remove(c.UserContext(), materialCategory, fileName)
		if errors.Is(err, service.ErrSubjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "subject not found")
		}
		return sendServiceError(c, err, "failed to add material")
	}

	h.audit.Record(c.UserContext(), actorFromContext(c), "Added material", response.Title, map[string]any{"subject_id": fmt.Sprint(response.SubjectID)})
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "material added", response)
}

func (h *AdminMaterialsHandler) updateMaterial(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid material id")
	}

	var payload dto.MaterialRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	var fileName string
	if file := formFile(c, "file"); file != nil {
		saved, err := h.uploads.SaveDocument(c.UserContext(), materialCategory, file)
		if err != nil {
			return h.uploadError(c, err)
		}
		fileName = saved
	}

	response, err := h.service.UpdateMaterial(c.UserContext(), id, payload, fileName)
	if err != nil {
		h.uploads.Remove(c.UserContext(), materialCategory, fileName)
		if errors.Is(err, service.ErrMaterialNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "material not found")
		}
		return sendServiceError(c, err, "failed to update material")
	}

	h.audit.Record(c.UserContext(), actorFromContext(c), "Edited material", response.Title, nil)
	return utils.SendSuccess(c, "material updated", response)
}

func (h *AdminMaterialsHandler) removeMaterial(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid material id")
	}

	material, err := h.service.DeleteMaterial(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrMaterialNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "material not found")
		}
		return sendServiceError(c, err, "failed to delete material")
	}

	h.uploads.Remove(c.UserContext(), materialCategory, material.FileName)
	h.audit.Record(c.UserContext(), actorFromContext(c), "Deleted material", material.Title, nil)
	return utils.SendSuccess(c, "material deleted", nil)
}

func (h *AdminMaterialsHandler) uploadError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrFileTooLarge):
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "file exceeds the maximum allowed size")
	case errors.Is(err, service.ErrFileTypeNotAllowed):
		return utils.SendError(c, fiber.StatusBadRequest, "file type not allowed")
	default:
		h.logger.Error().Err(err).Msg("material upload failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to store file")
	}
}
