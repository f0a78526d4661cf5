package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sekolah-go-api/internal/dto"
	"github.com/noah-isme/sekolah-go-api/internal/service"
	"github.com/noah-isme/sekolah-go-api/internal/utils"
)

const galleryCategory = "gallery"

// AdminGalleryHandler manages gallery uploads.
type AdminGalleryHandler struct {
	service service.GalleryService
	uploads service.UploadService
	audit   service.AuditService
	logger  zerolog.Logger
}

// NewAdminGalleryHandler constructs a gallery management handler.
func NewAdminGalleryHandler(service service.GalleryService, uploads service.UploadService, audit service.AuditService, logger zerolog.Logger) *AdminGalleryHandler {
	return &AdminGalleryHandler{
		service: service,
		uploads: uploads,
		audit:   audit,
		logger:  logger.With().Str("component", "admin_gallery_handler").Logger(),
	}
}

// Register wires the session-gated gallery routes.
func (h *AdminGalleryHandler) Register(router fiber.Router) {
	router.Post("/gallery", h.create)
	router.Put("/gallery/:id", h.update)
	router.Delete("/gallery/:id", h.remove)
}

func (h *AdminGalleryHandler) create(c *fiber.Ctx) error {
	var payload dto.GalleryRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	file := formFile(c, "image")
	if file == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "image file is required")
	}

	fileName, err := h.uploads.SaveImage(c.UserContext(), galleryCategory, file)
	if err != nil {
		return h.uploadError(c, err)
	}

	response, err := h.service.Create(c.UserContext(), payload, fileName)
	if err != nil {
		h.uploads.Remove(c.UserContext(), galleryCategory, fileName)
		return sendServiceError(c, err, "failed to add gallery image")
	}

	h.audit.Record(c.UserContext(), actorFromContext(c), "Added gallery image", response.Title, nil)
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "gallery image added", response)
}

func (h *AdminGalleryHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid image id")
	}

	var payload dto.GalleryRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	var fileName string
	if file := formFile(c, "image"); file != nil {
		fileName, err = h.uploads.SaveImage(c.UserContext(), galleryCategory, file)
		if err != nil {
			return h.uploadError(c, err)
		}
	}

	response, err := h.service.Update(c.UserContext(), id, payload, fileName)
	if err != nil {
		h.uploads.Remove(c.UserContext(), galleryCategory, fileName)
		if errors.Is(err, service.ErrGalleryImageNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "gallery image not found")
		}
		return sendServiceError(c, err, "failed to update gallery image")
	}

	h.audit.Record(c.UserContext(), actorFromContext(c), "Updated gallery image", response.Title, nil)
	return utils.SendSuccess(c, "gallery image updated", response)
}

func (h *AdminGalleryHandler) remove(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid image id")
	}

	image, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrGalleryImageNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "gallery image not found")
		}
		return sendServiceError(c, err, "failed to delete gallery image")
	}

	h.uploads.Remove(c.UserContext(), galleryCategory, image.FileName)
	h.audit.Record(c.UserContext(), actorFromContext(c), "Deleted gallery image", image.Title, nil)
	return utils.SendSuccess(c, "gallery image deleted", nil)
}

func (h *AdminGalleryHandler) uploadError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrFileTooLarge):
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "image exceeds the maximum allowed size")
	case errors.Is(err, service.ErrFileTypeNotAllowed):
		return utils.SendError(c, fiber.StatusBadRequest, "image file type not allowed")
	default:
		h.logger.Error().Err(err).Msg("gallery upload failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to store image")
	}
}
