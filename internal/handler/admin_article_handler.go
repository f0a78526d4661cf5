package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sekolah-go-api/internal/dto"
	"github.com/noah-isme/sekolah-go-api/internal/middleware"
	"github.com/noah-isme/sekolah-go-api/internal/service"
	"github.com/noah-isme/sekolah-go-api/internal/utils"
)

const (
	articleImageCategory      = "articles"
	articleAttachmentCategory = "attachments"
)

// AdminArticleHandler manages publications.
type AdminArticleHandler struct {
	service service.ArticleService
	uploads service.UploadService
	audit   service.AuditService
	logger  zerolog.Logger
}

// NewAdminArticleHandler constructs a publication management handler.
func NewAdminArticleHandler(service service.ArticleService, uploads service.UploadService, audit service.AuditService, logger zerolog.Logger) *AdminArticleHandler {
	return &AdminArticleHandler{
		service: service,
		uploads: uploads,
		audit:   audit,
		logger:  logger.With().Str("component", "admin_article_handler").Logger(),
	}
}

// Register wires the session-gated publication routes.
func (h *AdminArticleHandler) Register(router fiber.Router) {
	router.Post("/articles", h.create)
	router.Put("/articles/:id", h.update)
	router.Delete("/articles/:id", h.remove)
}

func (h *AdminArticleHandler) create(c *fiber.Ctx) error {
	var payload dto.ArticleRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	featureImage, attachment, err := h.saveFiles(c)
	if err != nil {
		return h.uploadError(c, err)
	}

	author := middleware.CurrentAdminUsername(c)
	response, err := h.service.Create(c.UserContext(), payload, author, featureImage, attachment)
	if err != nil {
		h.uploads.Remove(c.UserContext(), articleImageCategory, featureImage)
		h.uploads.Remove(c.UserContext(), articleAttachmentCategory, attachment)
		return sendServiceError(c, err, "failed to publish article")
	}

	h.audit.Record(c.UserContext(), actorFromContext(c), "Published article", response.Title, map[string]any{"category": response.Category})
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "article published", response)
}

func (h *AdminArticleHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid article id")
	}

	var payload dto.ArticleRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	featureImage, attachment, err := h.saveFiles(c)
	if err != nil {
		return h.uploadError(c, err)
	}

	response, err := h.service.Update(c.UserContext(), id, payload, featureImage, attachment)
	if err != nil {
		h.uploads.Remove(c.UserContext(), articleImageCategory, featureImage)
		h.uploads.Remove(c.UserContext(), articleAttachmentCategory, attachment)
		if errors.Is(err, service.ErrArticleNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "article not found")
		}
		return sendServiceError(c, err, "failed to update article")
	}

	h.audit.Record(c.UserContext(), actorFromContext(c), "Updated article", response.Title, nil)
	return utils.SendSuccess(c, "article updated", response)
}

func (h *AdminArticleHandler) remove(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid article id")
	}

	article, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "article not found")
		}
		return sendServiceError(c, err, "failed to delete article")
	}

	h.uploads.Remove(c.UserContext(), articleImageCategory, article.FeatureImage)
	h.uploads.Remove(c.UserContext(), articleAttachmentCategory, article.Attachment)
	h.audit.Record(c.UserContext(), actorFromContext(c), "Deleted article", article.Title, nil)
	return utils.SendSuccess(c, "article deleted", nil)
}

func (h *AdminArticleHandler) saveFiles(c *fiber.Ctx) (string, string, error) {
	var featureImage, attachment string

	if file := formFile(c, "feature_image"); file != nil {
		saved, err := h.uploads.SaveImage(c.UserContext(), articleImageCategory, file)
		if err != nil {
			return "", "", err
		}
		featureImage = saved
	}

	if file := formFile(c, "attachment"); file != nil {
		saved, err := h.uploads.SaveDocument(c.UserContext(), articleAttachmentCategory, file)
		if err != nil {
			h.uploads.Remove(c.UserContext(), articleImageCategory, featureImage)
			return "", "", err
		}
		attachment = saved
	}

	return featureImage, attachment, nil
}

func (h *AdminArticleHandler) uploadError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrFileTooLarge):
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "file exceeds the maximum allowed size")
	case errors.Is(err, service.ErrFileTypeNotAllowed):
		return utils.SendError(c, fiber.StatusBadRequest, "file type not allowed")
	default:
		h.logger.Error().Err(err).Msg("article upload failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to store file")
	}
}
