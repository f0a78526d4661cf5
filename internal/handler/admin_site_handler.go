package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sekolah-go-api/internal/dto"
	"github.com/noah-isme/sekolah-go-api/internal/service"
	"github.com/noah-isme/sekolah-go-api/internal/utils"
)

const (
	aboutCategory    = "about"
	settingsCategory = "settings"
)

// AdminSiteHandler manages the about section and site settings.
type AdminSiteHandler struct {
	service service.SiteService
	uploads service.UploadService
	audit   service.AuditService
	logger  zerolog.Logger
}

// NewAdminSiteHandler constructs a site content management handler.
func NewAdminSiteHandler(service service.SiteService, uploads service.UploadService, audit service.AuditService, logger zerolog.Logger) *AdminSiteHandler {
	return &AdminSiteHandler{
		service: service,
		uploads: uploads,
		audit:   audit,
		logger:  logger.With().Str("component", "admin_site_handler").Logger(),
	}
}

// Register wires the session-gated site content routes.
func (h *AdminSiteHandler) Register(router fiber.Router) {
	router.Put("/about", h.updateAbout)
	router.Put("/settings", h.updateSettings)
}

func (h *AdminSiteHandler) updateAbout(c *fiber.Ctx) error {
	var payload dto.AboutRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	// The admin form posts vision/mission as newline-separated textareas.
	if len(payload.Vision) == 0 {
		payload.Vision = splitLines(c.FormValue("vision"))
	}
	if len(payload.Mission) == 0 {
		payload.Mission = splitLines(c.FormValue("mission"))
	}

	var image string
	if file := formFile(c, "description_image"); file != nil {
		saved, err := h.uploads.SaveImage(c.UserContext(), aboutCategory, file)
		if err != nil {
			return h.uploadError(c, err)
		}
		image = saved
	}

	response, err := h.service.UpdateAbout(c.UserContext(), payload, image)
	if err != nil {
		h.uploads.Remove(c.UserContext(), aboutCategory, image)
		return sendServiceError(c, err, "failed to update about section")
	}

	h.audit.Record(c.UserContext(), actorFromContext(c), "Updated About section", "", nil)
	return utils.SendSuccess(c, "about section updated", response)
}

func (h *AdminSiteHandler) updateSettings(c *fiber.Ctx) error {
	var payload dto.SettingsRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	var logo, headerImage, headmasterPhoto string
	var err error

	if logo, err = h.saveOptional(c, "logo"); err != nil {
		return h.uploadError(c, err)
	}
	if headerImage, err = h.saveOptional(c, "header_image"); err != nil {
		return h.uploadError(c, err)
	}
	if headmasterPhoto, err = h.saveOptional(c, "headmaster_photo"); err != nil {
		return h.uploadError(c, err)
	}

	response, err := h.service.UpdateSettings(c.UserContext(), payload, logo, headerImage, headmasterPhoto)
	if err != nil {
		h.uploads.Remove(c.UserContext(), settingsCategory, logo)
		h.uploads.Remove(c.UserContext(), settingsCategory, headerImage)
		h.uploads.Remove(c.UserContext(), settingsCategory, headmasterPhoto)
		return sendServiceError(c, err, "failed to update site settings")
	}

	h.audit.Record(c.UserContext(), actorFromContext(c), "Updated school settings", "", nil)
	return utils.SendSuccess(c, "site settings updated", response)
}

func (h *AdminSiteHandler) saveOptional(c *fiber.Ctx, field string) (string, error) {
	file := formFile(c, field)
	if file == nil {
		return "", nil
	}
	return h.uploads.SaveImage(c.UserContext(), settingsCategory, file)
}

func (h *AdminSiteHandler) uploadError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrFileTooLarge):
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "image exceeds the maximum allowed size")
	case errors.Is(err, service.ErrFileTypeNotAllowed):
		return utils.SendError(c, fiber.StatusBadRequest, "image file type not allowed")
	default:
		h.logger.Error().Err(err).Msg("site image upload failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to store image")
	}
}

func splitLines(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	lines := strings.Split(strings.ReplaceAll(value, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
