package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sekolah-go-api/internal/service"
	"github.com/noah-isme/sekolah-go-api/internal/utils"
)

// GalleryHandler serves the merged public gallery.
type GalleryHandler struct {
	service  service.GalleryService
	pageSize int
	logger   zerolog.Logger
}

// NewGalleryHandler constructs a gallery handler.
func NewGalleryHandler(service service.GalleryService, pageSize int, logger zerolog.Logger) *GalleryHandler {
	return &GalleryHandler{
		service:  service,
		pageSize: pageSize,
		logger:   logger.With().Str("component", "gallery_handler").Logger(),
	}
}

// Register wires the public gallery route.
func (h *GalleryHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *GalleryHandler) list(c *fiber.Ctx) error {
	page, size, err := pageParams(c, h.pageSize)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid pagination parameters")
	}

	response, err := h.service.List(c.UserContext(), c.Query("search"), page, size)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list gallery")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load gallery")
	}

	return utils.OK(c, response.Items, "", response.Pagination)
}
