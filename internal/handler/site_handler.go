package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sekolah-go-api/internal/service"
	"github.com/noah-isme/sekolah-go-api/internal/utils"
)

// SiteHandler serves the public landing and about pages.
type SiteHandler struct {
	site    service.SiteService
	contact service.ContactService
	logger  zerolog.Logger
}

// NewSiteHandler constructs a site handler.
func NewSiteHandler(site service.SiteService, contact service.ContactService, logger zerolog.Logger) *SiteHandler {
	return &SiteHandler{
		site:    site,
		contact: contact,
		logger:  logger.With().Str("component", "site_handler").Logger(),
	}
}

// Register wires the public site routes.
func (h *SiteHandler) Register(router fiber.Router) {
	router.Get("/home", h.home)
	router.Get("/about", h.about)
	router.Get("/contact-info", h.contactInfo)
	router.Get("/settings", h.settings)
}

func (h *SiteHandler) home(c *fiber.Ctx) error {
	response, err := h.site.Home(c.UserContext(), 3)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load home page data")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load home page")
	}
	return utils.SendSuccess(c, "", response)
}

func (h *SiteHandler) about(c *fiber.Ctx) error {
	response, err := h.site.About(c.UserContext())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load about section")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load about section")
	}
	return utils.SendSuccess(c, "", response)
}

func (h *SiteHandler) contactInfo(c *fiber.Ctx) error {
	response, err := h.contact.Info(c.UserContext())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load contact info")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load contact info")
	}
	return utils.SendSuccess(c, "", response)
}

func (h *SiteHandler) settings(c *fiber.Ctx) error {
	response, err := h.site.Settings(c.UserContext())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load site settings")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load site settings")
	}
	return utils.SendSuccess(c, "", response)
}
