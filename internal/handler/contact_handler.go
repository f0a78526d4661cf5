package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sekolah-go-api/internal/dto"
	"github.com/noah-isme/sekolah-go-api/internal/service"
	"github.com/noah-isme/sekolah-go-api/internal/utils"
)

// ContactHandler handles public contact form submissions.
type ContactHandler struct {
	service service.ContactService
	logger  zerolog.Logger
}

// NewContactHandler constructs a contact handler.
func NewContactHandler(service service.ContactService, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		logger:  logger.With().Str("component", "contact_handler").Logger(),
	}
}

// Register wires the public contact route.
func (h *ContactHandler) Register(router fiber.Router) {
	router.Post("/contact", h.submit)
}

func (h *ContactHandler) submit(c *fiber.Ctx) error {
	var payload dto.ContactSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.service.Submit(c.UserContext(), payload, c.IP()); err != nil {
		switch {
		case errors.Is(err, service.ErrCaptchaFailed):
			return utils.SendError(c, fiber.StatusBadRequest, "captcha verification failed, please try again")
		case errors.Is(err, service.ErrContactDuplicate):
			return utils.SendError(c, fiber.StatusTooManyRequests, "message already received, please wait a few minutes")
		default:
			h.logger.Error().Err(err).Msg("failed to process contact submission")
			return sendServiceError(c, err, "failed to send message")
		}
	}

	return utils.SendSuccess(c, "message sent, thank you for reaching out", nil)
}
