package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sekolah-go-api/internal/dto"
	"github.com/noah-isme/sekolah-go-api/internal/service"
	"github.com/noah-isme/sekolah-go-api/internal/utils"
)

// ArticleHandler serves the public news feed, article pages and comments.
type ArticleHandler struct {
	service  service.ArticleService
	pageSize int
	logger   zerolog.Logger
}

// NewArticleHandler constructs an article handler.
func NewArticleHandler(service service.ArticleService, pageSize int, logger zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		service:  service,
		pageSize: pageSize,
		logger:   logger.With().Str("component", "article_handler").Logger(),
	}
}

// Register wires the public article routes.
func (h *ArticleHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.detail)
	router.Post("/:id/comments", h.comment)
}

func (h *ArticleHandler) list(c *fiber.Ctx) error {
	page, size, err := pageParams(c, h.pageSize)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid pagination parameters")
	}

	response, err := h.service.List(c.UserContext(), c.Query("search"), c.Query("category"), page, size)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list articles")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load articles")
	}

	return utils.SendSuccess(c, "", response)
}

func (h *ArticleHandler) detail(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid article id")
	}

	response, err := h.service.Detail(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "article not found")
		}
		return sendServiceError(c, err, "failed to load article")
	}
	return utils.SendSuccess(c, "", response)
}

func (h *ArticleHandler) comment(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid article id")
	}

	var payload dto.CommentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.AddComment(c.UserContext(), id, payload)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "article not found")
		}
		return sendServiceError(c, err, "failed to post comment")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "comment posted", response)
}
