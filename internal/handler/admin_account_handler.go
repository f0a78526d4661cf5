package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sekolah-go-api/internal/dto"
	"github.com/noah-isme/sekolah-go-api/internal/service"
	"github.com/noah-isme/sekolah-go-api/internal/utils"
)

// AdminAccountHandler manages administrator accounts. The whole group is
// superadmin-gated by the router.
type AdminAccountHandler struct {
	service  service.AdminAccountService
	uploads  service.UploadService
	audit    service.AuditService
	pageSize int
	logger   zerolog.Logger
}

// NewAdminAccountHandler constructs an account management handler.
func NewAdminAccountHandler(service service.AdminAccountService, uploads service.UploadService, audit service.AuditService, pageSize int, logger zerolog.Logger) *AdminAccountHandler {
	return &AdminAccountHandler{
		service:  service,
		uploads:  uploads,
		audit:    audit,
		pageSize: pageSize,
		logger:   logger.With().Str("component", "admin_account_handler").Logger(),
	}
}

// Register wires the superadmin-gated account routes.
func (h *AdminAccountHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Post("/:id/block", h.block)
	router.Post("/:id/unblock", h.unblock)
	router.Post("/:id/reset-password", h.resetPassword)
	router.Delete("/:id", h.remove)
}

func (h *AdminAccountHandler) list(c *fiber.Ctx) error {
	page, size, err := pageParams(c, h.pageSize)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid pagination parameters")
	}

	response, err := h.service.List(c.UserContext(), c.Query("search"), page, size)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list admins")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load admin accounts")
	}

	return utils.OK(c, response.Items, "", response.Pagination)
}

func (h *AdminAccountHandler) create(c *fiber.Ctx) error {
	var payload dto.AdminCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	var avatar string
	if file := formFile(c, "avatar"); file != nil {
		saved, err := h.uploads.SaveImage(c.UserContext(), avatarCategory, file)
		if err != nil {
			return h.uploadError(c, err)
		}
		avatar = saved
	}

	response, err := h.service.Create(c.UserContext(), payload, avatar)
	if err != nil {
		h.uploads.Remove(c.UserContext(), avatarCategory, avatar)
		if errors.Is(err, service.ErrUsernameTaken) {
			return utils.SendError(c, fiber.StatusConflict, "username already registered")
		}
		return sendServiceError(c, err, "failed to create admin account")
	}

	h.audit.Record(c.UserContext(), actorFromContext(c), "Created admin account", response.Username, nil)
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "admin account created", response)
}

func (h *AdminAccountHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid admin id")
	}

	var payload dto.AdminUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	var avatar string
	if file := formFile(c, "avatar"); file != nil {
		saved, err := h.uploads.SaveImage(c.UserContext(), avatarCategory, file)
		if err != nil {
			return h.uploadError(c, err)
		}
		avatar = saved
	}

	response, err := h.service.Update(c.UserContext(), id, payload, avatar)
	if err != nil {
		h.uploads.Remove(c.UserContext(), avatarCategory, avatar)
		if errors.Is(err, service.ErrAdminNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "admin not found")
		}
		return sendServiceError(c, err, "failed to update admin account")
	}

	h.audit.Record(c.UserContext(), actorFromContext(c), "Updated admin account", response.Username, nil)
	return utils.SendSuccess(c, "admin account updated", response)
}

func (h *AdminAccountHandler) block(c *fiber.Ctx) error {
	return h.setBlocked(c, true)
}

func (h *AdminAccountHandler) unblock(c *fiber.Ctx) error {
	return h.setBlocked(c, false)
}

func (h *AdminAccountHandler) setBlocked(c *fiber.Ctx, blocked bool) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid admin id")
	}

	response, err := h.service.SetBlocked(c.UserContext(), actorFromContext(c).ID, id, blocked)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "admin not found")
		case errors.Is(err, service.ErrSelfModification):
			return utils.SendError(c, fiber.StatusBadRequest, "cannot block your own account")
		default:
			return sendServiceError(c, err, "failed to change block state")
		}
	}

	action := "Blocked admin account"
	if !blocked {
		action = "Unblocked admin account"
	}
	h.audit.Record(c.UserContext(), actorFromContext(c), action, response.Username, nil)
	return utils.SendSuccess(c, "block state updated", response)
}

func (h *AdminAccountHandler) resetPassword(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid admin id")
	}

	var payload struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	if err := h.service.ResetPassword(c.UserContext(), id, payload.Password); err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "admin not found")
		}
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	h.audit.Record(c.UserContext(), actorFromContext(c), "Reset admin password", "", nil)
	return utils.SendSuccess(c, "password reset", nil)
}

func (h *AdminAccountHandler) remove(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid admin id")
	}

	admin, err := h.service.Delete(c.UserContext(), actorFromContext(c).ID, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "admin not found")
		case errors.Is(err, service.ErrSelfModification):
			return utils.SendError(c, fiber.StatusBadRequest, "cannot delete your own account")
		default:
			return sendServiceError(c, err, "failed to delete admin account")
		}
	}

	h.uploads.Remove(c.UserContext(), avatarCategory, admin.Avatar)
	h.audit.Record(c.UserContext(), actorFromContext(c), "Deleted admin account", admin.Username, nil)
	return utils.SendSuccess(c, "admin account deleted", nil)
}

func (h *AdminAccountHandler) uploadError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrFileTooLarge):
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "avatar exceeds the maximum allowed size")
	case errors.Is(err, service.ErrFileTypeNotAllowed):
		return utils.SendError(c, fiber.StatusBadRequest, "avatar file type not allowed")
	default:
		h.logger.Error().Err(err).Msg("avatar upload failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to store avatar")
	}
}
