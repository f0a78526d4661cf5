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

const avatarCategory = "avatars"

// AdminStaffHandler manages the staff directory.
type AdminStaffHandler struct {
	service service.StaffService
	uploads service.UploadService
	audit   service.AuditService
	logger  zerolog.Logger
}

// NewAdminStaffHandler constructs a staff management handler.
func NewAdminStaffHandler(service service.StaffService, uploads service.UploadService, audit service.AuditService, logger zerolog.Logger) *AdminStaffHandler {
	return &AdminStaffHandler{
		service: service,
		uploads: uploads,
		audit:   audit,
		logger:  logger.With().Str("component", "admin_staff_handler").Logger(),
	}
}

// Register wires the session-gated staff routes.
func (h *AdminStaffHandler) Register(router fiber.Router) {
	router.Post("/teachers", h.create)
	router.Put("/teachers/:teacherID", h.update)
	router.Delete("/teachers/:teacherID", h.remove)
}

func (h *AdminStaffHandler) create(c *fiber.Ctx) error {
	var payload dto.TeacherRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	avatar, err := h.saveAvatar(c)
	if err != nil {
		return h.uploadError(c, err)
	}

	response, err := h.service.Create(c.UserContext(), payload, avatar)
	if err != nil {
		h.uploads.Remove(c.UserContext(), avatarCategory, avatar)
		if errors.Is(err, service.ErrTeacherIDTaken) {
			return utils.SendError(c, fiber.StatusConflict, "teacher id already registered")
		}
		return sendServiceError(c, err, "failed to add teacher")
	}

	h.audit.Record(c.UserContext(), actorFromContext(c), "Added teacher", fmt.Sprintf("%s (%s)", response.Name, response.TeacherID), nil)
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "teacher added", response)
}

func (h *AdminStaffHandler) update(c *fiber.Ctx) error {
	var payload dto.TeacherRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	avatar, err := h.saveAvatar(c)
	if err != nil {
		return h.uploadError(c, err)
	}

	response, err := h.service.Update(c.UserContext(), c.Params("teacherID"), payload, avatar)
	if err != nil {
		h.uploads.Remove(c.UserContext(), avatarCategory, avatar)
		switch {
		case errors.Is(err, service.ErrTeacherNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "teacher not found")
		case errors.Is(err, service.ErrTeacherIDTaken):
			return utils.SendError(c, fiber.StatusConflict, "teacher id already registered")
		default:
			return sendServiceError(c, err, "failed to update teacher")
		}
	}

	h.audit.Record(c.UserContext(), actorFromContext(c), "Updated teacher", fmt.Sprintf("%s (%s)", response.Name, response.TeacherID), nil)
	return utils.SendSuccess(c, "teacher updated", response)
}

func (h *AdminStaffHandler) remove(c *fiber.Ctx) error {
	teacher, err := h.service.Delete(c.UserContext(), c.Params("teacherID"))
	if err != nil {
		if errors.Is(err, service.ErrTeacherNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "teacher not found")
		}
		return sendServiceError(c, err, "failed to delete teacher")
	}

	h.uploads.Remove(c.UserContext(), avatarCategory, teacher.Avatar)
	h.audit.Record(c.UserContext(), actorFromContext(c), "Deleted teacher", fmt.Sprintf("%s (%s)", teacher.Name, teacher.TeacherID), nil)
	return utils.SendSuccess(c, "teacher deleted", nil)
}

func (h *AdminStaffHandler) saveAvatar(c *fiber.Ctx) (string, error) {
	file := formFile(c, "avatar")
	if file == nil {
		return "", nil
	}
	return h.uploads.SaveImage(c.UserContext(), avatarCategory, file)
}

func (h *AdminStaffHandler) uploadError(c *fiber.Ctx, err error) error {
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
