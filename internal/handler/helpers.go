package handler

import (
	"errors"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/sekolah-go-api/internal/middleware"
	"github.com/noah-isme/sekolah-go-api/internal/service"
	"github.com/noah-isme/sekolah-go-api/internal/utils"
)

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func parseIDParam(c *fiber.Ctx, key string) (uint, error) {
	parsed, err := strconv.ParseUint(c.Params(key), 10, 64)
	if err != nil || parsed == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(parsed), nil
}

// pageParams reads ?page= and ?size= with a fallback page size.
func pageParams(c *fiber.Ctx, defaultSize int) (int, int, error) {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return 0, 0, err
	}
	if page <= 0 {
		page = 1
	}

	size, err := parseQueryInt(c, "size")
	if err != nil {
		return 0, 0, err
	}
	if size <= 0 {
		size = defaultSize
	}

	return page, size, nil
}

func actorFromContext(c *fiber.Ctx) service.Actor {
	return service.Actor{
		ID:       middleware.CurrentAdminID(c),
		Username: middleware.CurrentAdminUsername(c),
	}
}

// formFile returns the named multipart file, or nil when the field is absent.
func formFile(c *fiber.Ctx, name string) *multipart.FileHeader {
	file, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	return file
}

// sendServiceError translates validation failures into 400s and everything
// else into a 500 with a generic message.
func sendServiceError(c *fiber.Ctx, err error, fallback string) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return utils.SendError(c, fiber.StatusBadRequest, "validation failed: "+validationErrs.Error())
	}
	return utils.SendError(c, fiber.StatusInternalServerError, fallback)
}
