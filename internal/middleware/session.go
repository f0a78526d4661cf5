package middleware

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-go-api/internal/models"
	"github.com/noah-isme/sekolah-go-api/internal/utils"
)

// SessionCookie is the cookie the login endpoint sets and the session
// middleware reads. Bearer tokens are accepted as well so API clients can
// authenticate without cookies.
const SessionCookie = "session_token"

// Locals keys populated by the session middleware.
const (
	LocalAdminID       = "admin_id"
	LocalAdminUsername = "admin_username"
	LocalAdminRole     = "admin_role"
	LocalAdminAvatar   = "admin_avatar"
)

// AdminLookup resolves the account a session token is bound to. Satisfied by
// repository.AdminRepository.
type AdminLookup interface {
	FindByID(ctx context.Context, id uint) (models.Admin, error)
}

// Session validates the signed session token, confirms the account still
// exists and is not blocked, and binds the acting admin to the request.
// Requests without a valid session are told to go back to the login page
// rather than receiving a bare denial. Role and username come from the
// account record, not the token, so a role change or block takes effect on
// the next request instead of at token expiry.
func Session(secret string, admins AdminLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return utils.SendRedirect(c, fiber.StatusUnauthorized, "authentication required", "/login")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendRedirect(c, fiber.StatusUnauthorized, "session expired, please log in again", "/login")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendRedirect(c, fiber.StatusUnauthorized, "session expired, please log in again", "/login")
		}

		adminID := extractAdminID(claims)
		if adminID == nil {
			return utils.SendRedirect(c, fiber.StatusUnauthorized, "session expired, please log in again", "/login")
		}

		admin, err := admins.FindByID(c.UserContext(), *adminID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.SendRedirect(c, fiber.StatusUnauthorized, "session expired, please log in again", "/login")
			}
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to verify session")
		}
		if admin.IsBlocked {
			return utils.SendRedirect(c, fiber.StatusUnauthorized, "your account has been blocked, please contact the administrator", "/login")
		}

		c.Locals(LocalAdminID, admin.ID)
		c.Locals(LocalAdminUsername, admin.Username)
		c.Locals(LocalAdminRole, strings.ToLower(strings.TrimSpace(admin.Role)))
		c.Locals(LocalAdminAvatar, admin.Avatar)

		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) string {
	if cookie := strings.TrimSpace(c.Cookies(SessionCookie)); cookie != "" {
		return cookie
	}

	authorization := c.Get("Authorization")
	const bearer = "Bearer "
	if len(authorization) > len(bearer) && strings.EqualFold(authorization[:len(bearer)], bearer) {
		return strings.TrimSpace(authorization[len(bearer):])
	}

	return ""
}

func extractAdminID(claims jwt.MapClaims) *uint {
	for _, key := range []string{"sub", "admin_id", "id"} {
		value, ok := claims[key]
		if !ok {
			continue
		}
		if normalized, err := normalizeAdminID(value); err == nil {
			return &normalized
		}
	}

	return nil
}

func normalizeAdminID(value interface{}) (uint, error) {
	switch v := value.(type) {
	case float64:
		if v < 0 {
			return 0, fmt.Errorf("invalid subject")
		}
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, err
		}
		return uint(parsed), nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("invalid subject")
		}
		return uint(v), nil
	default:
		return 0, fmt.Errorf("unsupported subject type")
	}
}

// CurrentAdminID returns the admin id bound to the request, or zero when the
// session middleware has not run.
func CurrentAdminID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(LocalAdminID).(uint); ok {
		return id
	}
	return 0
}

// CurrentAdminUsername returns the username bound to the request.
func CurrentAdminUsername(c *fiber.Ctx) string {
	if username, ok := c.Locals(LocalAdminUsername).(string); ok {
		return username
	}
	return ""
}

// CurrentAdminRole returns the normalized role bound to the request.
func CurrentAdminRole(c *fiber.Ctx) string {
	if role, ok := c.Locals(LocalAdminRole).(string); ok {
		return role
	}
	return ""
}
