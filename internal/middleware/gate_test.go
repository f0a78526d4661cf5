package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-go-api/internal/middleware"
	"github.com/noah-isme/sekolah-go-api/internal/models"
	"github.com/noah-isme/sekolah-go-api/internal/utils"
)

const testSecret = "gate-test-secret"

// adminDirectory is an in-memory AdminLookup for gate tests.
type adminDirectory map[uint]models.Admin

func (d adminDirectory) FindByID(_ context.Context, id uint) (models.Admin, error) {
	admin, ok := d[id]
	if !ok {
		return models.Admin{}, gorm.ErrRecordNotFound
	}
	return admin, nil
}

func signToken(t *testing.T, adminID uint, role string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":      adminID,
		"username": "tester",
		"role":     role,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newGateApp(admins adminDirectory) *fiber.App {
	app := fiber.New()
	admin := app.Group("/api/admin", middleware.Session(testSecret, admins))
	admin.Get("/dashboard", func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "", fiber.Map{"admin_id": middleware.CurrentAdminID(c)})
	})

	super := admin.Group("/admins", middleware.RequireSuperadmin())
	super.Get("/", func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "", nil)
	})

	return app
}

func defaultDirectory() adminDirectory {
	return adminDirectory{
		1: {ID: 1, Username: "rina", Role: models.RoleSuperadmin},
		7: {ID: 7, Username: "budi", Role: models.RoleAdmin},
	}
}

func doGateRequest(t *testing.T, app *fiber.App, path, token string) (*http.Response, utils.APIResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload utils.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp, payload
}

func TestSessionRejectsMissingToken(t *testing.T) {
	app := newGateApp(defaultDirectory())

	resp, payload := doGateRequest(t, app, "/api/admin/dashboard", "")

	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.False(t, payload.Success)
	require.Equal(t, "/login", payload.Redirect)
}

func TestSessionRejectsTamperedToken(t *testing.T) {
	app := newGateApp(defaultDirectory())

	claims := jwt.MapClaims{"sub": 1, "role": models.RoleAdmin, "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	resp, payload := doGateRequest(t, app, "/api/admin/dashboard", token)

	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "/login", payload.Redirect)
}

func TestSessionAllowsValidAdmin(t *testing.T) {
	app := newGateApp(defaultDirectory())

	resp, payload := doGateRequest(t, app, "/api/admin/dashboard", signToken(t, 7, models.RoleAdmin))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, payload.Success)
}

func TestSessionRejectsBlockedAdmin(t *testing.T) {
	admins := defaultDirectory()
	admins[7] = models.Admin{ID: 7, Username: "budi", Role: models.RoleAdmin, IsBlocked: true}
	app := newGateApp(admins)

	// Even a token claiming the superadmin role cannot carry a blocked
	// account past the gate.
	resp, payload := doGateRequest(t, app, "/api/admin/dashboard", signToken(t, 7, models.RoleSuperadmin))

	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.False(t, payload.Success)
	require.Equal(t, "/login", payload.Redirect)
	require.Contains(t, payload.Message, "blocked")
}

func TestSessionRejectsDeletedAdmin(t *testing.T) {
	app := newGateApp(defaultDirectory())

	resp, payload := doGateRequest(t, app, "/api/admin/dashboard", signToken(t, 42, models.RoleAdmin))

	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "/login", payload.Redirect)
}

func TestSessionUsesStoredRoleOverClaims(t *testing.T) {
	app := newGateApp(defaultDirectory())

	// Admin 7 holds the admin role on record; a forged superadmin claim in
	// the token does not open the superadmin group.
	resp, payload := doGateRequest(t, app, "/api/admin/admins/", signToken(t, 7, models.RoleSuperadmin))

	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.Equal(t, "/dashboard", payload.Redirect)
}

func TestRequireSuperadminBouncesRegularAdmin(t *testing.T) {
	app := newGateApp(defaultDirectory())

	resp, payload := doGateRequest(t, app, "/api/admin/admins/", signToken(t, 7, models.RoleAdmin))

	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.False(t, payload.Success)
	require.Equal(t, "/dashboard", payload.Redirect)
	require.Contains(t, payload.Message, "permission")
}

func TestRequireSuperadminAdmitsSuperadmin(t *testing.T) {
	app := newGateApp(defaultDirectory())

	resp, payload := doGateRequest(t, app, "/api/admin/admins/", signToken(t, 1, models.RoleSuperadmin))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, payload.Success)
}
