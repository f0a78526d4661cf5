package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-go-api/internal/middleware"
	"github.com/noah-isme/sekolah-go-api/internal/models"
	"github.com/noah-isme/sekolah-go-api/internal/repository"
	"github.com/noah-isme/sekolah-go-api/internal/service"
	"github.com/noah-isme/sekolah-go-api/internal/utils"
)

func newNotificationTestApp(t *testing.T, adminID uint) (*fiber.App, *gorm.DB, service.AuditService) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Admin{}, &models.AuditLog{}, &models.ContactMessage{}))

	for _, username := range []string{"rina", "budi"} {
		admin := models.Admin{Username: username, PasswordHash: "x"}
		require.NoError(t, db.Create(&admin).Error)
	}

	audit := service.NewAuditService(
		repository.NewAuditLogRepository(db),
		repository.NewContactMessageRepository(db),
		repository.NewAdminRepository(db),
		3,
		zerolog.Nop(),
	)

	app := fiber.New()
	group := app.Group("/api/admin", func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalAdminID, adminID)
		c.Locals(middleware.LocalAdminUsername, "budi")
		return c.Next()
	})
	NewNotificationHandler(audit, zerolog.Nop()).Register(group)

	return app, db, audit
}

func TestNotificationHandlerListReturnsUnreadViews(t *testing.T) {
	app, db, audit := newNotificationTestApp(t, 2)

	require.NoError(t, db.Create(&models.ContactMessage{Name: "Citra", Email: "c@example.com", Message: "Hello", UnreadBy: []uint{1, 2}}).Error)
	audit.Record(context.Background(), service.Actor{ID: 1, Username: "rina"}, "Added teacher", "Budi Santoso (T-104)", nil)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/admin/notifications", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool `json:"success"`
		Data    []struct {
			Kind  string `json:"kind"`
			Title string `json:"title"`
			Badge string `json:"badge"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.True(t, payload.Success)
	require.Len(t, payload.Data, 2)
	require.Equal(t, "message", payload.Data[0].Kind)
	require.Equal(t, "Citra sent a message", payload.Data[0].Title)
	require.Equal(t, "log", payload.Data[1].Kind)
	require.Equal(t, "Admin Activity", payload.Data[1].Badge)
}

func TestNotificationHandlerMarkAllRead(t *testing.T) {
	app, db, audit := newNotificationTestApp(t, 2)

	require.NoError(t, db.Create(&models.ContactMessage{Name: "Citra", Email: "c@example.com", Message: "Hello", UnreadBy: []uint{1, 2}}).Error)
	audit.Record(context.Background(), service.Actor{ID: 1, Username: "rina"}, "Published article", "", nil)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/admin/notifications/mark-all-read", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload utils.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.True(t, payload.Success)

	views, err := audit.RecentNotifications(context.Background(), 2)
	require.NoError(t, err)
	require.Empty(t, views)

	// Other admins still see their unread items.
	views, err = audit.RecentNotifications(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, views, 1)
}
