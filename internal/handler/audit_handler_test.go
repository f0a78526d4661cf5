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

	"github.com/noah-isme/sekolah-go-api/internal/dto"
	"github.com/noah-isme/sekolah-go-api/internal/models"
	"github.com/noah-isme/sekolah-go-api/internal/repository"
	"github.com/noah-isme/sekolah-go-api/internal/service"
)

func newAuditTestApp(t *testing.T, entries int) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Admin{}, &models.AuditLog{}, &models.ContactMessage{}))

	audit := service.NewAuditService(
		repository.NewAuditLogRepository(db),
		repository.NewContactMessageRepository(db),
		repository.NewAdminRepository(db),
		3,
		zerolog.Nop(),
	)

	for i := 0; i < entries; i++ {
		audit.Record(context.Background(), service.Actor{ID: 1, Username: "rina"}, fmt.Sprintf("Edited subject %d", i), "", nil)
	}

	app := fiber.New()
	NewAuditHandler(audit, zerolog.Nop()).Register(app.Group("/api/admin"))
	return app
}

func fetchAuditLogs(t *testing.T, app *fiber.App, query string) []dto.AuditLogResponse {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/admin/logs"+query, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Data []dto.AuditLogResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload.Data
}

func TestAuditHandlerLimitParsing(t *testing.T) {
	app := newAuditTestApp(t, 30)

	require.Len(t, fetchAuditLogs(t, app, ""), 25, "default limit applies")
	require.Len(t, fetchAuditLogs(t, app, "?limit=5"), 5)
	require.Len(t, fetchAuditLogs(t, app, "?limit=all"), 30)
	require.Len(t, fetchAuditLogs(t, app, "?limit=junk"), 25, "junk falls back to the default")
	require.Len(t, fetchAuditLogs(t, app, "?limit=-3"), 25, "negative values fall back to the default")
}

func TestAuditHandlerNewestFirst(t *testing.T) {
	app := newAuditTestApp(t, 3)

	entries := fetchAuditLogs(t, app, "")
	require.Len(t, entries, 3)
	require.Equal(t, "Edited subject 2", entries[0].Action)
	require.Equal(t, "Edited subject 0", entries[2].Action)
}
