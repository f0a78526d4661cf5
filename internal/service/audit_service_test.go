package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-go-api/internal/dto"
	"github.com/noah-isme/sekolah-go-api/internal/models"
	"github.com/noah-isme/sekolah-go-api/internal/repository"
)

func openServiceTestDB(t *testing.T, entities ...any) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(entities...))
	return db
}

func newAuditFixture(t *testing.T) (AuditService, *gorm.DB) {
	t.Helper()
	db := openServiceTestDB(t, &models.Admin{}, &models.AuditLog{}, &models.ContactMessage{})

	for _, username := range []string{"rina", "budi", "sari"} {
		admin := models.Admin{Username: username, PasswordHash: "x"}
		require.NoError(t, db.Create(&admin).Error)
	}

	svc := NewAuditService(
		repository.NewAuditLogRepository(db),
		repository.NewContactMessageRepository(db),
		repository.NewAdminRepository(db),
		3,
		zerolog.Nop(),
	)
	return svc, db
}

func TestAuditServiceRecordExcludesActorFromUnread(t *testing.T) {
	svc, db := newAuditFixture(t)
	ctx := context.Background()

	svc.Record(ctx, Actor{ID: 1, Username: "rina"}, "Added teacher", "Budi Santoso (T-104)", nil)

	var entry models.AuditLog
	require.NoError(t, db.First(&entry).Error)
	require.Equal(t, uint(1), entry.AdminID)
	require.Equal(t, "rina", entry.Username)
	require.Equal(t, []uint{2, 3}, entry.UnreadBy)
}

func TestAuditServiceNotificationsMessagesBeforeLogs(t *testing.T) {
	svc, db := newAuditFixture(t)
	ctx := context.Background()

	message := models.ContactMessage{Name: "Citra", Email: "citra@example.com", Message: "Question about enrollment", UnreadBy: []uint{1, 2, 3}}
	require.NoError(t, db.Create(&message).Error)

	svc.Record(ctx, Actor{ID: 1, Username: "rina"}, "Published article", "School festival recap", nil)

	views, err := svc.RecentNotifications(ctx, 2)
	require.NoError(t, err)
	require.Len(t, views, 2)

	require.Equal(t, dto.NotificationKindMessage, views[0].Kind)
	require.Equal(t, "Citra sent a message", views[0].Title)
	require.Equal(t, "ti ti-mail", views[0].Icon)
	require.Equal(t, "New Message", views[0].Badge)
	require.Equal(t, "bg-light-primary", views[0].BadgeClass)

	require.Equal(t, dto.NotificationKindLog, views[1].Kind)
	require.Equal(t, "rina performed Published article", views[1].Title)
	require.Equal(t, "ti ti-activity", views[1].Icon)
	require.Equal(t, "Admin Activity", views[1].Badge)
	require.Equal(t, "bg-light-success", views[1].BadgeClass)

	// The actor sees only the visitor message.
	views, err = svc.RecentNotifications(ctx, 1)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, dto.NotificationKindMessage, views[0].Kind)
}

func TestAuditServiceNotificationsCappedPerKind(t *testing.T) {
	svc, _ := newAuditFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		svc.Record(ctx, Actor{ID: 1, Username: "rina"}, fmt.Sprintf("Edited subject %d", i), "", nil)
	}

	views, err := svc.RecentNotifications(ctx, 2)
	require.NoError(t, err)
	require.Len(t, views, 3)
}

func TestAuditServiceNotificationPreviewTruncation(t *testing.T) {
	svc, db := newAuditFixture(t)
	ctx := context.Background()

	long := strings.Repeat("a", 60)
	exact := strings.Repeat("b", 50)

	require.NoError(t, db.Create(&models.ContactMessage{Name: "Dewi", Email: "d@example.com", Message: exact, UnreadBy: []uint{2}}).Error)
	svc.Record(ctx, Actor{ID: 1, Username: "rina"}, "Updated About section", long, nil)

	views, err := svc.RecentNotifications(ctx, 2)
	require.NoError(t, err)
	require.Len(t, views, 2)

	require.Equal(t, exact, views[0].Content, "text at the limit is not truncated")
	require.Equal(t, strings.Repeat("a", 50)+"...", views[1].Content)
}

func TestAuditServiceMarkAllReadIsPerAdmin(t *testing.T) {
	svc, db := newAuditFixture(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.ContactMessage{Name: "Eka", Email: "e@example.com", Message: "Hello", UnreadBy: []uint{1, 2, 3}}).Error)
	svc.Record(ctx, Actor{ID: 1, Username: "rina"}, "Deleted contact message", "", nil)

	require.NoError(t, svc.MarkAllRead(ctx, 2))

	views, err := svc.RecentNotifications(ctx, 2)
	require.NoError(t, err)
	require.Empty(t, views)

	// Admin 3 is untouched.
	views, err = svc.RecentNotifications(ctx, 3)
	require.NoError(t, err)
	require.Len(t, views, 2)

	// Repeating the call stays empty and does not error.
	require.NoError(t, svc.MarkAllRead(ctx, 2))
	views, err = svc.RecentNotifications(ctx, 2)
	require.NoError(t, err)
	require.Empty(t, views)
}

func TestAuditServiceListLimitsEntries(t *testing.T) {
	svc, _ := newAuditFixture(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		svc.Record(ctx, Actor{ID: 1, Username: "rina"}, fmt.Sprintf("Added class %d", i), "", nil)
	}

	entries, err := svc.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	entries, err = svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 4)
}
