package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-go-api/internal/models"
)

func openTestDB(t *testing.T, entities ...any) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(entities...))
	return db
}

func TestAuditLogRepositoryUnreadLifecycle(t *testing.T) {
	db := openTestDB(t, &models.AuditLog{})
	repo := NewAuditLogRepository(db)
	ctx := context.Background()

	entry := models.AuditLog{
		AdminID:     1,
		Username:    "rina",
		Action:      "Added teacher",
		Description: "Budi Santoso (T-104)",
		UnreadBy:    []uint{2, 3},
	}
	require.NoError(t, repo.Create(ctx, &entry))

	unread, err := repo.ListUnread(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	require.Equal(t, []uint{2, 3}, unread[0].UnreadBy)

	// The actor never appears in their own unread set.
	unread, err = repo.ListUnread(ctx, 1, 0)
	require.NoError(t, err)
	require.Empty(t, unread)

	require.NoError(t, repo.ClearUnread(ctx, 2))

	unread, err = repo.ListUnread(ctx, 2, 0)
	require.NoError(t, err)
	require.Empty(t, unread)

	// Other readers keep their unread marker.
	unread, err = repo.ListUnread(ctx, 3, 0)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	require.Equal(t, []uint{3}, unread[0].UnreadBy)

	// Clearing twice is a no-op.
	require.NoError(t, repo.ClearUnread(ctx, 2))
	unread, err = repo.ListUnread(ctx, 3, 0)
	require.NoError(t, err)
	require.Len(t, unread, 1)
}

func TestAuditLogRepositoryUnreadPatternDoesNotMatchSubstrings(t *testing.T) {
	db := openTestDB(t, &models.AuditLog{})
	repo := NewAuditLogRepository(db)
	ctx := context.Background()

	entry := models.AuditLog{AdminID: 5, Username: "sari", Action: "Published article", UnreadBy: []uint{12}}
	require.NoError(t, repo.Create(ctx, &entry))

	// Admin 1 and 2 must not match the stored "|12|" marker.
	unread, err := repo.ListUnread(ctx, 1, 0)
	require.NoError(t, err)
	require.Empty(t, unread)

	unread, err = repo.ListUnread(ctx, 2, 0)
	require.NoError(t, err)
	require.Empty(t, unread)

	unread, err = repo.ListUnread(ctx, 12, 0)
	require.NoError(t, err)
	require.Len(t, unread, 1)
}

func TestAuditLogRepositoryListHonoursLimit(t *testing.T) {
	db := openTestDB(t, &models.AuditLog{})
	repo := NewAuditLogRepository(db)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		entry := models.AuditLog{AdminID: 1, Username: "rina", Action: fmt.Sprintf("Edited subject %d", i)}
		require.NoError(t, repo.Create(ctx, &entry))
	}

	entries, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "Edited subject 3", entries[0].Action, "expected newest entry first")

	entries, err = repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(4), total)
}
