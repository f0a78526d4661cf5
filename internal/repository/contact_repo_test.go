package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sekolah-go-api/internal/models"
)

func TestContactMessageRepositoryListFiltersAndPaginates(t *testing.T) {
	db := openTestDB(t, &models.ContactMessage{})
	repo := NewContactMessageRepository(db)
	ctx := context.Background()

	older := models.ContactMessage{Name: "Alice Johnson", Email: "alice@example.com", Subject: "Enrollment", Message: "Hello", CreatedAt: time.Now().Add(-2 * time.Hour)}
	newer := models.ContactMessage{Name: "Bob Stone", Email: "bob@example.com", Subject: "Open day", Message: "Hi", CreatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, repo.Create(ctx, &older))
	require.NoError(t, repo.Create(ctx, &newer))

	messages, total, err := repo.List(ctx, ContactMessageFilter{Search: "alice", PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, messages, 1)
	require.Equal(t, "Alice Johnson", messages[0].Name)

	messages, total, err = repo.List(ctx, ContactMessageFilter{Page: 1, PageSize: 1})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, messages, 1)
	require.Equal(t, "Bob Stone", messages[0].Name, "expected newest message first")
}

func TestContactMessageRepositoryUnreadRoundTrip(t *testing.T) {
	db := openTestDB(t, &models.ContactMessage{})
	repo := NewContactMessageRepository(db)
	ctx := context.Background()

	message := models.ContactMessage{Name: "Citra", Email: "citra@example.com", Message: "Question about fees", UnreadBy: []uint{1, 2}}
	require.NoError(t, repo.Create(ctx, &message))

	unread, err := repo.ListUnread(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, unread, 1)

	require.NoError(t, repo.ClearUnread(ctx, 1))

	unread, err = repo.ListUnread(ctx, 1, 0)
	require.NoError(t, err)
	require.Empty(t, unread)

	unread, err = repo.ListUnread(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	require.Equal(t, []uint{2}, unread[0].UnreadBy)
}

func TestContactMessageRepositoryExistsFromEmailSince(t *testing.T) {
	db := openTestDB(t, &models.ContactMessage{})
	repo := NewContactMessageRepository(db)
	ctx := context.Background()

	message := models.ContactMessage{Name: "Dewi", Email: "dewi@example.com", Message: "Hi", CreatedAt: time.Now().Add(-10 * time.Minute)}
	require.NoError(t, repo.Create(ctx, &message))

	exists, err := repo.ExistsFromEmailSince(ctx, "dewi@example.com", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.ExistsFromEmailSince(ctx, "dewi@example.com", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	require.False(t, exists)

	exists, err = repo.ExistsFromEmailSince(ctx, "other@example.com", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.False(t, exists)
}

func TestContactInfoRepositoryUpsertKeepsSingleton(t *testing.T) {
	db := openTestDB(t, &models.ContactInfo{})
	repo := NewContactInfoRepository(db)
	ctx := context.Background()

	first := models.ContactInfo{Address: "Jl. Merdeka 1", Email: "info@school.sch.id"}
	require.NoError(t, repo.Upsert(ctx, &first))

	second := models.ContactInfo{Address: "Jl. Merdeka 2", Email: "info@school.sch.id", Phone: "021-555"}
	require.NoError(t, repo.Upsert(ctx, &second))

	stored, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, first.ID, stored.ID)
	require.Equal(t, "Jl. Merdeka 2", stored.Address)
	require.Equal(t, "021-555", stored.Phone)

	var total int64
	require.NoError(t, db.Model(&models.ContactInfo{}).Count(&total).Error)
	require.Equal(t, int64(1), total)
}
