package service

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-go-api/internal/dto"
	"github.com/noah-isme/sekolah-go-api/internal/models"
	"github.com/noah-isme/sekolah-go-api/internal/repository"
)

type stubVerifier struct {
	err error
}

func (v stubVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	return v.err
}

func newContactFixture(t *testing.T, captchaErr error, cache *redis.Client) (ContactService, *gorm.DB) {
	t.Helper()
	db := openServiceTestDB(t, &models.Admin{}, &models.ContactMessage{}, &models.ContactInfo{})

	for _, username := range []string{"rina", "budi"} {
		admin := models.Admin{Username: username, PasswordHash: "x"}
		require.NoError(t, db.Create(&admin).Error)
	}

	svc := NewContactService(
		repository.NewContactMessageRepository(db),
		repository.NewContactInfoRepository(db),
		repository.NewAdminRepository(db),
		stubVerifier{err: captchaErr},
		cache,
		validator.New(validator.WithRequiredStructEnabled()),
		5*time.Minute,
		zerolog.Nop(),
	)
	return svc, db
}

func validSubmitRequest() dto.ContactSubmitRequest {
	return dto.ContactSubmitRequest{
		Name:         "Citra Lestari",
		Email:        "citra@example.com",
		Subject:      "Enrollment",
		Message:      "How do I register my child?",
		CaptchaToken: "token",
	}
}

func TestContactServiceSubmitMarksAllAdminsUnread(t *testing.T) {
	svc, db := newContactFixture(t, nil, nil)

	require.NoError(t, svc.Submit(context.Background(), validSubmitRequest(), "203.0.113.9"))

	var message models.ContactMessage
	require.NoError(t, db.First(&message).Error)
	require.Equal(t, "Citra Lestari", message.Name)
	require.Equal(t, "citra@example.com", message.Email)
	require.Equal(t, []uint{1, 2}, message.UnreadBy)
}

func TestContactServiceSubmitRejectsFailedCaptcha(t *testing.T) {
	svc, db := newContactFixture(t, errors.New("rejected"), nil)

	err := svc.Submit(context.Background(), validSubmitRequest(), "")
	require.ErrorIs(t, err, ErrCaptchaFailed)

	var total int64
	require.NoError(t, db.Model(&models.ContactMessage{}).Count(&total).Error)
	require.Zero(t, total)
}

func TestContactServiceSubmitRejectsInvalidPayload(t *testing.T) {
	svc, _ := newContactFixture(t, nil, nil)

	req := validSubmitRequest()
	req.Email = "not-an-email"
	require.Error(t, svc.Submit(context.Background(), req, ""))
}

func TestContactServiceSubmitDeduplicatesViaRedis(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	svc, _ := newContactFixture(t, nil, cache)
	ctx := context.Background()

	require.NoError(t, svc.Submit(ctx, validSubmitRequest(), ""))
	require.ErrorIs(t, svc.Submit(ctx, validSubmitRequest(), ""), ErrContactDuplicate)

	// Once the reservation expires the sender may submit again.
	server.FastForward(6 * time.Minute)
	require.NoError(t, svc.Submit(ctx, validSubmitRequest(), ""))
}

func TestContactServiceSubmitReleasesReservationOnStoreFailure(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	svc, db := newContactFixture(t, nil, cache)
	ctx := context.Background()

	// With the table gone the insert fails after the reservation is taken.
	require.NoError(t, db.Migrator().DropTable(&models.ContactMessage{}))
	err = svc.Submit(ctx, validSubmitRequest(), "")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrContactDuplicate)
	require.False(t, server.Exists("contact:dedupe:citra@example.com"))

	// The sender may retry immediately once the store is healthy again.
	require.NoError(t, db.AutoMigrate(&models.ContactMessage{}))
	require.NoError(t, svc.Submit(ctx, validSubmitRequest(), ""))
}

func TestContactServiceSubmitDeduplicatesViaDatabaseFallback(t *testing.T) {
	svc, _ := newContactFixture(t, nil, nil)
	ctx := context.Background()

	require.NoError(t, svc.Submit(ctx, validSubmitRequest(), ""))
	require.ErrorIs(t, svc.Submit(ctx, validSubmitRequest(), ""), ErrContactDuplicate)

	// A different sender is unaffected by the window.
	other := validSubmitRequest()
	other.Email = "dewi@example.com"
	require.NoError(t, svc.Submit(ctx, other, ""))
}

func TestContactServiceInboxLifecycle(t *testing.T) {
	svc, _ := newContactFixture(t, nil, nil)
	ctx := context.Background()

	require.NoError(t, svc.Submit(ctx, validSubmitRequest(), ""))

	list, err := svc.List(ctx, "", 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	require.Equal(t, int64(1), list.Pagination.TotalItems)

	message, err := svc.Get(ctx, list.Items[0].ID)
	require.NoError(t, err)
	require.Equal(t, "Citra Lestari", message.Name)

	require.NoError(t, svc.Delete(ctx, message.ID))
	require.ErrorIs(t, svc.Delete(ctx, message.ID), ErrMessageNotFound)
	_, err = svc.Get(ctx, message.ID)
	require.ErrorIs(t, err, ErrMessageNotFound)
}

func TestContactServiceInfoRoundTrip(t *testing.T) {
	svc, _ := newContactFixture(t, nil, nil)
	ctx := context.Background()

	// Before any update the public endpoint serves an empty document.
	info, err := svc.Info(ctx)
	require.NoError(t, err)
	require.Empty(t, info.Address)

	updated, err := svc.UpdateInfo(ctx, dto.ContactInfoRequest{
		Address: "Jl. Pendidikan 12",
		Email:   "info@school.sch.id",
		Phone:   "021-555-0101",
	})
	require.NoError(t, err)
	require.Equal(t, "Jl. Pendidikan 12", updated.Address)

	info, err = svc.Info(ctx)
	require.NoError(t, err)
	require.Equal(t, "info@school.sch.id", info.Email)
}
