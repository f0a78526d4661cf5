package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-go-api/internal/dto"
	"github.com/noah-isme/sekolah-go-api/internal/models"
	"github.com/noah-isme/sekolah-go-api/internal/repository"
)

const authTestSecret = "auth-test-secret"

func newAuthFixture(t *testing.T) (AuthService, *gorm.DB) {
	t.Helper()
	db := openServiceTestDB(t, &models.Admin{}, &models.AuditLog{}, &models.ContactMessage{})

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	admins := []models.Admin{
		{Username: "rina", Name: "Rina W", PasswordHash: string(hash), Role: models.RoleSuperadmin},
		{Username: "budi", Name: "Budi S", PasswordHash: string(hash), Role: models.RoleAdmin, IsBlocked: true},
	}
	for i := range admins {
		require.NoError(t, db.Create(&admins[i]).Error)
	}

	audit := NewAuditService(
		repository.NewAuditLogRepository(db),
		repository.NewContactMessageRepository(db),
		repository.NewAdminRepository(db),
		3,
		zerolog.Nop(),
	)
	svc := NewAuthService(
		repository.NewAdminRepository(db),
		audit,
		validator.New(validator.WithRequiredStructEnabled()),
		authTestSecret,
		time.Hour,
		7*24*time.Hour,
		zerolog.Nop(),
	)
	return svc, db
}

func TestAuthServiceLoginIssuesTokenAndRecordsAudit(t *testing.T) {
	svc, db := newAuthFixture(t)
	ctx := context.Background()

	response, ttl, err := svc.Login(ctx, dto.LoginRequest{Username: "rina", Password: "correct-horse"})
	require.NoError(t, err)
	require.Equal(t, time.Hour, ttl)
	require.Equal(t, "rina", response.Admin.Username)
	require.NotNil(t, response.Admin.LastLogin)

	token, err := jwt.Parse(response.Token, func(tok *jwt.Token) (any, error) {
		return []byte(authTestSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, "rina", claims["username"])
	require.Equal(t, models.RoleSuperadmin, claims["role"])

	var entry models.AuditLog
	require.NoError(t, db.First(&entry).Error)
	require.Equal(t, "Login successful", entry.Action)
	require.Equal(t, "rina", entry.Username)
}

func TestAuthServiceLoginRememberExtendsTTL(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, ttl, err := svc.Login(context.Background(), dto.LoginRequest{Username: "rina", Password: "correct-horse", Remember: true})
	require.NoError(t, err)
	require.Equal(t, 7*24*time.Hour, ttl)
}

func TestAuthServiceLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, dto.LoginRequest{Username: "rina", Password: "wrong-password"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown usernames produce the same error as wrong passwords.
	_, _, err = svc.Login(ctx, dto.LoginRequest{Username: "nobody", Password: "correct-horse"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServiceLoginRejectsBlockedAccount(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, _, err := svc.Login(context.Background(), dto.LoginRequest{Username: "budi", Password: "correct-horse"})
	require.ErrorIs(t, err, ErrAccountBlocked)
}

func TestAuthServiceForgotPasswordNeverResets(t *testing.T) {
	svc, db := newAuthFixture(t)
	ctx := context.Background()

	var before models.Admin
	require.NoError(t, db.Where("username = ?", "rina").First(&before).Error)

	message, err := svc.ForgotPassword(ctx, dto.ForgotPasswordRequest{Username: "rina"})
	require.NoError(t, err)
	require.Equal(t, "Reset request logged. Please contact superadmin to reset account 'rina'.", message)

	var after models.Admin
	require.NoError(t, db.Where("username = ?", "rina").First(&after).Error)
	require.Equal(t, before.PasswordHash, after.PasswordHash)

	_, err = svc.ForgotPassword(ctx, dto.ForgotPasswordRequest{Username: "nobody"})
	require.ErrorIs(t, err, ErrUsernameNotFound)
}

func TestAuthServiceLogoutRecordsAudit(t *testing.T) {
	svc, db := newAuthFixture(t)

	svc.Logout(context.Background(), Actor{ID: 1, Username: "rina"})

	var entry models.AuditLog
	require.NoError(t, db.First(&entry).Error)
	require.Equal(t, "Logout", entry.Action)

	// An anonymous logout writes nothing.
	svc.Logout(context.Background(), Actor{})
	var total int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&total).Error)
	require.Equal(t, int64(1), total)
}
