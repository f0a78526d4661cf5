package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-go-api/internal/dto"
	"github.com/noah-isme/sekolah-go-api/internal/repository"
)

var (
	// ErrInvalidCredentials is returned for an unknown username or a wrong
	// password. Callers must not distinguish the two cases.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	// ErrAccountBlocked is returned when the account exists but has been blocked.
	ErrAccountBlocked = errors.New("account has been blocked")
	// ErrUsernameNotFound is returned by the password reset flow.
	ErrUsernameNotFound = errors.New("username not found")
)

// AuthService handles admin session lifecycle.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, time.Duration, error)
	Logout(ctx context.Context, actor Actor)
	ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (string, error)
}

type authService struct {
	admins      repository.AdminRepository
	audit       AuditService
	validator   *validator.Validate
	logger      zerolog.Logger
	secret      string
	ttl         time.Duration
	rememberTTL time.Duration
	now         func() time.Time
}

// NewAuthService constructs the authentication service. rememberTTL applies
// when the login request sets the remember flag.
func NewAuthService(
	admins repository.AdminRepository,
	audit AuditService,
	validator *validator.Validate,
	secret string,
	ttl, rememberTTL time.Duration,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		admins:      admins,
		audit:       audit,
		validator:   validator,
		logger:      logger.With().Str("component", "auth_service").Logger(),
		secret:      secret,
		ttl:         ttl,
		rememberTTL: rememberTTL,
		now:         time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, time.Duration, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LoginResponse{}, 0, err
	}

	admin, err := s.admins.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, 0, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, 0, err
	}

	if admin.IsBlocked {
		s.logger.Warn().Str("username", admin.Username).Msg("login attempt on blocked account")
		return dto.LoginResponse{}, 0, ErrAccountBlocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return dto.LoginResponse{}, 0, ErrInvalidCredentials
	}

	ttl := s.ttl
	if req.Remember {
		ttl = s.rememberTTL
	}

	token, err := s.issueToken(admin.ID, admin.Username, admin.Role, admin.Avatar, ttl)
	if err != nil {
		return dto.LoginResponse{}, 0, err
	}

	now := s.now()
	if err := s.admins.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		s.logger.Error().Err(err).Uint("admin_id", admin.ID).Msg("failed to record last login")
	}
	admin.LastLogin = &now

	s.audit.Record(ctx, Actor{ID: admin.ID, Username: admin.Username}, "Login successful", "", nil)

	return dto.LoginResponse{
		Token: token,
		Admin: dto.NewAdminResponse(admin),
	}, ttl, nil
}

func (s *authService) Logout(ctx context.Context, actor Actor) {
	if actor.ID == 0 {
		return
	}
	s.audit.Record(ctx, actor, "Logout", "", nil)
}

// ForgotPassword never resets anything itself. It confirms the account exists
// and tells the admin to contact a superadmin, mirroring the manual reset
// procedure the school uses.
func (s *authService) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", err
	}

	if _, err := s.admins.FindByUsername(ctx, req.Username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUsernameNotFound
		}
		return "", err
	}

	s.logger.Info().Str("username", req.Username).Msg("password reset requested")
	return "Reset request logged. Please contact superadmin to reset account '" + req.Username + "'.", nil
}

func (s *authService) issueToken(adminID uint, username, role, avatar string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":      adminID,
		"username": username,
		"role":     role,
		"avatar":   avatar,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
}
