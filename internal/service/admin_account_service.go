package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-go-api/internal/dto"
	"github.com/noah-isme/sekolah-go-api/internal/models"
	"github.com/noah-isme/sekolah-go-api/internal/repository"
)

var (
	// ErrAdminNotFound indicates the account does not exist.
	ErrAdminNotFound = errors.New("admin not found")
	// ErrUsernameTaken indicates the username is already registered.
	ErrUsernameTaken = errors.New("username already registered")
	// ErrSelfModification guards against a superadmin blocking or deleting
	// their own account.
	ErrSelfModification = errors.New("cannot modify your own account")
)

// AdminAccountService manages administrator accounts. Every operation here is
// superadmin-gated at the transport layer.
type AdminAccountService interface {
	List(ctx context.Context, search string, page, pageSize int) (dto.AdminListResponse, error)
	Create(ctx context.Context, req dto.AdminCreateRequest, avatar string) (dto.AdminResponse, error)
	Update(ctx context.Context, id uint, req dto.AdminUpdateRequest, avatar string) (dto.AdminResponse, error)
	SetBlocked(ctx context.Context, actorID, id uint, blocked bool) (dto.AdminResponse, error)
	Delete(ctx context.Context, actorID, id uint) (models.Admin, error)
	ResetPassword(ctx context.Context, id uint, password string) error
}

type adminAccountService struct {
	admins    repository.AdminRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAdminAccountService constructs the account management service.
func NewAdminAccountService(admins repository.AdminRepository, validator *validator.Validate, logger zerolog.Logger) AdminAccountService {
	return &adminAccountService{
		admins:    admins,
		validator: validator,
		logger:    logger.With().Str("component", "admin_account_service").Logger(),
	}
}

func (s *adminAccountService) List(ctx context.Context, search string, page, pageSize int) (dto.AdminListResponse, error) {
	filter := repository.AdminFilter{Search: strings.TrimSpace(search), Page: page, PageSize: pageSize}
	admins, total, err := s.admins.List(ctx, filter)
	if err != nil {
		return dto.AdminListResponse{}, err
	}

	return dto.AdminListResponse{
		Items:      dto.NewAdminResponseSlice(admins),
		Pagination: dto.NewPaginationMeta(page, pageSize, total),
	}, nil
}

func (s *adminAccountService) Create(ctx context.Context, req dto.AdminCreateRequest, avatar string) (dto.AdminResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AdminResponse{}, err
	}

	username := strings.TrimSpace(req.Username)
	if _, err := s.admins.FindByUsername(ctx, username); err == nil {
		return dto.AdminResponse{}, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AdminResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AdminResponse{}, err
	}

	admin := models.Admin{
		Username:     username,
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         req.Role,
		Avatar:       avatar,
	}

	if err := s.admins.Create(ctx, &admin); err != nil {
		return dto.AdminResponse{}, err
	}

	s.logger.Info().Str("username", admin.Username).Str("role", admin.Role).Msg("admin account created")
	return dto.NewAdminResponse(admin), nil
}

func (s *adminAccountService) Update(ctx context.Context, id uint, req dto.AdminUpdateRequest, avatar string) (dto.AdminResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AdminResponse{}, err
	}

	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AdminResponse{}, ErrAdminNotFound
		}
		return dto.AdminResponse{}, err
	}

	admin.Name = strings.TrimSpace(req.Name)
	admin.Email = strings.ToLower(strings.TrimSpace(req.Email))
	admin.Role = req.Role
	if avatar != "" {
		admin.Avatar = avatar
	}

	if err := s.admins.Update(ctx, &admin); err != nil {
		return dto.AdminResponse{}, err
	}
	return dto.NewAdminResponse(admin), nil
}

func (s *adminAccountService) SetBlocked(ctx context.Context, actorID, id uint, blocked bool) (dto.AdminResponse, error) {
	if actorID == id {
		return dto.AdminResponse{}, ErrSelfModification
	}

	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AdminResponse{}, ErrAdminNotFound
		}
		return dto.AdminResponse{}, err
	}

	if err := s.admins.SetBlocked(ctx, id, blocked); err != nil {
		return dto.AdminResponse{}, err
	}
	admin.IsBlocked = blocked

	s.logger.Info().Str("username", admin.Username).Bool("blocked", blocked).Msg("admin block state changed")
	return dto.NewAdminResponse(admin), nil
}

func (s *adminAccountService) Delete(ctx context.Context, actorID, id uint) (models.Admin, error) {
	if actorID == id {
		return models.Admin{}, ErrSelfModification
	}

	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Admin{}, ErrAdminNotFound
		}
		return models.Admin{}, err
	}

	if err := s.admins.Delete(ctx, id); err != nil {
		return models.Admin{}, err
	}
	return admin, nil
}

func (s *adminAccountService) ResetPassword(ctx context.Context, id uint, password string) error {
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdminNotFound
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin.PasswordHash = string(hash)
	return s.admins.Update(ctx, &admin)
}
