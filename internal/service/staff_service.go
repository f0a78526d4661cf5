package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-go-api/internal/dto"
	"github.com/noah-isme/sekolah-go-api/internal/models"
	"github.com/noah-isme/sekolah-go-api/internal/repository"
)

var (
	// ErrTeacherNotFound indicates no staff member matches the given teacher id.
	ErrTeacherNotFound = errors.New("teacher not found")
	// ErrTeacherIDTaken indicates the natural key is already in use.
	ErrTeacherIDTaken = errors.New("teacher id already registered")
)

// StaffService manages the staff directory.
type StaffService interface {
	List(ctx context.Context, search string, page, pageSize int) (dto.TeacherListResponse, error)
	Get(ctx context.Context, teacherID string) (dto.TeacherResponse, error)
	Create(ctx context.Context, req dto.TeacherRequest, avatar string) (dto.TeacherResponse, error)
	Update(ctx context.Context, teacherID string, req dto.TeacherRequest, avatar string) (dto.TeacherResponse, error)
	Delete(ctx context.Context, teacherID string) (models.Teacher, error)
}

type staffService struct {
	repo      repository.TeacherRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStaffService constructs the staff directory service.
func NewStaffService(repo repository.TeacherRepository, validator *validator.Validate, logger zerolog.Logger) StaffService {
	return &staffService{
		repo:      repo,
		validator: validator,
		logger:    logger.With().Str("component", "staff_service").Logger(),
	}
}

func (s *staffService) List(ctx context.Context, search string, page, pageSize int) (dto.TeacherListResponse, error) {
	filter := repository.TeacherFilter{Search: strings.TrimSpace(search), Page: page, PageSize: pageSize}
	teachers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.TeacherListResponse{}, err
	}

	return dto.TeacherListResponse{
		Items:      dto.NewTeacherResponseSlice(teachers),
		Pagination: dto.NewPaginationMeta(page, pageSize, total),
	}, nil
}

func (s *staffService) Get(ctx context.Context, teacherID string) (dto.TeacherResponse, error) {
	teacher, err := s.repo.FindByTeacherID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeacherResponse{}, ErrTeacherNotFound
		}
		return dto.TeacherResponse{}, err
	}
	return dto.NewTeacherResponse(teacher), nil
}

func (s *staffService) Create(ctx context.Context, req dto.TeacherRequest, avatar string) (dto.TeacherResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.TeacherResponse{}, err
	}

	teacherID := strings.TrimSpace(req.TeacherID)
	exists, err := s.repo.ExistsTeacherID(ctx, teacherID)
	if err != nil {
		return dto.TeacherResponse{}, err
	}
	if exists {
		return dto.TeacherResponse{}, ErrTeacherIDTaken
	}

	teacher := models.Teacher{
		TeacherID: teacherID,
		Name:      strings.TrimSpace(req.Name),
		Position:  strings.TrimSpace(req.Position),
		Subject:   strings.TrimSpace(req.Subject),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     strings.TrimSpace(req.Phone),
		Instagram: strings.TrimSpace(req.Instagram),
		Facebook:  strings.TrimSpace(req.Facebook),
		LinkedIn:  strings.TrimSpace(req.LinkedIn),
		Avatar:    avatar,
	}

	if err := s.repo.Create(ctx, &teacher); err != nil {
		return dto.TeacherResponse{}, err
	}

	s.logger.Info().Str("teacher_id", teacher.TeacherID).Msg("teacher added")
	return dto.NewTeacherResponse(teacher), nil
}

// Update keeps the existing avatar when no replacement was uploaded.
func (s *staffService) Update(ctx context.Context, teacherID string, req dto.TeacherRequest, avatar string) (dto.TeacherResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.TeacherResponse{}, err
	}

	teacher, err := s.repo.FindByTeacherID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeacherResponse{}, ErrTeacherNotFound
		}
		return dto.TeacherResponse{}, err
	}

	newID := strings.TrimSpace(req.TeacherID)
	if newID != teacher.TeacherID {
		exists, err := s.repo.ExistsTeacherID(ctx, newID)
		if err != nil {
			return dto.TeacherResponse{}, err
		}
		if exists {
			return dto.TeacherResponse{}, ErrTeacherIDTaken
		}
	}

	teacher.TeacherID = newID
	teacher.Name = strings.TrimSpace(req.Name)
	teacher.Position = strings.TrimSpace(req.Position)
	teacher.Subject = strings.TrimSpace(req.Subject)
	teacher.Email = strings.ToLower(strings.TrimSpace(req.Email))
	teacher.Phone = strings.TrimSpace(req.Phone)
	teacher.Instagram = strings.TrimSpace(req.Instagram)
	teacher.Facebook = strings.TrimSpace(req.Facebook)
	teacher.LinkedIn = strings.TrimSpace(req.LinkedIn)
	if avatar != "" {
		teacher.Avatar = avatar
	}

	if err := s.repo.Update(ctx, &teacher); err != nil {
		return dto.TeacherResponse{}, err
	}
	return dto.NewTeacherResponse(teacher), nil
}

// Delete returns the removed record so the caller can clean up its avatar file.
func (s *staffService) Delete(ctx context.Context, teacherID string) (models.Teacher, error) {
	teacher, err := s.repo.FindByTeacherID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Teacher{}, ErrTeacherNotFound
		}
		return models.Teacher{}, err
	}

	if err := s.repo.DeleteByTeacherID(ctx, teacherID); err != nil {
		return models.Teacher{}, err
	}
	return teacher, nil
}
