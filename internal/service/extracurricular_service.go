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

// ErrActivityNotFound indicates the extracurricular activity does not exist.
var ErrActivityNotFound = errors.New("activity not found")

// ExtracurricularService manages extracurricular activities.
type ExtracurricularService interface {
	List(ctx context.Context, search string, page, pageSize int) (dto.ExtracurricularListResponse, error)
	Detail(ctx context.Context, id uint) (dto.ExtracurricularDetailResponse, error)
	Create(ctx context.Context, req dto.ExtracurricularRequest, image string) (dto.ExtracurricularResponse, error)
	Update(ctx context.Context, id uint, req dto.ExtracurricularRequest, image string) (dto.ExtracurricularResponse, error)
	Delete(ctx context.Context, id uint) (models.Extracurricular, error)
}

type extracurricularService struct {
	repo      repository.ExtracurricularRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewExtracurricularService constructs the activity service.
func NewExtracurricularService(repo repository.ExtracurricularRepository, validator *validator.Validate, logger zerolog.Logger) ExtracurricularService {
	return &extracurricularService{
		repo:      repo,
		validator: validator,
		logger:    logger.With().Str("component", "extracurricular_service").Logger(),
	}
}

func (s *extracurricularService) List(ctx context.Context, search string, page, pageSize int) (dto.ExtracurricularListResponse, error) {
	filter := repository.ExtracurricularFilter{Search: strings.TrimSpace(search), Page: page, PageSize: pageSize}
	activities, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ExtracurricularListResponse{}, err
	}

	return dto.ExtracurricularListResponse{
		Items:      dto.NewExtracurricularResponseSlice(activities),
		Pagination: dto.NewPaginationMeta(page, pageSize, total),
	}, nil
}

func (s *extracurricularService) Detail(ctx context.Context, id uint) (dto.ExtracurricularDetailResponse, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExtracurricularDetailResponse{}, ErrActivityNotFound
		}
		return dto.ExtracurricularDetailResponse{}, err
	}

	others, err := s.repo.ListOther(ctx, id, 3)
	if err != nil {
		return dto.ExtracurricularDetailResponse{}, err
	}

	return dto.ExtracurricularDetailResponse{
		Activity: dto.NewExtracurricularResponse(activity),
		Others:   dto.NewExtracurricularResponseSlice(others),
	}, nil
}

func (s *extracurricularService) Create(ctx context.Context, req dto.ExtracurricularRequest, image string) (dto.ExtracurricularResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ExtracurricularResponse{}, err
	}

	activity := models.Extracurricular{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Image:       image,
	}

	if err := s.repo.Create(ctx, &activity); err != nil {
		return dto.ExtracurricularResponse{}, err
	}

	s.logger.Info().Uint("activity_id", activity.ID).Msg("extracurricular activity added")
	return dto.NewExtracurricularResponse(activity), nil
}

func (s *extracurricularService) Update(ctx context.Context, id uint, req dto.ExtracurricularRequest, image string) (dto.ExtracurricularResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ExtracurricularResponse{}, err
	}

	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExtracurricularResponse{}, ErrActivityNotFound
		}
		return dto.ExtracurricularResponse{}, err
	}

	activity.Name = strings.TrimSpace(req.Name)
	activity.Description = strings.TrimSpace(req.Description)
	if image != "" {
		activity.Image = image
	}

	if err := s.repo.Update(ctx, &activity); err != nil {
		return dto.ExtracurricularResponse{}, err
	}
	return dto.NewExtracurricularResponse(activity), nil
}

// Delete returns the removed record so the caller can clean up its image.
func (s *extracurricularService) Delete(ctx context.Context, id uint) (models.Extracurricular, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Extracurricular{}, ErrActivityNotFound
		}
		return models.Extracurricular{}, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return models.Extracurricular{}, err
	}
	return activity, nil
}
