package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-go-api/internal/dto"
	"github.com/noah-isme/sekolah-go-api/internal/models"
	"github.com/noah-isme/sekolah-go-api/internal/repository"
)

// SiteService manages the about section, the site settings document and the
// public landing page.
type SiteService interface {
	Home(ctx context.Context, latestLimit int) (dto.HomeResponse, error)
	About(ctx context.Context) (dto.AboutResponse, error)
	UpdateAbout(ctx context.Context, req dto.AboutRequest, descriptionImage string) (dto.AboutResponse, error)
	Settings(ctx context.Context) (dto.SettingsResponse, error)
	UpdateSettings(ctx context.Context, req dto.SettingsRequest, logo, headerImage, headmasterPhoto string) (dto.SettingsResponse, error)
}

type siteService struct {
	site      repository.SiteRepository
	articles  repository.ArticleRepository
	validator *validator.Validate
	logger    zerolog.Logger
	richText  *bluemonday.Policy
}

// NewSiteService constructs the site content service.
func NewSiteService(
	site repository.SiteRepository,
	articles repository.ArticleRepository,
	validator *validator.Validate,
	logger zerolog.Logger,
) SiteService {
	return &siteService{
		site:      site,
		articles:  articles,
		validator: validator,
		logger:    logger.With().Str("component", "site_service").Logger(),
		richText:  bluemonday.UGCPolicy(),
	}
}

func (s *siteService) Home(ctx context.Context, latestLimit int) (dto.HomeResponse, error) {
	if latestLimit <= 0 {
		latestLimit = 3
	}

	response := dto.HomeResponse{}

	about, err := s.site.GetAbout(ctx)
	switch {
	case err == nil:
		view := dto.NewAboutResponse(about)
		response.About = &view
	case errors.Is(err, gorm.ErrRecordNotFound):
		// A fresh install has no about document yet.
	default:
		return dto.HomeResponse{}, err
	}

	facilities, err := s.site.ListFacilities(ctx)
	if err != nil {
		return dto.HomeResponse{}, err
	}
	response.Facilities = dto.NewFacilityResponseSlice(facilities)

	latest, _, err := s.articles.List(ctx, repository.ArticleFilter{Page: 1, PageSize: latestLimit})
	if err != nil {
		return dto.HomeResponse{}, err
	}
	response.Latest = dto.NewArticleResponseSlice(latest)

	return response, nil
}

func (s *siteService) About(ctx context.Context) (dto.AboutResponse, error) {
	about, err := s.site.GetAbout(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AboutResponse{}, nil
		}
		return dto.AboutResponse{}, err
	}
	return dto.NewAboutResponse(about), nil
}

func (s *siteService) UpdateAbout(ctx context.Context, req dto.AboutRequest, descriptionImage string) (dto.AboutResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AboutResponse{}, err
	}

	about := models.AboutPage{
		Description: s.richText.Sanitize(req.Description),
		Vision:      datatypes.NewJSONSlice(trimLines(req.Vision)),
		Mission:     datatypes.NewJSONSlice(trimLines(req.Mission)),
	}

	if existing, err := s.site.GetAbout(ctx); err == nil {
		about.DescriptionImage = existing.DescriptionImage
	}
	if descriptionImage != "" {
		about.DescriptionImage = descriptionImage
	}

	if err := s.site.UpsertAbout(ctx, &about); err != nil {
		return dto.AboutResponse{}, err
	}

	s.logger.Info().Msg("about section updated")
	return dto.NewAboutResponse(about), nil
}

func (s *siteService) Settings(ctx context.Context) (dto.SettingsResponse, error) {
	settings, err := s.site.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SettingsResponse{}, nil
		}
		return dto.SettingsResponse{}, err
	}
	return dto.NewSettingsResponse(settings), nil
}

// UpdateSettings keeps existing images when no replacements were uploaded.
func (s *siteService) UpdateSettings(ctx context.Context, req dto.SettingsRequest, logo, headerImage, headmasterPhoto string) (dto.SettingsResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.SettingsResponse{}, err
	}

	settings := models.SiteSettings{
		SchoolName:        strings.TrimSpace(req.SchoolName),
		Tagline:           strings.TrimSpace(req.Tagline),
		HeadmasterName:    strings.TrimSpace(req.HeadmasterName),
		HeadmasterMessage: s.richText.Sanitize(req.HeadmasterMessage),
	}

	if existing, err := s.site.GetSettings(ctx); err == nil {
		settings.Logo = existing.Logo
		settings.HeaderImage = existing.HeaderImage
		settings.HeadmasterPhoto = existing.HeadmasterPhoto
	}
	if logo != "" {
		settings.Logo = logo
	}
	if headerImage != "" {
		settings.HeaderImage = headerImage
	}
	if headmasterPhoto != "" {
		settings.HeadmasterPhoto = headmasterPhoto
	}

	if err := s.site.UpsertSettings(ctx, &settings); err != nil {
		return dto.SettingsResponse{}, err
	}

	s.logger.Info().Msg("site settings updated")
	return dto.NewSettingsResponse(settings), nil
}

func trimLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
