package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sekolah-go-api/internal/dto"
	"github.com/noah-isme/sekolah-go-api/internal/repository"
)

const dashboardCacheKey = "dashboard:counts"

// DashboardService assembles the admin landing page data. The collection
// counts are cached briefly; the unread badge itself is never cached.
type DashboardService interface {
	Overview(ctx context.Context) (dto.DashboardResponse, error)
}

type dashboardService struct {
	classes    repository.ClassGroupRepository
	activities repository.ExtracurricularRepository
	articles   repository.ArticleRepository
	teachers   repository.TeacherRepository
	admins     repository.AdminRepository
	materials  repository.MaterialRepository
	gallery    repository.GalleryRepository
	messages   repository.ContactMessageRepository
	logs       repository.AuditLogRepository
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     zerolog.Logger
}

// NewDashboardService constructs the dashboard service. cache may be nil;
// counts are then computed on every request.
func NewDashboardService(
	classes repository.ClassGroupRepository,
	activities repository.ExtracurricularRepository,
	articles repository.ArticleRepository,
	teachers repository.TeacherRepository,
	admins repository.AdminRepository,
	materials repository.MaterialRepository,
	gallery repository.GalleryRepository,
	messages repository.ContactMessageRepository,
	logs repository.AuditLogRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) DashboardService {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	return &dashboardService{
		classes:    classes,
		activities: activities,
		articles:   articles,
		teachers:   teachers,
		admins:     admins,
		materials:  materials,
		gallery:    gallery,
		messages:   messages,
		logs:       logs,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) Overview(ctx context.Context) (dto.DashboardResponse, error) {
	counts, err := s.counts(ctx)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	messages, _, err := s.messages.List(ctx, repository.ContactMessageFilter{Page: 1, PageSize: 5})
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	entries, err := s.logs.List(ctx, 5)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	return dto.DashboardResponse{
		Counts:         counts,
		LatestMessages: dto.NewContactMessageResponseSlice(messages),
		RecentLogs:     dto.NewAuditLogResponseSlice(entries),
	}, nil
}

func (s *dashboardService) counts(ctx context.Context) (dto.DashboardCounts, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, dashboardCacheKey).Bytes(); err == nil {
			var cached dto.DashboardCounts
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	var counts dto.DashboardCounts
	var err error

	if counts.Classes, err = s.classes.Count(ctx); err != nil {
		return dto.DashboardCounts{}, err
	}
	if counts.Extracurricular, err = s.activities.Count(ctx); err != nil {
		return dto.DashboardCounts{}, err
	}
	if counts.Articles, err = s.articles.Count(ctx); err != nil {
		return dto.DashboardCounts{}, err
	}
	if counts.Teachers, err = s.teachers.Count(ctx); err != nil {
		return dto.DashboardCounts{}, err
	}
	if counts.ActiveAdmins, err = s.admins.CountActive(ctx); err != nil {
		return dto.DashboardCounts{}, err
	}
	if counts.Materials, err = s.materials.Count(ctx); err != nil {
		return dto.DashboardCounts{}, err
	}
	if counts.Gallery, err = s.gallery.Count(ctx); err != nil {
		return dto.DashboardCounts{}, err
	}
	if counts.ContactMessages, err = s.messages.Count(ctx); err != nil {
		return dto.DashboardCounts{}, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(counts); err == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, raw, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache dashboard counts")
			}
		}
	}

	return counts, nil
}
