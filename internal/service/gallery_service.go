package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-go-api/internal/dto"
	"github.com/noah-isme/sekolah-go-api/internal/models"
	"github.com/noah-isme/sekolah-go-api/internal/repository"
)

// ErrGalleryImageNotFound indicates the gallery image does not exist.
var ErrGalleryImageNotFound = errors.New("gallery image not found")

// GalleryService manages gallery uploads and the merged public listing.
type GalleryService interface {
	// List merges uploaded gallery images with article feature images into a
	// single newest-first view, filtered and paginated in memory.
	List(ctx context.Context, search string, page, pageSize int) (dto.GalleryListResponse, error)
	Create(ctx context.Context, req dto.GalleryRequest, fileName string) (dto.GalleryItemView, error)
	Update(ctx context.Context, id uint, req dto.GalleryRequest, fileName string) (dto.GalleryItemView, error)
	Delete(ctx context.Context, id uint) (models.GalleryImage, error)
}

type galleryService struct {
	gallery   repository.GalleryRepository
	articles  repository.ArticleRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewGalleryService constructs the gallery service.
func NewGalleryService(
	gallery repository.GalleryRepository,
	articles repository.ArticleRepository,
	validator *validator.Validate,
	logger zerolog.Logger,
) GalleryService {
	return &galleryService{
		gallery:   gallery,
		articles:  articles,
		validator: validator,
		logger:    logger.With().Str("component", "gallery_service").Logger(),
	}
}

func (s *galleryService) List(ctx context.Context, search string, page, pageSize int) (dto.GalleryListResponse, error) {
	images, err := s.gallery.List(ctx)
	if err != nil {
		return dto.GalleryListResponse{}, err
	}

	articles, err := s.articles.ListWithFeatureImage(ctx)
	if err != nil {
		return dto.GalleryListResponse{}, err
	}

	items := make([]dto.GalleryItemView, 0, len(images)+len(articles))
	for _, image := range images {
		items = append(items, dto.GalleryItemView{
			ID:         image.ID,
			FileName:   image.FileName,
			Title:      image.Title,
			Source:     dto.GallerySourceGallery,
			UploadedAt: image.UploadedAt,
		})
	}
	for _, article := range articles {
		items = append(items, dto.GalleryItemView{
			ID:         article.ID,
			FileName:   article.FeatureImage,
			Title:      article.Title,
			Source:     dto.GallerySourcePublication,
			Category:   article.Category,
			UploadedAt: article.CreatedAt,
		})
	}

	if needle := strings.ToLower(strings.TrimSpace(search)); needle != "" {
		filtered := items[:0]
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.Title), needle) ||
				strings.Contains(strings.ToLower(item.FileName), needle) {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UploadedAt.After(items[j].UploadedAt)
	})

	total := int64(len(items))
	if pageSize > 0 {
		if page <= 0 {
			page = 1
		}
		start := (page - 1) * pageSize
		if start > len(items) {
			start = len(items)
		}
		end := start + pageSize
		if end > len(items) {
			end = len(items)
		}
		items = items[start:end]
	}

	return dto.GalleryListResponse{
		Items:      items,
		Pagination: dto.NewPaginationMeta(page, pageSize, total),
	}, nil
}

func (s *galleryService) Create(ctx context.Context, req dto.GalleryRequest, fileName string) (dto.GalleryItemView, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.GalleryItemView{}, err
	}

	image := models.GalleryImage{
		FileName: fileName,
		Title:    strings.TrimSpace(req.Title),
	}

	if err := s.gallery.Create(ctx, &image); err != nil {
		return dto.GalleryItemView{}, err
	}

	s.logger.Info().Uint("image_id", image.ID).Msg("gallery image added")
	return dto.GalleryItemView{
		ID:         image.ID,
		FileName:   image.FileName,
		Title:      image.Title,
		Source:     dto.GallerySourceGallery,
		UploadedAt: image.UploadedAt,
	}, nil
}

func (s *galleryService) Update(ctx context.Context, id uint, req dto.GalleryRequest, fileName string) (dto.GalleryItemView, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.GalleryItemView{}, err
	}

	image, err := s.gallery.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GalleryItemView{}, ErrGalleryImageNotFound
		}
		return dto.GalleryItemView{}, err
	}

	image.Title = strings.TrimSpace(req.Title)
	if fileName != "" {
		image.FileName = fileName
	}

	if err := s.gallery.Update(ctx, &image); err != nil {
		return dto.GalleryItemView{}, err
	}

	return dto.GalleryItemView{
		ID:         image.ID,
		FileName:   image.FileName,
		Title:      image.Title,
		Source:     dto.GallerySourceGallery,
		UploadedAt: image.UploadedAt,
	}, nil
}

// Delete returns the removed record so the caller can clean up the file.
func (s *galleryService) Delete(ctx context.Context, id uint) (models.GalleryImage, error) {
	image, err := s.gallery.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.GalleryImage{}, ErrGalleryImageNotFound
		}
		return models.GalleryImage{}, err
	}

	if err := s.gallery.Delete(ctx, id); err != nil {
		return models.GalleryImage{}, err
	}
	return image, nil
}
