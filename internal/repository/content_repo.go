package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-go-api/internal/models"
)

// GalleryRepository persists gallery images.
type GalleryRepository interface {
	Create(ctx context.Context, image *models.GalleryImage) error
	Update(ctx context.Context, image *models.GalleryImage) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (models.GalleryImage, error)
	List(ctx context.Context) ([]models.GalleryImage, error)
	Count(ctx context.Context) (int64, error)
}

type galleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository constructs a repository backed by GORM.
func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) Create(ctx context.Context, image *models.GalleryImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *galleryRepository) Update(ctx context.Context, image *models.GalleryImage) error {
	return r.db.WithContext(ctx).Save(image).Error
}

func (r *galleryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.GalleryImage{}, id).Error
}

func (r *galleryRepository) FindByID(ctx context.Context, id uint) (models.GalleryImage, error) {
	var image models.GalleryImage
	if err := r.db.WithContext(ctx).First(&image, id).Error; err != nil {
		return models.GalleryImage{}, err
	}
	return image, nil
}

func (r *galleryRepository) List(ctx context.Context) ([]models.GalleryImage, error) {
	var images []models.GalleryImage
	if err := r.db.WithContext(ctx).Order("uploaded_at DESC, id DESC").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *galleryRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.GalleryImage{}).Count(&total).Error
	return total, err
}

// ExtracurricularFilter narrows activity listings.
type ExtracurricularFilter struct {
	Search   string
	Page     int
	PageSize int
}

// ExtracurricularRepository persists extracurricular activities.
type ExtracurricularRepository interface {
	Create(ctx context.Context, activity *models.Extracurricular) error
	Update(ctx context.Context, activity *models.Extracurricular) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (models.Extracurricular, error)
	List(ctx context.Context, filter ExtracurricularFilter) ([]models.Extracurricular, int64, error)
	ListOther(ctx context.Context, excludeID uint, limit int) ([]models.Extracurricular, error)
	Count(ctx context.Context) (int64, error)
}

type extracurricularRepository struct {
	db *gorm.DB
}

// NewExtracurricularRepository constructs a repository backed by GORM.
func NewExtracurricularRepository(db *gorm.DB) ExtracurricularRepository {
	return &extracurricularRepository{db: db}
}

func (r *extracurricularRepository) Create(ctx context.Context, activity *models.Extracurricular) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *extracurricularRepository) Update(ctx context.Context, activity *models.Extracurricular) error {
	return r.db.WithContext(ctx).Save(activity).Error
}

func (r *extracurricularRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Extracurricular{}, id).Error
}

func (r *extracurricularRepository) FindByID(ctx context.Context, id uint) (models.Extracurricular, error) {
	var activity models.Extracurricular
	if err := r.db.WithContext(ctx).First(&activity, id).Error; err != nil {
		return models.Extracurricular{}, err
	}
	return activity, nil
}

func (r *extracurricularRepository) List(ctx context.Context, filter ExtracurricularFilter) ([]models.Extracurricular, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Extracurricular{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?)", pattern)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var activities []models.Extracurricular
	if err := query.Order("name ASC").Find(&activities).Error; err != nil {
		return nil, 0, err
	}

	return activities, total, nil
}

func (r *extracurricularRepository) ListOther(ctx context.Context, excludeID uint, limit int) ([]models.Extracurricular, error) {
	if limit <= 0 {
		limit = 3
	}

	var activities []models.Extracurricular
	err := r.db.WithContext(ctx).
		Where("id <> ?", excludeID).
		Limit(limit).
		Find(&activities).
		Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *extracurricularRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Extracurricular{}).Count(&total).Error
	return total, err
}

// SiteRepository persists the singleton about/settings documents and the
// facility listing.
type SiteRepository interface {
	GetAbout(ctx context.Context) (models.AboutPage, error)
	UpsertAbout(ctx context.Context, about *models.AboutPage) error
	GetSettings(ctx context.Context) (models.SiteSettings, error)
	UpsertSettings(ctx context.Context, settings *models.SiteSettings) error
	ListFacilities(ctx context.Context) ([]models.Facility, error)
}

type siteRepository struct {
	db *gorm.DB
}

// NewSiteRepository constructs a repository backed by GORM.
func NewSiteRepository(db *gorm.DB) SiteRepository {
	return &siteRepository{db: db}
}

func (r *siteRepository) GetAbout(ctx context.Context) (models.AboutPage, error) {
	var about models.AboutPage
	if err := r.db.WithContext(ctx).First(&about).Error; err != nil {
		return models.AboutPage{}, err
	}
	return about, nil
}

func (r *siteRepository) UpsertAbout(ctx context.Context, about *models.AboutPage) error {
	var existing models.AboutPage
	err := r.db.WithContext(ctx).First(&existing).Error
	switch {
	case err == nil:
		about.ID = existing.ID
		return r.db.WithContext(ctx).Save(about).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return r.db.WithContext(ctx).Create(about).Error
	default:
		return err
	}
}

func (r *siteRepository) GetSettings(ctx context.Context) (models.SiteSettings, error) {
	var settings models.SiteSettings
	if err := r.db.WithContext(ctx).First(&settings).Error; err != nil {
		return models.SiteSettings{}, err
	}
	return settings, nil
}

func (r *siteRepository) UpsertSettings(ctx context.Context, settings *models.SiteSettings) error {
	var existing models.SiteSettings
	err := r.db.WithContext(ctx).First(&existing).Error
	switch {
	case err == nil:
		settings.ID = existing.ID
		return r.db.WithContext(ctx).Save(settings).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return r.db.WithContext(ctx).Create(settings).Error
	default:
		return err
	}
}

func (r *siteRepository) ListFacilities(ctx context.Context) ([]models.Facility, error) {
	var facilities []models.Facility
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&facilities).Error; err != nil {
		return nil, err
	}
	return facilities, nil
}
