package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-go-api/internal/models"
)

// AdminFilter narrows administrator listings.
type AdminFilter struct {
	Search   string
	Page     int
	PageSize int
}

// AdminRepository persists administrator accounts.
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	Update(ctx context.Context, admin *models.Admin) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (models.Admin, error)
	FindByUsername(ctx context.Context, username string) (models.Admin, error)
	List(ctx context.Context, filter AdminFilter) ([]models.Admin, int64, error)
	ListIDs(ctx context.Context) ([]uint, error)
	SetBlocked(ctx context.Context, id uint, blocked bool) error
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
	CountActive(ctx context.Context) (int64, error)
}

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository constructs a repository backed by GORM.
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *models.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepository) Update(ctx context.Context, admin *models.Admin) error {
	return r.db.WithContext(ctx).Save(admin).Error
}

func (r *adminRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Admin{}, id).Error
}

func (r *adminRepository) FindByID(ctx context.Context, id uint) (models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).First(&admin, id).Error; err != nil {
		return models.Admin{}, err
	}
	return admin, nil
}

func (r *adminRepository) FindByUsername(ctx context.Context, username string) (models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		return models.Admin{}, err
	}
	return admin, nil
}

func (r *adminRepository) List(ctx context.Context, filter AdminFilter) ([]models.Admin, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Admin{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"LOWER(username) LIKE LOWER(?) OR LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
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

	var admins []models.Admin
	if err := query.Order("username ASC").Find(&admins).Error; err != nil {
		return nil, 0, err
	}

	return admins, total, nil
}

func (r *adminRepository) ListIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.Admin{}).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *adminRepository) SetBlocked(ctx context.Context, id uint, blocked bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Admin{}).
		Where("id = ?", id).
		Update("is_blocked", blocked).
		Error
}

func (r *adminRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Admin{}).
		Where("id = ?", id).
		Update("last_login", at).
		Error
}

func (r *adminRepository) CountActive(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Admin{}).
		Where("is_blocked = ?", false).
		Count(&total).
		Error
	return total, err
}
