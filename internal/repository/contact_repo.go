package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-go-api/internal/models"
)

// ContactMessageFilter narrows inbox listings.
type ContactMessageFilter struct {
	Search   string
	Page     int
	PageSize int
}

// ContactMessageRepository persists visitor messages.
type ContactMessageRepository interface {
	Create(ctx context.Context, message *models.ContactMessage) error
	FindByID(ctx context.Context, id uint) (models.ContactMessage, error)
	List(ctx context.Context, filter ContactMessageFilter) ([]models.ContactMessage, int64, error)
	Delete(ctx context.Context, id uint) error
	ListUnread(ctx context.Context, adminID uint, limit int) ([]models.ContactMessage, error)
	ClearUnread(ctx context.Context, adminID uint) error
	ExistsFromEmailSince(ctx context.Context, email string, since time.Time) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type contactMessageRepository struct {
	db *gorm.DB
}

// NewContactMessageRepository constructs a repository backed by GORM.
func NewContactMessageRepository(db *gorm.DB) ContactMessageRepository {
	return &contactMessageRepository{db: db}
}

func (r *contactMessageRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *contactMessageRepository) FindByID(ctx context.Context, id uint) (models.ContactMessage, error) {
	var message models.ContactMessage
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		return models.ContactMessage{}, err
	}
	return message, nil
}

func (r *contactMessageRepository) List(ctx context.Context, filter ContactMessageFilter) ([]models.ContactMessage, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ContactMessage{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?) OR LOWER(subject) LIKE LOWER(?)",
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

	var messages []models.ContactMessage
	if err := query.Order("created_at DESC, id DESC").Find(&messages).Error; err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

func (r *contactMessageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ContactMessage{}, id).Error
}

func (r *contactMessageRepository) ListUnread(ctx context.Context, adminID uint, limit int) ([]models.ContactMessage, error) {
	query := r.db.WithContext(ctx).
		Where("unread_by LIKE ?", models.UnreadPattern(adminID)).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var messages []models.ContactMessage
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// ClearUnread removes the administrator from every unread set it appears in.
func (r *contactMessageRepository) ClearUnread(ctx context.Context, adminID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var messages []models.ContactMessage
		if err := tx.Where("unread_by LIKE ?", models.UnreadPattern(adminID)).Find(&messages).Error; err != nil {
			return err
		}
		for i := range messages {
			messages[i].MarkReadBy(adminID)
			if err := tx.Save(&messages[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *contactMessageRepository) ExistsFromEmailSince(ctx context.Context, email string, since time.Time) (bool, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("email = ? AND created_at > ?", email, since).
		Count(&total).
		Error
	return total > 0, err
}

func (r *contactMessageRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Count(&total).Error
	return total, err
}

// ContactInfoRepository persists the singleton contact page document.
type ContactInfoRepository interface {
	Get(ctx context.Context) (models.ContactInfo, error)
	Upsert(ctx context.Context, info *models.ContactInfo) error
}

type contactInfoRepository struct {
	db *gorm.DB
}

// NewContactInfoRepository constructs a repository backed by GORM.
func NewContactInfoRepository(db *gorm.DB) ContactInfoRepository {
	return &contactInfoRepository{db: db}
}

func (r *contactInfoRepository) Get(ctx context.Context) (models.ContactInfo, error) {
	var info models.ContactInfo
	if err := r.db.WithContext(ctx).First(&info).Error; err != nil {
		return models.ContactInfo{}, err
	}
	return info, nil
}

func (r *contactInfoRepository) Upsert(ctx context.Context, info *models.ContactInfo) error {
	var existing models.ContactInfo
	err := r.db.WithContext(ctx).First(&existing).Error
	switch {
	case err == nil:
		info.ID = existing.ID
		return r.db.WithContext(ctx).Save(info).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return r.db.WithContext(ctx).Create(info).Error
	default:
		return err
	}
}
