package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-go-api/internal/models"
)

// AuditLogRepository persists the append-only administrative action ledger.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, limit int) ([]models.AuditLog, error)
	ListUnread(ctx context.Context, adminID uint, limit int) ([]models.AuditLog, error)
	ClearUnread(ctx context.Context, adminID uint) error
	Count(ctx context.Context) (int64, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository constructs the audit log repository.
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// List returns entries newest first. A non-positive limit returns everything.
func (r *auditLogRepository) List(ctx context.Context, limit int) ([]models.AuditLog, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var entries []models.AuditLog
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *auditLogRepository) ListUnread(ctx context.Context, adminID uint, limit int) ([]models.AuditLog, error) {
	query := r.db.WithContext(ctx).
		Where("unread_by LIKE ?", models.UnreadPattern(adminID)).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var entries []models.AuditLog
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ClearUnread removes the administrator from every unread set it appears in.
// Each row update is atomic on its own; the operation as a whole is
// idempotent, so a partial run heals on retry.
func (r *auditLogRepository) ClearUnread(ctx context.Context, adminID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entries []models.AuditLog
		if err := tx.Where("unread_by LIKE ?", models.UnreadPattern(adminID)).Find(&entries).Error; err != nil {
			return err
		}
		for i := range entries {
			entries[i].MarkReadBy(adminID)
			if err := tx.Save(&entries[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *auditLogRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.AuditLog{}).Count(&total).Error
	return total, err
}
