package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-go-api/internal/models"
)

// TeacherFilter narrows staff listings.
type TeacherFilter struct {
	Search   string
	Page     int
	PageSize int
}

// TeacherRepository persists staff members.
type TeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	DeleteByTeacherID(ctx context.Context, teacherID string) error
	FindByTeacherID(ctx context.Context, teacherID string) (models.Teacher, error)
	ExistsTeacherID(ctx context.Context, teacherID string) (bool, error)
	List(ctx context.Context, filter TeacherFilter) ([]models.Teacher, int64, error)
	Count(ctx context.Context) (int64, error)
}

type teacherRepository struct {
	db *gorm.DB
}

// NewTeacherRepository constructs a repository backed by GORM.
func NewTeacherRepository(db *gorm.DB) TeacherRepository {
	return &teacherRepository{db: db}
}

func (r *teacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	return r.db.WithContext(ctx).Create(teacher).Error
}

func (r *teacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	return r.db.WithContext(ctx).Save(teacher).Error
}

func (r *teacherRepository) DeleteByTeacherID(ctx context.Context, teacherID string) error {
	return r.db.WithContext(ctx).Where("teacher_id = ?", teacherID).Delete(&models.Teacher{}).Error
}

func (r *teacherRepository) FindByTeacherID(ctx context.Context, teacherID string) (models.Teacher, error) {
	var teacher models.Teacher
	if err := r.db.WithContext(ctx).Where("teacher_id = ?", teacherID).First(&teacher).Error; err != nil {
		return models.Teacher{}, err
	}
	return teacher, nil
}

func (r *teacherRepository) ExistsTeacherID(ctx context.Context, teacherID string) (bool, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Teacher{}).
		Where("teacher_id = ?", teacherID).
		Count(&total).
		Error
	return total > 0, err
}

func (r *teacherRepository) List(ctx context.Context, filter TeacherFilter) ([]models.Teacher, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Teacher{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(teacher_id) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?) OR LOWER(position) LIKE LOWER(?) OR LOWER(subject) LIKE LOWER(?)",
			pattern, pattern, pattern, pattern, pattern,
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

	var teachers []models.Teacher
	if err := query.Order("name ASC").Find(&teachers).Error; err != nil {
		return nil, 0, err
	}

	return teachers, total, nil
}

func (r *teacherRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Teacher{}).Count(&total).Error
	return total, err
}
