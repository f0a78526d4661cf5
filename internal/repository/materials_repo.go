package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-go-api/internal/models"
)

// ClassGroupRepository persists grade-level class groups.
type ClassGroupRepository interface {
	Create(ctx context.Context, class *models.ClassGroup) error
	Update(ctx context.Context, class *models.ClassGroup) error
	// DeleteCascade removes the class together with its subjects and their materials.
	DeleteCascade(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (models.ClassGroup, error)
	List(ctx context.Context) ([]models.ClassGroup, error)
	Count(ctx context.Context) (int64, error)
}

type classGroupRepository struct {
	db *gorm.DB
}

// NewClassGroupRepository constructs a repository backed by GORM.
func NewClassGroupRepository(db *gorm.DB) ClassGroupRepository {
	return &classGroupRepository{db: db}
}

func (r *classGroupRepository) Create(ctx context.Context, class *models.ClassGroup) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classGroupRepository) Update(ctx context.Context, class *models.ClassGroup) error {
	return r.db.WithContext(ctx).Save(class).Error
}

func (r *classGroupRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subjectIDs []uint
		if err := tx.Model(&models.Subject{}).Where("class_group_id = ?", id).Pluck("id", &subjectIDs).Error; err != nil {
			return err
		}
		if len(subjectIDs) > 0 {
			if err := tx.Where("subject_id IN ?", subjectIDs).Delete(&models.Material{}).Error; err != nil {
				return err
			}
			if err := tx.Where("class_group_id = ?", id).Delete(&models.Subject{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.ClassGroup{}, id).Error
	})
}

func (r *classGroupRepository) FindByID(ctx context.Context, id uint) (models.ClassGroup, error) {
	var class models.ClassGroup
	if err := r.db.WithContext(ctx).First(&class, id).Error; err != nil {
		return models.ClassGroup{}, err
	}
	return class, nil
}

func (r *classGroupRepository) List(ctx context.Context) ([]models.ClassGroup, error) {
	var classes []models.ClassGroup
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *classGroupRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.ClassGroup{}).Count(&total).Error
	return total, err
}

// SubjectRepository persists subjects within a class group.
type SubjectRepository interface {
	Create(ctx context.Context, subject *models.Subject) error
	Update(ctx context.Context, subject *models.Subject) error
	// DeleteCascade removes the subject together with its materials.
	DeleteCascade(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (models.Subject, error)
	ListByClass(ctx context.Context, classGroupID uint) ([]models.Subject, error)
}

type subjectRepository struct {
	db *gorm.DB
}

// NewSubjectRepository constructs a repository backed by GORM.
func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *subjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	return r.db.WithContext(ctx).Save(subject).Error
}

func (r *subjectRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("subject_id = ?", id).Delete(&models.Material{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Subject{}, id).Error
	})
}

func (r *subjectRepository) FindByID(ctx context.Context, id uint) (models.Subject, error) {
	var subject models.Subject
	if err := r.db.WithContext(ctx).First(&subject, id).Error; err != nil {
		return models.Subject{}, err
	}
	return subject, nil
}

func (r *subjectRepository) ListByClass(ctx context.Context, classGroupID uint) ([]models.Subject, error) {
	var subjects []models.Subject
	err := r.db.WithContext(ctx).
		Where("class_group_id = ?", classGroupID).
		Order("title ASC").
		Find(&subjects).
		Error
	if err != nil {
		return nil, err
	}
	return subjects, nil
}

// MaterialRepository persists learning materials.
type MaterialRepository interface {
	Create(ctx context.Context, material *models.Material) error
	Update(ctx context.Context, material *models.Material) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (models.Material, error)
	ListBySubject(ctx context.Context, subjectID uint) ([]models.Material, error)
	ListMore(ctx context.Context, subjectID, excludeID uint, limit int) ([]models.Material, error)
	Count(ctx context.Context) (int64, error)
}

type materialRepository struct {
	db *gorm.DB
}

// NewMaterialRepository constructs a repository backed by GORM.
func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) Create(ctx context.Context, material *models.Material) error {
	return r.db.WithContext(ctx).Create(material).Error
}

func (r *materialRepository) Update(ctx context.Context, material *models.Material) error {
	return r.db.WithContext(ctx).Save(material).Error
}

func (r *materialRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Material{}, id).Error
}

func (r *materialRepository) FindByID(ctx context.Context, id uint) (models.Material, error) {
	var material models.Material
	if err := r.db.WithContext(ctx).First(&material, id).Error; err != nil {
		return models.Material{}, err
	}
	return material, nil
}

func (r *materialRepository) ListBySubject(ctx context.Context, subjectID uint) ([]models.Material, error) {
	var materials []models.Material
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("created_at DESC, id DESC").
		Find(&materials).
		Error
	if err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *materialRepository) ListMore(ctx context.Context, subjectID, excludeID uint, limit int) ([]models.Material, error) {
	if limit <= 0 {
		limit = 3
	}

	var materials []models.Material
	err := r.db.WithContext(ctx).
		Where("subject_id = ? AND id <> ?", subjectID, excludeID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&materials).
		Error
	if err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *materialRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Material{}).Count(&total).Error
	return total, err
}
