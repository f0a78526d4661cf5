package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-go-api/internal/models"
)

// ArticleFilter narrows publication listings.
type ArticleFilter struct {
	Search   string
	Category string
	Page     int
	PageSize int
}

// ArticleRepository persists news/article publications.
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (models.Article, error)
	List(ctx context.Context, filter ArticleFilter) ([]models.Article, int64, error)
	ListRelated(ctx context.Context, excludeID uint, category string, limit int) ([]models.Article, error)
	ListWithFeatureImage(ctx context.Context) ([]models.Article, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
	Count(ctx context.Context) (int64, error)
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository constructs a repository backed by GORM.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Save(article).Error
}

func (r *articleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Article{}, id).Error
}

func (r *articleRepository) FindByID(ctx context.Context, id uint) (models.Article, error) {
	var article models.Article
	if err := r.db.WithContext(ctx).First(&article, id).Error; err != nil {
		return models.Article{}, err
	}
	return article, nil
}

func (r *articleRepository) List(ctx context.Context, filter ArticleFilter) ([]models.Article, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Article{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"LOWER(title) LIKE LOWER(?) OR LOWER(category) LIKE LOWER(?) OR LOWER(author) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
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

	var articles []models.Article
	if err := query.Order("created_at DESC, id DESC").Find(&articles).Error; err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

func (r *articleRepository) ListRelated(ctx context.Context, excludeID uint, category string, limit int) ([]models.Article, error) {
	if limit <= 0 {
		limit = 3
	}

	var articles []models.Article
	err := r.db.WithContext(ctx).
		Where("id <> ? AND category = ?", excludeID, category).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&articles).
		Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) ListWithFeatureImage(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.WithContext(ctx).
		Where("feature_image <> ''").
		Order("created_at DESC, id DESC").
		Find(&articles).
		Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Category string
		Total    int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Article{}).
		Select("category, COUNT(*) AS total").
		Group("category").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, entry := range rows {
		counts[entry.Category] = entry.Total
	}
	return counts, nil
}

func (r *articleRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Article{}).Count(&total).Error
	return total, err
}

// CommentRepository persists visitor comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByArticle(ctx context.Context, articleID uint) ([]models.Comment, error)
	CountByArticle(ctx context.Context, articleID uint) (int64, error)
	DeleteByArticle(ctx context.Context, articleID uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository constructs a repository backed by GORM.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) ListByArticle(ctx context.Context, articleID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("created_at ASC, id ASC").
		Find(&comments).
		Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) CountByArticle(ctx context.Context, articleID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("article_id = ?", articleID).
		Count(&total).
		Error
	return total, err
}

func (r *commentRepository) DeleteByArticle(ctx context.Context, articleID uint) error {
	return r.db.WithContext(ctx).Where("article_id = ?", articleID).Delete(&models.Comment{}).Error
}
