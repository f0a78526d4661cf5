package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-go-api/internal/dto"
	"github.com/noah-isme/sekolah-go-api/internal/models"
	"github.com/noah-isme/sekolah-go-api/internal/repository"
)

const relatedPostLimit = 3

// ErrArticleNotFound indicates the publication does not exist.
var ErrArticleNotFound = errors.New("article not found")

// ArticleService manages publications and their visitor comments.
type ArticleService interface {
	List(ctx context.Context, search, category string, page, pageSize int) (dto.ArticleListResponse, error)
	Detail(ctx context.Context, id uint) (dto.ArticleDetailResponse, error)
	Create(ctx context.Context, req dto.ArticleRequest, author, featureImage, attachment string) (dto.ArticleResponse, error)
	Update(ctx context.Context, id uint, req dto.ArticleRequest, featureImage, attachment string) (dto.ArticleResponse, error)
	Delete(ctx context.Context, id uint) (models.Article, error)
	AddComment(ctx context.Context, articleID uint, req dto.CommentRequest) (dto.CommentResponse, error)
}

type articleService struct {
	articles  repository.ArticleRepository
	comments  repository.CommentRepository
	validator *validator.Validate
	logger    zerolog.Logger
	// richText keeps editor formatting, plainText strips everything.
	richText  *bluemonday.Policy
	plainText *bluemonday.Policy
}

// NewArticleService constructs the publication service.
func NewArticleService(
	articles repository.ArticleRepository,
	comments repository.CommentRepository,
	validator *validator.Validate,
	logger zerolog.Logger,
) ArticleService {
	return &articleService{
		articles:  articles,
		comments:  comments,
		validator: validator,
		logger:    logger.With().Str("component", "article_service").Logger(),
		richText:  bluemonday.UGCPolicy(),
		plainText: bluemonday.StrictPolicy(),
	}
}

func (s *articleService) List(ctx context.Context, search, category string, page, pageSize int) (dto.ArticleListResponse, error) {
	filter := repository.ArticleFilter{
		Search:   strings.TrimSpace(search),
		Category: strings.TrimSpace(category),
		Page:     page,
		PageSize: pageSize,
	}

	articles, total, err := s.articles.List(ctx, filter)
	if err != nil {
		return dto.ArticleListResponse{}, err
	}

	items, err := s.withCommentCounts(ctx, articles)
	if err != nil {
		return dto.ArticleListResponse{}, err
	}

	counts, err := s.articles.CountByCategory(ctx)
	if err != nil {
		return dto.ArticleListResponse{}, err
	}

	latest := make(map[string][]dto.ArticleResponse, len(counts))
	for cat := range counts {
		posts, err := s.articles.ListRelated(ctx, 0, cat, relatedPostLimit)
		if err != nil {
			return dto.ArticleListResponse{}, err
		}
		views, err := s.withCommentCounts(ctx, posts)
		if err != nil {
			return dto.ArticleListResponse{}, err
		}
		latest[cat] = views
	}

	return dto.ArticleListResponse{
		Items:            items,
		Pagination:       dto.NewPaginationMeta(page, pageSize, total),
		CategoryCounts:   counts,
		LatestByCategory: latest,
	}, nil
}

func (s *articleService) Detail(ctx context.Context, id uint) (dto.ArticleDetailResponse, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ArticleDetailResponse{}, ErrArticleNotFound
		}
		return dto.ArticleDetailResponse{}, err
	}

	comments, err := s.comments.ListByArticle(ctx, id)
	if err != nil {
		return dto.ArticleDetailResponse{}, err
	}

	related, err := s.articles.ListRelated(ctx, id, article.Category, relatedPostLimit)
	if err != nil {
		return dto.ArticleDetailResponse{}, err
	}
	relatedViews, err := s.withCommentCounts(ctx, related)
	if err != nil {
		return dto.ArticleDetailResponse{}, err
	}

	counts, err := s.articles.CountByCategory(ctx)
	if err != nil {
		return dto.ArticleDetailResponse{}, err
	}

	view := dto.NewArticleResponse(article)
	view.CommentCount = int64(len(comments))

	return dto.ArticleDetailResponse{
		Article:        view,
		Comments:       dto.NewCommentResponseSlice(comments),
		RelatedPosts:   relatedViews,
		CategoryCounts: counts,
	}, nil
}

func (s *articleService) Create(ctx context.Context, req dto.ArticleRequest, author, featureImage, attachment string) (dto.ArticleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ArticleResponse{}, err
	}

	article := models.Article{
		Title:        strings.TrimSpace(req.Title),
		Category:     req.Category,
		Content:      s.richText.Sanitize(req.Content),
		FeatureImage: featureImage,
		Attachment:   attachment,
		Author:       author,
	}

	if err := s.articles.Create(ctx, &article); err != nil {
		return dto.ArticleResponse{}, err
	}

	s.logger.Info().Uint("article_id", article.ID).Str("category", article.Category).Msg("article published")
	return dto.NewArticleResponse(article), nil
}

// Update keeps the existing files when no replacements were uploaded.
func (s *articleService) Update(ctx context.Context, id uint, req dto.ArticleRequest, featureImage, attachment string) (dto.ArticleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ArticleResponse{}, err
	}

	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ArticleResponse{}, ErrArticleNotFound
		}
		return dto.ArticleResponse{}, err
	}

	article.Title = strings.TrimSpace(req.Title)
	article.Category = req.Category
	article.Content = s.richText.Sanitize(req.Content)
	if featureImage != "" {
		article.FeatureImage = featureImage
	}
	if attachment != "" {
		article.Attachment = attachment
	}

	if err := s.articles.Update(ctx, &article); err != nil {
		return dto.ArticleResponse{}, err
	}
	return dto.NewArticleResponse(article), nil
}

// Delete removes the article together with its comments and returns the
// record so the caller can clean up attached files.
func (s *articleService) Delete(ctx context.Context, id uint) (models.Article, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Article{}, ErrArticleNotFound
		}
		return models.Article{}, err
	}

	if err := s.comments.DeleteByArticle(ctx, id); err != nil {
		return models.Article{}, err
	}
	if err := s.articles.Delete(ctx, id); err != nil {
		return models.Article{}, err
	}
	return article, nil
}

func (s *articleService) AddComment(ctx context.Context, articleID uint, req dto.CommentRequest) (dto.CommentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.CommentResponse{}, err
	}

	if _, err := s.articles.FindByID(ctx, articleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CommentResponse{}, ErrArticleNotFound
		}
		return dto.CommentResponse{}, err
	}

	comment := models.Comment{
		ArticleID: articleID,
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Text:      s.plainText.Sanitize(strings.TrimSpace(req.Message)),
	}

	if err := s.comments.Create(ctx, &comment); err != nil {
		return dto.CommentResponse{}, err
	}
	return dto.NewCommentResponse(comment), nil
}

func (s *articleService) withCommentCounts(ctx context.Context, articles []models.Article) ([]dto.ArticleResponse, error) {
	views := make([]dto.ArticleResponse, 0, len(articles))
	for _, article := range articles {
		count, err := s.comments.CountByArticle(ctx, article.ID)
		if err != nil {
			return nil, err
		}
		view := dto.NewArticleResponse(article)
		view.CommentCount = count
		views = append(views, view)
	}
	return views, nil
}
