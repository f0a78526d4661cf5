package dto

import (
	"time"

	"github.com/noah-isme/sekolah-go-api/internal/models"
)

// ArticleRequest carries the publication create/update form fields. Content
// is raw editor HTML; the service sanitises it before persisting.
type ArticleRequest struct {
	Title    string `json:"title" form:"title" validate:"required,min=3,max=255"`
	Category string `json:"category" form:"category" validate:"required,oneof=News Articles Announcement Event"`
	Content  string `json:"content" form:"content" validate:"required"`
}

// ArticleResponse serializes a publication.
type ArticleResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Content      string    `json:"content"`
	FeatureImage string    `json:"feature_image"`
	Attachment   string    `json:"attachment"`
	Author       string    `json:"author"`
	CommentCount int64     `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewArticleResponse converts a model into a DTO.
func NewArticleResponse(article models.Article) ArticleResponse {
	return ArticleResponse{
		ID:           article.ID,
		Title:        article.Title,
		Category:     article.Category,
		Content:      article.Content,
		FeatureImage: article.FeatureImage,
		Attachment:   article.Attachment,
		Author:       article.Author,
		CreatedAt:    article.CreatedAt,
		UpdatedAt:    article.UpdatedAt,
	}
}

// NewArticleResponseSlice converts a slice of models into DTOs.
func NewArticleResponseSlice(articles []models.Article) []ArticleResponse {
	out := make([]ArticleResponse, 0, len(articles))
	for _, article := range articles {
		out = append(out, NewArticleResponse(article))
	}
	return out
}

// ArticleListResponse wraps the paginated public news feed together with the
// category sidebar data.
type ArticleListResponse struct {
	Items            []ArticleResponse            `json:"items"`
	Pagination       PaginationMeta               `json:"pagination"`
	CategoryCounts   map[string]int64             `json:"category_counts"`
	LatestByCategory map[string][]ArticleResponse `json:"latest_by_category,omitempty"`
}

// CommentRequest is the public comment form payload.
type CommentRequest struct {
	Name    string `json:"name" form:"name" validate:"required,min=2,max=128"`
	Email   string `json:"email" form:"email" validate:"omitempty,email,max=160"`
	Message string `json:"message" form:"message" validate:"required,min=1"`
}

// CommentResponse serializes a visitor comment.
type CommentResponse struct {
	ID        uint      `json:"id"`
	ArticleID uint      `json:"article_id"`
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCommentResponse converts a model into a DTO.
func NewCommentResponse(comment models.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		ArticleID: comment.ArticleID,
		Name:      comment.Name,
		Text:      comment.Text,
		AvatarURL: comment.AvatarURL,
		CreatedAt: comment.CreatedAt,
	}
}

// NewCommentResponseSlice converts a slice of models into DTOs.
func NewCommentResponseSlice(comments []models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		out = append(out, NewCommentResponse(comment))
	}
	return out
}

// ArticleDetailResponse bundles an article with its comments and sidebar data.
type ArticleDetailResponse struct {
	Article        ArticleResponse   `json:"article"`
	Comments       []CommentResponse `json:"comments"`
	RelatedPosts   []ArticleResponse `json:"related_posts"`
	CategoryCounts map[string]int64  `json:"category_counts"`
}
