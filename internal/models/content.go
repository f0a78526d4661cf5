package models

import (
	"time"

	"gorm.io/datatypes"
)

// Article categories accepted by the publication editor.
var ArticleCategories = []string{"News", "Articles", "Announcement", "Event"}

// Article represents a news/article publication. Content holds sanitised
// HTML produced by the admin editor. Author is a snapshot of the publishing
// administrator's username.
type Article struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Category     string    `gorm:"size:64;index" json:"category"`
	Content      string    `gorm:"type:text" json:"content"`
	FeatureImage string    `gorm:"size:255" json:"feature_image"`
	Attachment   string    `gorm:"size:255" json:"attachment"`
	Author       string    `gorm:"size:64" json:"author"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Comment is a public visitor comment attached to an article.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"index;not null" json:"article_id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Email     string    `gorm:"size:160" json:"email"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	AvatarURL string    `gorm:"size:512" json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// GalleryImage captures an image uploaded to the public gallery.
type GalleryImage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FileName   string    `gorm:"size:255;not null" json:"filename"`
	Title      string    `gorm:"size:255" json:"title"`
	UploadedAt time.Time `gorm:"index" json:"uploaded_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Extracurricular describes one extracurricular activity.
type Extracurricular struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Image       string    `gorm:"size:255" json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AboutPage is the singleton document backing the about section.
type AboutPage struct {
	ID               uint                        `gorm:"primaryKey" json:"id"`
	Description      string                      `gorm:"type:text" json:"description"`
	DescriptionImage string                      `gorm:"size:255" json:"description_image"`
	Vision           datatypes.JSONSlice[string] `gorm:"type:json" json:"vision"`
	Mission          datatypes.JSONSlice[string] `gorm:"type:json" json:"mission"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

// SiteSettings is the singleton document with school-wide presentation data.
type SiteSettings struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	SchoolName        string    `gorm:"size:255" json:"school_name"`
	Tagline           string    `gorm:"size:255" json:"tagline"`
	Logo              string    `gorm:"size:255" json:"logo"`
	HeaderImage       string    `gorm:"size:255" json:"header_image"`
	HeadmasterName    string    `gorm:"size:128" json:"headmaster_name"`
	HeadmasterPhoto   string    `gorm:"size:255" json:"headmaster_photo"`
	HeadmasterMessage string    `gorm:"type:text" json:"headmaster_message"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Facility is a school facility highlighted on the home page.
type Facility struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Icon        string    `gorm:"size:64" json:"icon"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
