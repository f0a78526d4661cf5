package dto

import (
	"time"

	"github.com/noah-isme/sekolah-go-api/internal/models"
)

// Gallery item sources in the merged admin listing.
const (
	GallerySourceGallery     = "gallery"
	GallerySourcePublication = "publication"
)

// GalleryItemView is one entry of the merged gallery listing; it covers both
// uploaded gallery images and article feature images.
type GalleryItemView struct {
	ID         uint      `json:"id"`
	FileName   string    `json:"filename"`
	Title      string    `json:"title"`
	Source     string    `json:"source"`
	Category   string    `json:"category,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// GalleryListResponse wraps the merged, paginated gallery listing.
type GalleryListResponse struct {
	Items      []GalleryItemView `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// GalleryRequest carries the gallery upload/edit form fields.
type GalleryRequest struct {
	Title string `json:"title" form:"title" validate:"omitempty,max=255"`
}

// ExtracurricularRequest carries the activity create/update form fields.
type ExtracurricularRequest struct {
	Name        string `json:"name" form:"name" validate:"required,min=2,max=128"`
	Description string `json:"description" form:"description" validate:"omitempty"`
}

// ExtracurricularResponse serializes an activity.
type ExtracurricularResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewExtracurricularResponse converts a model into a DTO.
func NewExtracurricularResponse(activity models.Extracurricular) ExtracurricularResponse {
	return ExtracurricularResponse{
		ID:          activity.ID,
		Name:        activity.Name,
		Description: activity.Description,
		Image:       activity.Image,
		CreatedAt:   activity.CreatedAt,
	}
}

// NewExtracurricularResponseSlice converts a slice of models into DTOs.
func NewExtracurricularResponseSlice(activities []models.Extracurricular) []ExtracurricularResponse {
	out := make([]ExtracurricularResponse, 0, len(activities))
	for _, activity := range activities {
		out = append(out, NewExtracurricularResponse(activity))
	}
	return out
}

// ExtracurricularListResponse wraps a paginated activity listing.
type ExtracurricularListResponse struct {
	Items      []ExtracurricularResponse `json:"items"`
	Pagination PaginationMeta            `json:"pagination"`
}

// ExtracurricularDetailResponse bundles an activity with sibling suggestions.
type ExtracurricularDetailResponse struct {
	Activity ExtracurricularResponse   `json:"activity"`
	Others   []ExtracurricularResponse `json:"others"`
}

// AboutRequest updates the about section. Vision and mission arrive one
// entry per line from the admin form.
type AboutRequest struct {
	Description string   `json:"description" form:"description" validate:"omitempty"`
	Vision      []string `json:"vision" validate:"omitempty,dive,max=512"`
	Mission     []string `json:"mission" validate:"omitempty,dive,max=512"`
}

// AboutResponse serializes the about section.
type AboutResponse struct {
	Description      string    `json:"description"`
	DescriptionImage string    `json:"description_image"`
	Vision           []string  `json:"vision"`
	Mission          []string  `json:"mission"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewAboutResponse converts a model into a DTO.
func NewAboutResponse(about models.AboutPage) AboutResponse {
	return AboutResponse{
		Description:      about.Description,
		DescriptionImage: about.DescriptionImage,
		Vision:           about.Vision,
		Mission:          about.Mission,
		UpdatedAt:        about.UpdatedAt,
	}
}

// SettingsRequest updates the school-wide presentation settings.
type SettingsRequest struct {
	SchoolName        string `json:"school_name" form:"school_name" validate:"omitempty,max=255"`
	Tagline           string `json:"tagline" form:"tagline" validate:"omitempty,max=255"`
	HeadmasterName    string `json:"headmaster_name" form:"headmaster_name" validate:"omitempty,max=128"`
	HeadmasterMessage string `json:"headmaster_message" form:"headmaster_message" validate:"omitempty"`
}

// SettingsResponse serializes the site settings document.
type SettingsResponse struct {
	SchoolName        string    `json:"school_name"`
	Tagline           string    `json:"tagline"`
	Logo              string    `json:"logo"`
	HeaderImage       string    `json:"header_image"`
	HeadmasterName    string    `json:"headmaster_name"`
	HeadmasterPhoto   string    `json:"headmaster_photo"`
	HeadmasterMessage string    `json:"headmaster_message"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewSettingsResponse converts a model into a DTO.
func NewSettingsResponse(settings models.SiteSettings) SettingsResponse {
	return SettingsResponse{
		SchoolName:        settings.SchoolName,
		Tagline:           settings.Tagline,
		Logo:              settings.Logo,
		HeaderImage:       settings.HeaderImage,
		HeadmasterName:    settings.HeadmasterName,
		HeadmasterPhoto:   settings.HeadmasterPhoto,
		HeadmasterMessage: settings.HeadmasterMessage,
		UpdatedAt:         settings.UpdatedAt,
	}
}

// FacilityResponse serializes a home page facility card.
type FacilityResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// NewFacilityResponseSlice converts a slice of models into DTOs.
func NewFacilityResponseSlice(facilities []models.Facility) []FacilityResponse {
	out := make([]FacilityResponse, 0, len(facilities))
	for _, facility := range facilities {
		out = append(out, FacilityResponse{
			ID:          facility.ID,
			Name:        facility.Name,
			Icon:        facility.Icon,
			Description: facility.Description,
		})
	}
	return out
}

// HomeResponse bundles the public landing page data.
type HomeResponse struct {
	About      *AboutResponse     `json:"about,omitempty"`
	Facilities []FacilityResponse `json:"facilities"`
	Latest     []ArticleResponse  `json:"latest_publications"`
}
