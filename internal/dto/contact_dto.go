package dto

import (
	"time"

	"github.com/noah-isme/sekolah-go-api/internal/models"
)

// ContactSubmitRequest is the public contact form payload.
type ContactSubmitRequest struct {
	Name         string `json:"name" form:"name" validate:"required,min=2,max=128"`
	Email        string `json:"email" form:"email" validate:"required,email,max=160"`
	Subject      string `json:"subject" form:"subject" validate:"omitempty,max=255"`
	Message      string `json:"message" form:"message" validate:"required,min=1"`
	CaptchaToken string `json:"g-recaptcha-response" form:"g-recaptcha-response"`
}

// ContactMessageResponse serializes an inbox message for admins.
type ContactMessageResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	UnreadBy  []uint    `json:"unread_by"`
	CreatedAt time.Time `json:"created_at"`
}

// NewContactMessageResponse converts a model into a DTO.
func NewContactMessageResponse(message models.ContactMessage) ContactMessageResponse {
	return ContactMessageResponse{
		ID:        message.ID,
		Name:      message.Name,
		Email:     message.Email,
		Subject:   message.Subject,
		Message:   message.Message,
		UnreadBy:  message.UnreadBy,
		CreatedAt: message.CreatedAt,
	}
}

// NewContactMessageResponseSlice converts a slice of models into DTOs.
func NewContactMessageResponseSlice(messages []models.ContactMessage) []ContactMessageResponse {
	out := make([]ContactMessageResponse, 0, len(messages))
	for _, message := range messages {
		out = append(out, NewContactMessageResponse(message))
	}
	return out
}

// ContactMessageListResponse wraps a paginated inbox listing.
type ContactMessageListResponse struct {
	Items      []ContactMessageResponse `json:"items"`
	Pagination PaginationMeta           `json:"pagination"`
}

// ContactInfoRequest updates the singleton contact page document.
type ContactInfoRequest struct {
	Address string `json:"address" validate:"omitempty,max=255"`
	Email   string `json:"email" validate:"omitempty,email,max=160"`
	Phone   string `json:"phone" validate:"omitempty,max=64"`
	Hours   string `json:"hours" validate:"omitempty,max=128"`
	MapURL  string `json:"map_url" validate:"omitempty,url,max=512"`
}

// ContactInfoResponse serializes the contact page document.
type ContactInfoResponse struct {
	Address   string    `json:"address"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Hours     string    `json:"hours"`
	MapURL    string    `json:"map_url"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewContactInfoResponse converts a model into a DTO.
func NewContactInfoResponse(info models.ContactInfo) ContactInfoResponse {
	return ContactInfoResponse{
		Address:   info.Address,
		Email:     info.Email,
		Phone:     info.Phone,
		Hours:     info.Hours,
		MapURL:    info.MapURL,
		UpdatedAt: info.UpdatedAt,
	}
}
