package dto

import (
	"time"

	"github.com/noah-isme/sekolah-go-api/internal/models"
)

// TeacherRequest carries the staff create/update form fields. The avatar
// file travels separately as multipart content.
type TeacherRequest struct {
	TeacherID string `json:"teacher_id" form:"teacher_id" validate:"required,min=1,max=64"`
	Name      string `json:"name" form:"name" validate:"required,min=2,max=128"`
	Position  string `json:"position" form:"position" validate:"omitempty,max=128"`
	Subject   string `json:"subject" form:"subject" validate:"omitempty,max=128"`
	Email     string `json:"email" form:"email" validate:"omitempty,email,max=160"`
	Phone     string `json:"phone" form:"phone" validate:"omitempty,max=64"`
	Instagram string `json:"instagram" form:"instagram" validate:"omitempty,max=255"`
	Facebook  string `json:"facebook" form:"facebook" validate:"omitempty,max=255"`
	LinkedIn  string `json:"linkedin" form:"linkedin" validate:"omitempty,max=255"`
}

// TeacherResponse serializes a staff member.
type TeacherResponse struct {
	ID        uint      `json:"id"`
	TeacherID string    `json:"teacher_id"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	Subject   string    `json:"subject"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Instagram string    `json:"instagram"`
	Facebook  string    `json:"facebook"`
	LinkedIn  string    `json:"linkedin"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTeacherResponse converts a model into a DTO.
func NewTeacherResponse(teacher models.Teacher) TeacherResponse {
	return TeacherResponse{
		ID:        teacher.ID,
		TeacherID: teacher.TeacherID,
		Name:      teacher.Name,
		Position:  teacher.Position,
		Subject:   teacher.Subject,
		Email:     teacher.Email,
		Phone:     teacher.Phone,
		Instagram: teacher.Instagram,
		Facebook:  teacher.Facebook,
		LinkedIn:  teacher.LinkedIn,
		Avatar:    teacher.Avatar,
		CreatedAt: teacher.CreatedAt,
	}
}

// NewTeacherResponseSlice converts a slice of models into DTOs.
func NewTeacherResponseSlice(teachers []models.Teacher) []TeacherResponse {
	out := make([]TeacherResponse, 0, len(teachers))
	for _, teacher := range teachers {
		out = append(out, NewTeacherResponse(teacher))
	}
	return out
}

// TeacherListResponse wraps a paginated staff listing.
type TeacherListResponse struct {
	Items      []TeacherResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}
