package dto

import (
	"time"

	"github.com/noah-isme/sekolah-go-api/internal/models"
)

// ClassGroupRequest carries the class create/update form fields.
type ClassGroupRequest struct {
	Title       string `json:"title" form:"title" validate:"required,min=1,max=128"`
	Description string `json:"description" form:"description" validate:"omitempty"`
}

// ClassGroupResponse serializes a class group.
type ClassGroupResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewClassGroupResponse converts a model into a DTO.
func NewClassGroupResponse(class models.ClassGroup) ClassGroupResponse {
	return ClassGroupResponse{
		ID:          class.ID,
		Title:       class.Title,
		Description: class.Description,
		CreatedAt:   class.CreatedAt,
	}
}

// NewClassGroupResponseSlice converts a slice of models into DTOs.
func NewClassGroupResponseSlice(classes []models.ClassGroup) []ClassGroupResponse {
	out := make([]ClassGroupResponse, 0, len(classes))
	for _, class := range classes {
		out = append(out, NewClassGroupResponse(class))
	}
	return out
}

// SubjectRequest carries the subject create/update form fields.
type SubjectRequest struct {
	ClassGroupID uint   `json:"class_group_id" form:"class_group_id" validate:"required"`
	Title        string `json:"title" form:"title" validate:"required,min=1,max=128"`
	Icon         string `json:"icon" form:"icon" validate:"omitempty,max=64"`
}

// SubjectResponse serializes a subject.
type SubjectResponse struct {
	ID           uint      `json:"id"`
	ClassGroupID uint      `json:"class_group_id"`
	Title        string    `json:"title"`
	Icon         string    `json:"icon"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewSubjectResponse converts a model into a DTO.
func NewSubjectResponse(subject models.Subject) SubjectResponse {
	return SubjectResponse{
		ID:           subject.ID,
		ClassGroupID: subject.ClassGroupID,
		Title:        subject.Title,
		Icon:         subject.Icon,
		CreatedAt:    subject.CreatedAt,
	}
}

// NewSubjectResponseSlice converts a slice of models into DTOs.
func NewSubjectResponseSlice(subjects []models.Subject) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		out = append(out, NewSubjectResponse(subject))
	}
	return out
}

// MaterialRequest carries the material create/update form fields. The file
// travels separately as multipart content.
type MaterialRequest struct {
	SubjectID   uint   `json:"subject_id" form:"subject_id" validate:"required"`
	Title       string `json:"title" form:"title" validate:"required,min=1,max=255"`
	Description string `json:"description" form:"description" validate:"omitempty"`
}

// MaterialResponse serializes a learning material.
type MaterialResponse struct {
	ID          uint      `json:"id"`
	SubjectID   uint      `json:"subject_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FileName    string    `json:"file_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewMaterialResponse converts a model into a DTO.
func NewMaterialResponse(material models.Material) MaterialResponse {
	return MaterialResponse{
		ID:          material.ID,
		SubjectID:   material.SubjectID,
		Title:       material.Title,
		Description: material.Description,
		FileName:    material.FileName,
		CreatedAt:   material.CreatedAt,
	}
}

// NewMaterialResponseSlice converts a slice of models into DTOs.
func NewMaterialResponseSlice(materials []models.Material) []MaterialResponse {
	out := make([]MaterialResponse, 0, len(materials))
	for _, material := range materials {
		out = append(out, NewMaterialResponse(material))
	}
	return out
}

// MaterialDetailResponse bundles a material with its subject, class and
// sibling suggestions.
type MaterialDetailResponse struct {
	Material MaterialResponse   `json:"material"`
	Subject  SubjectResponse    `json:"subject"`
	Class    ClassGroupResponse `json:"class"`
	More     []MaterialResponse `json:"more_materials"`
}
