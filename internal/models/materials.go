package models

import "time"

// ClassGroup is a grade-level grouping in the e-learning section.
type ClassGroup struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:128;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Subject belongs to a class group and owns learning materials.
type Subject struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ClassGroupID uint      `gorm:"index;not null" json:"class_group_id"`
	Title        string    `gorm:"size:128;not null" json:"title"`
	Icon         string    `gorm:"size:64" json:"icon"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Material is a downloadable learning resource within a subject.
type Material struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SubjectID   uint      `gorm:"index;not null" json:"subject_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	FileName    string    `gorm:"size:255" json:"file_name"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
