package models

import "time"

// Teacher represents a staff member shown on the public staff listing.
// TeacherID is the school-issued identifier and acts as the natural key.
type Teacher struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TeacherID string    `gorm:"size:64;uniqueIndex;not null" json:"teacher_id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Position  string    `gorm:"size:128" json:"position"`
	Subject   string    `gorm:"size:128" json:"subject"`
	Email     string    `gorm:"size:160" json:"email"`
	Phone     string    `gorm:"size:64" json:"phone"`
	Instagram string    `gorm:"size:255" json:"instagram"`
	Facebook  string    `gorm:"size:255" json:"facebook"`
	LinkedIn  string    `gorm:"size:255" json:"linkedin"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
