package models

import "time"

// Administrator roles.
const (
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// Admin represents a backend user able to manage site content.
type Admin struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Name         string     `gorm:"size:128" json:"name"`
	Email        string     `gorm:"size:160" json:"email"`
	PasswordHash string     `gorm:"size:128;not null" json:"-"`
	Role         string     `gorm:"size:32;not null;default:admin" json:"role"`
	Avatar       string     `gorm:"size:255" json:"avatar"`
	IsBlocked    bool       `gorm:"not null;default:false" json:"is_blocked"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsSuperadmin reports whether the admin holds the superadmin role.
func (a Admin) IsSuperadmin() bool {
	return a.Role == RoleSuperadmin
}
