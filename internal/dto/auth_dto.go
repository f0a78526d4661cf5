package dto

import (
	"time"

	"github.com/noah-isme/sekolah-go-api/internal/models"
)

// LoginRequest carries the admin login credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6"`
	Remember bool   `json:"remember"`
}

// LoginResponse is returned on successful authentication. Token is the
// signed session credential carried back in a cookie as well.
type LoginResponse struct {
	Token string        `json:"token"`
	Admin AdminResponse `json:"admin"`
}

// ForgotPasswordRequest logs a manual reset request for the superadmin.
type ForgotPasswordRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
}

// AdminResponse serializes an administrator account. The password hash is
// never exposed.
type AdminResponse struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Avatar    string     `json:"avatar"`
	IsBlocked bool       `json:"is_blocked"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewAdminResponse converts a model into a DTO.
func NewAdminResponse(admin models.Admin) AdminResponse {
	return AdminResponse{
		ID:        admin.ID,
		Username:  admin.Username,
		Name:      admin.Name,
		Email:     admin.Email,
		Role:      admin.Role,
		Avatar:    admin.Avatar,
		IsBlocked: admin.IsBlocked,
		LastLogin: admin.LastLogin,
		CreatedAt: admin.CreatedAt,
	}
}

// NewAdminResponseSlice converts a slice of models into DTOs.
func NewAdminResponseSlice(admins []models.Admin) []AdminResponse {
	out := make([]AdminResponse, 0, len(admins))
	for _, admin := range admins {
		out = append(out, NewAdminResponse(admin))
	}
	return out
}
