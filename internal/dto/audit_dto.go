package dto

import (
	"time"

	"github.com/noah-isme/sekolah-go-api/internal/models"
)

// Notification kinds surfaced in the badge dropdown.
const (
	NotificationKindMessage = "message"
	NotificationKindLog     = "log"
)

// NotificationView is the read-only projection of one unread item. Badge and
// BadgeClass are determined solely by Kind.
type NotificationView struct {
	Kind       string    `json:"kind"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Icon       string    `json:"icon"`
	Time       time.Time `json:"time"`
	Badge      string    `json:"badge"`
	BadgeClass string    `json:"badge_class"`
}

// AuditLogResponse serializes a ledger entry.
type AuditLogResponse struct {
	ID          uint           `json:"id"`
	AdminID     uint           `json:"admin_id"`
	Username    string         `json:"username"`
	Action      string         `json:"action"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NewAuditLogResponse converts a model into a DTO.
func NewAuditLogResponse(entry models.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:          entry.ID,
		AdminID:     entry.AdminID,
		Username:    entry.Username,
		Action:      entry.Action,
		Description: entry.Description,
		Metadata:    entry.Metadata,
		CreatedAt:   entry.CreatedAt,
	}
}

// NewAuditLogResponseSlice converts a slice of models into DTOs.
func NewAuditLogResponseSlice(entries []models.AuditLog) []AuditLogResponse {
	out := make([]AuditLogResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, NewAuditLogResponse(entry))
	}
	return out
}
