package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog records one administrative action. The username is a snapshot
// taken at write time so history survives later renames. Entries are
// immutable except for shrinking of the unread set.
type AuditLog struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	AdminID     uint              `gorm:"index;not null" json:"admin_id"`
	Username    string            `gorm:"size:64;not null" json:"username"`
	Action      string            `gorm:"size:255;not null" json:"action"`
	Description string            `gorm:"type:text" json:"description"`
	Metadata    datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	UnreadRaw   string            `gorm:"column:unread_by;type:text" json:"-"`
	UnreadBy    []uint            `gorm:"-" json:"unread_by"`
	CreatedAt   time.Time         `gorm:"index" json:"created_at"`
}

// BeforeSave serialises the unread set before persisting.
func (l *AuditLog) BeforeSave(tx *gorm.DB) error {
	l.UnreadRaw = encodeIDSet(l.UnreadBy)
	return nil
}

// AfterFind hydrates the unread set after retrieval.
func (l *AuditLog) AfterFind(tx *gorm.DB) error {
	l.UnreadBy = decodeIDSet(l.UnreadRaw)
	return nil
}

// MarkReadBy removes the administrator from the unread set.
func (l *AuditLog) MarkReadBy(adminID uint) {
	l.UnreadBy = removeID(l.UnreadBy, adminID)
}
