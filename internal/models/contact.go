package models

import (
	"time"

	"gorm.io/gorm"
)

// ContactMessage stores an inbound message from a site visitor. The unread
// set starts with every administrator id existing at creation time.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Email     string    `gorm:"size:160;not null;index" json:"email"`
	Subject   string    `gorm:"size:255" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	UnreadRaw string    `gorm:"column:unread_by;type:text" json:"-"`
	UnreadBy  []uint    `gorm:"-" json:"unread_by"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// BeforeSave serialises the unread set before persisting.
func (m *ContactMessage) BeforeSave(tx *gorm.DB) error {
	m.UnreadRaw = encodeIDSet(m.UnreadBy)
	return nil
}

// AfterFind hydrates the unread set after retrieval.
func (m *ContactMessage) AfterFind(tx *gorm.DB) error {
	m.UnreadBy = decodeIDSet(m.UnreadRaw)
	return nil
}

// MarkReadBy removes the administrator from the unread set.
func (m *ContactMessage) MarkReadBy(adminID uint) {
	m.UnreadBy = removeID(m.UnreadBy, adminID)
}

// ContactInfo is the singleton document backing the public contact page.
type ContactInfo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Address   string    `gorm:"size:255" json:"address"`
	Email     string    `gorm:"size:160" json:"email"`
	Phone     string    `gorm:"size:64" json:"phone"`
	Hours     string    `gorm:"size:128" json:"hours"`
	MapURL    string    `gorm:"size:512" json:"map_url"`
	UpdatedAt time.Time `json:"updated_at"`
}
