package models

import (
	"time"

	"fundit/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for all tables
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}

// GetID returns the primary key.
func (b Base) GetID() string { return b.ID }

// Owned marks a row that belongs to exactly one user. Rows are removed
// together with their owner.
type Owned struct {
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
}

// OwnerID returns the owning user's ID.
func (o Owned) OwnerID() string { return o.UserID }

// SetOwner assigns the owning user.
func (o *Owned) SetOwner(userID string) { o.UserID = userID }
