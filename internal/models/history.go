package models

import (
	"time"

	"fundit/internal/uuid"

	"gorm.io/gorm"
)

// History is one immutable add/remove mutation of a goal entity's running
// amount. Rows are written by the goal engine only and outlive their target.
type History struct {
	ID         string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *string    `gorm:"type:uuid;index" json:"user_id"`
	Action     GoalAction `gorm:"size:10;not null" json:"action"`
	Amount     Money      `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date       Date       `gorm:"not null;index" json:"date"`
	TargetKind GoalKind   `gorm:"size:32;not null;index:idx_history_target" json:"content_type"`
	TargetID   string     `gorm:"type:uuid;not null;index:idx_history_target" json:"object_id"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TableName keeps the singular table name.
func (History) TableName() string { return "history" }

// BeforeCreate hook generates a UUIDv7 for new records
func (h *History) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.New()
	}
	return nil
}

// Target returns the referenced goal entity.
func (h *History) Target() TargetRef {
	return TargetRef{Kind: h.TargetKind, ID: h.TargetID}
}

func (h *History) String() string {
	label := "Add"
	if h.Action == GoalActionRemove {
		label = "Remove"
	}
	return label + " " + h.Amount.String() + " at " + h.Date.String()
}
