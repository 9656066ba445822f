package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"fundit/internal/logger"
	"fundit/internal/models"
)

// auditService writes the per-user activity log.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records action on resourceType/resourceID. Failures are logged and
// never returned; the request that triggered the entry has already
// succeeded.
func (s *auditService) Log(userID string, action models.AuditAction, resourceType, resourceID, ipAddress string, changes map[string]any) {
	log := logger.Get().With(
		"user_id", userID,
		"action", action,
		"resource_type", resourceType,
		"resource_id", resourceID,
	)
	if userID == "" {
		log.Warnw("audit entry without user skipped")
		return
	}

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
	}
	if len(changes) > 0 {
		data, err := json.Marshal(changes)
		if err != nil {
			log.Errorw("failed to marshal audit changes", "error", err)
			data = []byte("{}")
		}
		entry.Changes = string(data)
	}

	if err := s.db.Create(entry).Error; err != nil {
		log.Errorw("failed to create audit log entry", "error", err)
	}
}
