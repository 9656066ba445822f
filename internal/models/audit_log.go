package models

// AuditAction names a user activity recorded in the audit log.
type AuditAction string

const (
	AuditRegister       AuditAction = "REGISTER"
	AuditUpdateSettings AuditAction = "UPDATE_SETTINGS"
	AuditChangePassword AuditAction = "CHANGE_PASSWORD"
	AuditCreate         AuditAction = "CREATE"
	AuditUpdate         AuditAction = "UPDATE"
	AuditDelete         AuditAction = "DELETE"
	AuditUpdateAmount   AuditAction = "UPDATE_AMOUNT"
)

// AuditLog records create/update/delete activity performed by a user.
// Balance mutations are additionally recorded in History.
type AuditLog struct {
	Base
	UserID       string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Action       AuditAction `gorm:"size:50;not null" json:"action"`
	ResourceType string      `gorm:"size:50;not null" json:"resource_type"`
	ResourceID   string      `gorm:"size:36" json:"resource_id"`
	IPAddress    string      `json:"ip_address"`
	Changes      string      `json:"changes,omitempty"`
}
