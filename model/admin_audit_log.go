package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AdminAuditLog represents audit trail for admin actions
type AdminAuditLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	AdminEmail  string         `gorm:"type:varchar(255);index" json:"admin_email"`
	Action      string         `gorm:"type:varchar(100);not null" json:"action"` // e.g. "news_update"
	Resource    string         `gorm:"type:varchar(100);index" json:"resource"`  // e.g. "news"
	ResourceID  string         `gorm:"type:varchar(64)" json:"resource_id"`
	NewValue    datatypes.JSON `json:"new_value,omitempty"`
	IPAddress   string         `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent   string         `gorm:"type:text" json:"user_agent"`
	Description string         `gorm:"type:text" json:"description"`
}

// TableName specifies the table name for AdminAuditLog
func (AdminAuditLog) TableName() string {
	return "admin_audit_logs"
}
