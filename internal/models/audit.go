package models

import (
	"time"
)

// AuditLog represents a system audit entry
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Username  string    `gorm:"size:64" json:"username"`
	Action    string    `gorm:"size:50;not null" json:"action"` // LOGIN, VIEW, EXPORT, SEED
	Entity    string    `gorm:"size:50;not null" json:"entity"` // Contract, User
	EntityID  string    `gorm:"size:64" json:"entity_id"`
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	UserAgent string    `gorm:"size:255" json:"user_agent"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit actions
const (
	AuditActionLogin  = "LOGIN"
	AuditActionView   = "VIEW"
	AuditActionExport = "EXPORT"
	AuditActionSeed   = "SEED"
)
