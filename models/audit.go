package models

import "time"

// AuditLog is append-only; rows are removed only by the retention sweep or
// an explicit admin purge.
type AuditLog struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	UserID    *uint     `gorm:"column:user_id" json:"user_id"`
	Action    string    `gorm:"column:action;size:200;not null" json:"action"`
	Details   string    `gorm:"column:details" json:"details"`
	IPAddress string    `gorm:"column:ip_address;size:50" json:"ip_address"`
	CreatedAt time.Time `gorm:"column:created_at;index" json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }

// RetentionState is a single-row watermark recording when the audit-log
// sweep last ran, so a restart cannot double-fire or skip the daily sweep.
type RetentionState struct {
	ID          uint      `gorm:"column:id;primaryKey" json:"id"`
	LastSweptAt time.Time `gorm:"column:last_swept_at" json:"last_swept_at"`
}

func (RetentionState) TableName() string { return "retention_state" }
