package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

// AuditLog: Değişiklik izi. Sadece kayıt amaçlıdır, geri alma mekanizması
// değildir (stok düzeltmeleri manuel yapılır).
type AuditLog struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"index" json:"user_id"`
	UserName    string      `gorm:"size:255" json:"user_name"`
	EntityType  string      `gorm:"size:64;index;not null" json:"entity_type"`
	EntityID    uint        `gorm:"index" json:"entity_id"`
	Action      AuditAction `gorm:"size:16;not null" json:"action"`
	Description string      `gorm:"size:500" json:"description"`
	BeforeData  string      `gorm:"type:text" json:"before_data"` // JSON
	AfterData   string      `gorm:"type:text" json:"after_data"`  // JSON
	CreatedAt   time.Time   `json:"created_at"`
}
