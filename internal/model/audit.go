package model

import "time"

// AuditEvent is a fire-and-forget record of a workflow mutation.
// Before/After hold JSON snapshots of the entity around the change.
type AuditEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Actor      string    `gorm:"type:varchar(255)" json:"actor"`
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityType string    `gorm:"type:varchar(30);not null;index" json:"entity_type"`
	EntityID   string    `gorm:"type:varchar(64);not null" json:"entity_id"`
	Before     string    `gorm:"type:text" json:"before,omitempty"`
	After      string    `gorm:"type:text" json:"after,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
