package model

import (
	uuid "github.com/satori/go.uuid"
)

// AuditLog ... Immutable record of a privileged action. Written in the same
// transaction as the state change it describes, never updated or deleted.
type AuditLog struct {
	BaseModel
	ActorID      uuid.UUID `gorm:"type:VARCHAR(36);not null;index:audit_actor_id" json:"actorId"`
	Action       string    `gorm:"type:VARCHAR(64);not null;index:audit_action" json:"action"`
	ResourceType string    `gorm:"type:VARCHAR(32);not null" json:"resourceType"`
	ResourceID   uuid.UUID `gorm:"type:VARCHAR(36);not null" json:"resourceId"`
	Details      string    `gorm:"type:TEXT" json:"details"`
}
