package models

import (
	"time"

	"gorm.io/datatypes"
)

// Approval and translation events are recorded against their version so a
// version's trail can be read with one query.
const (
	EntityDocument = "document"
	EntityVersion  = "version"
	EntityUser     = "user"
)

const (
	ActionDocumentCreated      = "document.created"
	ActionVersionCreated       = "version.created"
	ActionVersionStatusChanged = "version.status_changed"
	ActionTranslationSubmitted = "translation.submitted"
	ActionApprovalCreated      = "approval.created"
	ActionUserRoleChanged      = "user.role_changed"
)

type AuditLog struct {
	ID         uint           `json:"id" gorm:"primarykey"`
	EntityType string         `json:"entity_type" gorm:"size:32;not null;index:idx_audit_entity"`
	EntityID   uint           `json:"entity_id" gorm:"not null;index:idx_audit_entity"`
	Action     string         `json:"action" gorm:"size:64;not null"`
	ActorID    uint           `json:"actor_id"`
	IPAddress  string         `json:"ip_address,omitempty" gorm:"size:64"`
	Metadata   datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at" gorm:"not null;index"`
}
