package models

import (
	"time"
)

type VersionStatus string

const (
	StatusDraft              VersionStatus = "draft"
	StatusPendingTranslation VersionStatus = "pending_translation"
	StatusPendingApproval    VersionStatus = "pending_approval"
	StatusApproved           VersionStatus = "approved"
	StatusRejected           VersionStatus = "rejected"
)

// Version is an immutable snapshot of a document's content. Status is the only
// column that changes after insert, and it is a cache of what the approval
// ledger says.
type Version struct {
	ID            uint          `json:"id" gorm:"primarykey"`
	DocumentID    uint          `json:"document_id" gorm:"not null;uniqueIndex:idx_versions_document_number"`
	VersionNumber int           `json:"version_number" gorm:"not null;uniqueIndex:idx_versions_document_number"`
	Content       string        `json:"content" gorm:"type:text;not null"`
	ContentHash   string        `json:"content_hash" gorm:"size:64;not null;index"`
	Status        VersionStatus `json:"status" gorm:"size:32;not null;default:'draft'"`
	CreatedBy     uint          `json:"created_by" gorm:"not null"`
	Segments      []Segment     `json:"segments,omitempty" gorm:"foreignKey:VersionID"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
