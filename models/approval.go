package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

func (d Decision) Valid() bool {
	return d == DecisionApproved || d == DecisionRejected
}

// ErrImmutableRecord is returned by gorm hooks when code tries to update or
// delete a ledger row.
var ErrImmutableRecord = errors.New("ledger rows are append-only")

// Approval is one entry of the approval ledger. Rows are only ever inserted.
type Approval struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	VersionID uint      `json:"version_id" gorm:"not null;index:idx_approvals_version_target"`
	Target    Target    `json:"target" gorm:"size:35;not null;index:idx_approvals_version_target"`
	ActorID   uint      `json:"actor_id" gorm:"not null"`
	ActorRole UserRole  `json:"actor_role" gorm:"size:32;not null"`
	Decision  Decision  `json:"decision" gorm:"size:16;not null"`
	Comment   string    `json:"comment,omitempty" gorm:"type:text"`
	IPAddress string    `json:"ip_address,omitempty" gorm:"size:64"`
	UserAgent string    `json:"user_agent,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;index"`
}

func (a *Approval) BeforeUpdate(tx *gorm.DB) error {
	return ErrImmutableRecord
}

func (a *Approval) BeforeDelete(tx *gorm.DB) error {
	return ErrImmutableRecord
}

// ApprovalStatus is the derived state of one (version, target) pair.
type ApprovalStatus struct {
	Approved  bool       `json:"approved"`
	Rejected  bool       `json:"rejected"`
	Pending   bool       `json:"pending"`
	Approvals []Approval `json:"approvals"`
}

type TargetRequirement struct {
	Required bool `json:"required"`
	Approved bool `json:"approved"`
	Rejected bool `json:"rejected"`
}

// Satisfied reports whether this dimension counts towards export readiness.
func (r TargetRequirement) Satisfied() bool {
	return r.Approved && !r.Rejected
}

type RequiredApprovals struct {
	Source       TargetRequirement            `json:"source"`
	Translations map[string]TargetRequirement `json:"translations"`
}
