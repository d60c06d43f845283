package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"lawfirm-cms/metrics"
	"lawfirm-cms/models"
	"lawfirm-cms/repositories"
)

const maxUserAgentLength = 512

var commentPolicy = bluemonday.StrictPolicy()

type CreateApprovalInput struct {
	VersionID uint
	Target    models.Target
	ActorID   uint
	Role      models.UserRole
	Decision  models.Decision
	Comment   string
	IPAddress string
	UserAgent string
}

// ApprovalService is the approval ledger. It records decisions and derives
// the current state of a (version, target) pair; it does not check whether
// the actor was allowed to decide, the caller does that first.
type ApprovalService interface {
	CreateApproval(ctx context.Context, input CreateApprovalInput) (*models.Approval, error)
	CheckApprovalStatus(ctx context.Context, versionID uint, target models.Target) (*models.ApprovalStatus, error)
	GetApprovalChain(ctx context.Context, versionID uint) ([]models.Approval, error)
}

type approvalService struct {
	approvals repositories.ApprovalRepository
	documents repositories.DocumentRepository
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewApprovalService(approvals repositories.ApprovalRepository, documents repositories.DocumentRepository, m *metrics.Metrics) ApprovalService {
	return &approvalService{
		approvals: approvals,
		documents: documents,
		metrics:   m,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *approvalService) CreateApproval(ctx context.Context, input CreateApprovalInput) (*models.Approval, error) {
	if !input.Decision.Valid() {
		return nil, models.NewValidationError("decision must be approved or rejected", nil)
	}
	if input.Target == "" {
		return nil, models.NewValidationError("target is required", nil)
	}
	if _, err := s.documents.GetVersionByID(ctx, input.VersionID); err != nil {
		return nil, err
	}

	approval := &models.Approval{
		VersionID: input.VersionID,
		Target:    input.Target,
		ActorID:   input.ActorID,
		ActorRole: input.Role,
		Decision:  input.Decision,
		Comment:   strings.TrimSpace(commentPolicy.Sanitize(input.Comment)),
		IPAddress: input.IPAddress,
		UserAgent: truncate(input.UserAgent, maxUserAgentLength),
		CreatedAt: s.now(),
	}
	if err := s.approvals.Append(ctx, approval); err != nil {
		return nil, err
	}

	s.metrics.RecordApproval(string(approval.Decision), string(approval.Target))
	return approval, nil
}

func (s *approvalService) CheckApprovalStatus(ctx context.Context, versionID uint, target models.Target) (*models.ApprovalStatus, error) {
	entries, err := s.approvals.ListByVersionTarget(ctx, versionID, target)
	if err != nil {
		return nil, err
	}
	status := DeriveApprovalStatus(entries)
	return &status, nil
}

func (s *approvalService) GetApprovalChain(ctx context.Context, versionID uint) ([]models.Approval, error) {
	return s.approvals.ListByVersion(ctx, versionID)
}

// DeriveApprovalStatus applies the sign-off rule to every ledger entry of one
// (version, target) pair. Any rejection wins over any number of approvals,
// whatever their order; a rejected pair only recovers through a new version.
func DeriveApprovalStatus(entries []models.Approval) models.ApprovalStatus {
	status := models.ApprovalStatus{Approvals: entries}
	if status.Approvals == nil {
		status.Approvals = []models.Approval{}
	}

	var approved, rejected bool
	for _, entry := range entries {
		switch entry.Decision {
		case models.DecisionRejected:
			rejected = true
		case models.DecisionApproved:
			approved = true
		}
	}

	switch {
	case rejected:
		status.Rejected = true
	case approved:
		status.Approved = true
	default:
		status.Pending = true
	}
	return status
}

// truncate cuts s to at most max bytes without splitting a UTF-8 sequence.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
