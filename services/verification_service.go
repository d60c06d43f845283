package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"lawfirm-cms/config"
	"lawfirm-cms/models"
	"lawfirm-cms/repositories"
)

// privateAuditKeys never leave the firm through the public verification page.
var privateAuditKeys = []string{"user_agent", "client", "request_id"}

// VerificationService backs the public integrity check. Only a missing
// version fails the request; everything else degrades to a warning.
type VerificationService interface {
	Verify(ctx context.Context, versionID uint, hash string) (*models.VerificationResult, error)
}

type verificationService struct {
	documents repositories.DocumentRepository
	auditLogs repositories.AuditRepository
	approvals ApprovalService
	readiness ReadinessEvaluator
	workflow  config.WorkflowPolicy
	log       zerolog.Logger
}

func NewVerificationService(
	documents repositories.DocumentRepository,
	auditLogs repositories.AuditRepository,
	approvals ApprovalService,
	readiness ReadinessEvaluator,
	workflow config.WorkflowPolicy,
	log zerolog.Logger,
) VerificationService {
	return &verificationService{
		documents: documents,
		auditLogs: auditLogs,
		approvals: approvals,
		readiness: readiness,
		workflow:  workflow,
		log:       log,
	}
}

func (s *verificationService) Verify(ctx context.Context, versionID uint, hash string) (*models.VerificationResult, error) {
	version, err := s.documents.GetVersionByID(ctx, versionID)
	if err != nil {
		return nil, err
	}

	result := &models.VerificationResult{
		VersionID:     version.ID,
		DocumentID:    version.DocumentID,
		VersionNumber: version.VersionNumber,
		ContentHash:   version.ContentHash,
		Status:        version.Status,
		Chain:         []models.Approval{},
	}
	if strings.TrimSpace(hash) != "" {
		matches := HashMatches(version.ContentHash, hash)
		result.HashMatches = &matches
	}

	if doc, err := s.documents.GetByID(ctx, version.DocumentID); err != nil {
		s.warn(result, err, version.ID, "readiness unavailable")
	} else {
		required, err := s.readiness.GetRequiredApprovals(ctx, version.ID, doc.TargetLanguages(s.workflow.DefaultRequiredLanguages))
		if err != nil {
			s.warn(result, err, version.ID, "readiness unavailable")
		} else {
			ready := IsReady(*required)
			result.Ready = &ready
			result.Required = required
		}
	}

	if chain, err := s.approvals.GetApprovalChain(ctx, version.ID); err != nil {
		s.warn(result, err, version.ID, "approval chain unavailable")
	} else {
		result.Chain = publicApprovals(chain)
	}

	if trail, err := s.auditLogs.ListForVersion(ctx, version.ID); err != nil {
		s.warn(result, err, version.ID, "audit trail unavailable")
	} else {
		result.AuditTrail = publicAuditTrail(trail)
	}

	return result, nil
}

func (s *verificationService) warn(result *models.VerificationResult, err error, versionID uint, msg string) {
	s.log.Warn().Err(err).Uint("version_id", versionID).Msg(msg)
	result.Warnings = append(result.Warnings, msg)
}

func publicApprovals(chain []models.Approval) []models.Approval {
	out := make([]models.Approval, len(chain))
	for i, a := range chain {
		a.IPAddress = ""
		a.UserAgent = ""
		out[i] = a
	}
	return out
}

func publicAuditTrail(entries []models.AuditLog) []models.AuditLog {
	out := make([]models.AuditLog, len(entries))
	for i, e := range entries {
		e.IPAddress = ""
		e.Metadata = stripMetadata(e.Metadata)
		out[i] = e
	}
	return out
}

func stripMetadata(raw datatypes.JSON) datatypes.JSON {
	if len(raw) == 0 {
		return raw
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	for _, key := range privateAuditKeys {
		delete(fields, key)
	}
	cleaned, err := json.Marshal(fields)
	if err != nil {
		return nil
	}
	return datatypes.JSON(cleaned)
}
