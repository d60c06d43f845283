package services

import (
	"context"

	"github.com/rs/zerolog"

	"lawfirm-cms/config"
	"lawfirm-cms/metrics"
	"lawfirm-cms/models"
	"lawfirm-cms/repositories"
)

// WorkflowService drives sign-off for versions: it enforces who may decide,
// appends to the ledger and keeps the cached version status in line with
// what the ledger says.
type WorkflowService interface {
	SubmitDecision(ctx context.Context, actor Actor, documentID uint, req models.ApprovalRequest, meta RequestMeta) (*models.Approval, error)
	ApprovalStatus(ctx context.Context, documentID uint, query models.ApprovalQuery) (*models.ApprovalStatusResponse, error)
	Readiness(ctx context.Context, documentID, versionID uint) (*models.ReadinessResponse, error)
	Export(ctx context.Context, documentID, versionID uint) (*models.ExportBundle, error)
	AuditTrail(ctx context.Context, actor Actor, documentID uint) ([]models.AuditLog, error)
}

type workflowService struct {
	documents    repositories.DocumentRepository
	translations repositories.TranslationRepository
	auditLogs    repositories.AuditRepository
	approvals    ApprovalService
	readiness    ReadinessEvaluator
	policy       *ApprovalPolicy
	workflow     config.WorkflowPolicy
	audit        AuditService
	status       *statusRecorder
	metrics      *metrics.Metrics
	log          zerolog.Logger
}

type WorkflowDeps struct {
	Documents    repositories.DocumentRepository
	Translations repositories.TranslationRepository
	AuditLogs    repositories.AuditRepository
	Approvals    ApprovalService
	Readiness    ReadinessEvaluator
	Policy       *ApprovalPolicy
	Workflow     config.WorkflowPolicy
	Audit        AuditService
	Notifier     Notifier
	Metrics      *metrics.Metrics
	Logger       zerolog.Logger
}

func NewWorkflowService(deps WorkflowDeps) WorkflowService {
	return &workflowService{
		documents:    deps.Documents,
		translations: deps.Translations,
		auditLogs:    deps.AuditLogs,
		approvals:    deps.Approvals,
		readiness:    deps.Readiness,
		policy:       deps.Policy,
		workflow:     deps.Workflow,
		audit:        deps.Audit,
		status:       newStatusRecorder(deps.Documents, deps.Audit, deps.Notifier, deps.Metrics, deps.Logger),
		metrics:      deps.Metrics,
		log:          deps.Logger,
	}
}

func (s *workflowService) SubmitDecision(ctx context.Context, actor Actor, documentID uint, req models.ApprovalRequest, meta RequestMeta) (*models.Approval, error) {
	if !req.Decision.Valid() {
		return nil, models.NewValidationError("decision must be approved or rejected", nil)
	}
	if req.VersionID == 0 {
		return nil, models.NewValidationError("versionId is required", nil)
	}
	target, err := models.ParseTarget(req.TargetLang)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanApprove(actor.Role, target) {
		return nil, models.NewForbiddenError("role " + string(actor.Role) + " cannot sign off " + target.String())
	}

	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	version, err := s.documents.GetVersion(ctx, documentID, req.VersionID)
	if err != nil {
		return nil, err
	}

	approval, err := s.approvals.CreateApproval(ctx, CreateApprovalInput{
		VersionID: version.ID,
		Target:    target,
		ActorID:   actor.UserID,
		Role:      actor.Role,
		Decision:  req.Decision,
		Comment:   req.Comment,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	})
	if err != nil {
		s.log.Error().Err(err).
			Uint("document_id", documentID).
			Uint("version_id", version.ID).
			Str("target", target.String()).
			Uint("actor_id", actor.UserID).
			Msg("failed to record approval")
		return nil, err
	}

	s.audit.Record(ctx, AuditEvent{
		EntityType: models.EntityVersion,
		EntityID:   version.ID,
		Action:     models.ActionApprovalCreated,
		ActorID:    actor.UserID,
		Meta:       meta,
		Metadata: map[string]any{
			"document_id": documentID,
			"approval_id": approval.ID,
			"target":      target.String(),
			"decision":    string(approval.Decision),
			"role":        string(actor.Role),
		},
	})

	s.reconcileStatus(ctx, actor, doc, version, meta)
	return approval, nil
}

// reconcileStatus recomputes readiness from the ledger and writes the derived
// status. Failures here are logged; the recorded approval stands.
func (s *workflowService) reconcileStatus(ctx context.Context, actor Actor, doc *models.Document, version *models.Version, meta RequestMeta) {
	if version.Status == models.StatusApproved || version.Status == models.StatusRejected {
		return
	}

	next := models.StatusPendingApproval
	required, err := s.readiness.GetRequiredApprovals(ctx, version.ID, doc.TargetLanguages(s.workflow.DefaultRequiredLanguages))
	if err != nil {
		s.metrics.RecordReadiness(false, err)
		s.log.Error().Err(err).Uint("version_id", version.ID).Msg("readiness evaluation failed; treating version as not ready")
	} else {
		ready := IsReady(*required)
		s.metrics.RecordReadiness(ready, nil)
		switch {
		case ready:
			next = models.StatusApproved
		case AnyRejected(*required):
			next = models.StatusRejected
		}
	}

	s.status.transition(ctx, actor, doc, version, next, meta)
}

func (s *workflowService) ApprovalStatus(ctx context.Context, documentID uint, query models.ApprovalQuery) (*models.ApprovalStatusResponse, error) {
	if query.VersionID == 0 {
		return nil, models.NewValidationError("versionId is required", nil)
	}
	target, err := models.ParseTarget(query.TargetLang)
	if err != nil {
		return nil, err
	}

	if _, err := s.documents.GetVersion(ctx, documentID, query.VersionID); err != nil {
		return nil, err
	}

	status, err := s.approvals.CheckApprovalStatus(ctx, query.VersionID, target)
	if err != nil {
		return nil, err
	}
	chain, err := s.approvals.GetApprovalChain(ctx, query.VersionID)
	if err != nil {
		return nil, err
	}

	return &models.ApprovalStatusResponse{Status: *status, Chain: chain}, nil
}

func (s *workflowService) Readiness(ctx context.Context, documentID, versionID uint) (*models.ReadinessResponse, error) {
	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	version, err := s.documents.GetVersion(ctx, documentID, versionID)
	if err != nil {
		return nil, err
	}

	required, err := s.readiness.GetRequiredApprovals(ctx, version.ID, doc.TargetLanguages(s.workflow.DefaultRequiredLanguages))
	if err != nil {
		s.metrics.RecordReadiness(false, err)
		return nil, err
	}
	ready := IsReady(*required)
	s.metrics.RecordReadiness(ready, nil)

	return &models.ReadinessResponse{
		VersionID: version.ID,
		Ready:     ready,
		Status:    version.Status,
		Required:  *required,
	}, nil
}

func (s *workflowService) Export(ctx context.Context, documentID, versionID uint) (*models.ExportBundle, error) {
	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	version, err := s.documents.GetVersion(ctx, documentID, versionID)
	if err != nil {
		return nil, err
	}

	langs := doc.TargetLanguages(s.workflow.DefaultRequiredLanguages)
	ready, err := s.readiness.IsVersionReadyForExport(ctx, version.ID, langs)
	if err != nil {
		s.log.Error().Err(err).Uint("version_id", version.ID).Msg("readiness evaluation failed; refusing export")
		return nil, models.NewConflictError("version readiness could not be confirmed")
	}
	if !ready {
		return nil, models.NewConflictError("version is not approved for export")
	}

	bundle := &models.ExportBundle{
		DocumentID:    doc.ID,
		Title:         doc.Title,
		VersionID:     version.ID,
		VersionNumber: version.VersionNumber,
		ContentHash:   version.ContentHash,
		Source:        version.Content,
		Translations:  make(map[string][]models.SegmentTranslation, len(langs)),
	}
	for _, lang := range langs {
		target, err := models.ParseTarget(lang)
		if err != nil {
			return nil, err
		}
		current, err := s.translations.CurrentTranslations(ctx, version.ID, target.String())
		if err != nil {
			return nil, err
		}
		bundle.Translations[target.String()] = buildProgress(version.ID, target.String(), version.Segments, current).Segments
	}

	chain, err := s.approvals.GetApprovalChain(ctx, version.ID)
	if err != nil {
		return nil, err
	}
	bundle.Approvals = chain
	return bundle, nil
}

func (s *workflowService) AuditTrail(ctx context.Context, actor Actor, documentID uint) ([]models.AuditLog, error) {
	if actor.Role != models.RoleAdmin {
		return nil, models.NewForbiddenError("only administrators can read the audit trail")
	}
	if _, err := s.documents.GetByID(ctx, documentID); err != nil {
		return nil, err
	}

	versions, err := s.documents.GetVersions(ctx, documentID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(versions))
	for _, v := range versions {
		ids = append(ids, v.ID)
	}
	return s.auditLogs.ListForDocument(ctx, documentID, ids)
}
