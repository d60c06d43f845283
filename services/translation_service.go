package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"lawfirm-cms/config"
	"lawfirm-cms/metrics"
	"lawfirm-cms/models"
	"lawfirm-cms/repositories"
)

type TranslationService interface {
	Submit(ctx context.Context, actor Actor, documentID uint, req models.TranslationRequest, meta RequestMeta) (*models.TranslationProgress, error)
	Progress(ctx context.Context, documentID uint, query models.TranslationQuery) (*models.TranslationProgress, error)
}

type translationService struct {
	documents    repositories.DocumentRepository
	translations repositories.TranslationRepository
	approvals    ApprovalService
	policy       *ApprovalPolicy
	workflow     config.WorkflowPolicy
	audit        AuditService
	status       *statusRecorder
	metrics      *metrics.Metrics
	log          zerolog.Logger
	now          func() time.Time
}

type TranslationDeps struct {
	Documents    repositories.DocumentRepository
	Translations repositories.TranslationRepository
	Approvals    ApprovalService
	Policy       *ApprovalPolicy
	Workflow     config.WorkflowPolicy
	Audit        AuditService
	Notifier     Notifier
	Metrics      *metrics.Metrics
	Logger       zerolog.Logger
}

func NewTranslationService(deps TranslationDeps) TranslationService {
	return &translationService{
		documents:    deps.Documents,
		translations: deps.Translations,
		approvals:    deps.Approvals,
		policy:       deps.Policy,
		workflow:     deps.Workflow,
		audit:        deps.Audit,
		status:       newStatusRecorder(deps.Documents, deps.Audit, deps.Notifier, deps.Metrics, deps.Logger),
		metrics:      deps.Metrics,
		log:          deps.Logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *translationService) Submit(ctx context.Context, actor Actor, documentID uint, req models.TranslationRequest, meta RequestMeta) (*models.TranslationProgress, error) {
	if req.VersionID == 0 {
		return nil, models.NewValidationError("versionId is required", nil)
	}
	if len(req.Segments) == 0 {
		return nil, models.NewValidationError("at least one segment is required", nil)
	}
	target, err := models.ParseTarget(req.TargetLang)
	if err != nil {
		return nil, err
	}
	if target.IsSource() {
		return nil, models.NewValidationError("targetLang must be a translation language", nil)
	}

	if !s.policy.CanTranslate(actor.Role, target) {
		return nil, models.NewForbiddenError("role " + string(actor.Role) + " cannot translate into " + target.String())
	}

	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	version, err := s.documents.GetVersion(ctx, documentID, req.VersionID)
	if err != nil {
		return nil, err
	}
	if !containsLanguage(doc.TargetLanguages(s.workflow.DefaultRequiredLanguages), target.String()) {
		return nil, models.NewValidationError(target.String()+" is not a required language for this document", nil)
	}
	if version.Status == models.StatusApproved || version.Status == models.StatusRejected {
		return nil, models.NewConflictError("version is " + string(version.Status) + "; submit a new version instead")
	}
	if len(version.Segments) == 0 {
		return nil, models.NewConflictError("version has no segments to translate")
	}

	// Text under review must not change underneath the reviewers.
	signoff, err := s.approvals.CheckApprovalStatus(ctx, version.ID, target)
	if err != nil {
		return nil, err
	}
	if !signoff.Pending {
		return nil, models.NewConflictError(target.String() + " translation already has sign-off decisions")
	}

	rows, err := s.buildRows(actor, version, target, req.Segments)
	if err != nil {
		return nil, err
	}
	if err := s.translations.AppendTranslations(ctx, rows); err != nil {
		s.log.Error().Err(err).
			Uint("version_id", version.ID).
			Str("language", target.String()).
			Uint("actor_id", actor.UserID).
			Msg("failed to store translations")
		return nil, err
	}
	s.metrics.RecordTranslations(target.String(), len(rows))

	s.audit.Record(ctx, AuditEvent{
		EntityType: models.EntityVersion,
		EntityID:   version.ID,
		Action:     models.ActionTranslationSubmitted,
		ActorID:    actor.UserID,
		Meta:       meta,
		Metadata: map[string]any{
			"document_id": documentID,
			"language":    target.String(),
			"segments":    len(rows),
		},
	})

	progress, err := s.progress(ctx, version, target.String())
	if err != nil {
		return nil, err
	}
	s.advance(ctx, actor, doc, version, meta)
	return progress, nil
}

func (s *translationService) Progress(ctx context.Context, documentID uint, query models.TranslationQuery) (*models.TranslationProgress, error) {
	if query.VersionID == 0 {
		return nil, models.NewValidationError("versionId is required", nil)
	}
	target, err := models.ParseTarget(query.TargetLang)
	if err != nil {
		return nil, err
	}
	if target.IsSource() {
		return nil, models.NewValidationError("targetLang must be a translation language", nil)
	}

	version, err := s.documents.GetVersion(ctx, documentID, query.VersionID)
	if err != nil {
		return nil, err
	}
	return s.progress(ctx, version, target.String())
}

func (s *translationService) buildRows(actor Actor, version *models.Version, target models.Target, inputs []models.SegmentInput) ([]models.Translation, error) {
	known := make(map[int]bool, len(version.Segments))
	for _, seg := range version.Segments {
		known[seg.Position] = true
	}

	now := s.now()
	seen := make(map[int]bool, len(inputs))
	rows := make([]models.Translation, 0, len(inputs))
	for _, in := range inputs {
		pos := strconv.Itoa(in.Position)
		if !known[in.Position] {
			return nil, models.NewValidationError("segment "+pos+" does not exist in this version", nil)
		}
		if seen[in.Position] {
			return nil, models.NewValidationError("segment "+pos+" submitted twice", nil)
		}
		text := NormalizeContent(strings.TrimSpace(in.Text))
		if text == "" {
			return nil, models.NewValidationError("segment "+pos+" text is empty", nil)
		}
		seen[in.Position] = true
		rows = append(rows, models.Translation{
			VersionID:    version.ID,
			Language:     target.String(),
			Position:     in.Position,
			Text:         text,
			TranslatorID: actor.UserID,
			CreatedAt:    now,
		})
	}
	return rows, nil
}

func (s *translationService) progress(ctx context.Context, version *models.Version, language string) (*models.TranslationProgress, error) {
	current, err := s.translations.CurrentTranslations(ctx, version.ID, language)
	if err != nil {
		return nil, err
	}
	return buildProgress(version.ID, language, version.Segments, current), nil
}

// advance moves a draft into pending_translation, and into pending_approval
// once every required language covers every segment.
func (s *translationService) advance(ctx context.Context, actor Actor, doc *models.Document, version *models.Version, meta RequestMeta) {
	if version.Status == models.StatusPendingApproval {
		return
	}

	complete := true
	for _, lang := range doc.TargetLanguages(s.workflow.DefaultRequiredLanguages) {
		progress, err := s.progress(ctx, version, lang)
		if err != nil {
			s.log.Error().Err(err).Uint("version_id", version.ID).Str("language", lang).Msg("failed to read translation progress")
			complete = false
			break
		}
		if !progress.Complete {
			complete = false
			break
		}
	}

	next := models.StatusPendingTranslation
	if complete {
		next = models.StatusPendingApproval
	}
	s.status.transition(ctx, actor, doc, version, next, meta)
}

func buildProgress(versionID uint, language string, segments []models.Segment, current map[int]models.Translation) *models.TranslationProgress {
	progress := &models.TranslationProgress{
		VersionID: versionID,
		Language:  language,
		Total:     len(segments),
		Segments:  make([]models.SegmentTranslation, 0, len(segments)),
	}
	for _, seg := range segments {
		entry := models.SegmentTranslation{
			Position:   seg.Position,
			SourceText: seg.SourceText,
		}
		if t, ok := current[seg.Position]; ok {
			createdAt := t.CreatedAt
			entry.Text = t.Text
			entry.Translated = true
			entry.TranslatorID = t.TranslatorID
			entry.UpdatedAt = &createdAt
			progress.Translated++
		}
		progress.Segments = append(progress.Segments, entry)
	}
	progress.Complete = progress.Total > 0 && progress.Translated == progress.Total
	return progress
}

func containsLanguage(langs []string, lang string) bool {
	for _, l := range langs {
		if target, err := models.ParseTarget(l); err == nil && target.String() == lang {
			return true
		}
	}
	return false
}
