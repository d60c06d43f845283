package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"lawfirm-cms/config"
	"lawfirm-cms/models"
	"lawfirm-cms/repositories"
)

type DocumentService interface {
	CreateDocument(ctx context.Context, actor Actor, req models.CreateDocumentRequest, meta RequestMeta) (*models.Document, error)
	GetDocument(ctx context.Context, id uint) (*models.Document, error)
	GetDocuments(ctx context.Context, params models.DocumentListParams) ([]models.Document, int64, error)
	CreateVersion(ctx context.Context, actor Actor, documentID uint, req models.CreateVersionRequest, meta RequestMeta) (*models.Version, error)
	GetVersions(ctx context.Context, documentID uint) ([]models.Version, error)
	GetVersion(ctx context.Context, documentID, versionID uint) (*models.Version, error)
}

type documentService struct {
	documents    repositories.DocumentRepository
	translations repositories.TranslationRepository
	policy       *ApprovalPolicy
	workflow     config.WorkflowPolicy
	segmenter    Segmenter
	audit        AuditService
	log          zerolog.Logger
}

func NewDocumentService(
	documents repositories.DocumentRepository,
	translations repositories.TranslationRepository,
	policy *ApprovalPolicy,
	workflow config.WorkflowPolicy,
	segmenter Segmenter,
	audit AuditService,
	log zerolog.Logger,
) DocumentService {
	return &documentService{
		documents:    documents,
		translations: translations,
		policy:       policy,
		workflow:     workflow,
		segmenter:    segmenter,
		audit:        audit,
		log:          log,
	}
}

func (s *documentService) CreateDocument(ctx context.Context, actor Actor, req models.CreateDocumentRequest, meta RequestMeta) (*models.Document, error) {
	if !s.policy.CanAuthor(actor.Role) {
		return nil, models.NewForbiddenError("role " + string(actor.Role) + " cannot create documents")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, models.NewValidationError("content is required", nil)
	}

	sourceLanguage := s.workflow.SourceLanguage
	if strings.TrimSpace(req.SourceLanguage) != "" {
		lang, err := models.CanonicalLanguage(req.SourceLanguage)
		if err != nil {
			return nil, err
		}
		sourceLanguage = lang
	}

	// An omitted list means the policy default; an explicit empty one is a
	// mistake rather than a request to require nothing.
	var required []string
	if req.RequiredLanguages != nil {
		if len(req.RequiredLanguages) == 0 {
			return nil, models.NewValidationError("required_languages must list at least one language, omit it to use the default", nil)
		}
		langs, err := canonicalLanguages(req.RequiredLanguages)
		if err != nil {
			return nil, err
		}
		required = langs
	}

	doc := &models.Document{
		OwnerID:           actor.UserID,
		Title:             strings.TrimSpace(req.Title),
		CaseReference:     strings.TrimSpace(req.CaseReference),
		SourceLanguage:    sourceLanguage,
		RequiredLanguages: required,
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEvent{
		EntityType: models.EntityDocument,
		EntityID:   doc.ID,
		Action:     models.ActionDocumentCreated,
		ActorID:    actor.UserID,
		Meta:       meta,
		Metadata: map[string]any{
			"title":              doc.Title,
			"required_languages": doc.TargetLanguages(s.workflow.DefaultRequiredLanguages),
		},
	})

	version, err := s.submitVersion(ctx, actor, doc, req.Content, meta)
	if err != nil {
		return nil, err
	}
	doc.LatestVersionID = &version.ID
	doc.LatestVersion = version

	return doc, nil
}

func (s *documentService) GetDocument(ctx context.Context, id uint) (*models.Document, error) {
	return s.documents.GetByID(ctx, id)
}

func (s *documentService) GetDocuments(ctx context.Context, params models.DocumentListParams) ([]models.Document, int64, error) {
	return s.documents.GetList(ctx, params)
}

func (s *documentService) CreateVersion(ctx context.Context, actor Actor, documentID uint, req models.CreateVersionRequest, meta RequestMeta) (*models.Version, error) {
	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanAuthor(actor.Role) || (actor.Role != models.RoleAdmin && doc.OwnerID != actor.UserID) {
		return nil, models.NewForbiddenError("only the document owner or an administrator can submit versions")
	}

	return s.submitVersion(ctx, actor, doc, req.Content, meta)
}

func (s *documentService) GetVersions(ctx context.Context, documentID uint) ([]models.Version, error) {
	if _, err := s.documents.GetByID(ctx, documentID); err != nil {
		return nil, err
	}
	return s.documents.GetVersions(ctx, documentID)
}

func (s *documentService) GetVersion(ctx context.Context, documentID, versionID uint) (*models.Version, error) {
	return s.documents.GetVersion(ctx, documentID, versionID)
}

// submitVersion stores a new immutable snapshot and then segments it. The
// steps are not transactional: a segmentation failure leaves the version in
// place without segments and is only logged.
func (s *documentService) submitVersion(ctx context.Context, actor Actor, doc *models.Document, content string, meta RequestMeta) (*models.Version, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("content is required", nil)
	}

	normalized := NormalizeContent(content)
	version := &models.Version{
		DocumentID:  doc.ID,
		Content:     normalized,
		ContentHash: HashContent(normalized),
		Status:      models.StatusDraft,
		CreatedBy:   actor.UserID,
	}
	if err := s.documents.CreateVersion(ctx, version); err != nil {
		s.log.Error().Err(err).Uint("document_id", doc.ID).Uint("actor_id", actor.UserID).Msg("failed to create version")
		return nil, err
	}

	if err := s.documents.SetLatestVersion(ctx, doc.ID, version.ID); err != nil {
		s.log.Error().Err(err).Uint("document_id", doc.ID).Uint("version_id", version.ID).Msg("failed to move latest version pointer")
	}

	s.audit.Record(ctx, AuditEvent{
		EntityType: models.EntityVersion,
		EntityID:   version.ID,
		Action:     models.ActionVersionCreated,
		ActorID:    actor.UserID,
		Meta:       meta,
		Metadata: map[string]any{
			"document_id":    doc.ID,
			"version_number": version.VersionNumber,
			"content_hash":   version.ContentHash,
		},
	})

	segments, err := s.segment(ctx, version)
	if err != nil {
		s.log.Warn().Err(err).Uint("document_id", doc.ID).Uint("version_id", version.ID).Msg("segmentation failed; version kept without segments")
		return version, nil
	}
	version.Segments = segments
	return version, nil
}

func (s *documentService) segment(ctx context.Context, version *models.Version) ([]models.Segment, error) {
	texts, err := s.segmenter.Segment(version.Content)
	if err != nil {
		return nil, err
	}

	segments := make([]models.Segment, 0, len(texts))
	for i, text := range texts {
		segments = append(segments, models.Segment{
			VersionID:  version.ID,
			Position:   i,
			SourceText: text,
			TextHash:   HashContent(text),
		})
	}
	if err := s.translations.CreateSegments(ctx, segments); err != nil {
		return nil, err
	}
	return segments, nil
}
