package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lawfirm-cms/config"
	"lawfirm-cms/logger"
	"lawfirm-cms/metrics"
	"lawfirm-cms/models"
	"lawfirm-cms/repositories"
	"lawfirm-cms/testutil"
)

var (
	agent    = Actor{UserID: 1, Username: "agent", Role: models.RoleFamilyAgent}
	xlator   = Actor{UserID: 2, Username: "translator", Role: models.RoleTranslator}
	lawyer   = Actor{UserID: 3, Username: "lawyer", Role: models.RoleForeignLawyer}
	viewer   = Actor{UserID: 4, Username: "viewer", Role: models.RoleFamilyViewer}
	admin    = Actor{UserID: 5, Username: "admin", Role: models.RoleAdmin}
	meta     = RequestMeta{IPAddress: "203.0.113.7", UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0", RequestID: "req-1"}
	errBoom  = errors.New("boom")
	testText = "The estate passes to both heirs. Each heir agrees."
)

type recordingNotifier struct {
	mu       sync.Mutex
	approved []uint
}

func (n *recordingNotifier) VersionApproved(_ context.Context, _ *models.Document, version *models.Version) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.approved = append(n.approved, version.ID)
	return nil
}

// unreliableApprovalRepo fails ledger reads while failReads is set.
type unreliableApprovalRepo struct {
	repositories.ApprovalRepository
	failReads atomic.Bool
}

func (r *unreliableApprovalRepo) ListByVersionTarget(ctx context.Context, versionID uint, target models.Target) ([]models.Approval, error) {
	if r.failReads.Load() {
		return nil, models.NewPersistenceError("failed to access approvals", errBoom)
	}
	return r.ApprovalRepository.ListByVersionTarget(ctx, versionID, target)
}

type failingSegmenter struct{}

func (failingSegmenter) Segment(string) ([]string, error) { return nil, errBoom }

type fixture struct {
	db           *gorm.DB
	metrics      *metrics.Metrics
	documentRepo repositories.DocumentRepository
	approvalRepo repositories.ApprovalRepository
	auditRepo    repositories.AuditRepository
	approvals    ApprovalService
	readiness    ReadinessEvaluator
	audit        AuditService
	notifier     *recordingNotifier
	documents    DocumentService
	workflow     WorkflowService
	translations TranslationService
	verification VerificationService
	auth         AuthService
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWith(t, NewSentenceSegmenter())
}

func newFixtureWith(t *testing.T, segmenter Segmenter) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	m := metrics.NewNop()
	log := logger.Nop()
	policy := config.DefaultPolicy()

	f := &fixture{
		db:           db,
		metrics:      m,
		documentRepo: repositories.NewDocumentRepository(db),
		approvalRepo: repositories.NewApprovalRepository(db),
		auditRepo:    repositories.NewAuditRepository(db),
		notifier:     &recordingNotifier{},
	}
	translationRepo := repositories.NewTranslationRepository(db)
	approvalPolicy := NewApprovalPolicy(policy)

	f.audit = NewAuditService(f.auditRepo, m, log)
	t.Cleanup(f.audit.Wait)
	f.approvals = NewApprovalService(f.approvalRepo, f.documentRepo, m)
	f.readiness = NewReadinessEvaluator(f.approvals, m)
	f.documents = NewDocumentService(f.documentRepo, translationRepo, approvalPolicy, policy, segmenter, f.audit, log)
	f.workflow = NewWorkflowService(WorkflowDeps{
		Documents:    f.documentRepo,
		Translations: translationRepo,
		AuditLogs:    f.auditRepo,
		Approvals:    f.approvals,
		Readiness:    f.readiness,
		Policy:       approvalPolicy,
		Workflow:     policy,
		Audit:        f.audit,
		Notifier:     f.notifier,
		Metrics:      m,
		Logger:       log,
	})
	f.translations = NewTranslationService(TranslationDeps{
		Documents:    f.documentRepo,
		Translations: translationRepo,
		Approvals:    f.approvals,
		Policy:       approvalPolicy,
		Workflow:     policy,
		Audit:        f.audit,
		Notifier:     f.notifier,
		Metrics:      m,
		Logger:       log,
	})
	f.verification = NewVerificationService(f.documentRepo, f.auditRepo, f.approvals, f.readiness, policy, log)
	f.auth = NewAuthService(repositories.NewUserRepository(db), config.NewJWTConfig("test-secret-test-secret-test-secret", 0), f.audit)
	return f
}

// newDocument creates a document owned by agent requiring langs.
func (f *fixture) newDocument(t *testing.T, langs ...string) (*models.Document, *models.Version) {
	t.Helper()
	doc, err := f.documents.CreateDocument(context.Background(), agent, models.CreateDocumentRequest{
		Title:             "Estate division",
		RequiredLanguages: langs,
		Content:           testText,
	}, meta)
	require.NoError(t, err)
	require.NotNil(t, doc.LatestVersion)
	return doc, doc.LatestVersion
}

func (f *fixture) decide(t *testing.T, actor Actor, doc *models.Document, version *models.Version, target string, decision models.Decision) {
	t.Helper()
	_, err := f.workflow.SubmitDecision(context.Background(), actor, doc.ID, models.ApprovalRequest{
		VersionID:  version.ID,
		TargetLang: target,
		Decision:   decision,
	}, meta)
	require.NoError(t, err)
}

func (f *fixture) versionStatus(t *testing.T, id uint) models.VersionStatus {
	t.Helper()
	v, err := f.documentRepo.GetVersionByID(context.Background(), id)
	require.NoError(t, err)
	return v.Status
}

func (f *fixture) approvalCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.Approval{}).Count(&n).Error)
	return n
}
