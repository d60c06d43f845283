package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"lawfirm-cms/config"
	"lawfirm-cms/helper"
	"lawfirm-cms/logger"
	"lawfirm-cms/metrics"
	"lawfirm-cms/models"
	"lawfirm-cms/repositories"
	"lawfirm-cms/services"
	"lawfirm-cms/testutil"
)

type envelope[T any] struct {
	Code        int             `json:"code"`
	CodeType    string          `json:"code_type"`
	CodeMessage json.RawMessage `json:"code_message"`
	Data        T               `json:"data"`
}

type IntegrationTestSuite struct {
	suite.Suite
	db       *gorm.DB
	cfg      *config.Config
	audit    services.AuditService
	router   *gin.Engine
	userRepo repositories.UserRepository
	tokens   map[models.UserRole]string
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}

func (suite *IntegrationTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.db = testutil.NewDB(suite.T())
	suite.cfg = &config.Config{
		Env:                  "development",
		JWTSecret:            "integration-secret-integration-secret",
		JWTExpiration:        time.Hour,
		VerifyRateLimitRPS:   1000,
		VerifyRateLimitBurst: 1000,
	}
	suite.router = suite.buildRouter(suite.cfg)

	suite.tokens = make(map[models.UserRole]string)
	for _, role := range models.AllRoles {
		suite.tokens[role] = suite.registerAs(role)
	}
}

func (suite *IntegrationTestSuite) TearDownTest() {
	suite.audit.Wait()
}

func (suite *IntegrationTestSuite) buildRouter(cfg *config.Config) *gin.Engine {
	log := logger.Nop()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	policy := config.DefaultPolicy()

	suite.userRepo = repositories.NewUserRepository(suite.db)
	documentRepo := repositories.NewDocumentRepository(suite.db)
	approvalRepo := repositories.NewApprovalRepository(suite.db)
	translationRepo := repositories.NewTranslationRepository(suite.db)
	auditRepo := repositories.NewAuditRepository(suite.db)

	suite.audit = services.NewAuditService(auditRepo, m, log)
	approvalPolicy := services.NewApprovalPolicy(policy)
	approvals := services.NewApprovalService(approvalRepo, documentRepo, m)
	readiness := services.NewReadinessEvaluator(approvals, m)
	notifier := services.NewLogNotifier(log)

	return NewRouter(RouterDeps{
		Config:    cfg,
		Logger:    log,
		Metrics:   m,
		Gatherer:  reg,
		Helper:    helper.NewHTTPHelper(),
		Auth:      services.NewAuthService(suite.userRepo, cfg.JWT(), suite.audit),
		Documents: services.NewDocumentService(documentRepo, translationRepo, approvalPolicy, policy, services.NewSentenceSegmenter(), suite.audit, log),
		Workflow: services.NewWorkflowService(services.WorkflowDeps{
			Documents: documentRepo, Translations: translationRepo, AuditLogs: auditRepo,
			Approvals: approvals, Readiness: readiness, Policy: approvalPolicy, Workflow: policy,
			Audit: suite.audit, Notifier: notifier, Metrics: m, Logger: log,
		}),
		Translations: services.NewTranslationService(services.TranslationDeps{
			Documents: documentRepo, Translations: translationRepo, Approvals: approvals,
			Policy: approvalPolicy, Workflow: policy, Audit: suite.audit, Notifier: notifier, Metrics: m, Logger: log,
		}),
		Verification: services.NewVerificationService(documentRepo, auditRepo, approvals, readiness, policy, log),
	})
}

// registerAs registers a user, promotes it to role and returns a fresh token
// carrying that role.
func (suite *IntegrationTestSuite) registerAs(role models.UserRole) string {
	email := string(role) + "@example.com"
	w := suite.do(http.MethodPost, "/api/v1/auth/register", "", models.RegisterRequest{
		Username: string(role),
		Email:    email,
		Password: "password123",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var registered envelope[models.AuthResponse]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &registered))
	suite.Require().Equal(models.RoleFamilyViewer, registered.Data.User.Role)

	suite.Require().NoError(suite.userRepo.UpdateRole(context.Background(), registered.Data.User.ID, role))

	w = suite.do(http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{Email: email, Password: "password123"})
	suite.Require().Equal(http.StatusOK, w.Code)

	var login envelope[models.AuthResponse]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &login))
	return login.Data.Token
}

func (suite *IntegrationTestSuite) do(method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		suite.Require().NoError(json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "integration-test")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *IntegrationTestSuite) createDocument(langs ...string) models.Document {
	w := suite.do(http.MethodPost, "/api/v1/documents", suite.tokens[models.RoleFamilyAgent], models.CreateDocumentRequest{
		Title:             "Estate division",
		RequiredLanguages: langs,
		Content:           "The estate passes to both heirs. Each heir agrees.",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp envelope[models.Document]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.Data.LatestVersionID)
	return resp.Data
}

func (suite *IntegrationTestSuite) approve(role models.UserRole, doc models.Document, target string, decision models.Decision) *httptest.ResponseRecorder {
	return suite.do(http.MethodPost, fmt.Sprintf("/api/v1/documents/%d/approve", doc.ID), suite.tokens[role], models.ApprovalRequest{
		VersionID:  *doc.LatestVersionID,
		TargetLang: target,
		Decision:   decision,
	})
}

func (suite *IntegrationTestSuite) TestAuthFlow() {
	w := suite.do(http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{Email: "translator@example.com", Password: "wrong-password"})
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/auth/register", "", models.RegisterRequest{Username: "x", Email: "not-an-email", Password: "1"})
	suite.Equal(http.StatusBadRequest, w.Code)

	var invalid envelope[map[string]interface{}]
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &invalid))
	suite.Equal(models.ClassValidation, invalid.CodeType)
	var fields map[string][]string
	suite.NoError(json.Unmarshal(invalid.CodeMessage, &fields))
	suite.Contains(fields, "email")
	suite.Contains(fields, "password")
}

func (suite *IntegrationTestSuite) TestGetProfile() {
	w := suite.do(http.MethodGet, "/api/v1/profile", suite.tokens[models.RoleTranslator], nil)
	suite.Equal(http.StatusOK, w.Code)

	var resp envelope[models.User]
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("translator", resp.Data.Username)
	suite.Equal(models.RoleTranslator, resp.Data.Role)

	w = suite.do(http.MethodGet, "/api/v1/profile", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/profile", "garbage", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *IntegrationTestSuite) TestUpdateRoleIsAdminOnly() {
	w := suite.do(http.MethodPut, "/api/v1/users/1/role", suite.tokens[models.RoleFamilyAgent], models.UpdateRoleRequest{Role: models.RoleAdmin})
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodPut, "/api/v1/users/1/role", suite.tokens[models.RoleAdmin], models.UpdateRoleRequest{Role: "overlord"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPut, "/api/v1/users/1/role", suite.tokens[models.RoleAdmin], models.UpdateRoleRequest{Role: models.RoleTranslator})
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *IntegrationTestSuite) TestDemotedUserLosesApprovalRights() {
	doc := suite.createDocument("en")
	translator, err := suite.userRepo.GetByEmail(context.Background(), "translator@example.com")
	suite.Require().NoError(err)

	w := suite.do(http.MethodPut, fmt.Sprintf("/api/v1/users/%d/role", translator.ID), suite.tokens[models.RoleAdmin],
		models.UpdateRoleRequest{Role: models.RoleFamilyViewer})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	// The token issued before the demotion still says translator.
	w = suite.approve(models.RoleTranslator, doc, "en", models.DecisionApproved)
	suite.Equal(http.StatusForbidden, w.Code, w.Body.String())

	var count int64
	suite.NoError(suite.db.Model(&models.Approval{}).Count(&count).Error)
	suite.EqualValues(0, count)

	w = suite.do(http.MethodGet, "/api/v1/profile", suite.tokens[models.RoleTranslator], nil)
	suite.Equal(http.StatusOK, w.Code)
	var profile envelope[models.User]
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &profile))
	suite.Equal(models.RoleFamilyViewer, profile.Data.Role)
}

func (suite *IntegrationTestSuite) TestDeletedUserTokenIsRejected() {
	agent, err := suite.userRepo.GetByEmail(context.Background(), "family_agent@example.com")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.db.Delete(&models.User{}, agent.ID).Error)

	w := suite.do(http.MethodGet, "/api/v1/profile", suite.tokens[models.RoleFamilyAgent], nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *IntegrationTestSuite) TestApprovalWorkflow() {
	doc := suite.createDocument("en", "si")

	w := suite.approve(models.RoleFamilyAgent, doc, "source", models.DecisionApproved)
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	var created envelope[models.Approval]
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &created))
	suite.Equal(models.TargetSource, created.Data.Target)
	suite.Equal(models.RoleFamilyAgent, created.Data.ActorRole)

	suite.Equal(http.StatusCreated, suite.approve(models.RoleTranslator, doc, "en", models.DecisionApproved).Code)

	readinessPath := fmt.Sprintf("/api/v1/documents/%d/versions/%d/readiness", doc.ID, *doc.LatestVersionID)
	exportPath := fmt.Sprintf("/api/v1/documents/%d/versions/%d/export", doc.ID, *doc.LatestVersionID)

	w = suite.do(http.MethodGet, readinessPath, suite.tokens[models.RoleFamilyViewer], nil)
	suite.Equal(http.StatusOK, w.Code)
	var readiness envelope[models.ReadinessResponse]
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &readiness))
	suite.False(readiness.Data.Ready)

	w = suite.do(http.MethodGet, exportPath, suite.tokens[models.RoleFamilyAgent], nil)
	suite.Equal(http.StatusConflict, w.Code)

	suite.Equal(http.StatusCreated, suite.approve(models.RoleForeignLawyer, doc, "si", models.DecisionApproved).Code)

	w = suite.do(http.MethodGet, readinessPath, suite.tokens[models.RoleFamilyViewer], nil)
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &readiness))
	suite.True(readiness.Data.Ready)
	suite.Equal(models.StatusApproved, readiness.Data.Status)

	w = suite.do(http.MethodGet, exportPath, suite.tokens[models.RoleFamilyAgent], nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, fmt.Sprintf("/api/v1/documents/%d/approve?versionId=%d&targetLang=si", doc.ID, *doc.LatestVersionID), suite.tokens[models.RoleFamilyViewer], nil)
	suite.Equal(http.StatusOK, w.Code)
	var status envelope[models.ApprovalStatusResponse]
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &status))
	suite.True(status.Data.Status.Approved)
	suite.Len(status.Data.Chain, 3)
}

func (suite *IntegrationTestSuite) TestApprovalFailures() {
	doc := suite.createDocument("en")
	other := suite.createDocument("en")

	w := suite.approve(models.RoleFamilyViewer, doc, "source", models.DecisionApproved)
	suite.Equal(http.StatusForbidden, w.Code)
	var forbidden envelope[map[string]interface{}]
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &forbidden))
	suite.Equal(models.ClassAuthorization, forbidden.CodeType)

	suite.Equal(http.StatusForbidden, suite.approve(models.RoleForeignLawyer, doc, "en", models.DecisionApproved).Code)
	suite.Equal(http.StatusBadRequest, suite.approve(models.RoleAdmin, doc, "source", "maybe").Code)

	w = suite.do(http.MethodPost, fmt.Sprintf("/api/v1/documents/%d/approve", doc.ID), suite.tokens[models.RoleAdmin], map[string]interface{}{
		"decision": "approved",
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, fmt.Sprintf("/api/v1/documents/%d/approve", doc.ID), "", models.ApprovalRequest{
		VersionID: *doc.LatestVersionID, TargetLang: "source", Decision: models.DecisionApproved,
	})
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodPost, fmt.Sprintf("/api/v1/documents/%d/approve", doc.ID), suite.tokens[models.RoleAdmin], models.ApprovalRequest{
		VersionID: *other.LatestVersionID, TargetLang: "source", Decision: models.DecisionApproved,
	})
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, fmt.Sprintf("/api/v1/documents/%d/approve?versionId=%d&targetLang=en", doc.ID, *other.LatestVersionID), suite.tokens[models.RoleAdmin], nil)
	suite.Equal(http.StatusNotFound, w.Code)

	var count int64
	suite.NoError(suite.db.Model(&models.Approval{}).Count(&count).Error)
	suite.EqualValues(0, count)
}

func (suite *IntegrationTestSuite) TestTranslationRoutes() {
	doc := suite.createDocument("en")
	path := fmt.Sprintf("/api/v1/documents/%d/translate", doc.ID)

	w := suite.do(http.MethodPost, path, suite.tokens[models.RoleTranslator], models.TranslationRequest{
		VersionID:  *doc.LatestVersionID,
		TargetLang: "en",
		Segments:   []models.SegmentInput{{Position: 0, Text: "First."}, {Position: 1, Text: "Second."}},
	})
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.do(http.MethodPost, path, suite.tokens[models.RoleFamilyViewer], models.TranslationRequest{
		VersionID:  *doc.LatestVersionID,
		TargetLang: "en",
		Segments:   []models.SegmentInput{{Position: 0, Text: "Nope."}},
	})
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodGet, fmt.Sprintf("%s?versionId=%d&targetLang=en", path, *doc.LatestVersionID), suite.tokens[models.RoleFamilyViewer], nil)
	suite.Equal(http.StatusOK, w.Code)
	var progress envelope[models.TranslationProgress]
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &progress))
	suite.True(progress.Data.Complete)
	suite.Equal("Second.", progress.Data.Segments[1].Text)
}

func (suite *IntegrationTestSuite) TestDocumentRoutes() {
	doc := suite.createDocument("en")

	w := suite.do(http.MethodPost, "/api/v1/documents", suite.tokens[models.RoleTranslator], models.CreateDocumentRequest{Title: "x", Content: "y"})
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodPost, fmt.Sprintf("/api/v1/documents/%d/versions", doc.ID), suite.tokens[models.RoleFamilyAgent], models.CreateVersionRequest{Content: "Amended text."})
	suite.Equal(http.StatusCreated, w.Code)
	var version envelope[models.Version]
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &version))
	suite.Equal(2, version.Data.VersionNumber)

	w = suite.do(http.MethodGet, fmt.Sprintf("/api/v1/documents/%d/versions", doc.ID), suite.tokens[models.RoleFamilyViewer], nil)
	suite.Equal(http.StatusOK, w.Code)
	var versions envelope[[]models.Version]
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &versions))
	suite.Len(versions.Data, 2)

	w = suite.do(http.MethodGet, "/api/v1/documents?page=1&limit=10", suite.tokens[models.RoleFamilyViewer], nil)
	suite.Equal(http.StatusOK, w.Code)
	var list envelope[struct {
		Documents  []models.Document      `json:"documents"`
		Pagination map[string]interface{} `json:"pagination"`
	}]
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &list))
	suite.Len(list.Data.Documents, 1)
	suite.EqualValues(1, list.Data.Pagination["total_records"])

	w = suite.do(http.MethodGet, "/api/v1/documents/abc", suite.tokens[models.RoleFamilyViewer], nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/documents/999", suite.tokens[models.RoleFamilyViewer], nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) TestAuditRouteIsAdminOnly() {
	doc := suite.createDocument("en")
	suite.approve(models.RoleFamilyAgent, doc, "source", models.DecisionApproved)
	suite.audit.Wait()

	path := fmt.Sprintf("/api/v1/documents/%d/audit", doc.ID)
	suite.Equal(http.StatusForbidden, suite.do(http.MethodGet, path, suite.tokens[models.RoleFamilyAgent], nil).Code)

	w := suite.do(http.MethodGet, path, suite.tokens[models.RoleAdmin], nil)
	suite.Equal(http.StatusOK, w.Code)
	var trail envelope[[]models.AuditLog]
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &trail))
	suite.NotEmpty(trail.Data)
}

func (suite *IntegrationTestSuite) TestVerifyIsPublic() {
	doc := suite.createDocument("en")
	suite.approve(models.RoleFamilyAgent, doc, "source", models.DecisionApproved)
	suite.audit.Wait()

	w := suite.do(http.MethodGet, fmt.Sprintf("/api/v1/documents/%d/versions/%d", doc.ID, *doc.LatestVersionID), suite.tokens[models.RoleFamilyViewer], nil)
	var version envelope[models.Version]
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &version))

	w = suite.do(http.MethodGet, fmt.Sprintf("/verify/%d?hash=%s", version.Data.ID, version.Data.ContentHash), "", nil)
	suite.Equal(http.StatusOK, w.Code)
	var result envelope[models.VerificationResult]
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &result))
	suite.Require().NotNil(result.Data.HashMatches)
	suite.True(*result.Data.HashMatches)
	suite.Len(result.Data.Chain, 1)
	suite.Empty(result.Data.Chain[0].IPAddress)
	suite.NotEmpty(w.Header().Get("X-Request-ID"))

	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/verify/999", "", nil).Code)
}

func (suite *IntegrationTestSuite) TestVerifyIsRateLimited() {
	cfg := *suite.cfg
	cfg.VerifyRateLimitRPS = 0.001
	cfg.VerifyRateLimitBurst = 1
	router := suite.buildRouter(&cfg)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/verify/999", nil))
		codes = append(codes, w.Code)
	}
	suite.Equal([]int{http.StatusNotFound, http.StatusTooManyRequests}, codes)
}

func (suite *IntegrationTestSuite) TestForwardedForIsNotTrustedByDefault() {
	cfg := *suite.cfg
	cfg.VerifyRateLimitRPS = 0.001
	cfg.VerifyRateLimitBurst = 1
	suite.audit.Wait()
	suite.router = suite.buildRouter(&cfg)
	router := suite.router

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/verify/999", nil)
		req.RemoteAddr = "198.51.100.7:4000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i+1))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	suite.Equal([]int{http.StatusNotFound, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)

	doc := suite.createDocument("en")
	var body bytes.Buffer
	suite.Require().NoError(json.NewEncoder(&body).Encode(models.ApprovalRequest{
		VersionID: *doc.LatestVersionID, TargetLang: "source", Decision: models.DecisionApproved,
	}))
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/documents/%d/approve", doc.ID), &body)
	req.RemoteAddr = "198.51.100.7:4000"
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.tokens[models.RoleFamilyAgent])
	req.Header.Set("X-Forwarded-For", "203.0.113.50")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var approval models.Approval
	suite.Require().NoError(suite.db.First(&approval).Error)
	suite.Equal("198.51.100.7", approval.IPAddress)
}

func (suite *IntegrationTestSuite) TestForwardedForFromTrustedProxy() {
	cfg := *suite.cfg
	cfg.TrustedProxies = []string{"198.51.100.7"}
	suite.audit.Wait()
	suite.router = suite.buildRouter(&cfg)
	router := suite.router

	doc := suite.createDocument("en")
	var body bytes.Buffer
	suite.Require().NoError(json.NewEncoder(&body).Encode(models.ApprovalRequest{
		VersionID: *doc.LatestVersionID, TargetLang: "source", Decision: models.DecisionApproved,
	}))
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/documents/%d/approve", doc.ID), &body)
	req.RemoteAddr = "198.51.100.7:4000"
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.tokens[models.RoleFamilyAgent])
	req.Header.Set("X-Forwarded-For", "203.0.113.50")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var approval models.Approval
	suite.Require().NoError(suite.db.First(&approval).Error)
	suite.Equal("203.0.113.50", approval.IPAddress)
}

func (suite *IntegrationTestSuite) TestHealthAndMetrics() {
	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/health", "", nil).Code)

	w := suite.do(http.MethodGet, "/metrics", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "lawfirm_http_requests_total")
}
