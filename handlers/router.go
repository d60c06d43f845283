package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"lawfirm-cms/config"
	"lawfirm-cms/helper"
	"lawfirm-cms/metrics"
	"lawfirm-cms/middleware"
	"lawfirm-cms/models"
	"lawfirm-cms/services"
)

type RouterDeps struct {
	Config       *config.Config
	Logger       zerolog.Logger
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer
	Helper       *helper.HTTPHelper
	Auth         services.AuthService
	Documents    services.DocumentService
	Workflow     services.WorkflowService
	Translations services.TranslationService
	Verification services.VerificationService
}

func NewRouter(deps RouterDeps) *gin.Engine {
	h := deps.Helper
	authHandler := NewAuthHandler(deps.Auth, h)
	documentHandler := NewDocumentHandler(deps.Documents, h)
	workflowHandler := NewWorkflowHandler(deps.Workflow, deps.Translations, h)
	verifyHandler := NewVerifyHandler(deps.Verification, h)

	router := gin.New()
	if err := router.SetTrustedProxies(deps.Config.TrustedProxies); err != nil {
		deps.Logger.Error().Err(err).Strs("trusted_proxies", deps.Config.TrustedProxies).Msg("ignoring trusted proxies")
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger, deps.Metrics))

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// Public verification
	limiter := middleware.NewIPRateLimiter(deps.Config.VerifyRateLimitRPS, deps.Config.VerifyRateLimitBurst, deps.Logger)
	router.GET("/verify/:versionId", limiter.Middleware(h), verifyHandler.Verify)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware(deps.Config.JWT(), deps.Auth, h))
		{
			protected.GET("/profile", authHandler.GetProfile)

			users := protected.Group("/users")
			users.Use(middleware.RequireRole(h, models.RoleAdmin))
			{
				users.PUT("/:id/role", authHandler.UpdateRole)
			}

			documents := protected.Group("/documents")
			{
				documents.POST("", documentHandler.CreateDocument)
				documents.GET("", documentHandler.GetDocuments)
				documents.GET("/:id", documentHandler.GetDocument)
				documents.POST("/:id/versions", documentHandler.CreateVersion)
				documents.GET("/:id/versions", documentHandler.GetVersions)
				documents.GET("/:id/versions/:version_id", documentHandler.GetVersion)
				documents.GET("/:id/versions/:version_id/readiness", workflowHandler.GetReadiness)
				documents.GET("/:id/versions/:version_id/export", workflowHandler.Export)

				documents.GET("/:id/approve", workflowHandler.GetApprovalStatus)
				documents.POST("/:id/approve", workflowHandler.SubmitApproval)
				documents.GET("/:id/translate", workflowHandler.GetTranslation)
				documents.POST("/:id/translate", workflowHandler.SubmitTranslation)

				documents.GET("/:id/audit", middleware.RequireRole(h, models.RoleAdmin), workflowHandler.GetAuditTrail)
			}
		}
	}

	return router
}
