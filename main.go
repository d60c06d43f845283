package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"lawfirm-cms/config"
	"lawfirm-cms/handlers"
	"lawfirm-cms/helper"
	"lawfirm-cms/logger"
	"lawfirm-cms/metrics"
	"lawfirm-cms/repositories"
	"lawfirm-cms/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		bootLog := logger.New(logger.Config{})
		bootLog.Warn().Err(err).Msg("failed to read .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Config{})
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	policy, err := config.LoadPolicyFile(cfg.PolicyFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.PolicyFile).Msg("invalid workflow policy")
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database initialisation failed")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	approvalRepo := repositories.NewApprovalRepository(db)
	translationRepo := repositories.NewTranslationRepository(db)
	auditRepo := repositories.NewAuditRepository(db)

	// Initialize services
	auditService := services.NewAuditService(auditRepo, m, logger.Component(log, "audit"))
	approvalPolicy := services.NewApprovalPolicy(policy)
	approvalService := services.NewApprovalService(approvalRepo, documentRepo, m)
	readiness := services.NewReadinessEvaluator(approvalService, m)
	notifier := services.NewLogNotifier(logger.Component(log, "notifier"))

	authService := services.NewAuthService(userRepo, cfg.JWT(), auditService)
	documentService := services.NewDocumentService(documentRepo, translationRepo, approvalPolicy, policy,
		services.NewSentenceSegmenter(), auditService, logger.Component(log, "documents"))
	workflowService := services.NewWorkflowService(services.WorkflowDeps{
		Documents:    documentRepo,
		Translations: translationRepo,
		AuditLogs:    auditRepo,
		Approvals:    approvalService,
		Readiness:    readiness,
		Policy:       approvalPolicy,
		Workflow:     policy,
		Audit:        auditService,
		Notifier:     notifier,
		Metrics:      m,
		Logger:       logger.Component(log, "workflow"),
	})
	translationService := services.NewTranslationService(services.TranslationDeps{
		Documents:    documentRepo,
		Translations: translationRepo,
		Approvals:    approvalService,
		Policy:       approvalPolicy,
		Workflow:     policy,
		Audit:        auditService,
		Notifier:     notifier,
		Metrics:      m,
		Logger:       logger.Component(log, "translations"),
	})
	verificationService := services.NewVerificationService(documentRepo, auditRepo, approvalService, readiness,
		policy, logger.Component(log, "verify"))

	if cfg.BootstrapAdmin() {
		if err := authService.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatal().Err(err).Str("email", cfg.AdminEmail).Msg("admin bootstrap failed")
		}
	}

	router := handlers.NewRouter(handlers.RouterDeps{
		Config:       cfg,
		Logger:       logger.Component(log, "http"),
		Metrics:      m,
		Gatherer:     reg,
		Helper:       helper.NewHTTPHelper(),
		Auth:         authService,
		Documents:    documentService,
		Workflow:     workflowService,
		Translations: translationService,
		Verification: verificationService,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	auditService.Wait()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server stopped")
}
