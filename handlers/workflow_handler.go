package handlers

import (
	"github.com/gin-gonic/gin"

	"lawfirm-cms/helper"
	"lawfirm-cms/middleware"
	"lawfirm-cms/models"
	"lawfirm-cms/services"
)

type WorkflowHandler struct {
	workflowService    services.WorkflowService
	translationService services.TranslationService
	Helper             *helper.HTTPHelper
}

func NewWorkflowHandler(workflowService services.WorkflowService, translationService services.TranslationService, h *helper.HTTPHelper) *WorkflowHandler {
	return &WorkflowHandler{
		workflowService:    workflowService,
		translationService: translationService,
		Helper:             h,
	}
}

func (h *WorkflowHandler) GetApprovalStatus(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	var query models.ApprovalQuery
	if !h.Helper.BindQuery(c, &query) {
		return
	}

	status, err := h.workflowService.ApprovalStatus(c.Request.Context(), id, query)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", status)
}

func (h *WorkflowHandler) SubmitApproval(c *gin.Context) {
	actor, ok := currentActor(c, h.Helper)
	if !ok {
		return
	}
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	var req models.ApprovalRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	approval, err := h.workflowService.SubmitDecision(c.Request.Context(), actor, id, req, middleware.RequestMeta(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Approval recorded", approval)
}

func (h *WorkflowHandler) GetTranslation(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	var query models.TranslationQuery
	if !h.Helper.BindQuery(c, &query) {
		return
	}

	progress, err := h.translationService.Progress(c.Request.Context(), id, query)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", progress)
}

func (h *WorkflowHandler) SubmitTranslation(c *gin.Context) {
	actor, ok := currentActor(c, h.Helper)
	if !ok {
		return
	}
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	var req models.TranslationRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	progress, err := h.translationService.Submit(c.Request.Context(), actor, id, req, middleware.RequestMeta(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Translation recorded", progress)
}

func (h *WorkflowHandler) GetReadiness(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}
	versionID, ok := parseID(c, h.Helper, "version_id")
	if !ok {
		return
	}

	readiness, err := h.workflowService.Readiness(c.Request.Context(), id, versionID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", readiness)
}

func (h *WorkflowHandler) Export(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}
	versionID, ok := parseID(c, h.Helper, "version_id")
	if !ok {
		return
	}

	bundle, err := h.workflowService.Export(c.Request.Context(), id, versionID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", bundle)
}

func (h *WorkflowHandler) GetAuditTrail(c *gin.Context) {
	actor, ok := currentActor(c, h.Helper)
	if !ok {
		return
	}
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	entries, err := h.workflowService.AuditTrail(c.Request.Context(), actor, id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", entries)
}
