package handlers

import (
	"github.com/gin-gonic/gin"

	"lawfirm-cms/helper"
	"lawfirm-cms/middleware"
	"lawfirm-cms/models"
	"lawfirm-cms/services"
)

const maxPageSize = 100

type DocumentHandler struct {
	documentService services.DocumentService
	Helper          *helper.HTTPHelper
}

func NewDocumentHandler(documentService services.DocumentService, h *helper.HTTPHelper) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, Helper: h}
}

func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	actor, ok := currentActor(c, h.Helper)
	if !ok {
		return
	}

	var req models.CreateDocumentRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), actor, req, middleware.RequestMeta(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Document created", doc)
}

func (h *DocumentHandler) GetDocuments(c *gin.Context) {
	var params models.DocumentListParams
	if !h.Helper.BindQuery(c, &params) {
		return
	}

	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 10
	}
	if params.Limit > maxPageSize {
		params.Limit = maxPageSize
	}

	docs, total, err := h.documentService.GetDocuments(c.Request.Context(), params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", gin.H{
		"documents":  docs,
		"pagination": h.Helper.GeneratePaging(c, 0, 0, params.Limit, params.Page, int(total)),
	})
}

func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	doc, err := h.documentService.GetDocument(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", doc)
}

func (h *DocumentHandler) CreateVersion(c *gin.Context) {
	actor, ok := currentActor(c, h.Helper)
	if !ok {
		return
	}
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	var req models.CreateVersionRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	version, err := h.documentService.CreateVersion(c.Request.Context(), actor, id, req, middleware.RequestMeta(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Version created", version)
}

func (h *DocumentHandler) GetVersions(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	versions, err := h.documentService.GetVersions(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", versions)
}

func (h *DocumentHandler) GetVersion(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}
	versionID, ok := parseID(c, h.Helper, "version_id")
	if !ok {
		return
	}

	version, err := h.documentService.GetVersion(c.Request.Context(), id, versionID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", version)
}
