package handlers

import (
	"github.com/gin-gonic/gin"

	"lawfirm-cms/helper"
	"lawfirm-cms/services"
)

type VerifyHandler struct {
	verificationService services.VerificationService
	Helper              *helper.HTTPHelper
}

func NewVerifyHandler(verificationService services.VerificationService, h *helper.HTTPHelper) *VerifyHandler {
	return &VerifyHandler{verificationService: verificationService, Helper: h}
}

func (h *VerifyHandler) Verify(c *gin.Context) {
	versionID, ok := parseID(c, h.Helper, "versionId")
	if !ok {
		return
	}

	result, err := h.verificationService.Verify(c.Request.Context(), versionID, c.Query("hash"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", result)
}
