package handlers

import (
	"github.com/gin-gonic/gin"

	"lawfirm-cms/helper"
	"lawfirm-cms/middleware"
	"lawfirm-cms/models"
	"lawfirm-cms/services"
)

type AuthHandler struct {
	authService services.AuthService
	Helper      *helper.HTTPHelper
}

func NewAuthHandler(authService services.AuthService, h *helper.HTTPHelper) *AuthHandler {
	return &AuthHandler{authService: authService, Helper: h}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	response, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Register success", response)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Login success", response)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	actor, ok := currentActor(c, h.Helper)
	if !ok {
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), actor.UserID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Profile loaded", user)
}

func (h *AuthHandler) UpdateRole(c *gin.Context) {
	actor, ok := currentActor(c, h.Helper)
	if !ok {
		return
	}
	userID, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	var req models.UpdateRoleRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateRole(c.Request.Context(), actor, userID, req.Role, middleware.RequestMeta(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Role updated", user)
}
