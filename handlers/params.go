package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"lawfirm-cms/helper"
	"lawfirm-cms/middleware"
	"lawfirm-cms/services"
)

func parseID(c *gin.Context, h *helper.HTTPHelper, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		h.SendBadRequest(c, "Invalid "+name, h.EmptyJsonMap())
		return 0, false
	}
	return uint(id), true
}

func currentActor(c *gin.Context, h *helper.HTTPHelper) (services.Actor, bool) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		h.SendUnauthorizedError(c, "User not found in context", h.EmptyJsonMap())
		return services.Actor{}, false
	}
	return actor, true
}
