package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"lawfirm-cms/config"
	"lawfirm-cms/helper"
	"lawfirm-cms/models"
	"lawfirm-cms/services"
)

const (
	ctxUserID   = "user_id"
	ctxUsername = "username"
	ctxRole     = "role"
)

type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// UserLookup resolves the stored account behind a token.
type UserLookup interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// AuthMiddleware verifies the bearer token and loads the caller's current
// account. The role in the context is the stored one, so a role change takes
// effect on the next request rather than when the token expires.
func AuthMiddleware(jwtConfig config.JWTConfig, users UserLookup, h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			h.SendUnauthorizedError(c, "Authorization header required", h.EmptyJsonMap())
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			h.SendUnauthorizedError(c, "Bearer token required", h.EmptyJsonMap())
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return jwtConfig.Secret, nil
		})
		if err != nil || !token.Valid {
			h.SendUnauthorizedError(c, "Token is not valid", h.EmptyJsonMap())
			c.Abort()
			return
		}

		if claims.UserID == 0 || !models.UserRole(claims.Role).Valid() {
			h.SendUnauthorizedError(c, "Token carries no usable identity", h.EmptyJsonMap())
			c.Abort()
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			var notFound models.ErrorNotFound
			if errors.As(err, &notFound) {
				h.SendUnauthorizedError(c, "Account no longer exists", h.EmptyJsonMap())
			} else {
				h.SendServiceError(c, err)
			}
			c.Abort()
			return
		}
		if !user.Role.Valid() {
			h.SendUnauthorizedError(c, "Account carries no usable role", h.EmptyJsonMap())
			c.Abort()
			return
		}

		c.Set(ctxUserID, user.ID)
		c.Set(ctxUsername, user.Username)
		c.Set(ctxRole, user.Role)

		c.Next()
	}
}

func RequireRole(h *helper.HTTPHelper, roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			h.SendUnauthorizedError(c, "User role not found", h.EmptyJsonMap())
			c.Abort()
			return
		}

		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}

		h.SendForbiddenError(c, "Insufficient permissions", h.EmptyJsonMap())
		c.Abort()
	}
}

// ActorFromContext returns the caller set by AuthMiddleware.
func ActorFromContext(c *gin.Context) (services.Actor, bool) {
	userID, ok := c.Get(ctxUserID)
	if !ok {
		return services.Actor{}, false
	}
	role, _ := c.Get(ctxRole)
	username, _ := c.Get(ctxUsername)

	actor := services.Actor{}
	actor.UserID, _ = userID.(uint)
	actor.Role, _ = role.(models.UserRole)
	actor.Username, _ = username.(string)
	return actor, actor.UserID != 0
}
