package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/apperr"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/services"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/utils"
)

const (
	userKey   = "user"
	userIDKey = "user_id"
)

// Authenticate requires a valid access token belonging to a live, active user.
func Authenticate(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			utils.HandleError(c, apperr.Unauthorized("No token provided"))
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			utils.HandleError(c, err)
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// OptionalAuth attaches the user when a usable token is sent and otherwise
// lets the request through anonymously.
func OptionalAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if user, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				setUser(c, user)
			}
		}
		c.Next()
	}
}

// RequireAdmin allows ADMIN and SUPER_ADMIN.
func RequireAdmin() gin.HandlerFunc {
	return requireRole(func(r models.Role) bool { return r.IsAdmin() })
}

func RequireSuperAdmin() gin.HandlerFunc {
	return RequireRoles(models.RoleSuperAdmin)
}

func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return requireRole(func(r models.Role) bool { return r.In(roles...) })
}

func requireRole(allowed func(models.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			utils.HandleError(c, apperr.Unauthorized(""))
			return
		}
		if !allowed(user.Role) {
			utils.HandleError(c, apperr.Forbidden(""))
			return
		}
		c.Next()
	}
}

func setUser(c *gin.Context, user *models.User) {
	c.Set(userKey, user)
	c.Set(userIDKey, user.ID)
}

// CurrentUser is the authenticated user, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

func CurrentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// Actor describes the caller for the audit trail.
func Actor(c *gin.Context) services.Actor {
	return services.Actor{
		UserID:    CurrentUserID(c),
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
