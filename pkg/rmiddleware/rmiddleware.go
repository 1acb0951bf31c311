package rmiddleware

import (
	"net/http"
	"strings"

	"github.com/DhavalSuthar-24/scorebook/internal/middleware"
	"github.com/DhavalSuthar-24/scorebook/pkg/token"

	"github.com/gin-gonic/gin"
)

// Allowed is the capability check: does role satisfy any of the required roles.
func Allowed(role string, requiredRoles ...string) bool {
	for _, required := range requiredRoles {
		if strings.EqualFold(role, required) {
			return true
		}
	}
	return false
}

// RoleMiddleware denies the request unless the authenticated caller holds
// one of requiredRoles. It must run after middleware.AuthMiddleware.
func RoleMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := middleware.GetUserIDFromContext(c); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Unauthorized: " + err.Error(), "code": http.StatusUnauthorized})
			return
		}

		role, err := middleware.GetRoleFromContext(c)
		if err != nil || !Allowed(role, requiredRoles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":   "error",
				"message":  "You don't have permission to access this resource",
				"code":     http.StatusForbidden,
				"required": requiredRoles,
			})
			return
		}

		c.Next()
	}
}

// AdminMiddleware is a convenience middleware for admin-only access
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(token.RoleAdmin)
}

// ManagerOrAdminMiddleware gates every scoring mutation.
func ManagerOrAdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(token.RoleManager, token.RoleAdmin)
}
