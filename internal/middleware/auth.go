package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/DhavalSuthar-24/scorebook/pkg/token"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	AuthUserIDKey = "auth_user_id"
	AuthRoleKey   = "auth_role"
)

// AuthMiddleware validates the bearer token and stores the caller's id and
// role in the context. When db is non-nil the user must still exist.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Authorization header is required", "code": http.StatusUnauthorized})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid Authorization header format. Expected: Bearer <token>", "code": http.StatusUnauthorized})
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid or expired token: " + err.Error(), "code": http.StatusUnauthorized})
			return
		}

		if db != nil {
			var count int64
			if err := db.Table("users").Where("id = ? AND deleted_at IS NULL", claims.UserID).Count(&count).Error; err != nil || count == 0 {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "User not found or inactive", "code": http.StatusUnauthorized})
				return
			}
		}

		c.Set(AuthUserIDKey, claims.UserID)
		c.Set(AuthRoleKey, claims.Role)
		c.Next()
	}
}

// GetUserIDFromContext extracts the user ID from the context
func GetUserIDFromContext(c *gin.Context) (uint, error) {
	userID, exists := c.Get(AuthUserIDKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}

	uid, ok := userID.(uint)
	if !ok {
		return 0, fmt.Errorf("user ID has unexpected type: %T", userID)
	}

	return uid, nil
}

// GetRoleFromContext extracts the caller's role from the context.
func GetRoleFromContext(c *gin.Context) (string, error) {
	role, exists := c.Get(AuthRoleKey)
	if !exists {
		return "", errors.New("role not found in context")
	}
	r, ok := role.(string)
	if !ok {
		return "", fmt.Errorf("role has unexpected type: %T", role)
	}
	return r, nil
}
