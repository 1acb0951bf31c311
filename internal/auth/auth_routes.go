package auth

import (
	"github.com/DhavalSuthar-24/scorebook/internal/middleware"
	"github.com/DhavalSuthar-24/scorebook/pkg/rmiddleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterAuthRoutes mounts login, profile and account creation under rg.
func RegisterAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, jwtSecret string, expiryMinutes int, logger *zap.Logger) {
	repo := NewAuthRepository(db)
	ctrl := NewAuthController(repo, jwtSecret, expiryMinutes, logger)

	rg.POST("/login", ctrl.Login)

	protected := rg.Group("")
	protected.Use(middleware.AuthMiddleware(jwtSecret, db))
	{
		protected.GET("/me", ctrl.Me)
		protected.POST("/users", rmiddleware.AdminMiddleware(), ctrl.CreateUser)
	}
}
