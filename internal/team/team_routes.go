package team

import (
	mw "github.com/DhavalSuthar-24/scorebook/internal/middleware"
	"github.com/DhavalSuthar-24/scorebook/pkg/rmiddleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TeamRoutes sets up all team-related routes. Reads are public, roster
// changes need a manager or admin.
func TeamRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string, logger *zap.Logger) TeamRepository {
	teamRepo := NewTeamRepository(db)
	teamController := NewTeamController(teamRepo, logger)

	router.GET("/teams", teamController.GetAllTeams)
	router.GET("/teams/:id", teamController.GetTeamByID)
	router.GET("/teams/:id/players", teamController.GetTeamPlayers)

	managed := router.Group("/teams")
	managed.Use(mw.AuthMiddleware(jwtSecret, db))
	managed.Use(rmiddleware.ManagerOrAdminMiddleware())
	{
		managed.POST("", teamController.CreateTeam)
		managed.POST("/:id/players", teamController.AddPlayer)
	}

	return teamRepo
}
