package match

import (
	"github.com/DhavalSuthar-24/scorebook/internal/live"
	mw "github.com/DhavalSuthar-24/scorebook/internal/middleware"
	"github.com/DhavalSuthar-24/scorebook/pkg/rmiddleware"
	"github.com/DhavalSuthar-24/scorebook/pkg/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MatchRoutes sets up all match-related routes. Reads and the live feed
// are public; every scoring mutation needs a manager or admin, and delete
// needs an admin.
func MatchRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string, service *MatchService, hub *live.Hub, logger *zap.Logger) {
	validator.MustRegister()
	matchController := NewMatchController(service, hub, logger)

	public := router.Group("/matches")
	{
		public.GET("", matchController.GetMatches)
		public.GET("/:id", matchController.GetMatchByID)
		public.GET("/:id/score", matchController.GetScore)
		public.GET("/:id/live", matchController.Live)
	}

	scorer := router.Group("/matches")
	scorer.Use(mw.AuthMiddleware(jwtSecret, db))
	scorer.Use(rmiddleware.ManagerOrAdminMiddleware())
	{
		scorer.POST("", matchController.CreateMatch)
		scorer.PUT("/:id", matchController.UpdateMatch)
		scorer.POST("/:id/start", matchController.StartMatch)
		scorer.POST("/:id/balls", matchController.RecordBall)
		scorer.DELETE("/:id/balls/last", matchController.UndoLastBall)
		scorer.POST("/:id/end-innings", matchController.EndInnings)
		scorer.POST("/:id/end", matchController.EndMatch)
		scorer.POST("/:id/abandon", matchController.AbandonMatch)
	}

	admin := router.Group("/matches")
	admin.Use(mw.AuthMiddleware(jwtSecret, db))
	admin.Use(rmiddleware.AdminMiddleware())
	{
		admin.DELETE("/:id", matchController.DeleteMatch)
	}
}
