package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/scorebook/config"
	"github.com/DhavalSuthar-24/scorebook/internal/auth"
	"github.com/DhavalSuthar-24/scorebook/internal/live"
	"github.com/DhavalSuthar-24/scorebook/internal/match"
	"github.com/DhavalSuthar-24/scorebook/internal/metrics"
	"github.com/DhavalSuthar-24/scorebook/internal/middleware"
	"github.com/DhavalSuthar-24/scorebook/internal/team"
)

// Options carries everything the HTTP surface depends on.
type Options struct {
	DB      *gorm.DB
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	// Hub may be nil, in which case the live endpoint answers 503.
	Hub *live.Hub
	// Publishers receive every committed scoring event next to the hub.
	Publishers []live.Publisher
}

func SetupRoutes(opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	cfg := opts.Config

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(corsMiddleware(cfg.App.CORSOrigin))

	r.GET("/healthz", healthz(opts.DB))
	r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	jwtSecret := cfg.JWT.AccessTokenSecret
	api := r.Group("/api")

	auth.RegisterAuthRoutes(api.Group("/auth"), opts.DB, jwtSecret, cfg.JWT.AccessTokenExpiryMinutes, opts.Logger)

	teams := team.TeamRoutes(api, opts.DB, jwtSecret, opts.Logger)

	publishers := live.MultiPublisher{}
	if opts.Hub != nil {
		publishers = append(publishers, opts.Hub)
	}
	publishers = append(publishers, opts.Publishers...)

	service := match.NewMatchService(match.NewGormMatchRepository(opts.DB), teams, publishers, opts.Metrics, opts.Logger)
	match.MatchRoutes(api, opts.DB, jwtSecret, service, opts.Hub, opts.Logger)

	return r
}

func corsMiddleware(origin string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if origin == "" || origin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{origin}
		corsConfig.AllowCredentials = true
	}
	corsConfig.AddAllowHeaders("Authorization", middleware.RequestIDHeader)
	corsConfig.AddExposeHeaders(middleware.RequestIDHeader)
	return cors.New(corsConfig)
}

// healthz reports whether the database answers a ping.
func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
