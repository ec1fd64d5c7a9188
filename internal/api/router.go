package api

import (
	"time"

	"medinest-api/internal/api/handlers/health"
	recommendationHandler "medinest-api/internal/api/handlers/recommendation"
	"medinest-api/internal/api/middleware"
	"medinest-api/internal/core/recommendation"
	"medinest-api/internal/infrastructure/config"
	"medinest-api/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SetupRouter builds the HTTP engine. A nil rdb keeps rate limiting in memory.
func SetupRouter(cfg *config.Config, svc *recommendation.Service, rdb *redis.Client) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))
	router.Use(middleware.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", common.HeaderRecommendationSource, common.HeaderFallbackReason},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(newLimiter(cfg.RateLimit, rdb), cfg.RateLimit.Window))
	}
	router.Use(middleware.NewDeduplicator(cfg.DedupWindow).Middleware())

	router.Use(middleware.RequestContext(cfg.Server.RequestTimeout))
	router.Use(func(c *gin.Context) {
		c.Set(health.ConfigKey, cfg)
		c.Set(health.RecommendationServiceKey, svc)
		c.Next()
	})

	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	api := router.Group("/api/v1")
	{
		handler := recommendationHandler.NewHandler(svc)

		recommendations := api.Group("/recommendations")
		{
			recommendations.POST("", handler.HandleRecommend)
			recommendations.POST("/profile-check", handler.HandleProfileCheck)
		}
	}

	common.LogInfo("Router setup completed",
		zap.Bool("ai_enabled", svc.AIEnabled()),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Bool("shared_rate_limit", rdb != nil),
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}

func newLimiter(cfg config.RateLimitConfig, rdb *redis.Client) middleware.Limiter {
	if rdb != nil {
		return middleware.NewRedisLimiter(rdb, cfg.Requests, cfg.Window)
	}
	return middleware.NewMemoryLimiter(cfg.Requests, cfg.Window)
}
