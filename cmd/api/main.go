package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medinest-api/internal/api"
	"medinest-api/internal/core/ai/provider"
	"medinest-api/internal/core/recommendation"
	"medinest-api/internal/infrastructure/config"
	"medinest-api/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := common.InitLogger(cfg.LogLevel, cfg.Log.File, cfg.Log.Mode); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("Configuration loaded",
		zap.String("gemini_key", config.MaskAPIKey(cfg.Gemini.APIKey)),
		zap.String("gemini_model", cfg.Gemini.Model),
		zap.String("gemini_transport", cfg.Gemini.Transport),
		zap.Duration("gemini_timeout", cfg.Gemini.Timeout),
	)

	svc, closeProvider := newRecommendationService(cfg)
	defer closeProvider()

	rdb := newRedisClient(cfg)
	if rdb != nil {
		defer rdb.Close()
	}

	router := api.SetupRouter(cfg, svc, rdb)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo(common.MsgAppStarting,
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
			zap.Bool("ai_enabled", svc.AIEnabled()),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo(common.MsgShuttingDown)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	common.LogInfo(common.MsgServerExited)
}

// newRecommendationService wires the configured provider. Without a
// credential the service runs on local recommendations only.
func newRecommendationService(cfg *config.Config) (*recommendation.Service, func()) {
	p, err := provider.New(context.Background(), cfg)
	if err != nil {
		if errors.Is(err, common.ErrAIDisabled) {
			common.LogWarn("GEMINI_API_KEY not set, serving local recommendations only")
		} else {
			common.LogError("Failed to initialize AI provider, serving local recommendations only", zap.Error(err))
		}
		return recommendation.NewService(nil), func() {}
	}

	common.LogInfo("AI provider initialized",
		zap.String("model", p.GetModel()),
		zap.Duration("timeout", p.GetTimeout()),
	)
	return recommendation.NewService(p), func() {
		if err := p.Close(); err != nil {
			common.LogWarn("Failed to close AI provider", zap.Error(err))
		}
	}
}

// newRedisClient returns nil when no address is configured or redis is unreachable.
func newRedisClient(cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" || !cfg.RateLimit.Enabled {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		common.LogWarn("Redis unreachable, using in-memory rate limiting",
			zap.String("addr", cfg.Redis.Addr),
			zap.Error(err),
		)
		_ = rdb.Close()
		return nil
	}

	common.LogInfo("Redis connected", zap.String("addr", cfg.Redis.Addr))
	return rdb
}
