package health

import (
	"net/http"
	"runtime"
	"time"

	"medinest-api/internal/core/recommendation"
	"medinest-api/internal/infrastructure/config"
	"medinest-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys the router injects
const (
	ConfigKey                = "config"
	RecommendationServiceKey = "recommendation_service"
)

// HealthResponse health check body
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	AI        AIStatus               `json:"ai"`
}

// AIStatus model path configuration. Enabled is false when no credential is
// set, in which case every request is served by the local heuristic.
type AIStatus struct {
	Enabled   bool   `json:"enabled"`
	Model     string `json:"model"`
	Transport string `json:"transport"`
}

// HealthCheck reports version, runtime stats and AI status
func HealthCheck(c *gin.Context) {
	cfg, ok := c.Get(ConfigKey)
	if !ok {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, common.ErrInternalError.ToResponse(false))
		return
	}
	appConfig, ok := cfg.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		c.JSON(http.StatusInternalServerError, common.ErrInternalError.ToResponse(false))
		return
	}

	aiEnabled := false
	if svc, ok := c.Get(RecommendationServiceKey); ok {
		if s, ok := svc.(*recommendation.Service); ok {
			aiEnabled = s.AIEnabled()
		}
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   appConfig.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		AI: AIStatus{
			Enabled:   aiEnabled,
			Model:     appConfig.Gemini.Model,
			Transport: appConfig.Gemini.Transport,
		},
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck always ready: the service has no hard dependencies
func ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck process liveness
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
