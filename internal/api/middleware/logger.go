package middleware

import (
	"fmt"
	"net/http"
	"time"

	"medinest-api/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger access log middleware. Must run after requestid.New.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", requestid.Get(c)),
		}
		if source := c.Writer.Header().Get(common.HeaderRecommendationSource); source != "" {
			fields = append(fields, zap.String("source", source))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		switch {
		case status >= 500:
			common.LogError(common.MsgRequestCompleted, append(fields, zap.String("error_type", "server_error"))...)
		case status >= 400:
			common.LogWarn(common.MsgRequestCompleted, append(fields, zap.String("error_type", "client_error"))...)
		default:
			common.LogInfo(common.MsgRequestCompleted, fields...)
		}
	}
}

// Recovery turns a handler panic into a 500 INTERNAL_ERROR body.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				common.LogError("Panic recovered",
					zap.Any("error", r),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.String("request_id", requestid.Get(c)),
				)
				abortWithError(c, common.ErrInternalError.Wrap(fmt.Errorf("panic: %v", r)))
			}
		}()

		c.Next()
	}
}

// abortWithError writes err's JSON body with its status and stops the chain.
func abortWithError(c *gin.Context, err *common.CustomError) {
	status := err.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, err.ToResponse(false))
}
