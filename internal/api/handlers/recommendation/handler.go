package recommendation

import (
	"errors"
	"net/http"

	"medinest-api/internal/core/recommendation"
	"medinest-api/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Request recommendation request body. The profile stays an open map;
// unknown keys are ignored and missing ones defaulted.
type Request struct {
	Profile map[string]any `json:"profile"`
}

// ProfileCheckResponse completeness of a profile
type ProfileCheckResponse struct {
	Complete bool     `json:"complete"`
	Missing  []string `json:"missing"`
}

// Handler recommendation endpoints
type Handler struct {
	service *recommendation.Service
}

// NewHandler creates a handler backed by service
func NewHandler(service *recommendation.Service) *Handler {
	return &Handler{service: service}
}

// HandleRecommend returns the recommendation list for the posted profile.
// It answers 200 whenever the body is a valid request, whatever happened on
// the model path; the source is reported in response headers.
func (h *Handler) HandleRecommend(c *gin.Context) {
	requestID := requestid.Get(c)

	req, ok := bindRequest(c, requestID)
	if !ok {
		return
	}

	result := h.service.Recommend(c.Request.Context(), req.Profile)

	c.Header(common.HeaderRecommendationSource, string(result.Source))
	if result.FallbackReason != "" {
		c.Header(common.HeaderFallbackReason, result.FallbackReason)
	}

	common.LogInfo("Recommendations served",
		zap.String("request_id", requestID),
		zap.String("source", string(result.Source)),
		zap.String("fallback_reason", result.FallbackReason),
		zap.Int("count", len(result.Recommendations)),
	)

	c.JSON(http.StatusOK, result.Recommendations)
}

// HandleProfileCheck reports which required profile fields are missing.
func (h *Handler) HandleProfileCheck(c *gin.Context) {
	req, ok := bindRequest(c, requestid.Get(c))
	if !ok {
		return
	}

	missing := recommendation.MissingFields(req.Profile)
	c.JSON(http.StatusOK, ProfileCheckResponse{
		Complete: len(missing) == 0,
		Missing:  missing,
	})
}

func bindRequest(c *gin.Context, requestID string) (Request, bool) {
	var req Request
	if err := common.DecodeJSON(c.Request.Body, &req); err != nil {
		customErr := common.ErrInvalidRequest.Wrap(err)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			customErr = common.ErrPayloadTooLarge.Wrap(err)
		}

		common.LogWarn("Invalid recommendation request",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.AbortWithStatusJSON(customErr.Status, customErr.ToResponse(false))
		return Request{}, false
	}
	return req, true
}
