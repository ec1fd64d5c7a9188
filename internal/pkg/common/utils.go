package common

import (
	"context"

	"github.com/google/uuid"
)

// Response headers describing how recommendations were produced
const (
	HeaderRecommendationSource = "X-Recommendation-Source"
	HeaderFallbackReason       = "X-Fallback-Reason"
)

type requestIDKey struct{}

// GenerateUUID returns a random UUID string
func GenerateUUID() string {
	return uuid.New().String()
}

// WithRequestID stores the request ID on ctx for downstream log lines.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFrom returns the request ID stored on ctx, or "".
func RequestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
