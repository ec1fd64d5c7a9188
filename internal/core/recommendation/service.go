package recommendation

import (
	"context"
	"fmt"

	"medinest-api/internal/pkg/common"

	"go.uber.org/zap"
)

// TextGenerator is the model backend the service prompts.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service produces recommendations for a profile payload.
type Service struct {
	generator TextGenerator
}

// NewService creates a service. A nil generator means the AI path is
// disabled and every call returns the local recommendations.
func NewService(generator TextGenerator) *Service {
	return &Service{generator: generator}
}

// AIEnabled reports whether a generator is configured.
func (s *Service) AIEnabled() bool {
	return s.generator != nil
}

// Generate returns recommendations for raw. It never fails.
func (s *Service) Generate(ctx context.Context, raw map[string]any) []Recommendation {
	return s.Recommend(ctx, raw).Recommendations
}

// Recommend is Generate plus the source of the result. Any failure on the
// model path (transport, status, decode) yields the local recommendations;
// the model's list is otherwise returned as-is, whatever its length.
func (s *Service) Recommend(ctx context.Context, raw map[string]any) Result {
	profile := NormalizeProfile(raw)

	if s.generator == nil {
		return s.fallback(ctx, profile, common.ErrAIDisabled)
	}

	recs, err := s.fromModel(ctx, profile)
	if err != nil {
		return s.fallback(ctx, profile, err)
	}

	common.LogInfo("Recommendations generated by model",
		zap.Int("count", len(recs)),
		zap.String("request_id", common.RequestIDFrom(ctx)),
	)
	return Result{Recommendations: recs, Source: SourceAI}
}

func (s *Service) fromModel(ctx context.Context, profile Profile) (recs []Recommendation, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = common.ErrInternalError.Wrap(fmt.Errorf("model path panicked: %v", r))
		}
	}()

	text, err := s.generator.Generate(ctx, BuildPrompt(profile))
	if err != nil {
		return nil, err
	}
	return DecodeRecommendations(text)
}

func (s *Service) fallback(ctx context.Context, profile Profile, cause error) Result {
	code := common.CodeOf(cause)
	fields := []zap.Field{
		zap.String("reason", code),
		zap.String("request_id", common.RequestIDFrom(ctx)),
	}
	if code == common.ErrCodeAIDisabled {
		common.LogDebug("Using local recommendations", fields...)
	} else {
		common.LogWarn("Using local recommendations", append(fields, zap.Error(cause))...)
	}

	return Result{
		Recommendations: LocalRecommendations(profile),
		Source:          SourceFallback,
		FallbackReason:  code,
	}
}
