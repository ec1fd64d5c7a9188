package recommendation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"medinest-api/internal/pkg/common"
)

// DecodeRecommendations parses model output into recommendations. The text
// may be wrapped in a ```json fence. The whole batch is rejected if any
// element does not fit the Recommendation shape.
func DecodeRecommendations(raw string) ([]Recommendation, error) {
	text := common.StripCodeFence(raw)
	if text == "" {
		return nil, common.ErrAIDecode.Wrap(errors.New("empty output"))
	}

	var parsed any
	if err := common.ParseJSON(text, &parsed); err != nil {
		return nil, common.ErrAIDecode.Wrap(fmt.Errorf("failed to parse output: %w", err))
	}

	items, ok := parsed.([]any)
	if !ok {
		return nil, common.ErrAIDecode.Wrap(fmt.Errorf("expected a JSON array, got %T", parsed))
	}
	if len(items) == 0 {
		return nil, common.ErrAIDecode.Wrap(errors.New("empty recommendation list"))
	}

	recs := make([]Recommendation, 0, len(items))
	for i, item := range items {
		rec, err := decodeRecommendation(item)
		if err != nil {
			return nil, common.ErrAIDecode.Wrap(fmt.Errorf("recommendation %d: %w", i, err))
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func decodeRecommendation(item any) (Recommendation, error) {
	m, ok := item.(map[string]any)
	if !ok {
		return Recommendation{}, fmt.Errorf("expected an object, got %T", item)
	}

	var (
		rec Recommendation
		err error
	)
	if rec.Name, err = requiredString(m, "name"); err != nil {
		return Recommendation{}, err
	}
	if rec.Provider, err = requiredString(m, "provider"); err != nil {
		return Recommendation{}, err
	}
	if rec.Premium, err = amount(m, "premium"); err != nil {
		return Recommendation{}, err
	}
	if rec.Coverage, err = amount(m, "coverage"); err != nil {
		return Recommendation{}, err
	}
	if rec.Score, err = integer(m, "score"); err != nil {
		return Recommendation{}, err
	}
	if rec.MatchReason, err = requiredString(m, "matchReason"); err != nil {
		return Recommendation{}, err
	}
	if rec.Features, err = stringArray(m, "features"); err != nil {
		return Recommendation{}, err
	}
	if rec.CoverageDetails, err = optionalString(m, "coverageDetails"); err != nil {
		return Recommendation{}, err
	}
	if rec.Exclusions, err = optionalString(m, "exclusions"); err != nil {
		return Recommendation{}, err
	}
	if rec.RiskFactors, err = optionalString(m, "riskFactors"); err != nil {
		return Recommendation{}, err
	}
	return rec, nil
}

func requiredString(m map[string]any, key string) (string, error) {
	s, ok := m[key].(string)
	if !ok {
		return "", fmt.Errorf("%s: expected string, got %T", key, m[key])
	}
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%s: must not be empty", key)
	}
	return s, nil
}

func optionalString(m map[string]any, key string) (string, error) {
	switch v := m[key].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("%s: expected string, got %T", key, v)
	}
}

// number accepts JSON numbers and numeric strings such as "12000".
func number(m map[string]any, key string) (float64, error) {
	var (
		f   float64
		err error
	)
	switch v := m[key].(type) {
	case json.Number:
		f, err = v.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("%s: expected number, got %T", key, v)
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s: not a finite number", key)
	}
	return f, nil
}

func amount(m map[string]any, key string) (float64, error) {
	f, err := number(m, key)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("%s: must not be negative", key)
	}
	return f, nil
}

func integer(m map[string]any, key string) (int, error) {
	f, err := number(m, key)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%s: expected integer, got %v", key, f)
	}
	return int(f), nil
}

func stringArray(m map[string]any, key string) ([]string, error) {
	items, ok := m[key].([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected array, got %T", key, m[key])
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: expected string, got %T", key, i, item)
		}
		out = append(out, s)
	}
	return out, nil
}
