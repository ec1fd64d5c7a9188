package recommendation

import (
	"errors"
	"testing"

	"medinest-api/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threePlans = `[
  {"name":"Plan A","provider":"Acme","premium":12000,"coverage":500000,"score":90,"matchReason":"fits","features":["a","b"],"coverageDetails":"cd","exclusions":"ex","riskFactors":"rf"},
  {"name":"Plan B","provider":"Acme","premium":"15000","coverage":700000,"score":85,"matchReason":"fits","features":[]},
  {"name":"Plan C","provider":"Other","premium":9000.5,"coverage":300000,"score":80,"matchReason":"cheap","features":["x"],"exclusions":null}
]`

func TestDecodeRecommendations_Valid(t *testing.T) {
	recs, err := DecodeRecommendations(threePlans)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, Recommendation{
		Name:            "Plan A",
		Provider:        "Acme",
		Premium:         12000,
		Coverage:        500000,
		Score:           90,
		MatchReason:     "fits",
		Features:        []string{"a", "b"},
		CoverageDetails: "cd",
		Exclusions:      "ex",
		RiskFactors:     "rf",
	}, recs[0])
	assert.Equal(t, float64(15000), recs[1].Premium)
	assert.Equal(t, []string{}, recs[1].Features)
	assert.Equal(t, 9000.5, recs[2].Premium)
	assert.Equal(t, "", recs[2].Exclusions)
}

func TestDecodeRecommendations_Fenced(t *testing.T) {
	for _, raw := range []string{
		"```json\n" + threePlans + "\n```",
		"```\n" + threePlans + "\n```",
		"  \n" + threePlans + "\n  ",
	} {
		recs, err := DecodeRecommendations(raw)
		require.NoError(t, err)
		assert.Len(t, recs, 3)
	}
}

func TestDecodeRecommendations_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":            "",
		"fence only":       "```json\n```",
		"not json":         "not json",
		"object":           `{"name":"Plan A"}`,
		"empty array":      `[]`,
		"trailing text":    `[{"name":"a"}] thanks!`,
		"element string":   `["Plan A"]`,
		"missing name":     `[{"provider":"p","premium":1,"coverage":1,"score":1,"matchReason":"m","features":[]}]`,
		"blank provider":   `[{"name":"n","provider":" ","premium":1,"coverage":1,"score":1,"matchReason":"m","features":[]}]`,
		"negative premium": `[{"name":"n","provider":"p","premium":-1,"coverage":1,"score":1,"matchReason":"m","features":[]}]`,
		"bad coverage":     `[{"name":"n","provider":"p","premium":1,"coverage":"lots","score":1,"matchReason":"m","features":[]}]`,
		"fractional score": `[{"name":"n","provider":"p","premium":1,"coverage":1,"score":8.5,"matchReason":"m","features":[]}]`,
		"features string":  `[{"name":"n","provider":"p","premium":1,"coverage":1,"score":1,"matchReason":"m","features":"a,b"}]`,
		"feature number":   `[{"name":"n","provider":"p","premium":1,"coverage":1,"score":1,"matchReason":"m","features":[1]}]`,
		"exclusions list":  `[{"name":"n","provider":"p","premium":1,"coverage":1,"score":1,"matchReason":"m","features":[],"exclusions":["x"]}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			recs, err := DecodeRecommendations(raw)
			require.Error(t, err)
			assert.Nil(t, recs)
			assert.True(t, errors.Is(err, common.ErrAIDecode))
		})
	}
}

func TestDecodeRecommendations_OneBadElementRejectsBatch(t *testing.T) {
	raw := `[
	  {"name":"ok","provider":"p","premium":1,"coverage":1,"score":1,"matchReason":"m","features":[]},
	  {"name":"bad","provider":"p","premium":1,"coverage":1,"score":"high","matchReason":"m","features":[]}
	]`
	_, err := DecodeRecommendations(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recommendation 1")
}
