package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectConditions(t *testing.T) {
	cases := []struct {
		conditions string
		want       conditionFlags
	}{
		{"", conditionFlags{}},
		{"Diabetes and BP", conditionFlags{diabetes: true, bp: true}},
		{"high blood SUGAR", conditionFlags{diabetes: true}},
		{"Hypertension", conditionFlags{bp: true}},
		{"low blood pressure", conditionFlags{bp: true}},
		{"Cardiomyopathy", conditionFlags{heart: true}},
		{"heart disease, diabetes", conditionFlags{diabetes: true, heart: true}},
		{"asthma", conditionFlags{}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, detectConditions(c.conditions), "conditions %q", c.conditions)
	}
}

func TestBasePremium_SurchargesStack(t *testing.T) {
	p := Profile{Age: 40, Conditions: "diabetes with heart trouble"}
	assert.Equal(t, float64(31000), BasePremium(p))

	p = Profile{Age: 40, Conditions: "diabetes, hypertension, heart"}
	assert.Equal(t, float64(34000), BasePremium(p))

	p = Profile{Age: 30}
	assert.Equal(t, float64(16000), BasePremium(p))
}

func TestLocalRecommendations_DiabetesScenario(t *testing.T) {
	p := NormalizeProfile(map[string]any{
		"age":           45,
		"conditions":    "type 2 diabetes",
		"city":          "Pune",
		"familyMembers": []any{},
	})

	recs := LocalRecommendations(p)
	require.Len(t, recs, 3)

	first := recs[0]
	assert.Equal(t, "Diabetes Care Pro", first.Name)
	assert.Equal(t, "Care Health", first.Provider)
	assert.Equal(t, float64(24000), first.Premium)
	assert.Equal(t, float64(1000000), first.Coverage)
	assert.Equal(t, 95, first.Score)
	assert.Equal(t, "Insulin Cover", first.Features[0])
	assert.Equal(t, "Higher premium due to pre-existing conditions.", first.RiskFactors)
}

func TestLocalRecommendations_OrderAndMultipliers(t *testing.T) {
	recs := LocalRecommendations(Profile{Age: 50, Conditions: "BP", City: "Chennai"})
	require.Len(t, recs, 3)

	base := float64(10000 + 50*200 + 3000)
	assert.Equal(t, []string{"Optima Restore", "Health Companion", "ReAssure 2.0"},
		[]string{recs[0].Name, recs[1].Name, recs[2].Name})
	assert.InDelta(t, base, recs[0].Premium, 1e-6)
	assert.InDelta(t, base*0.8, recs[1].Premium, 1e-6)
	assert.InDelta(t, base*1.3, recs[2].Premium, 1e-6)
	assert.Equal(t, []float64{1000000, 500000, 2500000},
		[]float64{recs[0].Coverage, recs[1].Coverage, recs[2].Coverage})
	assert.Equal(t, []int{95, 88, 82}, []int{recs[0].Score, recs[1].Score, recs[2].Score})
	assert.Equal(t, "Niva Bupa", recs[1].Provider)
	assert.Equal(t, "Niva Bupa", recs[2].Provider)
}

func TestLocalRecommendations_DiabetesBeatsHeart(t *testing.T) {
	recs := LocalRecommendations(Profile{Age: 40, Conditions: "Heart disease and diabetes"})
	assert.Equal(t, "Diabetes Care Pro", recs[0].Name)
	assert.Equal(t, float64(31000), recs[0].Premium)
}

func TestLocalRecommendations_Heart(t *testing.T) {
	recs := LocalRecommendations(Profile{Age: 60, Conditions: "cardio issues"})
	assert.Equal(t, "Heart Secure Gold", recs[0].Name)
	assert.Equal(t, "Star Health", recs[0].Provider)
	assert.Equal(t, "No Claim Bonus", recs[0].Features[0])
}

func TestLocalRecommendations_GenericMentionsCity(t *testing.T) {
	recs := LocalRecommendations(Profile{Age: 25, City: "Kochi"})
	assert.Equal(t, "Optima Restore", recs[0].Name)
	assert.Equal(t, "HDFC ERGO", recs[0].Provider)
	assert.Contains(t, recs[0].MatchReason, "Kochi")
	assert.Equal(t, "Standard risk profile for your age.", recs[0].RiskFactors)
}

func TestLocalRecommendations_Deterministic(t *testing.T) {
	p := Profile{Age: 37, Conditions: "sugar, pressure", City: "Jaipur"}
	assert.Equal(t, LocalRecommendations(p), LocalRecommendations(p))
}

func TestLocalRecommendations_WellFormed(t *testing.T) {
	profiles := []Profile{
		NormalizeProfile(nil),
		NormalizeProfile(map[string]any{"age": -10}),
		{Age: 90, Conditions: "heart, bp, diabetes"},
	}
	for _, p := range profiles {
		recs := LocalRecommendations(p)
		require.Len(t, recs, 3)
		for _, r := range recs {
			assert.NotEmpty(t, r.Name)
			assert.NotEmpty(t, r.Provider)
			assert.NotEmpty(t, r.MatchReason)
			assert.GreaterOrEqual(t, r.Premium, float64(0))
			assert.GreaterOrEqual(t, r.Coverage, float64(0))
		}
	}
}
