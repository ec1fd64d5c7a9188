package recommendation

import (
	"fmt"
	"strings"
)

// Premium model, in INR per year
const (
	basePremium       = 10000
	premiumPerYearAge = 200
	diabetesSurcharge = 5000
	bpSurcharge       = 3000
	heartSurcharge    = 8000
)

// conditionFlags are detected by plain substring matching on the lower-cased
// conditions text. Phrasings that avoid every keyword are not detected.
type conditionFlags struct {
	diabetes bool
	bp       bool
	heart    bool
}

func detectConditions(conditions string) conditionFlags {
	c := strings.ToLower(conditions)
	return conditionFlags{
		diabetes: containsAny(c, "diabetes", "sugar"),
		bp:       containsAny(c, "bp", "hypertension", "pressure"),
		heart:    containsAny(c, "heart", "cardio"),
	}
}

func (f conditionFlags) any() bool {
	return f.diabetes || f.bp || f.heart
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// BasePremium is the primary plan's annual premium: age loading plus a
// stacking surcharge per detected condition.
func BasePremium(p Profile) float64 {
	flags := detectConditions(p.Conditions)

	premium := basePremium + p.Age*premiumPerYearAge
	if flags.diabetes {
		premium += diabetesSurcharge
	}
	if flags.bp {
		premium += bpSurcharge
	}
	if flags.heart {
		premium += heartSurcharge
	}
	return float64(premium)
}

// LocalRecommendations returns the three offline recommendations for p:
// the condition-tailored primary plan, a value plan and a high-cover plan.
// Output depends only on age, conditions and city.
func LocalRecommendations(p Profile) []Recommendation {
	flags := detectConditions(p.Conditions)
	base := BasePremium(p)

	return []Recommendation{
		primaryPlan(p, flags, base),
		{
			Name:            "Health Companion",
			Provider:        "Niva Bupa",
			Premium:         base * 0.8,
			Coverage:        500000,
			Score:           88,
			MatchReason:     "Most cost-effective option providing essential coverage for your needs.",
			Features:        []string{"Refill Benefit", "Direct Claim Settlement", "Tax Benefit"},
			CoverageDetails: "Standard hospitalization coverage with refill benefit.",
			Exclusions:      "Cosmetic treatments and non-medical expenses.",
			RiskFactors:     "Lower coverage amount might be insufficient for major surgeries.",
		},
		{
			Name:            "ReAssure 2.0",
			Provider:        "Niva Bupa",
			Premium:         base * 1.3,
			Coverage:        2500000,
			Score:           82,
			MatchReason:     "Maximum coverage with unlimited restoration, ideal for long-term security.",
			Features:        []string{"Unlimited Restoration", "Lock the Clock", "Booster Benefit"},
			CoverageDetails: "Extensive coverage for all major illnesses and modern treatments.",
			Exclusions:      "Experimental treatments.",
			RiskFactors:     "Higher premium cost.",
		},
	}
}

// primaryPlan picks by priority diabetes > heart > generic.
func primaryPlan(p Profile, flags conditionFlags, base float64) Recommendation {
	rec := Recommendation{
		Premium:         base,
		Coverage:        1000000,
		Score:           95,
		Features:        []string{"No Claim Bonus", "Cashless Treatment", "Annual Health Checkup"},
		CoverageDetails: "Comprehensive hospitalization coverage including pre/post expenses.",
		Exclusions:      "Waiting period of 2 years for pre-existing conditions.",
		RiskFactors:     "Standard risk profile for your age.",
	}

	switch {
	case flags.diabetes:
		rec.Name = "Diabetes Care Pro"
		rec.Provider = "Care Health"
		rec.MatchReason = "Specifically designed for diabetes management with coverage for insulin and regular checkups."
		rec.Features[0] = "Insulin Cover"
		rec.CoverageDetails = "Covers hospitalization due to diabetes complications and insulin costs."
	case flags.heart:
		rec.Name = "Heart Secure Gold"
		rec.Provider = "Star Health"
		rec.MatchReason = "Specialized cardiac care coverage essential for your heart condition."
	default:
		rec.Name = "Optima Restore"
		rec.Provider = "HDFC ERGO"
		rec.MatchReason = fmt.Sprintf("Best comprehensive coverage for your age group in %s", orDefault(p.City, "your city"))
	}

	if flags.any() {
		rec.RiskFactors = "Higher premium due to pre-existing conditions."
	}
	return rec
}
