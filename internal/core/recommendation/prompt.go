package recommendation

import (
	"fmt"
	"strconv"
	"strings"
)

const promptTemplate = `You are an expert health insurance advisor AI. Analyze the following complete health profile and generate 3 personalized insurance plan recommendations.

USER HEALTH PROFILE:
- Name: %s
- Age: %d years
- Gender: %s
- City/Location: %s
- Pre-existing Conditions/Diseases: %s
- Preferred Hospital: %s
- Family Members: %d (%s)

STRICT REQUIREMENTS:
1. Base ALL recommendations on the user's specific diseases, age, and health conditions listed above
2. Each recommendation MUST be different and personalized to their exact health profile
3. If they have diabetes, hypertension, or other conditions - recommendations MUST address these specifically
4. DO NOT give generic advice - every recommendation should reference their actual conditions
5. Consider their age, location, and family situation
6. Provide realistic premium estimates based on their risk profile

RETURN FORMAT (JSON):
Return ONLY a valid JSON array with exactly 3 recommendations. Each recommendation must have:
{
  "name": "Plan Name",
  "provider": "Insurance Provider",
  "premium": number (annual premium in INR),
  "coverage": number (coverage amount in INR),
  "score": number (1-100 match score),
  "matchReason": "Why this plan suits their SPECIFIC conditions and profile",
  "features": ["feature1", "feature2", "feature3"],
  "coverageDetails": "What this covers for their specific diseases",
  "exclusions": "Important exclusions related to their conditions",
  "riskFactors": "Risk factors based on their health profile"
}

IMPORTANT: Return ONLY the JSON array, no other text. Make sure each plan is truly personalized to their conditions.`

// BuildPrompt renders the generation prompt for p. Equal profiles give
// byte-identical prompts.
func BuildPrompt(p Profile) string {
	return fmt.Sprintf(promptTemplate,
		orDefault(p.FullName, noneLabel),
		p.Age,
		orDefault(p.Gender, noneLabel),
		orDefault(p.City, noneLabel),
		orDefault(p.Conditions, noneLabel),
		orDefault(p.Hospital, "Any"),
		len(p.FamilyMembers),
		familySummary(p.FamilyMembers),
	)
}

func familySummary(members []FamilyMember) string {
	if len(members) == 0 {
		return noneLabel
	}

	parts := make([]string, 0, len(members))
	for _, m := range members {
		age := "unknown"
		if m.Age != nil {
			age = strconv.Itoa(*m.Age)
		}
		parts = append(parts, fmt.Sprintf("%s age %s", m.Relation, age))
	}
	return strings.Join(parts, ", ")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
