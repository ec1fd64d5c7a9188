// Package recommendation turns a user health profile into ranked insurance
// plan recommendations. It prefers a generative model and falls back to a
// deterministic local heuristic whenever the model path fails.
package recommendation

// FamilyMember dependant listed on a profile
type FamilyMember struct {
	Name     string   `json:"name,omitempty"`
	Relation string   `json:"relation"`
	Age      *int     `json:"age,omitempty"`
	Gender   string   `json:"gender,omitempty"`
	Diseases []string `json:"diseases"`
}

// Profile normalized health and demographic input
type Profile struct {
	FullName      string         `json:"fullName"`
	Age           int            `json:"age"`
	Gender        string         `json:"gender"`
	City          string         `json:"city"`
	Conditions    string         `json:"conditions"`
	Hospital      string         `json:"hospital,omitempty"`
	FamilyMembers []FamilyMember `json:"familyMembers"`
}

// Recommendation one candidate plan. Premium and Coverage are annual INR amounts.
type Recommendation struct {
	Name            string   `json:"name"`
	Provider        string   `json:"provider"`
	Premium         float64  `json:"premium"`
	Coverage        float64  `json:"coverage"`
	Score           int      `json:"score"`
	MatchReason     string   `json:"matchReason"`
	Features        []string `json:"features"`
	CoverageDetails string   `json:"coverageDetails,omitempty"`
	Exclusions      string   `json:"exclusions,omitempty"`
	RiskFactors     string   `json:"riskFactors,omitempty"`
}

// Source where a result came from
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// Result recommendations plus how they were produced.
// FallbackReason holds the error code that forced the fallback, if any.
type Result struct {
	Recommendations []Recommendation
	Source          Source
	FallbackReason  string
}
