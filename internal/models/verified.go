package models

import "github.com/shopspring/decimal"

// Recommendation is the service's final actionability verdict.
type Recommendation string

const (
	RecommendExecute Recommendation = "EXECUTE"
	RecommendSkip    Recommendation = "SKIP"
	RecommendWait    Recommendation = "WAIT"
)

// Confidence is the service's confidence tier for a verification.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// ThoughtStep is one entry of a verification's reasoning audit trail.
// Steps arrive 1-indexed and already ordered.
type ThoughtStep struct {
	StepNumber  int     `json:"step_number"`
	Thought     string  `json:"thought"`
	Timestamp   string  `json:"timestamp"`
	SearchQuery *string `json:"search_query,omitempty"`
}

// VerifiedTrade wraps one TradePlan with the evidence the analysis service
// gathered for it. Probabilities are percentages in [0,100]; the two
// estimates are independent of each other. Edge is the signed
// percentage-point gap between them.
type VerifiedTrade struct {
	Trade              TradePlan       `json:"trade"`
	SourceName         string          `json:"source_name"`
	SourceURL          string          `json:"source_url"`
	SourceData         string          `json:"source_data"`
	SettlementRule     string          `json:"kalshi_rule"`
	CurrentValue       *string         `json:"current_value,omitempty"`
	Threshold          *string         `json:"threshold,omitempty"`
	DistanceToThresh   *string         `json:"distance_to_threshold,omitempty"`
	AITrueProbability  float64         `json:"ai_true_probability"`
	MarketProbability  float64         `json:"market_implied_probability"`
	Edge               float64         `json:"edge"`
	Recommendation     Recommendation  `json:"recommendation"`
	Confidence         Confidence      `json:"confidence"`
	Reasoning          string          `json:"reasoning"`
	RiskFactors        []string        `json:"risk_factors"`
	TimeSensitivity    string          `json:"time_sensitivity"`
	AdjustedLots       int             `json:"adjusted_contracts"`
	AdjustedRisk       decimal.Decimal `json:"adjusted_risk_dollars"`
	VerificationModel  string          `json:"verification_model"`
	ThoughtChain       []ThoughtStep   `json:"thought_chain"`
	ReasoningAudit     string          `json:"reasoning_audit"`
	WebSearchesCounted int             `json:"web_searches_performed"`
}

// HasThoughtChain reports whether the structured chain should render.
// When both the chain and the fallback audit string are present, the
// chain takes priority.
func (v *VerifiedTrade) HasThoughtChain() bool {
	return len(v.ThoughtChain) > 0
}

// VerifyResponse is the payload of GET /strategy1/verify_top3. Rank is the
// array position plus one, fixed by the service at arrival; the client
// never re-sorts TopOpportunities.
type VerifyResponse struct {
	ScanTime         string          `json:"scan_time"`
	TotalScanned     int             `json:"total_scanned"`
	TopOpportunities []VerifiedTrade `json:"top_opportunities"`
	Summary          string          `json:"summary"`
}
