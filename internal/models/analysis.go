package models

// ChartPoint is one sample of GET /get_stock_history.
type ChartPoint struct {
	Time  string  `json:"time"`
	Price float64 `json:"price"`
}

// StockTradePlan is the payload of POST /analyze_stock: a single-ticker
// AI analysis with price targets and the reasoning audit behind them.
// ConfidenceScore is a [0,1] fraction, unlike the percentage
// probabilities on VerifiedTrade.
type StockTradePlan struct {
	Ticker          string  `json:"ticker"`
	Action          string  `json:"action"`
	EntryZone       string  `json:"entry_zone"`
	StopLoss        string  `json:"stop_loss"`
	TakeProfit      string  `json:"take_profit"`
	ConfidenceScore float64 `json:"confidence_score"`
	ReasoningTrace  string  `json:"reasoning_trace"`
	CurrentPrice    float64 `json:"current_price"`

	TriageModel     string `json:"triage_model"`
	AnalysisModel   string `json:"analysis_model"`
	TriageSentiment string `json:"triage_sentiment"`

	ThoughtChain   []ThoughtStep `json:"thought_chain"`
	ReasoningAudit string        `json:"reasoning_audit"`
}
