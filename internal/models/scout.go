package models

// ScoutResult is a lightweight catalyst-discovery hit from the news
// scanner: a ticker moving today on breaking news, within budget.
// Sentiment is free text; rendering matches it against the substrings
// "Bullish"/"Bearish" and treats anything else as neutral.
type ScoutResult struct {
	Ticker       string  `json:"ticker"`
	Price        float64 `json:"price"`
	NewsCatalyst string  `json:"news_catalyst"`
	Sentiment    string  `json:"sentiment"`
}
