package cli

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/edgedesk/edgedesk/internal/models"
)

func TestWriteVerifyReport(t *testing.T) {
	dir := t.TempDir()
	query := "bitcoin price today"

	resp := &models.VerifyResponse{
		ScanTime:     "2025-08-25T14:00:00Z",
		TotalScanned: 40,
		Summary:      "One strong edge in crypto.",
		TopOpportunities: []models.VerifiedTrade{
			{
				Trade: models.TradePlan{
					MarketID:    "mkt-1",
					EventTicker: "KXBTCD",
					Title:       "Bitcoin above 100k",
					Side:        models.SideYes,
					EntryPrice:  93,
				},
				AITrueProbability: 98.0,
				MarketProbability: 93.0,
				Edge:              5.0,
				Recommendation:    models.RecommendExecute,
				Confidence:        models.ConfidenceHigh,
				AdjustedRisk:      decimal.NewFromInt(46),
				ThoughtChain: []models.ThoughtStep{
					{StepNumber: 1, Thought: "Locate the settlement source"},
					{StepNumber: 2, Thought: "Compare spot to threshold", SearchQuery: &query},
				},
			},
		},
	}

	path, err := WriteVerifyReport(dir, resp)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	require.Contains(t, content, "# Verified Opportunities")
	require.Contains(t, content, "#1 KXBTCD — Bitcoin above 100k")
	require.Contains(t, content, "AI 98.0% vs market 93.0% (edge +5.0%)")
	require.Contains(t, content, "### Thought chain")
	require.Contains(t, content, "searched: bitcoin price today")
}

func TestWriteAnalysisReport(t *testing.T) {
	dir := t.TempDir()

	plan := &models.StockTradePlan{
		Ticker:          "NVDA",
		Action:          "buy",
		EntryZone:       "178-180",
		StopLoss:        "174",
		TakeProfit:      "192",
		ConfidenceScore: 0.8,
		TriageSentiment: "Bullish",
		TriageModel:     "triage-v2",
		AnalysisModel:   "analyst-v2",
		ReasoningTrace:  "Momentum with a catalyst.",
	}

	path, err := WriteAnalysisReport(dir, plan)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	require.Contains(t, content, "# NVDA Analysis — BUY")
	require.Contains(t, content, "Confidence: 80%")
	require.Contains(t, content, "Momentum with a catalyst.")
}
