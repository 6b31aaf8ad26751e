package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/edgedesk/edgedesk/internal/models"
)

func TestEdgeTierBreakpoints(t *testing.T) {
	tests := []struct {
		edge float64
		want Tier
	}{
		{12.5, TierStrong},
		{5.0, TierStrong},
		{4.99, TierMarginal},
		{0.0, TierMarginal},
		{-0.01, TierNegative},
		{-8.0, TierNegative},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, EdgeTier(tt.edge), "edge %.2f", tt.edge)
	}
}

func TestConfidenceStyleUnknownIsNeutral(t *testing.T) {
	require.Equal(t, neutralStyle, ConfidenceStyle(models.Confidence("WILD")))
	require.Equal(t, neutralStyle, ConfidenceStyle(""))
	require.Equal(t, strongStyle, ConfidenceStyle(models.ConfidenceHigh))
}

func TestRecommendationBadgeTotal(t *testing.T) {
	require.Contains(t, RecommendationBadge(models.RecommendExecute), "EXECUTE")
	require.Contains(t, RecommendationBadge(models.RecommendSkip), "SKIP")
	require.Contains(t, RecommendationBadge(models.RecommendWait), "WAIT")
	// Unknown verdicts still render rather than panic or vanish.
	require.Contains(t, RecommendationBadge(models.Recommendation("HOLD")), "HOLD")
}

func TestSentimentStyleSubstrings(t *testing.T) {
	require.Equal(t, strongStyle, SentimentStyle("Strongly Bullish"))
	require.Equal(t, negativeStyle, SentimentStyle("Bearish on guidance"))
	require.Equal(t, neutralStyle, SentimentStyle("Mixed"))
	require.Equal(t, neutralStyle, SentimentStyle(""))
}

func TestPercentChange(t *testing.T) {
	require.InDelta(t, 10.0, PercentChange(100, 110), 1e-9)
	require.InDelta(t, -25.0, PercentChange(200, 150), 1e-9)
	// Zero or negative base degrades to 0 instead of Inf/NaN.
	require.Zero(t, PercentChange(0, 50))
	require.Zero(t, PercentChange(-5, 50))
}

func TestTimeRemaining(t *testing.T) {
	require.Equal(t, "45m", TimeRemaining(0.75, false))
	require.Equal(t, "2h 30m", TimeRemaining(2.5, false))
	require.Equal(t, "1h 00m ⚡0DTE", TimeRemaining(1.0, true))
	require.Equal(t, "0m", TimeRemaining(-3, false))
}

func TestMoneyFormatting(t *testing.T) {
	require.Equal(t, "93¢", Cents(93))
	require.Equal(t, "$12.40", Dollars(decimal.NewFromFloat(12.4)))
	require.Equal(t, "61.3%", Percent(61.34))
	require.Equal(t, "+8.0%", SignedPercent(8))
	require.Equal(t, "-3.5%", SignedPercent(-3.5))
}
