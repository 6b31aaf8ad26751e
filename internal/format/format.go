// Package format derives display-only values from model fields. Every
// function here is pure and total: out-of-enum or missing input degrades
// to a documented neutral default instead of failing, because the output
// is always rendered directly.
package format

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/edgedesk/edgedesk/internal/models"
)

// Tier classifies an edge value for coloring.
type Tier string

const (
	TierStrong   Tier = "strong"
	TierMarginal Tier = "marginal"
	TierNegative Tier = "negative"
)

var (
	strongStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	marginalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))

	negativeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444"))

	neutralStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6"))
)

// EdgeTier maps an edge (percentage points) to its color tier. The
// breakpoints are fixed: >= 5 strong, [0, 5) marginal, < 0 negative.
func EdgeTier(edge float64) Tier {
	switch {
	case edge >= 5:
		return TierStrong
	case edge >= 0:
		return TierMarginal
	default:
		return TierNegative
	}
}

// EdgeStyle returns the render style for an edge value.
func EdgeStyle(edge float64) lipgloss.Style {
	switch EdgeTier(edge) {
	case TierStrong:
		return strongStyle
	case TierMarginal:
		return marginalStyle
	default:
		return negativeStyle
	}
}

// ConfidenceStyle maps a confidence tier one-to-one to a style; unknown
// values render neutral.
func ConfidenceStyle(c models.Confidence) lipgloss.Style {
	switch c {
	case models.ConfidenceHigh:
		return strongStyle
	case models.ConfidenceMedium:
		return marginalStyle
	case models.ConfidenceLow:
		return negativeStyle
	default:
		return neutralStyle
	}
}

// RecommendationBadge renders the verdict as a styled badge; unknown
// verdicts render neutral rather than failing.
func RecommendationBadge(r models.Recommendation) string {
	switch r {
	case models.RecommendExecute:
		return strongStyle.Render("▶ EXECUTE")
	case models.RecommendSkip:
		return negativeStyle.Render("✗ SKIP")
	case models.RecommendWait:
		return marginalStyle.Render("⏸ WAIT")
	default:
		return neutralStyle.Render("· " + string(r))
	}
}

// SentimentStyle styles a scout sentiment label by substring match:
// "Bullish" green, "Bearish" red, anything else neutral.
func SentimentStyle(sentiment string) lipgloss.Style {
	switch {
	case strings.Contains(sentiment, "Bullish"):
		return strongStyle
	case strings.Contains(sentiment, "Bearish"):
		return negativeStyle
	default:
		return neutralStyle
	}
}

// PercentChange returns the percentage change from one price to another.
// Sign convention: positive means the price increased. A zero or
// negative base yields 0 so the result is always renderable.
func PercentChange(from, to float64) float64 {
	if from <= 0 {
		return 0
	}
	return (to - from) / from * 100
}

// TimeRemaining renders an expiry horizon. Sub-hour horizons render in
// minutes; 0DTE contracts get an explicit marker.
func TimeRemaining(hours float64, zeroDTE bool) string {
	if hours < 0 {
		hours = 0
	}

	var s string
	if hours < 1 {
		s = fmt.Sprintf("%dm", int(hours*60))
	} else {
		whole := int(hours)
		mins := int((hours - float64(whole)) * 60)
		s = fmt.Sprintf("%dh %02dm", whole, mins)
	}

	if zeroDTE {
		return s + " ⚡0DTE"
	}
	return s
}

// Cents renders an integer cent price the way the exchange quotes it.
func Cents(c int) string {
	return fmt.Sprintf("%d¢", c)
}

// Dollars renders a decimal dollar amount with two places.
func Dollars(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// Percent renders a [0,100] percentage with one place.
func Percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// SignedPercent renders an edge with an explicit sign.
func SignedPercent(p float64) string {
	return fmt.Sprintf("%+.1f%%", p)
}

// Info styles a neutral informational fragment.
func Info(s string) string {
	return infoStyle.Render(s)
}
