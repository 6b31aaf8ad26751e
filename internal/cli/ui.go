package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/edgedesk/edgedesk/internal/dataflows"
	"github.com/edgedesk/edgedesk/internal/format"
	"github.com/edgedesk/edgedesk/internal/models"
	"github.com/edgedesk/edgedesk/internal/progress"
	"github.com/edgedesk/edgedesk/internal/selection"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Background(lipgloss.Color("#1F2937")).
			Padding(0, 1).
			MarginBottom(1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(1, 2).
			Width(80)

	detailStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F59E0B")).
			Padding(1, 2).
			Width(76).
			MarginLeft(4)

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#7C3AED"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	inProgressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)

	completedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

// DisplayWelcomeBanner shows the welcome banner
func DisplayWelcomeBanner() {
	banner := `
 ███████╗██████╗  ██████╗ ███████╗██████╗ ███████╗███████╗██╗  ██╗
 ██╔════╝██╔══██╗██╔════╝ ██╔════╝██╔══██╗██╔════╝██╔════╝██║ ██╔╝
 █████╗  ██║  ██║██║  ███╗█████╗  ██║  ██║█████╗  ███████╗█████╔╝
 ██╔══╝  ██║  ██║██║   ██║██╔══╝  ██║  ██║██╔══╝  ╚════██║██╔═██╗
 ███████╗██████╔╝╚██████╔╝███████╗██████╔╝███████╗███████║██║  ██╗
 ╚══════╝╚═════╝  ╚═════╝ ╚══════╝╚═════╝ ╚══════╝╚══════╝╚═╝  ╚═╝

           📊 Prediction Market Opportunity Terminal 📊
`

	welcomeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true).
		Align(lipgloss.Center).
		Width(80).
		MarginBottom(1)

	taglineStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3B82F6")).
		Italic(true).
		Align(lipgloss.Center).
		Width(80).
		MarginBottom(1)

	fmt.Print(welcomeStyle.Render(banner))
	fmt.Print(taglineStyle.Render("Scan, verify and audit AI-evaluated trades before risking a cent"))
	fmt.Println()
	fmt.Println()
}

// ClearScreen clears the terminal screen
func ClearScreen() {
	fmt.Print("\033[2J\033[H")
}

// RenderProgressLine paints the staged pipeline status on one line,
// overwriting the previous state.
func RenderProgressLine(snap progress.Snapshot) {
	total := len(snap.Stages)

	switch snap.State {
	case progress.Running:
		line := fmt.Sprintf("🔄 [%d/%d] %s...", snap.Step+1, total, snap.Label())
		fmt.Printf("\r%s\033[K", inProgressStyle.Render(line))
	case progress.Settled:
		if snap.Success {
			line := fmt.Sprintf("✅ [%d/%d] Pipeline complete", total, total)
			fmt.Printf("\r%s\033[K\n", completedStyle.Render(line))
		} else {
			label := "request"
			if snap.Step < total {
				label = snap.Stages[snap.Step]
			}
			line := fmt.Sprintf("❌ Failed during %s", strings.ToLower(label))
			fmt.Printf("\r%s\033[K\n", errorStyle.Render(line))
		}
	}
}

// RenderScanPanel shows the candidate trade list, narrowed by filter.
func RenderScanPanel(resp *models.ScanResponse, filter string) {
	var content strings.Builder

	content.WriteString(fmt.Sprintf("🔎 Scan Results — %d found (%s, %s)\n\n",
		resp.TotalFound, resp.PriceRange, strings.Join(resp.Categories, ", ")))

	shown := 0
	for _, t := range resp.Trades {
		if !t.Matches(filter) {
			continue
		}
		shown++

		line := fmt.Sprintf("%-8s %s %s  %s  RR %.1f  %s",
			t.EventTicker,
			sideTag(t.Side),
			format.Cents(t.EntryPrice),
			truncateString(t.Title, 34),
			t.RiskRewardRatio,
			format.TimeRemaining(t.HoursToExpiry, t.IsZeroDTE),
		)
		content.WriteString(line + "\n")
	}

	if shown == 0 {
		if filter != "" {
			content.WriteString(dimStyle.Render(fmt.Sprintf("No candidates match %q.", filter)))
		} else {
			content.WriteString(dimStyle.Render("No contracts in the tradeable band right now."))
		}
	} else if filter != "" {
		content.WriteString(dimStyle.Render(fmt.Sprintf("\n%d of %d candidates match %q",
			shown, len(resp.Trades), filter)))
	}

	fmt.Println(panelStyle.Render(content.String()))
}

// RenderVerifiedPanel shows the ranked verified list. The highlighted
// row follows the coordinator's selection; at most one trade renders
// its expanded audit detail.
func RenderVerifiedPanel(resp *models.VerifyResponse, coord *selection.Coordinator, chartTicker string) {
	var content strings.Builder

	content.WriteString(fmt.Sprintf("🏆 Verified Opportunities — %d scanned, ranked by edge\n\n",
		resp.TotalScanned))

	if len(resp.TopOpportunities) == 0 {
		content.WriteString(dimStyle.Render("Pipeline ran clean but found nothing worth a position."))
		fmt.Println(panelStyle.Render(content.String()))
		return
	}

	for i, t := range resp.TopOpportunities {
		rank := i + 1
		marker := "  "
		if coord != nil && coord.Selected() == t.Trade.MarketID {
			marker = "▸ "
		}

		row := fmt.Sprintf("%s#%d %-8s %s %s  edge %s  %s  %s",
			marker,
			rank,
			t.Trade.EventTicker,
			sideTag(t.Trade.Side),
			format.Cents(t.Trade.EntryPrice),
			format.EdgeStyle(t.Edge).Render(format.SignedPercent(t.Edge)),
			format.RecommendationBadge(t.Recommendation),
			format.ConfidenceStyle(t.Confidence).Render(string(t.Confidence)),
		)
		if coord != nil && coord.Selected() == t.Trade.MarketID {
			content.WriteString(selectedRowStyle.Render(row) + "\n")
		} else {
			content.WriteString(row + "\n")
		}
		content.WriteString(dimStyle.Render("    "+truncateString(t.Trade.Title, 66)) + "\n")
	}

	if resp.Summary != "" {
		content.WriteString("\n" + dimStyle.Render(truncateString(resp.Summary, 150)))
	}
	if chartTicker != "" {
		content.WriteString("\n" + dimStyle.Render("Chart ticker: "+chartTicker))
	}

	fmt.Println(panelStyle.Render(content.String()))

	if coord != nil {
		for i := range resp.TopOpportunities {
			t := &resp.TopOpportunities[i]
			if coord.IsExpanded(t.Trade.MarketID) {
				renderTradeDetail(t, i+1)
			}
		}
	}
}

// renderTradeDetail shows the expanded audit view for one trade.
func renderTradeDetail(t *models.VerifiedTrade, rank int) {
	var content strings.Builder

	content.WriteString(fmt.Sprintf("📋 #%d %s — audit detail\n\n", rank, t.Trade.EventTicker))

	content.WriteString(fmt.Sprintf("Market:       %s\n", t.Trade.Title))
	content.WriteString(fmt.Sprintf("Position:     %s %s @ %s, stop %s, target %s\n",
		sideTag(t.Trade.Side),
		fmt.Sprintf("%d lots", t.AdjustedLots),
		format.Cents(t.Trade.EntryPrice),
		format.Cents(t.Trade.StopLoss),
		format.Cents(t.Trade.ExitPrice),
	))
	content.WriteString(fmt.Sprintf("Max risk:     %s   Net after fees: $%.2f\n",
		format.Dollars(t.AdjustedRisk), t.Trade.NetProfitAfterFee))
	content.WriteString(fmt.Sprintf("Expiry:       %s\n\n",
		format.TimeRemaining(t.Trade.HoursToExpiry, t.Trade.IsZeroDTE)))

	content.WriteString(fmt.Sprintf("Probability:  AI %s vs market %s → edge %s\n",
		format.Percent(t.AITrueProbability),
		format.Percent(t.MarketProbability),
		format.EdgeStyle(t.Edge).Render(format.SignedPercent(t.Edge)),
	))
	content.WriteString(fmt.Sprintf("Verdict:      %s (%s confidence, %s)\n\n",
		format.RecommendationBadge(t.Recommendation),
		format.ConfidenceStyle(t.Confidence).Render(string(t.Confidence)),
		t.TimeSensitivity,
	))

	if t.SettlementRule != "" {
		content.WriteString(fmt.Sprintf("Settles on:   %s\n", truncateString(t.SettlementRule, 64)))
	}
	if t.SourceName != "" {
		content.WriteString(fmt.Sprintf("Source:       %s", t.SourceName))
		if t.SourceURL != "" {
			content.WriteString(dimStyle.Render("  " + t.SourceURL))
		}
		content.WriteString("\n")
	}
	if t.CurrentValue != nil && t.Threshold != nil {
		content.WriteString(fmt.Sprintf("Extracted:    current %s vs threshold %s", *t.CurrentValue, *t.Threshold))
		if t.DistanceToThresh != nil {
			content.WriteString(fmt.Sprintf(" (distance %s)", *t.DistanceToThresh))
		}
		content.WriteString("\n")
	} else if t.SourceData != "" {
		content.WriteString(fmt.Sprintf("Source data:  %s\n", truncateString(t.SourceData, 64)))
	}

	if t.Reasoning != "" {
		content.WriteString(fmt.Sprintf("\nReasoning:    %s\n", truncateString(t.Reasoning, 200)))
	}
	if len(t.RiskFactors) > 0 {
		content.WriteString("Risks:\n")
		for _, r := range t.RiskFactors {
			content.WriteString("  ⚠️  " + truncateString(r, 64) + "\n")
		}
	}

	if t.HasThoughtChain() || t.ReasoningAudit != "" {
		content.WriteString(dimStyle.Render(fmt.Sprintf(
			"\nThought chain available (%d steps, %d web searches) — 'chain %d' to view",
			len(t.ThoughtChain), t.WebSearchesCounted, rank)))
	}

	fmt.Println(detailStyle.Render(content.String()))
}

// RenderThoughtChain shows the step-by-step AI reasoning for a trade.
// The structured chain renders in priority; the flat audit text is the
// fallback for older service versions.
func RenderThoughtChain(t *models.VerifiedTrade) {
	var content strings.Builder

	content.WriteString(fmt.Sprintf("🧠 Thought Chain — %s (%s)\n\n",
		t.Trade.EventTicker, t.VerificationModel))

	switch {
	case t.HasThoughtChain():
		for _, step := range t.ThoughtChain {
			content.WriteString(fmt.Sprintf("Step %d  %s\n", step.StepNumber, dimStyle.Render(step.Timestamp)))
			content.WriteString("  " + step.Thought + "\n")
			if step.SearchQuery != nil && *step.SearchQuery != "" {
				content.WriteString(dimStyle.Render("  🔍 searched: "+*step.SearchQuery) + "\n")
			}
			content.WriteString("\n")
		}
		if t.WebSearchesCounted > 0 {
			content.WriteString(dimStyle.Render(fmt.Sprintf("%d web searches performed", t.WebSearchesCounted)))
		}
	case t.ReasoningAudit != "":
		content.WriteString(t.ReasoningAudit)
	default:
		content.WriteString(dimStyle.Render("No reasoning audit recorded for this trade."))
	}

	fmt.Println(panelStyle.Render(content.String()))
}

// RenderSourcePreview shows what the settlement-source page currently
// says next to the value the service extracted from it.
func RenderSourcePreview(t *models.VerifiedTrade, preview *dataflows.SourcePreview) {
	var content strings.Builder

	content.WriteString(fmt.Sprintf("🔗 Settlement Source — %s\n\n", t.Trade.EventTicker))

	if preview != nil {
		content.WriteString(fmt.Sprintf("%s", preview.SiteName))
		if preview.Title != "" {
			content.WriteString(" — " + preview.Title)
		}
		content.WriteString("\n" + dimStyle.Render(preview.URL) + "\n")
		if preview.Excerpt != "" {
			content.WriteString("\n" + preview.Excerpt + "\n")
		}
		content.WriteString(dimStyle.Render(fmt.Sprintf("\nFetched %s", preview.FetchedAt.Format("15:04:05"))))
	} else {
		content.WriteString(fmt.Sprintf("%s\n", t.SourceName))
		if t.SourceURL != "" {
			content.WriteString(dimStyle.Render(t.SourceURL) + "\n")
		}
		if t.SourceData != "" {
			content.WriteString("\n" + truncateString(t.SourceData, 300) + "\n")
		}
		content.WriteString(dimStyle.Render("\nLive preview unavailable, showing data captured at verification time"))
	}

	if t.CurrentValue != nil && t.Threshold != nil {
		content.WriteString(fmt.Sprintf("\n\nExtracted: current %s vs threshold %s", *t.CurrentValue, *t.Threshold))
		if t.DistanceToThresh != nil {
			content.WriteString(fmt.Sprintf(" (distance %s)", *t.DistanceToThresh))
		}
	}

	fmt.Println(detailStyle.Render(content.String()))
}

// RenderScoutPanel shows catalyst-discovery results.
func RenderScoutPanel(results []models.ScoutResult) {
	var content strings.Builder

	content.WriteString(fmt.Sprintf("📰 News Catalysts — %d candidates\n\n", len(results)))

	if len(results) == 0 {
		content.WriteString(dimStyle.Render("Nothing moving on news within budget right now."))
		fmt.Println(panelStyle.Render(content.String()))
		return
	}

	for _, r := range results {
		content.WriteString(fmt.Sprintf("%-6s $%.2f  %s\n",
			r.Ticker,
			r.Price,
			format.SentimentStyle(r.Sentiment).Render(r.Sentiment),
		))
		content.WriteString(dimStyle.Render("  "+truncateString(r.NewsCatalyst, 70)) + "\n")
	}

	fmt.Println(panelStyle.Render(content.String()))
}

// RenderAnalysisPanel shows a single-ticker trade plan.
func RenderAnalysisPanel(plan *models.StockTradePlan) {
	var content strings.Builder

	content.WriteString(fmt.Sprintf("📈 %s — %s\n\n", plan.Ticker, strings.ToUpper(plan.Action)))

	content.WriteString(fmt.Sprintf("Current:      $%.2f\n", plan.CurrentPrice))
	content.WriteString(fmt.Sprintf("Entry zone:   %s\n", plan.EntryZone))
	content.WriteString(fmt.Sprintf("Stop loss:    %s\n", plan.StopLoss))
	content.WriteString(fmt.Sprintf("Take profit:  %s\n", plan.TakeProfit))
	content.WriteString(fmt.Sprintf("Confidence:   %.0f%%\n\n", plan.ConfidenceScore*100))

	content.WriteString(fmt.Sprintf("Triage:       %s (%s)\n", plan.TriageSentiment, plan.TriageModel))
	content.WriteString(fmt.Sprintf("Analysis:     %s\n", plan.AnalysisModel))

	if plan.ReasoningTrace != "" {
		content.WriteString(fmt.Sprintf("\n%s\n", truncateString(plan.ReasoningTrace, 400)))
	}
	if len(plan.ThoughtChain) > 0 {
		content.WriteString(dimStyle.Render(fmt.Sprintf("\nThought chain: %d steps", len(plan.ThoughtChain))))
	}

	fmt.Println(panelStyle.Render(content.String()))
}

// DisplayError shows an error message
func DisplayError(err error) {
	errorMsg := fmt.Sprintf("❌ Error: %s", err.Error())
	fmt.Println(errorStyle.Render(errorMsg))
}

// DisplayInfo shows an info message
func DisplayInfo(message string) {
	fmt.Println(format.Info(fmt.Sprintf("ℹ️  %s", message)))
}

// DisplaySuccess shows a success message
func DisplaySuccess(message string) {
	successMsg := fmt.Sprintf("✅ %s", message)
	fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Render(successMsg))
}

// Helper functions

func sideTag(s models.Side) string {
	switch s {
	case models.SideYes:
		return completedStyle.Render("YES")
	case models.SideNo:
		return errorStyle.Render("NO ")
	default:
		return dimStyle.Render("?  ")
	}
}

func truncateString(s string, maxLen int) string {
	// Truncate on runes so a multibyte title never splits mid-character.
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
