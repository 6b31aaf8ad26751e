package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/edgedesk/edgedesk/internal/models"
)

// WriteVerifyReport saves a verification run as a markdown report and
// returns the file path.
func WriteVerifyReport(resultsDir string, resp *models.VerifyResponse) (string, error) {
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("# Verified Opportunities\n\n")
	b.WriteString(fmt.Sprintf("- Scan time: %s\n", resp.ScanTime))
	b.WriteString(fmt.Sprintf("- Markets scanned: %d\n", resp.TotalScanned))
	b.WriteString(fmt.Sprintf("- Generated: %s\n\n", time.Now().Format(time.RFC3339)))

	if resp.Summary != "" {
		b.WriteString(resp.Summary + "\n\n")
	}

	for i, t := range resp.TopOpportunities {
		b.WriteString(fmt.Sprintf("## #%d %s — %s\n\n", i+1, t.Trade.EventTicker, t.Trade.Title))
		b.WriteString(fmt.Sprintf("- Side: %s @ %d¢, stop %d¢, target %d¢\n",
			t.Trade.Side, t.Trade.EntryPrice, t.Trade.StopLoss, t.Trade.ExitPrice))
		b.WriteString(fmt.Sprintf("- Probability: AI %.1f%% vs market %.1f%% (edge %+.1f%%)\n",
			t.AITrueProbability, t.MarketProbability, t.Edge))
		b.WriteString(fmt.Sprintf("- Verdict: %s (%s confidence, %s)\n",
			t.Recommendation, t.Confidence, t.TimeSensitivity))
		b.WriteString(fmt.Sprintf("- Sizing: %d lots, max risk $%s\n",
			t.AdjustedLots, t.AdjustedRisk.StringFixed(2)))
		if t.SourceName != "" {
			b.WriteString(fmt.Sprintf("- Source: %s", t.SourceName))
			if t.SourceURL != "" {
				b.WriteString(" (" + t.SourceURL + ")")
			}
			b.WriteString("\n")
		}
		if t.Reasoning != "" {
			b.WriteString("\n" + t.Reasoning + "\n")
		}
		if len(t.RiskFactors) > 0 {
			b.WriteString("\nRisk factors:\n")
			for _, r := range t.RiskFactors {
				b.WriteString("- " + r + "\n")
			}
		}
		if t.HasThoughtChain() {
			b.WriteString("\n### Thought chain\n\n")
			for _, step := range t.ThoughtChain {
				b.WriteString(fmt.Sprintf("%d. %s\n", step.StepNumber, step.Thought))
				if step.SearchQuery != nil && *step.SearchQuery != "" {
					b.WriteString(fmt.Sprintf("   - searched: %s\n", *step.SearchQuery))
				}
			}
		} else if t.ReasoningAudit != "" {
			b.WriteString("\n### Reasoning audit\n\n" + t.ReasoningAudit + "\n")
		}
		b.WriteString("\n")
	}

	name := fmt.Sprintf("verify_%s.md", time.Now().Format("2006-01-02_150405"))
	path := filepath.Join(resultsDir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteAnalysisReport saves a stock analysis as a markdown report.
func WriteAnalysisReport(resultsDir string, plan *models.StockTradePlan) (string, error) {
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("# %s Analysis — %s\n\n", plan.Ticker, strings.ToUpper(plan.Action)))
	b.WriteString(fmt.Sprintf("- Generated: %s\n", time.Now().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("- Current price: $%.2f\n", plan.CurrentPrice))
	b.WriteString(fmt.Sprintf("- Entry zone: %s\n", plan.EntryZone))
	b.WriteString(fmt.Sprintf("- Stop loss: %s\n", plan.StopLoss))
	b.WriteString(fmt.Sprintf("- Take profit: %s\n", plan.TakeProfit))
	b.WriteString(fmt.Sprintf("- Confidence: %.0f%%\n", plan.ConfidenceScore*100))
	b.WriteString(fmt.Sprintf("- Triage: %s (%s)\n", plan.TriageSentiment, plan.TriageModel))
	b.WriteString(fmt.Sprintf("- Analysis model: %s\n\n", plan.AnalysisModel))

	if plan.ReasoningTrace != "" {
		b.WriteString("## Reasoning\n\n" + plan.ReasoningTrace + "\n\n")
	}
	if len(plan.ThoughtChain) > 0 {
		b.WriteString("## Thought chain\n\n")
		for _, step := range plan.ThoughtChain {
			b.WriteString(fmt.Sprintf("%d. %s\n", step.StepNumber, step.Thought))
		}
	} else if plan.ReasoningAudit != "" {
		b.WriteString("## Reasoning audit\n\n" + plan.ReasoningAudit + "\n")
	}

	name := fmt.Sprintf("analysis_%s_%s.md", plan.Ticker, time.Now().Format("2006-01-02_150405"))
	path := filepath.Join(resultsDir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
