package cli

import (
	"context"
	"fmt"

	"github.com/edgedesk/edgedesk/internal/dataflows"
	"github.com/edgedesk/edgedesk/internal/format"
)

// runStockAnalysis drives the single-ticker analysis flow: live quote,
// optional chart snapshot upload, then the service's trade plan.
func runStockAnalysis(ctx context.Context, app *App, ticker string, withChart bool) error {
	if err := dataflows.ValidateSymbol(ticker); err != nil {
		return err
	}
	ticker = dataflows.NormalizeSymbol(ticker)

	// Live quote is best effort; the analysis works without it.
	if q, err := app.Flows.Quotes.GetQuote(ticker); err == nil {
		change := format.SignedPercent(q.ChangePercent)
		fmt.Printf("💹 %s $%.2f (%s today)\n", q.Symbol, q.Price,
			format.EdgeStyle(q.ChangePercent).Render(change))
	}

	var chartImage []byte
	if withChart {
		points, err := app.Client.StockHistory(ctx, ticker, "1d", "5m")
		switch {
		case err != nil:
			DisplayInfo(fmt.Sprintf("Chart unavailable: %v", err))
		case len(points) == 0:
			DisplayInfo("No intraday history for chart snapshot")
		default:
			DisplaySparkline(ticker, points)
			chartImage, err = RenderChartPNG(points, 800, 400)
			if err != nil {
				DisplayInfo(fmt.Sprintf("Chart render failed, analyzing without it: %v", err))
				chartImage = nil
			}
		}
	}

	if chartImage != nil {
		fmt.Println("🧠 Requesting multimodal AI analysis (this can take a few minutes)...")
	} else {
		fmt.Println("🧠 Requesting AI analysis (this can take a few minutes)...")
	}

	plan, err := app.Client.AnalyzeStock(ctx, ticker, chartImage)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Println(titleStyle.Render("🎉 ANALYSIS COMPLETE"))
	RenderAnalysisPanel(plan)

	if len(plan.ThoughtChain) > 0 {
		fmt.Println("🧠 Reasoning:")
		for _, step := range plan.ThoughtChain {
			fmt.Printf("  %d. %s\n", step.StepNumber, truncateString(step.Thought, 90))
		}
	}

	path, err := WriteAnalysisReport(app.Config().ResultsDir, plan)
	if err != nil {
		DisplayInfo(fmt.Sprintf("Could not save report: %v", err))
		return nil
	}
	DisplaySuccess(fmt.Sprintf("Report saved to %s", path))
	return nil
}
