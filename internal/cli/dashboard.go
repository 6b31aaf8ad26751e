package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/edgedesk/edgedesk/config"
	"github.com/edgedesk/edgedesk/internal/models"
	"github.com/edgedesk/edgedesk/internal/progress"
	"github.com/edgedesk/edgedesk/internal/scan"
	"github.com/edgedesk/edgedesk/internal/selection"
)

// Dashboard is the interactive session. It owns all panel state: the
// fetched result sets live in the repositories, selection and expansion
// in the coordinator, and progress in the sequencer. Fetches run in
// goroutines and deliver on channels; the loop applies results so panel
// state is only ever touched from one place.
type Dashboard struct {
	app    *App
	reader *bufio.Reader

	coord       *selection.Coordinator
	chartTicker string

	categories []string
	bankroll   decimal.Decimal
	only0DTE   bool
	filter     string
}

// NewDashboard creates the interactive session from app defaults.
func NewDashboard(app *App) *Dashboard {
	cfg := app.Config()

	d := &Dashboard{
		app:        app,
		reader:     bufio.NewReader(os.Stdin),
		categories: cfg.DefaultCategories,
		bankroll:   cfg.DefaultBankroll,
		only0DTE:   cfg.Only0DTE,
	}
	d.coord = selection.NewCoordinator(d.onTradeSelected)
	return d
}

// Run starts the dashboard loop. It returns when the user exits or
// stdin closes.
func (d *Dashboard) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pick up external config edits while the session runs.
	if err := d.app.ConfigMgr.Watch(ctx, d.onConfigReload); err != nil {
		DisplayError(fmt.Errorf("config watch unavailable: %w", err))
	}

	DisplayWelcomeBanner()
	d.showCommands()

	// Seed panels from cached snapshots so a restarted session is not
	// blank. Explicit scan/verify commands still always refetch.
	if d.app.Opps.Restore(d.categories, d.bankroll) {
		DisplayInfo("Restored previous scan results from cache (run 'scan' to refresh)")
	}
	if d.app.Verify.Restore(d.categories, d.only0DTE) {
		d.coord.ApplyVerified(d.app.Verify.TradeIDs(), false)
		DisplayInfo("Restored previous verified trades from cache (run 'verify' to refresh)")
	}

	for {
		fmt.Print("⚡ edgedesk> ")

		input, err := d.reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		command := strings.ToLower(parts[0])
		args := parts[1:]

		switch command {
		case "exit", "quit", "q":
			fmt.Println("👋 Closing EdgeDesk. Trade carefully!")
			return nil

		case "help", "h", "?":
			d.showCommands()

		case "scan", "s":
			d.runScan(ctx)

		case "verify", "v":
			d.runVerify(ctx)

		case "filter", "f":
			d.applyFilter(strings.Join(args, " "))

		case "select":
			d.handleSelect(args)

		case "expand", "x":
			d.handleExpand(args)

		case "chain", "c":
			d.handleChain(args)

		case "source", "src":
			d.handleSource(args)

		case "collapse":
			d.coord.CollapseAll()
			d.renderVerified()

		case "scout":
			d.runScout(ctx, args)

		case "analyze", "a":
			d.runAnalyze(ctx, args)

		case "history", "hist":
			d.showHistory()

		case "config", "cfg":
			d.handleConfigCommand(args)

		case "login":
			d.handleLogin()

		case "logout":
			d.app.Session.SignOut()
			DisplaySuccess("Signed out")

		case "clear", "cls":
			ClearScreen()
			DisplayWelcomeBanner()

		default:
			fmt.Printf("❌ Unknown command: %s. Type 'help' for available commands.\n", command)
		}

		fmt.Println()
	}
}

func (d *Dashboard) showCommands() {
	fmt.Println("💡 Commands:")
	fmt.Println("   scan                 - Scan markets for candidate trades")
	fmt.Println("   verify               - Run the full verification pipeline")
	fmt.Println("   filter <text>        - Filter the candidate list (empty to clear)")
	fmt.Println("   select <rank>        - Highlight a verified trade")
	fmt.Println("   expand [rank]        - Toggle the audit detail for a trade")
	fmt.Println("   chain [rank]         - Show a trade's AI thought chain")
	fmt.Println("   source [rank]        - Preview a trade's settlement-source page")
	fmt.Println("   collapse             - Close any open audit detail")
	fmt.Println("   scout [budget]       - Scan news for stock catalysts")
	fmt.Println("   analyze <TICKER>     - Run AI analysis for a stock")
	fmt.Println("   history              - List saved reports")
	fmt.Println("   config               - Show/edit configuration")
	fmt.Println("   help                 - Show this help")
	fmt.Println("   exit                 - Exit EdgeDesk")
	fmt.Println()
}

// runScan refreshes the candidate list. On failure the previous list
// stays on screen and the error shows as a transient notice.
func (d *Dashboard) runScan(ctx context.Context) {
	fmt.Printf("🔎 Scanning %s markets (bankroll $%s)...\n",
		strings.Join(d.categories, ", "), d.bankroll.StringFixed(2))

	type result struct {
		resp *models.ScanResponse
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		resp, err := d.app.Opps.Scan(ctx, d.categories, d.bankroll)
		ch <- result{resp, err}
	}()

	res := <-ch
	if res.err != nil {
		DisplayError(fmt.Errorf("scan failed: %w", res.err))
		if last, fetched := d.app.Opps.Last(); last != nil {
			DisplayInfo(fmt.Sprintf("Showing previous results from %s", fetched.Format("15:04:05")))
			RenderScanPanel(last, d.filter)
		}
		return
	}

	RenderScanPanel(res.resp, d.filter)
}

// runVerify runs the pipeline with the staged progress line, then
// applies the ranked result to the selection coordinator.
func (d *Dashboard) runVerify(ctx context.Context) {
	resp, err := runVerifyWithProgress(ctx, d.app, d.categories, d.only0DTE, d.bankroll)
	if err != nil {
		if errors.Is(err, scan.ErrSuperseded) {
			return
		}
		DisplayError(fmt.Errorf("verification failed: %w", err))
		if last, fetched := d.app.Verify.Last(); last != nil {
			DisplayInfo(fmt.Sprintf("Showing previous results from %s", fetched.Format("15:04:05")))
			RenderVerifiedPanel(last, d.coord, d.chartTicker)
		}
		return
	}

	d.coord.ApplyVerified(d.app.Verify.TradeIDs(), true)
	RenderVerifiedPanel(resp, d.coord, d.chartTicker)
}

// runVerifyWithProgress drives the staged status line while the
// pipeline request is in flight. Only the ticker goroutine is
// cancelled on completion; the request itself runs to its own timeout.
func runVerifyWithProgress(ctx context.Context, app *App, categories []string, only0DTE bool, bankroll decimal.Decimal) (*models.VerifyResponse, error) {
	var seq *progress.Sequencer
	seq = progress.NewSequencer(progress.VerifyStages, func() {
		RenderProgressLine(seq.Snapshot())
	})
	cfg := app.Config()
	seq.Start(cfg.StageInterval())
	RenderProgressLine(seq.Snapshot())

	type result struct {
		resp *models.VerifyResponse
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		resp, err := app.Verify.VerifyTop(ctx, categories, only0DTE, bankroll)
		ch <- result{resp, err}
	}()

	res := <-ch
	seq.Finish(res.err == nil)
	RenderProgressLine(seq.Snapshot())

	if res.err != nil {
		return nil, res.err
	}
	return res.resp, nil
}

// applyFilter narrows the candidate list without refetching.
func (d *Dashboard) applyFilter(query string) {
	d.filter = strings.TrimSpace(query)

	last, _ := d.app.Opps.Last()
	if last == nil {
		DisplayInfo("No scan results yet. Run 'scan' first.")
		return
	}

	if d.filter == "" {
		DisplayInfo("Filter cleared")
	}
	RenderScanPanel(last, d.filter)
}

func (d *Dashboard) handleSelect(args []string) {
	rank, ok := d.parseRank(args, false)
	if !ok {
		return
	}
	d.coord.SelectIndex(rank - 1)
	d.renderVerified()
}

func (d *Dashboard) handleExpand(args []string) {
	id := d.coord.Selected()
	if rank, ok := d.parseRank(args, true); ok && rank > 0 {
		ids := d.coord.IDs()
		if rank <= len(ids) {
			id = ids[rank-1]
		}
	}
	if id == "" {
		DisplayInfo("No verified trades yet. Run 'verify' first.")
		return
	}
	d.coord.ToggleExpand(id)
	d.renderVerified()
}

func (d *Dashboard) handleChain(args []string) {
	id := d.coord.Selected()
	if rank, ok := d.parseRank(args, true); ok && rank > 0 {
		ids := d.coord.IDs()
		if rank <= len(ids) {
			id = ids[rank-1]
		}
	}

	trade := d.findVerified(id)
	if trade == nil {
		DisplayInfo("No verified trades yet. Run 'verify' first.")
		return
	}
	RenderThoughtChain(trade)
}

// handleSource fetches a live preview of the trade's settlement source.
// A failed fetch degrades to the data captured at verification time.
func (d *Dashboard) handleSource(args []string) {
	id := d.coord.Selected()
	if rank, ok := d.parseRank(args, true); ok && rank > 0 {
		ids := d.coord.IDs()
		if rank <= len(ids) {
			id = ids[rank-1]
		}
	}

	trade := d.findVerified(id)
	if trade == nil {
		DisplayInfo("No verified trades yet. Run 'verify' first.")
		return
	}
	if trade.SourceURL == "" && trade.SourceData == "" {
		DisplayInfo("No settlement source recorded for this trade.")
		return
	}

	preview, err := d.app.Flows.Evidence.FetchPreview(trade.SourceURL)
	if err != nil {
		preview = nil
	}
	RenderSourcePreview(trade, preview)
}

// parseRank reads an optional 1-based rank argument. optional controls
// whether a missing argument is fine (returns rank 0).
func (d *Dashboard) parseRank(args []string, optional bool) (int, bool) {
	if len(args) == 0 {
		if optional {
			return 0, true
		}
		fmt.Println("❌ Usage: provide a rank number, e.g. 'select 2'")
		return 0, false
	}

	rank, err := strconv.Atoi(args[0])
	if err != nil || rank < 1 {
		fmt.Printf("❌ Invalid rank: %s\n", args[0])
		return 0, false
	}
	return rank, true
}

func (d *Dashboard) renderVerified() {
	last, _ := d.app.Verify.Last()
	if last == nil {
		DisplayInfo("No verified trades yet. Run 'verify' first.")
		return
	}
	RenderVerifiedPanel(last, d.coord, d.chartTicker)
}

func (d *Dashboard) findVerified(id string) *models.VerifiedTrade {
	last, _ := d.app.Verify.Last()
	if last == nil {
		return nil
	}
	for i := range last.TopOpportunities {
		if last.TopOpportunities[i].Trade.MarketID == id {
			return &last.TopOpportunities[i]
		}
	}
	return nil
}

// onTradeSelected keeps the chart ticker in sync with the highlighted
// trade. Expansion state is untouched on purpose.
func (d *Dashboard) onTradeSelected(id string) {
	if t := d.findVerified(id); t != nil && t.Trade.EventTicker != "" {
		d.chartTicker = t.Trade.EventTicker
	}
}

func (d *Dashboard) runScout(ctx context.Context, args []string) {
	budget := d.bankroll
	if len(args) > 0 {
		b, err := decimal.NewFromString(args[0])
		if err != nil {
			fmt.Printf("❌ Invalid budget: %s\n", args[0])
			return
		}
		budget = b
	}

	fmt.Printf("📰 Scouting news catalysts under $%s...\n", budget.StringFixed(2))

	results, err := d.app.Client.NewsCandidates(ctx, budget)
	if err != nil {
		DisplayError(fmt.Errorf("scout failed: %w", err))
		return
	}

	RenderScoutPanel(results)
}

func (d *Dashboard) runAnalyze(ctx context.Context, args []string) {
	var ticker string
	if len(args) > 0 {
		ticker = strings.ToUpper(args[0])
	} else if d.chartTicker != "" {
		ticker = d.chartTicker
		DisplayInfo(fmt.Sprintf("Using selected ticker %s", ticker))
	} else {
		var err error
		ticker, err = PromptForTicker()
		if err != nil {
			return
		}
	}

	if err := runStockAnalysis(ctx, d.app, ticker, true); err != nil {
		DisplayError(err)
	}
}

func (d *Dashboard) showHistory() {
	entries, err := os.ReadDir(d.app.Config().ResultsDir)
	if err != nil {
		DisplayInfo("No reports saved yet.")
		return
	}

	var reports []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			reports = append(reports, e.Name())
		}
	}
	if len(reports) == 0 {
		DisplayInfo("No reports saved yet.")
		return
	}

	sort.Sort(sort.Reverse(sort.StringSlice(reports)))

	fmt.Println("📈 Saved Reports")
	fmt.Println("═══════════════════")
	for _, name := range reports {
		fmt.Printf("  📋 %s\n", name)
	}
}

func (d *Dashboard) handleConfigCommand(args []string) {
	if len(args) == 0 {
		showConfig(d.app)
		return
	}

	switch strings.ToLower(args[0]) {
	case "show", "s":
		showConfig(d.app)

	case "set":
		if len(args) < 3 {
			fmt.Println("❌ Usage: config set <key> <value>")
			return
		}
		d.setConfigValue(args[1], strings.Join(args[2:], " "))

	case "edit", "e":
		d.interactiveConfigEdit()

	default:
		fmt.Printf("❌ Unknown config command: %s\n", args[0])
		fmt.Println("Available: show, set, edit")
	}
}

// setConfigValue updates one configuration key and persists it through
// the manager, so the change survives restarts.
func (d *Dashboard) setConfigValue(key, value string) {
	cfg := d.app.Config()

	switch strings.ToLower(key) {
	case "bankroll", "default_bankroll":
		v, err := decimal.NewFromString(value)
		if err != nil || v.IsNegative() {
			fmt.Printf("❌ Invalid bankroll: %s\n", value)
			return
		}
		cfg.DefaultBankroll = v
		d.bankroll = v

	case "categories", "default_categories":
		cats := splitList(value)
		if len(cats) == 0 {
			fmt.Println("❌ Categories cannot be empty")
			return
		}
		cfg.DefaultCategories = cats
		d.categories = cats

	case "only_0dte":
		v, err := strconv.ParseBool(value)
		if err != nil {
			fmt.Printf("❌ Invalid boolean value: %s\n", value)
			return
		}
		cfg.Only0DTE = v
		d.only0DTE = v

	case "debug":
		v, err := strconv.ParseBool(value)
		if err != nil {
			fmt.Printf("❌ Invalid boolean value: %s\n", value)
			return
		}
		cfg.Debug = v
		setupLogging(v)

	default:
		fmt.Printf("❌ Unknown configuration key: %s\n", key)
		fmt.Println("Available keys: bankroll, categories, only_0dte, debug")
		return
	}

	if err := d.app.ConfigMgr.Update(cfg); err != nil {
		DisplayError(fmt.Errorf("save config: %w", err))
		return
	}
	DisplaySuccess(fmt.Sprintf("%s updated", key))
}

// interactiveConfigEdit walks the scan parameters with prompts.
func (d *Dashboard) interactiveConfigEdit() {
	cats, err := PromptForCategories(d.categories)
	if err != nil {
		return
	}
	roll, err := PromptForBankroll(d.bankroll)
	if err != nil {
		return
	}
	only0DTE, err := PromptForOnly0DTE(d.only0DTE)
	if err != nil {
		return
	}

	cfg := d.app.Config()
	cfg.DefaultCategories = cats
	cfg.DefaultBankroll = roll
	cfg.Only0DTE = only0DTE

	if err := d.app.ConfigMgr.Update(cfg); err != nil {
		DisplayError(fmt.Errorf("save config: %w", err))
		return
	}

	d.categories = cats
	d.bankroll = roll
	d.only0DTE = only0DTE
	DisplaySuccess("Configuration updated!")
}

func (d *Dashboard) handleLogin() {
	key, err := PromptForAPIKey()
	if err != nil || key == "" {
		return
	}
	if err := d.app.Session.SignIn(key); err != nil {
		DisplayError(err)
		return
	}
	DisplaySuccess("Signed in")
}

// onConfigReload applies externally edited config to the session
// defaults. Fetched results and selection state are left alone.
func (d *Dashboard) onConfigReload(cfg config.Config) {
	d.categories = cfg.DefaultCategories
	d.bankroll = cfg.DefaultBankroll
	d.only0DTE = cfg.Only0DTE
	setupLogging(cfg.Debug)
	fmt.Println()
	DisplayInfo("Configuration reloaded from disk")
	fmt.Print("⚡ edgedesk> ")
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
