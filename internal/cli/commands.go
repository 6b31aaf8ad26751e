package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "edgedesk",
		Short: "EdgeDesk - prediction market opportunity terminal",
		Long: `EdgeDesk is a terminal dashboard for an AI-backed prediction market
analysis service. It scans markets for mispriced contracts, runs the full
verification pipeline with evidence and reasoning audit trails, and tracks
stock catalysts for news-driven trades.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: start the interactive dashboard
			app, err := NewApp(configPath)
			if err != nil {
				return err
			}
			return NewDashboard(app).Run(cmd.Context())
		},
	}

	rootCmd.AddCommand(newScanCmd(&configPath))
	rootCmd.AddCommand(newVerifyCmd(&configPath))
	rootCmd.AddCommand(newScoutCmd(&configPath))
	rootCmd.AddCommand(newAnalyzeCmd(&configPath))
	rootCmd.AddCommand(newConfigCmd(&configPath))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file path")

	return rootCmd
}

// newScanCmd creates the scan command
func newScanCmd(configPath *string) *cobra.Command {
	var categories []string
	var bankroll string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan prediction markets for candidate trades",
		Long: `Scan the configured categories for contracts in the tradeable price
band and print the candidate list with risk/reward numbers.
Example: edgedesk scan --categories crypto,financials --bankroll 500`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(*configPath)
			if err != nil {
				return err
			}
			cats, roll, err := resolveScanParams(app, categories, bankroll)
			if err != nil {
				return err
			}

			resp, err := app.Opps.Scan(cmd.Context(), cats, roll)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			RenderScanPanel(resp, "")
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&categories, "categories", nil, "Market categories to scan (default from config)")
	cmd.Flags().StringVar(&bankroll, "bankroll", "", "Bankroll in dollars for position sizing")

	return cmd
}

// newVerifyCmd creates the verify command
func newVerifyCmd(configPath *string) *cobra.Command {
	var categories []string
	var bankroll string
	var only0DTE bool
	var report bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run the full verification pipeline on the top opportunities",
		Long: `Run scan, source location, value extraction, edge computation and
ranking in one pass, and print the ranked verified trades with their
evidence and reasoning audit.
Example: edgedesk verify --only-0dte --bankroll 1000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(*configPath)
			if err != nil {
				return err
			}
			cats, roll, err := resolveScanParams(app, categories, bankroll)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("only-0dte") {
				only0DTE = app.Config().Only0DTE
			}

			resp, err := runVerifyWithProgress(cmd.Context(), app, cats, only0DTE, roll)
			if err != nil {
				return fmt.Errorf("verification failed: %w", err)
			}

			RenderVerifiedPanel(resp, nil, "")
			if report {
				path, err := WriteVerifyReport(app.Config().ResultsDir, resp)
				if err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				DisplaySuccess(fmt.Sprintf("Report saved to %s", path))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&categories, "categories", nil, "Market categories to scan (default from config)")
	cmd.Flags().StringVar(&bankroll, "bankroll", "", "Bankroll in dollars for position sizing")
	cmd.Flags().BoolVar(&only0DTE, "only-0dte", false, "Restrict to contracts expiring today")
	cmd.Flags().BoolVar(&report, "report", false, "Save a markdown report to the results directory")

	return cmd
}

// newScoutCmd creates the scout command
func newScoutCmd(configPath *string) *cobra.Command {
	var budget string

	cmd := &cobra.Command{
		Use:   "scout",
		Short: "Scan news for stock catalysts within budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(*configPath)
			if err != nil {
				return err
			}

			b := app.Config().DefaultBankroll
			if budget != "" {
				var err error
				b, err = decimal.NewFromString(budget)
				if err != nil {
					return fmt.Errorf("invalid budget %q: %w", budget, err)
				}
			}

			results, err := app.Client.NewsCandidates(cmd.Context(), b)
			if err != nil {
				return fmt.Errorf("scout failed: %w", err)
			}

			RenderScoutPanel(results)
			return nil
		},
	}

	cmd.Flags().StringVar(&budget, "budget", "", "Maximum share price in dollars")

	return cmd
}

// newAnalyzeCmd creates the analyze command
func newAnalyzeCmd(configPath *string) *cobra.Command {
	var withChart bool

	cmd := &cobra.Command{
		Use:   "analyze [TICKER]",
		Short: "Run AI analysis for a stock ticker",
		Long: `Request a single-ticker analysis from the service: triage, optional
chart reading, and an entry/stop/target trade plan with the model's
reasoning audit.
Example: edgedesk analyze NVDA --with-chart`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(*configPath)
			if err != nil {
				return err
			}
			return runStockAnalysis(cmd.Context(), app, strings.ToUpper(args[0]), withChart)
		},
	}

	cmd.Flags().BoolVar(&withChart, "with-chart", false, "Render and upload a chart snapshot for multimodal analysis")

	return cmd
}

// newConfigCmd creates the config command
func newConfigCmd(configPath *string) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(*configPath)
			if err != nil {
				return err
			}
			showConfig(app)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and service connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(*configPath)
			if err != nil {
				return err
			}
			return validateConfig(cmd.Context(), app)
		},
	})

	return configCmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("EdgeDesk v1.0.0")
			fmt.Println("Prediction market opportunity terminal")
		},
	}
}

// resolveScanParams fills categories and bankroll from flags, falling
// back to the config defaults.
func resolveScanParams(app *App, categories []string, bankroll string) ([]string, decimal.Decimal, error) {
	cfg := app.Config()

	cats := categories
	if len(cats) == 0 {
		cats = cfg.DefaultCategories
	}

	roll := cfg.DefaultBankroll
	if bankroll != "" {
		var err error
		roll, err = decimal.NewFromString(bankroll)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("invalid bankroll %q: %w", bankroll, err)
		}
		if roll.IsNegative() {
			return nil, decimal.Zero, fmt.Errorf("bankroll must not be negative")
		}
	}

	return cats, roll, nil
}

// showConfig displays the current configuration
func showConfig(app *App) {
	cfg := app.Config()

	fmt.Println("📋 Current EdgeDesk Configuration:")
	fmt.Println("═══════════════════════════════════════")
	fmt.Printf("Config File:          %s\n", app.ConfigMgr.Path())
	fmt.Printf("Service URL:          %s\n", cfg.BaseURL)
	fmt.Printf("Results Directory:    %s\n", cfg.ResultsDir)
	fmt.Printf("Cache Directory:      %s\n", cfg.DataCacheDir)
	fmt.Println()
	fmt.Printf("Default Bankroll:     $%s\n", cfg.DefaultBankroll.StringFixed(2))
	fmt.Printf("Default Categories:   %s\n", strings.Join(cfg.DefaultCategories, ", "))
	fmt.Printf("Only 0DTE:            %t\n", cfg.Only0DTE)
	fmt.Println()
	fmt.Printf("Cache Enabled:        %t\n", cfg.CacheEnabled)
	fmt.Printf("Cache TTL:            %d minutes\n", cfg.CacheTTLMinutes)
	fmt.Printf("Request Timeout:      %d seconds\n", cfg.RequestTimeoutSeconds)
	fmt.Printf("Debug Mode:           %t\n", cfg.Debug)
	fmt.Println()

	fmt.Println("🔌 Credentials:")
	fmt.Println("─────────────────────")
	if app.Session.CurrentSession().Authenticated() {
		fmt.Println("Service API Key:      ✅ Configured")
	} else {
		fmt.Println("Service API Key:      ❌ Not configured (fine for local service)")
	}

	entries, basePath := app.Results.Stats()
	fmt.Printf("Cached Results:       %d entries in %s\n", entries, basePath)
}

// validateConfig validates the configuration and service connectivity
func validateConfig(ctx context.Context, app *App) error {
	cfg := app.Config()

	fmt.Println("🔍 Validating EdgeDesk Configuration...")
	fmt.Println("═══════════════════════════════════════")

	fmt.Print("📁 Checking directories... ")
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Println("❌")
		return fmt.Errorf("directory validation failed: %w", err)
	}
	fmt.Println("✅")

	fmt.Print("⚙️  Checking configuration values... ")
	if err := cfg.Validate(); err != nil {
		fmt.Println("❌")
		return err
	}
	fmt.Println("✅")

	fmt.Printf("🌐 Checking service at %s... ", cfg.BaseURL)
	if err := app.Client.Health(ctx); err != nil {
		fmt.Println("❌")
		fmt.Printf("  ⚠️  Service unreachable: %v\n", err)
		fmt.Println()
		fmt.Println("💡 Tips:")
		fmt.Println("  • Make sure the analysis service is running")
		fmt.Println("  • Set EDGEDESK_BASE_URL if it listens on a different address")
		return nil
	}
	fmt.Println("✅")

	fmt.Println()
	fmt.Println("✅ Configuration validation completed successfully!")
	return nil
}
