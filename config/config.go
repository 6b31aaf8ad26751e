package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config is the application configuration. Fields mirror the JSON file
// on disk; environment variables override the defaults at load time.
type Config struct {
	BaseURL      string `json:"base_url"`
	ResultsDir   string `json:"results_dir"`
	DataCacheDir string `json:"data_cache_dir"`

	CacheEnabled    bool `json:"cache_enabled"`
	CacheTTLMinutes int  `json:"cache_ttl_minutes"`

	DefaultBankroll   decimal.Decimal `json:"default_bankroll"`
	DefaultCategories []string        `json:"default_categories"`
	Only0DTE          bool            `json:"only_0dte"`

	RequestTimeoutSeconds int  `json:"request_timeout_seconds"`
	ScanStageIntervalMs   int  `json:"scan_stage_interval_ms"`
	Debug                 bool `json:"debug"`
}

func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()
	cfg := DefaultConfigWithRoot(currentDir)

	// Load environment variables from .env file
	_ = godotenv.Load()
	cfg.loadFromEnv()

	return cfg
}

// DefaultConfigWithRoot builds defaults rooted at a specific directory,
// without consulting the environment.
func DefaultConfigWithRoot(root string) *Config {
	return &Config{
		BaseURL:      "http://localhost:8000",
		ResultsDir:   filepath.Join(root, "results"),
		DataCacheDir: filepath.Join(root, "data", "cache"),

		CacheEnabled:    true,
		CacheTTLMinutes: 5,

		DefaultBankroll:   decimal.NewFromInt(1000),
		DefaultCategories: []string{"crypto", "financials"},
		Only0DTE:          false,

		RequestTimeoutSeconds: 300,
		ScanStageIntervalMs:   800,
		Debug:                 false,
	}
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("EDGEDESK_BASE_URL"); val != "" {
		c.BaseURL = val
	}
	if val := os.Getenv("RESULTS_DIR"); val != "" {
		c.ResultsDir = val
	}
	if val := os.Getenv("DATA_CACHE_DIR"); val != "" {
		c.DataCacheDir = val
	}

	if val := os.Getenv("CACHE_ENABLED"); val != "" {
		if cache, err := strconv.ParseBool(val); err == nil {
			c.CacheEnabled = cache
		}
	}
	if val := os.Getenv("CACHE_TTL_MINUTES"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.CacheTTLMinutes = v
		}
	}

	if val := os.Getenv("DEFAULT_BANKROLL"); val != "" {
		if v, err := decimal.NewFromString(val); err == nil {
			c.DefaultBankroll = v
		}
	}
	if val := os.Getenv("DEFAULT_CATEGORIES"); val != "" {
		c.DefaultCategories = splitCategories(val)
	}
	if val := os.Getenv("ONLY_0DTE"); val != "" {
		if v, err := strconv.ParseBool(val); err == nil {
			c.Only0DTE = v
		}
	}

	if val := os.Getenv("REQUEST_TIMEOUT_SECONDS"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.RequestTimeoutSeconds = v
		}
	}
	if val := os.Getenv("EDGEDESK_DEBUG"); val != "" {
		if v, err := strconv.ParseBool(val); err == nil {
			c.Debug = v
		}
	}
}

// Validate rejects configurations the rest of the app cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base_url must start with http:// or https://: %s", c.BaseURL)
	}
	if c.CacheTTLMinutes < 0 {
		return fmt.Errorf("cache_ttl_minutes must not be negative")
	}
	if c.DefaultBankroll.IsNegative() {
		return fmt.Errorf("default_bankroll must not be negative")
	}
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("request_timeout_seconds must be positive")
	}
	if c.ScanStageIntervalMs <= 0 {
		return fmt.Errorf("scan_stage_interval_ms must be positive")
	}
	return nil
}

// RequestTimeout returns the service timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// CacheTTL returns the result cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// StageInterval returns the progress stage advance interval.
func (c *Config) StageInterval() time.Duration {
	return time.Duration(c.ScanStageIntervalMs) * time.Millisecond
}

func (c *Config) EnsureDirectories() error {
	dirs := []string{c.ResultsDir, c.DataCacheDir}
	for _, dir := range dirs {
		path := strings.TrimSpace(dir)
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", path, err)
		}
	}
	return nil
}

func splitCategories(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
