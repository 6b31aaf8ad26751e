package dataflows

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestValidateSymbol(t *testing.T) {
	require.NoError(t, ValidateSymbol("aapl"))
	require.NoError(t, ValidateSymbol(" NVDA "))
	require.Error(t, ValidateSymbol(""))
	require.Error(t, ValidateSymbol("WAYTOOLONGSYMBOL"))
}

func TestNormalizeSymbol(t *testing.T) {
	require.Equal(t, "AAPL", NormalizeSymbol(" aapl "))
}

func TestCacheManagerRoundtrip(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), time.Minute, true)

	params := map[string]string{"symbol": "NVDA"}
	require.NoError(t, cm.Set("quotes", "quote", params, &Quote{Symbol: "NVDA", Price: 181.5}))

	var got Quote
	require.True(t, cm.Get("quotes", "quote", params, &got))
	require.Equal(t, "NVDA", got.Symbol)
	require.InDelta(t, 181.5, got.Price, 1e-9)

	// Different params miss.
	require.False(t, cm.Get("quotes", "quote", map[string]string{"symbol": "AMD"}, &got))
}

func TestCacheManagerDisabled(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), time.Minute, false)

	require.NoError(t, cm.Set("a", "b", "k", &Quote{Symbol: "X"}))
	var got Quote
	require.False(t, cm.Get("a", "b", "k", &got))
}

func TestWithRetryStopsOnSuccess(t *testing.T) {
	cfg := &RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}

	calls := 0
	err := WithRetry(cfg, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestWithRetryExhausts(t *testing.T) {
	cfg := &RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}

	err := WithRetry(cfg, func() error { return errors.New("down") })
	require.Error(t, err)
	require.Contains(t, err.Error(), "max retries exceeded")
}

func TestExtractPreview(t *testing.T) {
	html := `<html><head>
		<title>Fallback title</title>
		<meta property="og:site_name" content="CoinDesk">
		<meta property="og:description" content="Bitcoin pushed past $100,000 for the first time.">
	</head><body>
		<h1>Bitcoin crosses $100k</h1>
		<article><p>Long body text here.</p></article>
	</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	p := extractPreview(doc, "https://www.coindesk.com/price/bitcoin")
	require.Equal(t, "Bitcoin crosses $100k", p.Title)
	require.Equal(t, "CoinDesk", p.SiteName)
	require.Equal(t, "Bitcoin pushed past $100,000 for the first time.", p.Excerpt)
	require.False(t, p.FetchedAt.IsZero())
}

func TestExtractPreviewFallsBackToHost(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body><p>bare</p></body></html>"))
	require.NoError(t, err)

	p := extractPreview(doc, "https://example.org/page")
	require.Equal(t, "example.org", p.SiteName)
}
