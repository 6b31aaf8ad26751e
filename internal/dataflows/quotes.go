package dataflows

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/piquette/finance-go/quote"
)

// QuoteClient fetches live stock quotes for the scout and analyze
// views, so prices on screen do not go stale between service calls.
type QuoteClient struct {
	cache *CacheManager
}

// NewQuoteClient creates a quote client with a short-lived cache.
func NewQuoteClient(config *Config) *QuoteClient {
	cacheDir := filepath.Join(config.DataCacheDir, "quotes")
	cache := NewCacheManager(cacheDir, 1*time.Minute, config.CacheEnabled)

	return &QuoteClient{cache: cache}
}

// GetQuote gets the current quote for a symbol.
func (qc *QuoteClient) GetQuote(symbol string) (*Quote, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	symbol = NormalizeSymbol(symbol)

	var cached Quote
	if qc.cache.Get("quotes", "quote", symbol, &cached) {
		return &cached, nil
	}

	var result *Quote
	err := WithRetry(DefaultRetryConfig(), func() error {
		q, err := quote.Get(symbol)
		if err != nil {
			return fmt.Errorf("failed to get quote for %s: %w", symbol, err)
		}

		result = &Quote{
			Symbol:        symbol,
			Price:         q.RegularMarketPrice,
			Change:        q.RegularMarketChange,
			ChangePercent: q.RegularMarketChangePercent,
			PreviousClose: q.RegularMarketPreviousClose,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	qc.cache.Set("quotes", "quote", symbol, result)

	return result, nil
}
