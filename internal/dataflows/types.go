// Package dataflows fetches supplementary market data the analysis
// service does not carry: live stock quotes and previews of the
// settlement-source pages cited in verification evidence. Everything
// here is optional enrichment; callers degrade to service-provided
// fields when a fetch fails.
package dataflows

import "time"

// SourcePreview is a fetched snapshot of a settlement-source page.
type SourcePreview struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	SiteName  string    `json:"site_name"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Quote is a live stock quote used by the scout and analyze views.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	PreviousClose float64 `json:"previous_close"`
}

// Config carries the cache settings shared by the dataflow clients.
type Config struct {
	DataCacheDir string
	CacheEnabled bool
}
