package dataflows

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const maxExcerptLen = 400

// EvidenceClient fetches previews of the settlement-source pages named
// in verification evidence, so the audit detail can show what the page
// currently says next to the value the service extracted from it.
type EvidenceClient struct {
	client *resty.Client
	cache  *CacheManager
}

// NewEvidenceClient creates an evidence preview client.
func NewEvidenceClient(config *Config) *EvidenceClient {
	cacheDir := filepath.Join(config.DataCacheDir, "evidence")
	cache := NewCacheManager(cacheDir, 2*time.Hour, config.CacheEnabled)

	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; EdgeDesk/1.0)")

	return &EvidenceClient{
		client: client,
		cache:  cache,
	}
}

// FetchPreview retrieves and summarizes the page at sourceURL. Callers
// fall back to the service's stored source_data when this fails.
func (ec *EvidenceClient) FetchPreview(sourceURL string) (*SourcePreview, error) {
	if strings.TrimSpace(sourceURL) == "" {
		return nil, fmt.Errorf("source URL cannot be empty")
	}
	if _, err := url.ParseRequestURI(sourceURL); err != nil {
		return nil, fmt.Errorf("invalid source URL: %w", err)
	}

	var cached SourcePreview
	if ec.cache.Get("evidence", "preview", sourceURL, &cached) {
		return &cached, nil
	}

	var result *SourcePreview
	err := WithRetry(DefaultRetryConfig(), func() error {
		resp, err := ec.client.R().Get(sourceURL)
		if err != nil {
			return fmt.Errorf("failed to fetch source page: %w", err)
		}

		if resp.StatusCode() != 200 {
			return fmt.Errorf("HTTP error %d when fetching source page", resp.StatusCode())
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
		if err != nil {
			return fmt.Errorf("failed to parse HTML: %w", err)
		}

		result = extractPreview(doc, sourceURL)
		return nil
	})

	if err != nil {
		return nil, err
	}

	ec.cache.Set("evidence", "preview", sourceURL, result)

	return result, nil
}

// extractPreview pulls title, site name and a short excerpt from a page.
func extractPreview(doc *goquery.Document, sourceURL string) *SourcePreview {
	title := ""
	titleSelectors := []string{"h1", "title", ".headline", ".article-title"}
	for _, selector := range titleSelectors {
		if t := strings.TrimSpace(doc.Find(selector).First().Text()); t != "" {
			title = t
			break
		}
	}

	excerpt := ""
	if meta := doc.Find("meta[property='og:description']"); meta.Length() > 0 {
		excerpt, _ = meta.Attr("content")
	}
	if excerpt == "" {
		contentSelectors := []string{
			".article-content", ".entry-content", ".post-content",
			"article p", ".content", "main p",
		}
		for _, selector := range contentSelectors {
			if c := strings.TrimSpace(doc.Find(selector).First().Text()); c != "" {
				excerpt = c
				break
			}
		}
	}
	excerpt = strings.Join(strings.Fields(excerpt), " ")
	if len(excerpt) > maxExcerptLen {
		excerpt = excerpt[:maxExcerptLen] + "…"
	}

	siteName := ""
	if meta := doc.Find("meta[property='og:site_name']"); meta.Length() > 0 {
		siteName, _ = meta.Attr("content")
	}
	if siteName == "" {
		if u, err := url.Parse(sourceURL); err == nil {
			siteName = u.Host
		}
	}

	return &SourcePreview{
		URL:       sourceURL,
		Title:     title,
		Excerpt:   excerpt,
		SiteName:  siteName,
		FetchedAt: time.Now(),
	}
}
