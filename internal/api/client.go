// Package api is the HTTP client for the remote analysis service. The
// service is treated as an opaque collaborator: every operation maps to
// one endpoint, no retries, no local recomputation of its numbers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/edgedesk/edgedesk/internal/models"
)

const maxErrorBody = 200

// Client talks to the analysis service. The base URL is injected so the
// pipeline can run against a mock endpoint in tests.
type Client struct {
	http *resty.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	c := resty.New()
	c.SetBaseURL(strings.TrimRight(baseURL, "/"))
	c.SetTimeout(timeout)
	c.SetHeader("Accept", "application/json")

	return &Client{http: c}
}

// SetAPIKey attaches a bearer token to every request. An empty key
// clears it.
func (c *Client) SetAPIKey(key string) {
	c.http.SetAuthToken(key)
}

// BaseURL returns the configured service endpoint.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// Scan fetches the flat list of candidate trades for the given
// categories and bankroll.
func (c *Client) Scan(ctx context.Context, categories []string, bankroll decimal.Decimal) (*models.ScanResponse, error) {
	params := map[string]string{
		"categories": strings.Join(categories, ","),
		"bankroll":   bankroll.String(),
	}

	var out models.ScanResponse
	if err := c.getJSON(ctx, "/strategy1/scan", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyTop fetches the ranked, evidence-annotated top opportunities.
// The order of TopOpportunities is the service's ranking and is
// preserved verbatim.
func (c *Client) VerifyTop(ctx context.Context, categories []string, only0DTE bool, bankroll decimal.Decimal) (*models.VerifyResponse, error) {
	params := map[string]string{
		"categories": strings.Join(categories, ","),
		"only_0dte":  strconv.FormatBool(only0DTE),
		"bankroll":   bankroll.String(),
	}

	var out models.VerifyResponse
	if err := c.getJSON(ctx, "/strategy1/verify_top3", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StockHistory fetches chart samples for a ticker. An empty slice is a
// valid result, not an error.
func (c *Client) StockHistory(ctx context.Context, ticker, period, interval string) ([]models.ChartPoint, error) {
	params := map[string]string{
		"ticker":   ticker,
		"period":   period,
		"interval": interval,
	}

	var out []models.ChartPoint
	if err := c.getJSON(ctx, "/get_stock_history", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NewsCandidates fetches catalyst-discovery results priced under budget.
func (c *Client) NewsCandidates(ctx context.Context, budget decimal.Decimal) ([]models.ScoutResult, error) {
	params := map[string]string{"budget": budget.String()}

	var out []models.ScoutResult
	if err := c.getJSON(ctx, "/get_news_trading_candidates", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AnalyzeStock requests a single-ticker AI analysis. chartImage is an
// optional PNG snapshot sent as a multipart file part for multimodal
// analysis; pass nil to omit it.
func (c *Client) AnalyzeStock(ctx context.Context, ticker string, chartImage []byte) (*models.StockTradePlan, error) {
	const endpoint = "/analyze_stock"

	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("ticker", ticker)
	if len(chartImage) > 0 {
		req.SetFileReader("chart_image", "chart.png", bytes.NewReader(chartImage))
	}

	started := time.Now()
	resp, err := req.Post(endpoint)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, serviceError(endpoint, resp)
	}

	var out models.StockTradePlan
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	log.Debug().
		Str("endpoint", endpoint).
		Str("ticker", ticker).
		Dur("elapsed", time.Since(started)).
		Int("thought_steps", len(out.ThoughtChain)).
		Msg("analysis complete")

	return &out, nil
}

// Health pings the service's /health endpoint.
func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, "/health", nil, &out); err != nil {
		return err
	}
	if out.Status != "ok" {
		return fmt.Errorf("unexpected health status %q", out.Status)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params map[string]string, out interface{}) error {
	started := time.Now()

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(endpoint)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return serviceError(endpoint, resp)
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	log.Debug().
		Str("endpoint", endpoint).
		Dur("elapsed", time.Since(started)).
		Msg("request complete")

	return nil
}

func serviceError(endpoint string, resp *resty.Response) *ServiceError {
	body := resp.String()
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &ServiceError{
		Endpoint:   endpoint,
		StatusCode: resp.StatusCode(),
		Body:       body,
	}
}
