package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/edgedesk/edgedesk/internal/models"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 5*time.Second), srv
}

func TestScanDecodesResponse(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/strategy1/scan", r.URL.Path)
		require.Equal(t, "crypto,financials", r.URL.Query().Get("categories"))
		require.Equal(t, "500", r.URL.Query().Get("bankroll"))

		json.NewEncoder(w).Encode(models.ScanResponse{
			TotalFound: 1,
			Trades: []models.TradePlan{
				{MarketID: "mkt-1", Title: "Bitcoin above 100k", EntryPrice: 93},
			},
		})
	}))
	defer srv.Close()

	resp, err := client.Scan(context.Background(), []string{"crypto", "financials"}, decimal.NewFromInt(500))
	require.NoError(t, err)
	require.Equal(t, 1, resp.TotalFound)
	require.Equal(t, "mkt-1", resp.Trades[0].MarketID)
	require.Equal(t, 93, resp.Trades[0].EntryPrice)
}

func TestVerifyTopPreservesServiceRanking(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/strategy1/verify_top3", r.URL.Path)
		require.Equal(t, "true", r.URL.Query().Get("only_0dte"))

		// Deliberately not sorted by edge: the service ranking is
		// authoritative and must come back verbatim.
		json.NewEncoder(w).Encode(models.VerifyResponse{
			TotalScanned: 40,
			TopOpportunities: []models.VerifiedTrade{
				{Trade: models.TradePlan{MarketID: "a"}, Edge: 3.0},
				{Trade: models.TradePlan{MarketID: "b"}, Edge: 9.5},
				{Trade: models.TradePlan{MarketID: "c"}, Edge: 6.1},
			},
		})
	}))
	defer srv.Close()

	resp, err := client.VerifyTop(context.Background(), []string{"crypto"}, true, decimal.NewFromInt(1000))
	require.NoError(t, err)
	require.Len(t, resp.TopOpportunities, 3)
	require.Equal(t, "a", resp.TopOpportunities[0].Trade.MarketID)
	require.Equal(t, "b", resp.TopOpportunities[1].Trade.MarketID)
	require.Equal(t, "c", resp.TopOpportunities[2].Trade.MarketID)
}

func TestServiceErrorSurfacesStatusAndBody(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"scan engine overloaded"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := client.Scan(context.Background(), nil, decimal.Zero)
	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, http.StatusInternalServerError, svcErr.StatusCode)
	require.Contains(t, svcErr.Body, "scan engine overloaded")
	require.Equal(t, "/strategy1/scan", svcErr.Endpoint)
}

func TestServiceErrorBodyTruncated(t *testing.T) {
	long := make([]byte, 4096)
	for i := range long {
		long[i] = 'x'
	}
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write(long)
	}))
	defer srv.Close()

	_, err := client.Scan(context.Background(), nil, decimal.Zero)
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	require.Len(t, svcErr.Body, maxErrorBody)
}

func TestTransportErrorOnUnreachableService(t *testing.T) {
	// Grab a port that is guaranteed closed.
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, time.Second)
	_, err := client.Scan(context.Background(), nil, decimal.Zero)
	require.Error(t, err)

	var trErr *TransportError
	require.ErrorAs(t, err, &trErr)
	require.Equal(t, "/strategy1/scan", trErr.Endpoint)
	require.NotNil(t, trErr.Unwrap())
}

func TestHealth(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	require.NoError(t, client.Health(context.Background()))
}

func TestAnalyzeStockUploadsChartWhenPresent(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/analyze_stock", r.URL.Path)
		require.Equal(t, "NVDA", r.URL.Query().Get("ticker"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("chart_image")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "chart.png", header.Filename)

		json.NewEncoder(w).Encode(models.StockTradePlan{
			Ticker: "NVDA",
			Action: "buy",
		})
	}))
	defer srv.Close()

	plan, err := client.AnalyzeStock(context.Background(), "NVDA", []byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	require.Equal(t, "NVDA", plan.Ticker)
}
