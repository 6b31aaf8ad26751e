package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Side is the contract side a trade plan buys.
type Side string

const (
	SideYes Side = "YES"
	SideNo  Side = "NO"
)

// TradePlan is an immutable snapshot of a tradeable market at scan time.
// All *_price and *_cents fields are integer cents; dollar amounts are
// decimals. A plan is never mutated after decoding: a new scan replaces
// the whole set.
type TradePlan struct {
	MarketID          string          `json:"market_id"`
	EventTicker       string          `json:"event_ticker"`
	Title             string          `json:"title"`
	Category          string          `json:"category"`
	Side              Side            `json:"side"`
	EntryPrice        int             `json:"entry_price"`
	ExitPrice         int             `json:"exit_price"`
	StopLoss          int             `json:"stop_loss"`
	PotentialProfit   int             `json:"potential_profit_cents"`
	PotentialLoss     int             `json:"potential_loss_cents"`
	RiskRewardRatio   float64         `json:"risk_reward_ratio"`
	ExpiryTime        string          `json:"expiry_time,omitempty"`
	HoursToExpiry     float64         `json:"hours_to_expiry"`
	IsZeroDTE         bool            `json:"is_0dte"`
	FeePerContract    float64         `json:"fee_per_contract"`
	NetProfitAfterFee float64         `json:"net_profit_after_fees"`
	SettlementSource  string          `json:"settlement_source"`
	ImpliedWinRate    float64         `json:"implied_win_rate"`
	SuggestedLots     int             `json:"suggested_contracts"`
	MaxRiskDollars    decimal.Decimal `json:"max_risk_dollars"`
}

// Matches reports whether the plan's title or event ticker contains the
// query, case-insensitively. An empty query matches everything.
func (t *TradePlan) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.EventTicker), q)
}

// ScanResponse is the payload of GET /strategy1/scan.
type ScanResponse struct {
	ScanTime   string      `json:"scan_time"`
	PriceRange string      `json:"price_range"`
	Categories []string    `json:"categories"`
	TotalFound int         `json:"total_found"`
	Trades     []TradePlan `json:"trades"`
}
