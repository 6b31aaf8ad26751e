// Package scan owns the fetched result sets behind the dashboard: the
// flat candidate list and the ranked verified list. Repositories decide
// what survives a failure and which in-flight response is allowed to
// land; rendering reads their state, never the client directly.
package scan

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/edgedesk/edgedesk/internal/cache"
	"github.com/edgedesk/edgedesk/internal/models"
)

// ErrSuperseded marks a response that lost to a newer request. Callers
// drop it without touching any state.
var ErrSuperseded = errors.New("response superseded by a newer request")

// PipelineClient is the slice of the service client the repositories
// need. The production implementation is api.Client.
type PipelineClient interface {
	Scan(ctx context.Context, categories []string, bankroll decimal.Decimal) (*models.ScanResponse, error)
	VerifyTop(ctx context.Context, categories []string, only0DTE bool, bankroll decimal.Decimal) (*models.VerifyResponse, error)
}

// OpportunityRepository holds the latest successful scan. On a failed
// refresh the previous result stays visible; the caller surfaces the
// error as a transient notice instead of blanking the panel.
type OpportunityRepository struct {
	client PipelineClient
	cache  *cache.ResultCache

	mu      sync.RWMutex
	last    *models.ScanResponse
	fetched time.Time
}

// NewOpportunityRepository creates a scan repository. cache may be nil.
func NewOpportunityRepository(client PipelineClient, c *cache.ResultCache) *OpportunityRepository {
	return &OpportunityRepository{client: client, cache: c}
}

// Scan refreshes the candidate list. An explicit scan always goes to
// the network; the cache is only written, never read here. On failure
// the previous result is kept and the error returned.
func (r *OpportunityRepository) Scan(ctx context.Context, categories []string, bankroll decimal.Decimal) (*models.ScanResponse, error) {
	resp, err := r.client.Scan(ctx, categories, bankroll)
	if err != nil {
		log.Warn().Err(err).Msg("scan failed, keeping previous results")
		return nil, err
	}

	r.store(resp)
	if r.cache != nil {
		// Position sizing depends on bankroll, so it is part of the key.
		key := cache.Key("scan", append(append([]string(nil), categories...), bankroll.String())...)
		r.cache.Set(key, resp)
	}
	return resp, nil
}

// Restore seeds the repository from a cached snapshot so a restarted
// dashboard shows the last results instantly. Returns false when no
// fresh snapshot exists for these parameters.
func (r *OpportunityRepository) Restore(categories []string, bankroll decimal.Decimal) bool {
	if r.cache == nil {
		return false
	}
	key := cache.Key("scan", append(append([]string(nil), categories...), bankroll.String())...)
	var cached models.ScanResponse
	if !r.cache.Get(key, &cached) {
		return false
	}
	r.store(&cached)
	return true
}

// Last returns the most recent successful scan and when it was fetched.
// Nil means no scan has ever succeeded this session.
func (r *OpportunityRepository) Last() (*models.ScanResponse, time.Time) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last, r.fetched
}

// Filter returns the trades from the last scan matching query, in their
// original order. An empty query returns everything; no scan yet
// returns nil.
func (r *OpportunityRepository) Filter(query string) []models.TradePlan {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.last == nil {
		return nil
	}

	out := make([]models.TradePlan, 0, len(r.last.Trades))
	for _, t := range r.last.Trades {
		if t.Matches(query) {
			out = append(out, t)
		}
	}
	return out
}

func (r *OpportunityRepository) store(resp *models.ScanResponse) {
	r.mu.Lock()
	r.last = resp
	r.fetched = time.Now()
	r.mu.Unlock()
}

// VerificationRepository holds the latest ranked verified set. A
// generation counter guards concurrent requests: only the most recently
// issued request may publish, so a slow earlier response can never
// overwrite a newer one.
type VerificationRepository struct {
	client PipelineClient
	cache  *cache.ResultCache

	generation atomic.Uint64

	mu      sync.RWMutex
	last    *models.VerifyResponse
	fetched time.Time
}

// NewVerificationRepository creates a verification repository.
func NewVerificationRepository(client PipelineClient, c *cache.ResultCache) *VerificationRepository {
	return &VerificationRepository{client: client, cache: c}
}

// VerifyTop runs the full verification pipeline. If another VerifyTop
// was issued while this one was in flight, the stale response is
// discarded and ErrSuperseded returned. Failures leave the previous
// verified set intact; there is no partial publish.
func (r *VerificationRepository) VerifyTop(ctx context.Context, categories []string, only0DTE bool, bankroll decimal.Decimal) (*models.VerifyResponse, error) {
	gen := r.generation.Add(1)

	resp, err := r.client.VerifyTop(ctx, categories, only0DTE, bankroll)
	if err != nil {
		if r.generation.Load() != gen {
			return nil, ErrSuperseded
		}
		log.Warn().Err(err).Msg("verification failed, keeping previous results")
		return nil, err
	}

	r.mu.Lock()
	// Re-checked under the publish lock: a newer request may win the
	// race between this response landing and the store below.
	if r.generation.Load() != gen {
		r.mu.Unlock()
		log.Debug().Uint64("generation", gen).Msg("dropping superseded verification response")
		return nil, ErrSuperseded
	}
	r.last = resp
	r.fetched = time.Now()
	r.mu.Unlock()

	if r.cache != nil {
		key := cache.Key("verify", append(append([]string(nil), categories...), strconv.FormatBool(only0DTE))...)
		r.cache.Set(key, resp)
	}
	return resp, nil
}

// Restore seeds the repository from a cached snapshot without issuing
// a request. Returns false when no fresh snapshot exists.
func (r *VerificationRepository) Restore(categories []string, only0DTE bool) bool {
	if r.cache == nil {
		return false
	}
	key := cache.Key("verify", append(append([]string(nil), categories...), strconv.FormatBool(only0DTE))...)
	var cached models.VerifyResponse
	if !r.cache.Get(key, &cached) {
		return false
	}
	r.mu.Lock()
	r.last = &cached
	r.fetched = time.Now()
	r.mu.Unlock()
	return true
}

// Last returns the most recent published verified set, nil if none.
func (r *VerificationRepository) Last() (*models.VerifyResponse, time.Time) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last, r.fetched
}

// TradeIDs returns the market IDs of the last verified set in rank
// order, for selection bookkeeping.
func (r *VerificationRepository) TradeIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.last == nil {
		return nil
	}
	ids := make([]string, 0, len(r.last.TopOpportunities))
	for _, t := range r.last.TopOpportunities {
		ids = append(ids, t.Trade.MarketID)
	}
	return ids
}
