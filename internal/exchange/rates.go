// Package exchange fetches and caches currency exchange rates.
package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrNoRates is returned when no rates could be fetched and none are cached.
var ErrNoRates = errors.New("exchange rates unavailable")

// Rates is a snapshot of exchange rates against a base currency.
// A Rates value is never mutated after it is published.
type Rates struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	FetchedAt time.Time          `json:"fetchedAt"`
}

// Fetcher retrieves a fresh snapshot of rates.
type Fetcher interface {
	Fetch(ctx context.Context) (Rates, error)
}

// Cache serves rates from memory and refreshes them once they are older than
// the TTL. Concurrent refreshes are collapsed into a single upstream fetch.
type Cache struct {
	fetcher Fetcher
	ttl     time.Duration
	now     func() time.Time

	mu      sync.RWMutex
	current *Rates

	group singleflight.Group
}

// NewCache creates a Cache that refreshes through fetcher after ttl.
func NewCache(fetcher Fetcher, ttl time.Duration) *Cache {
	return &Cache{fetcher: fetcher, ttl: ttl, now: time.Now}
}

// Get returns cached rates when fresh, refreshing them otherwise. If the
// refresh fails but older rates exist, the stale rates are returned.
func (c *Cache) Get(ctx context.Context) (Rates, error) {
	c.mu.RLock()
	current := c.current
	c.mu.RUnlock()

	if current != nil && c.now().Sub(current.FetchedAt) <= c.ttl {
		return *current, nil
	}

	v, err, shared := c.group.Do("rates", func() (interface{}, error) {
		// A flight that finished just before this one may have refreshed already.
		c.mu.RLock()
		latest := c.current
		c.mu.RUnlock()
		if latest != nil && c.now().Sub(latest.FetchedAt) <= c.ttl {
			return *latest, nil
		}

		// The fetch outlives any single caller; the fetcher applies its own timeout.
		rates, err := c.fetcher.Fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		if rates.FetchedAt.IsZero() {
			rates.FetchedAt = c.now()
		}

		c.mu.Lock()
		c.current = &rates
		c.mu.Unlock()

		slog.Info("Exchange rates refreshed", "base", rates.Base, "currencies", len(rates.Rates))
		return rates, nil
	})
	if err != nil {
		if current != nil {
			slog.Warn("Exchange rate refresh failed, serving stale rates",
				"error", err,
				"fetched_at", current.FetchedAt,
			)
			return *current, nil
		}
		return Rates{}, fmt.Errorf("%w: %v", ErrNoRates, err)
	}
	if shared {
		slog.Debug("Exchange rate refresh shared with concurrent callers")
	}

	return v.(Rates), nil
}

// HTTPFetcher fetches rates from a JSON endpoint shaped like
// {"base_code": "USD", "rates": {"VND": 25400, ...}}.
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher with the given request timeout.
func NewHTTPFetcher(url string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{URL: url, Client: &http.Client{Timeout: timeout}}
}

type ratesResponse struct {
	BaseCode string             `json:"base_code"`
	Rates    map[string]float64 `json:"rates"`
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context) (Rates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return Rates{}, fmt.Errorf("build rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return Rates{}, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Rates{}, fmt.Errorf("fetch rates: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload ratesResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err != nil {
		return Rates{}, fmt.Errorf("decode rates: %w", err)
	}
	if len(payload.Rates) == 0 {
		return Rates{}, errors.New("decode rates: response contained no rates")
	}

	return Rates{Base: payload.BaseCode, Rates: payload.Rates}, nil
}
