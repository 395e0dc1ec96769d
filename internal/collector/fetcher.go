// Package collector acquires raw market data: daily bars and fundamental
// scalars per ticker. Fetchers do no cleaning beyond dropping null bars; the
// analysis pipeline normalizes whatever they return.
package collector

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"StockAgent/internal/model"
)

// ErrNotFound marks a ticker the upstream source does not know. Callers
// branch on it with errors.Is to distinguish a bad symbol from an outage.
var ErrNotFound = errors.New("symbol not found")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, ticker string, days int) ([]model.PricePoint, error)
	FetchFundamentals(ctx context.Context, ticker string) (model.FundamentalProfile, error)
	Name() string
}

// newHTTPClient builds the shared client shape: 30s budget, optional proxy.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
