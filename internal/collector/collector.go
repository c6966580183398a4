package collector

import (
	"context"
	"fmt"
	"time"

	"CryptoAnalyzer/internal/cache"
	"CryptoAnalyzer/internal/calculator"
	"CryptoAnalyzer/internal/model"
	"CryptoAnalyzer/internal/strategy"
)

// Options control the analytics pipeline.
type Options struct {
	Currency     string
	LookbackDays int
	RSIPeriod    int
	RSIVariant   calculator.RSIVariant
	PointBudget  int
	ShortRange   time.Duration
}

// Collector orchestrates data fetching and indicator computation for one
// request: snapshot + history fetch, series normalization, RSI, signals,
// and summary statistics.
type Collector struct {
	Fetcher Fetcher
	Cache   *cache.Cache
	Opts    Options
}

// NewCollector creates a new Collector. cache may be nil to disable
// read-through caching.
func NewCollector(fetcher Fetcher, c *cache.Cache, opts Options) *Collector {
	return &Collector{Fetcher: fetcher, Cache: c, Opts: opts}
}

// Analyze runs the full pipeline for one coin. Results are served from the
// cache when a live entry exists for (coin, window, currency); a failed
// run writes nothing.
func (c *Collector) Analyze(ctx context.Context, coinID string) (*model.Report, error) {
	key := cache.Key{Asset: coinID, Days: c.Opts.LookbackDays, Currency: c.Opts.Currency}
	if c.Cache != nil {
		if cached := c.Cache.Get(ctx, key); cached != nil {
			hit := *cached
			hit.Cached = true
			return &hit, nil
		}
	}

	snap, err := c.Fetcher.FetchSnapshot(coinID)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	raw, err := c.Fetcher.FetchHistory(coinID, c.Opts.LookbackDays)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}

	samples, err := calculator.Normalize(*raw)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", coinID, err)
	}
	samples, policy := calculator.Downsample(samples, c.Opts.PointBudget, c.Opts.ShortRange)

	prices := make([]float64, len(samples))
	for i, s := range samples {
		prices[i] = s.Price
	}
	rsi, err := calculator.RSISeries(prices, c.Opts.RSIPeriod, c.Opts.RSIVariant)
	if err != nil {
		return nil, fmt.Errorf("rsi %s: %w", coinID, err)
	}
	points := strategy.Evaluate(rsi)

	summary, err := calculator.Summarize(samples)
	if err != nil {
		return nil, fmt.Errorf("summarize %s: %w", coinID, err)
	}

	report := &model.Report{
		Snapshot: *snap,
		Series: model.Series{
			Asset:     coinID,
			Currency:  c.Opts.Currency,
			Samples:   samples,
			Resample:  policy,
			FetchedAt: time.Now(),
		},
		Points:  points,
		Summary: summary,
	}

	if c.Cache != nil {
		c.Cache.Put(ctx, key, report)
	}
	return report, nil
}
